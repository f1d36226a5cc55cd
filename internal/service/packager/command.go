package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"snapp-packager/internal/config"
	"snapp-packager/internal/logger"
	"snapp-packager/internal/resources"
)

// Options contains inputs for the packaging entry point.
type Options struct {
	// ConfigPath is an optional path to the settings file (defaults to
	// snapp-packager-settings.yaml; a missing file falls back to defaults).
	ConfigPath string
	// ResourceRoot overrides the configured resource store directory.
	ResourceRoot string
	// ProjectPath is the project XML document to package.
	ProjectPath string
	// OutputPath is where the finished archive is written. Empty derives
	// "<filename>-<os>.zip" next to the working directory.
	OutputPath string
	// Filename is the display filename for OS-facing names. Empty derives
	// it from the project file name.
	Filename string
	// OS is the raw target identifier (mac32..win64).
	OS string
	// Resolution is the requested window size in WxH form.
	Resolution string
	// UseCompleteSnap selects the full resource variant.
	UseCompleteSnap bool
}

// Run executes one packaging request from the command line.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "snapp-packager")

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	projectXML, err := os.ReadFile(filepath.Clean(opts.ProjectPath))
	if err != nil {
		return fmt.Errorf("read project document: %w", err)
	}

	filename := opts.Filename
	if filename == "" {
		base := filepath.Base(opts.ProjectPath)
		filename = strings.TrimSuffix(base, filepath.Ext(base))
	}

	req, err := ParseRequest(filename, string(projectXML), opts.OS, opts.Resolution, opts.UseCompleteSnap)
	if err != nil {
		return err
	}

	orchestrator := NewOrchestrator(resources.Open(cfg.ResourceRoot))

	stream, err := orchestrator.Package(ctx, req)
	if err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s-%s.zip", filename, req.OS)
	}

	if err = writeArchive(outputPath, stream); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Package written", "path", outputPath)

	return nil
}

// loadConfig reads settings from disk when present, applies overrides and
// validates the result.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg := config.Default()

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigFilename
	}

	loaded, err := config.Load(path)

	switch {
	case err == nil:
		cfg = loaded
	case errors.Is(err, os.ErrNotExist) && opts.ConfigPath == "":
		// No settings file is fine when nothing was asked for explicitly.
	default:
		return nil, err
	}

	if opts.ResourceRoot != "" {
		cfg.ResourceRoot = opts.ResourceRoot
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// writeArchive copies the finished stream to the output file.
func writeArchive(path string, stream io.Reader) error {
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if _, err = io.Copy(out, stream); err != nil {
		_ = out.Close()

		return fmt.Errorf("write output file: %w", err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	return nil
}
