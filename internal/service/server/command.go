package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"snapp-packager/internal/config"
	"snapp-packager/internal/logger"
	"snapp-packager/internal/resources"
	"snapp-packager/internal/service/packager"
)

// Options controls the packaging server process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override.
	ListenAddress string
	// ResourceRoot overrides the configured resource store directory.
	ResourceRoot string
}

// errServerRunning indicates another packager server process is already up.
var errServerRunning = errors.New("another packager server is already running")

// shutdownGrace bounds how long in-flight requests may finish on shutdown.
const shutdownGrace = 10 * time.Second

// Run starts the HTTP server and blocks until the context is canceled or
// the server stops.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "snapp-packager-server")

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.ListenAddress != "" {
		cfg.ListenAddress = opts.ListenAddress
	}

	if opts.ResourceRoot != "" {
		cfg.ResourceRoot = opts.ResourceRoot
	}

	if err = config.Validate(cfg); err != nil {
		return err
	}

	if isServerRunningNow(ctx) {
		return errServerRunning
	}

	orchestrator := packager.NewOrchestrator(resources.Open(cfg.ResourceRoot))
	handler := NewHandler(orchestrator, cfg.Timeout, cfg.MaxProjectBytes)

	// Setup TCP listener for the HTTP server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddress, err)
	}

	srv := &http.Server{
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.InfoKV(ctx, "Packaging server listening", "listen_address", cfg.ListenAddress, "resource_root", cfg.ResourceRoot)

	// Done channel is closed after Shutdown finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Errorf(ctx, "Shutdown did not finish cleanly: %v", shutdownErr)
		}

		close(done)
	}()

	if err = srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	<-done
	logger.Info(ctx, "HTTP server stopped")

	return nil
}

// loadConfig reads settings from disk. The default settings file may be
// absent; a path given explicitly must exist.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigFilename
	}

	cfg, err := config.Load(path)

	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return config.Default(), nil
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}
}
