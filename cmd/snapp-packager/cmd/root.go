package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"snapp-packager/internal/config"
	"snapp-packager/internal/logger"
	"snapp-packager/internal/service/packager"
	"snapp-packager/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// resourceRoot overrides the configured resource store directory.
	resourceRoot string

	// outputPath of the finished archive.
	outputPath string

	// displayFilename used for OS-facing names inside the bundle.
	displayFilename string

	// resolution of the runtime window in WxH form.
	resolution string

	// useCompleteSnap selects the full resource variant.
	useCompleteSnap bool

	// logLevel is the minimum level for log output.
	logLevel string

	// rootCmd represents the base command packaging one project document.
	rootCmd = &cobra.Command{
		Use:   "snapp-packager [project-file] [os]",
		Short: "Package a project document into an OS-specific distributable bundle",
		Long: "Package a visual-programming project (an XML document) into a self-contained " +
			"distributable bundle: a macOS application bundle, a Linux directory bundle with " +
			"launcher, or a Windows self-contained executable tree. Supported targets: " +
			"mac32, mac64, lin32, lin64, win32, win64.",
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			applyLogLevel()

			options := &packager.Options{
				ConfigPath:      configPath,
				ResourceRoot:    resourceRoot,
				ProjectPath:     args[0],
				OS:              args[1],
				OutputPath:      outputPath,
				Filename:        displayFilename,
				Resolution:      resolution,
				UseCompleteSnap: useCompleteSnap,
			}

			return packager.Run(ctx, options)
		},
	}
)

// Execute runs the snapp-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyLogLevel configures the global logger from the --log-level flag.
func applyLogLevel() {
	if level, ok := logger.ParseLogLevel(logLevel); ok {
		logger.SetLevel(level)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.PersistentFlags().StringVar(&resourceRoot, "resources", "", "path to the resource store root (overrides configuration)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "path of the finished archive (defaults to <filename>-<os>.zip)")
	rootCmd.Flags().StringVarP(&displayFilename, "filename", "f", "", "display filename for OS-facing names (defaults to the project file name)")
	rootCmd.Flags().StringVarP(&resolution, "resolution", "r", "800x600", "runtime window size in WxH form")
	rootCmd.Flags().BoolVarP(&useCompleteSnap, "complete-snap", "s", false, "embed the full resource variant instead of the reduced one")
}
