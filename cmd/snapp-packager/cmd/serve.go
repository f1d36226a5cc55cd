package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"snapp-packager/internal/service/server"
)

var (
	// listenAddress provides an optional listen address override.
	listenAddress string

	// serveCmd runs the packaging pipeline as an HTTP service.
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve packaging requests over HTTP",
		Long: "Start an HTTP server that accepts project documents on POST /package and " +
			"streams back the finished OS-specific bundle.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			applyLogLevel()

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				ResourceRoot:  resourceRoot,
			}

			return server.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	serveCmd.Flags().StringVarP(&listenAddress, "listen", "l", "", "listen address override (e.g. :8073)")
	rootCmd.AddCommand(serveCmd)
}
