package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wandadars/spitfire"
)

type app struct {
	cfg    config
	logger *spitfire.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:   "spitfire",
		Short: "Inspect, convert and export tabulated chemistry libraries",
		Long: `spitfire works with library files written by the spitfire persistence
package. Files in the legacy plain-mapping schema are read transparently.

Environment:
  SPITFIRE_LOG_LEVEL    debug, info, warn or error (default info)
  SPITFIRE_COMPRESSION  none, lz4 or zstd, used when writing (default none)
  SPITFIRE_CONCURRENCY  parallel loads for pull (default 4)
  SPITFIRE_CACHE_DIR    local read-through cache for remote stores
  SPITFIRE_S3_REGION    region for s3:// stores
  SPITFIRE_MINIO_*      ACCESS_KEY, SECRET_KEY, SECURE and REGION for minio:// stores`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
					return err
				}
			}
			a.cfg = cfg
			a.logger = spitfire.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.LogLevel,
			}))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level")

	root.AddCommand(
		newInfoCmd(a),
		newExportCmd(a),
		newConvertCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newListCmd(a),
	)
	return root
}
