package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docserver/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "docserver",
	Short:   "HTTP document server with Basic auth protected writes",
	Long: `docserver exposes a directory over HTTP. GET reads files and is public,
PUT creates or overwrites files and DELETE removes them; both require
HTTP Basic credentials.

Running docserver without a subcommand starts the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFiles(cmd), cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		setupLogging(cfg.Log.Level, cfg.Env)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable; later files override earlier ones (default: ./config.yaml)")
	rootCmd.PersistentFlags().Int("port", 3000, "HTTP server port (env: PORT)")
	rootCmd.PersistentFlags().String("root", "", "public directory to serve (default: ./public next to the binary, env: PUBLIC_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: LOG_LEVEL)")
}

func configFiles(cmd *cobra.Command) []string {
	files, _ := cmd.Flags().GetStringSlice("config")
	return files
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
