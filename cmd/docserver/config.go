package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/docserver/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration docserver would start with after merging
defaults, config files, environment variables and flags. The password is
redacted.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	out, err := renderConfig(cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func renderConfig(cfg *config.Config) (string, error) {
	redacted := *cfg
	if redacted.Auth.Password != "" {
		redacted.Auth.Password = "********"
	}

	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(data), nil
}
