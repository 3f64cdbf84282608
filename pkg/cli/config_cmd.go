package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/irchook/irchook/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration (file + environment overrides)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := resolveConfigFile()
		if path == "" {
			return errors.New("no config file: pass --config or set " + config.EnvConfigFile)
		}

		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}

		// Secrets stay out of terminal output.
		if cfg.Password != "" {
			cfg.Password = "********"
		}
		if cfg.WebhookAPIKey != "" {
			cfg.WebhookAPIKey = "********"
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		cmd.Print(string(out))
		return nil
	},
}
