package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/irchook/irchook/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file without connecting anywhere",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := resolveConfigFile()
		if path == "" {
			return errors.New("no config file: pass --config or set " + config.EnvConfigFile)
		}

		if _, err := config.LoadFromFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cmd.Printf("%s: OK\n", path)
		return nil
	},
}
