package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/irchook/irchook/pkg/config"
)

// Build information, injected by main from ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// configFile is the --config flag, shared by all commands that need the
// relay configuration.
var configFile string

var rootCmd = &cobra.Command{
	Use:   "irchook",
	Short: "Relay IRC messages matching a pattern to an HTTP webhook",
	Long: `irchook joins IRC channels and POSTs webhooks based on regex matching.

Messages whose content matches the configured search pattern are rendered
through a positional template and dispatched to the webhook URL. Multi-line
mode buffers consecutive lines between an init trigger and a conclusion
condition before matching.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file (YAML)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI with build info from main. Errors are printed once
// here; cobra's own reporting is silenced.
func Execute(version, commit, buildDate string) {
	Version, Commit, BuildDate = version, commit, buildDate

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

// resolveConfigFile returns the config path from the flag or the
// environment, preferring the flag.
func resolveConfigFile() string {
	if configFile != "" {
		return configFile
	}
	return os.Getenv(config.EnvConfigFile)
}
