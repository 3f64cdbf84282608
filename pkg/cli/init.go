package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// starterConfig is written by `irchook init`.
const starterConfig = `# irchook configuration
server: irc.libera.chat
port: 6697
tls: true
nick: hookbot
# password: nickserv-password
channels:
  - "#ops"

# Messages matching this pattern are relayed. Capture groups are available
# to the templates below as ${1}, ${2}, ...; ${0} is the full match.
search_pattern: '\d(.+?)\d'

# Buffered matching: collect lines between an init trigger and a conclusion
# condition, then match them as one space-joined candidate.
multi_line: false
# line_init_pattern: '\*\*STARTED\*\*'
# line_conclude_pattern: '\*\*FINISHED\*\*'
line_limit: 10

webhook_url: https://example.com/hook
# webhook_api_key: secret        # sent as X-Api-Key
body_template: '{"match": "${0}"}'
# headers:
#   X-Match-Group: '${1}'
max_concurrent_dispatch: 8

log_level: warn                  # debug|info|warn|error
log_format: text                 # text|json
# status_addr: ":9090"           # /health and /metrics
`

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Create a starter config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "irchook.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		cmd.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
}
