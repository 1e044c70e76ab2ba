package cli

import (
	"github.com/spf13/cobra"
)

// configPath is the config file in effect, injected by the composition
// root for display.
var configPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Shows the configuration the current invocation resolved: built-in
defaults overridden by the config file. Command-line flags still win
over both.`,
	Run: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// SetConfigPath records the config file path for display.
func SetConfigPath(path string) {
	configPath = path
}

func runConfigShow(cmd *cobra.Command, _ []string) {
	path := configPath
	if path == "" {
		path = "(none)"
	}
	cmd.Printf("Config file: %s\n", path)
	cmd.Println()
	cmd.Println("[scoring]")
	cmd.Printf("  Output:            %s\n", defaults.Output)
	cmd.Printf("  Threshold:         %d\n", defaults.Threshold)
	cmd.Printf("  Case insensitive:  %v\n", defaults.CaseInsensitive)
	cmd.Println()
	cmd.Println("[metrics]")
	cmd.Printf("  ROUGE-L:   %v\n", defaults.Rouge)
	cmd.Printf("  BLEU:      %v\n", defaults.Bleu)
	cmd.Printf("  Semantic:  %v\n", defaults.Semantic)
}
