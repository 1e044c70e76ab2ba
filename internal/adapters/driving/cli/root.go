package cli

import (
	"github.com/spf13/cobra"

	"github.com/refscore/refscore/internal/core/ports/driving"
	"github.com/refscore/refscore/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services are injected by the composition root before Execute. Commands
// guard against nil so that a partially wired binary fails cleanly.
var (
	evalService driving.EvaluationService
	runsService driving.RunHistoryService
)

// initialize, when set, builds the services after flag parsing. This
// lets the composition root see --config and the score flags before it
// constructs adapters.
var initialize func(configDir string) error

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "refscore",
	Short: "Score model-generated documents against a reference",
	Long: `refscore compares model-generated structured documents against a
reference document and maintains a merged CSV report of per-page scores.

Lexical metrics (Levenshtein, ROUGE-L, BLEU) pair pages by their Order
key. The optional semantic metric pairs pages by fuzzy title matching
and scores the pairs through an external scoring server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if initialize != nil {
			return initialize(configDir)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.refscore)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// SetInitializer registers the composition callback run after flag
// parsing and before any command.
func SetInitializer(fn func(configDir string) error) {
	initialize = fn
}

// SetEvaluationService injects the evaluation service.
func SetEvaluationService(svc driving.EvaluationService) {
	evalService = svc
}

// SetRunHistoryService injects the run history service.
func SetRunHistoryService(svc driving.RunHistoryService) {
	runsService = svc
}
