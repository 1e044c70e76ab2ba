package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/refscore/refscore/internal/align"
	"github.com/refscore/refscore/internal/core/domain"
)

// Defaults are the score command's config-file defaults. Flags given on
// the command line win over them.
type Defaults struct {
	Output          string
	Threshold       int
	CaseInsensitive bool
	Rouge           bool
	Bleu            bool
	Semantic        bool
}

// defaults is replaced by the composition root from the config file.
var defaults = Defaults{
	Output:    "scores.csv",
	Threshold: align.DefaultThreshold,
	Rouge:     true,
	Bleu:      true,
	Semantic:  true,
}

var (
	scoreReference       string
	scoreOut             string
	scoreThreshold       int
	scoreCaseInsensitive bool
	scoreNoRouge         bool
	scoreNoBleu          bool
	scoreNoSemantic      bool
	scoreScorerURL       string
)

var scoreCmd = &cobra.Command{
	Use:   "score [path|model=path]...",
	Short: "Score candidate documents against the reference",
	Long: `Scores one or more candidate documents against the reference document
and merges the per-page results into the CSV report.

Each candidate is a JSON file; prefix it with a model name and '=' to
override the name used in report rows (default: file name without
extension). Candidates that fail to load or validate produce rows with
empty metric cells instead of aborting the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreReference, "reference", "r", "", "reference document (required)")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", defaults.Output, "report CSV to merge into")
	scoreCmd.Flags().IntVar(&scoreThreshold, "threshold", defaults.Threshold, "title match threshold (0-100)")
	scoreCmd.Flags().BoolVar(&scoreCaseInsensitive, "case-insensitive", false, "lowercase text before lexical comparison")
	scoreCmd.Flags().BoolVar(&scoreNoRouge, "no-rouge", false, "disable the ROUGE-L column")
	scoreCmd.Flags().BoolVar(&scoreNoBleu, "no-bleu", false, "disable the BLEU column")
	scoreCmd.Flags().BoolVar(&scoreNoSemantic, "no-semantic", false, "disable the semantic pass")
	scoreCmd.Flags().StringVar(&scoreScorerURL, "scorer-url", "", "semantic scoring server URL")
	_ = scoreCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(scoreCmd)
}

// SetDefaults replaces the config-file defaults.
func SetDefaults(d Defaults) {
	defaults = d
}

// ScorerURL returns the --scorer-url override, empty when unset.
func ScorerURL() string {
	return scoreScorerURL
}

// SemanticRequested reports whether the current invocation wants the
// semantic pass. The composition root uses it to decide whether to dial
// the scoring server at all.
func SemanticRequested() bool {
	return defaults.Semantic && !scoreNoSemantic
}

func runScore(cmd *cobra.Command, args []string) error {
	if evalService == nil {
		return errors.New("evaluation service not configured")
	}

	candidates, err := parseCandidates(args)
	if err != nil {
		return err
	}

	out := scoreOut
	if !cmd.Flags().Changed("out") && defaults.Output != "" {
		out = defaults.Output
	}
	threshold := scoreThreshold
	if !cmd.Flags().Changed("threshold") {
		threshold = defaults.Threshold
	}

	req := domain.EvaluationRequest{
		ReferencePath:   scoreReference,
		Candidates:      candidates,
		OutputPath:      out,
		Threshold:       threshold,
		CaseInsensitive: scoreCaseInsensitive || defaults.CaseInsensitive,
		Rouge:           defaults.Rouge && !scoreNoRouge,
		Bleu:            defaults.Bleu && !scoreNoBleu,
		Semantic:        SemanticRequested(),
	}

	result, err := evalService.Evaluate(context.Background(), req)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	renderResult(cmd, result)
	return nil
}

// parseCandidates turns positional arguments into candidates. An
// argument containing '=' is split into model name and path.
func parseCandidates(args []string) ([]domain.Candidate, error) {
	candidates := make([]domain.Candidate, 0, len(args))
	for _, arg := range args {
		name, path, found := strings.Cut(arg, "=")
		if !found {
			candidates = append(candidates, domain.Candidate{Path: arg})
			continue
		}
		if name == "" || path == "" {
			return nil, fmt.Errorf("%w: candidate %q, want path or model=path", domain.ErrInvalidInput, arg)
		}
		candidates = append(candidates, domain.Candidate{Name: name, Path: path})
	}
	return candidates, nil
}

func renderResult(cmd *cobra.Command, result *domain.EvaluationResult) {
	table := newTable(cmd.OutOrStdout(), []string{"FILE", "ROLE", "PAGES", "STATUS"})
	_ = table.Append(validationRow(result.Reference, "reference"))
	for _, v := range result.Candidates {
		_ = table.Append(validationRow(v, "candidate"))
	}
	_ = table.Render()
	cmd.Println()

	if len(result.MatchNotes) > 0 {
		cmd.Println("Matched titles:")
		for _, note := range result.MatchNotes {
			cmd.Printf("  %s: %q -> %q (score %d)\n", note.Model, note.Key, note.MatchedTo, note.Score)
		}
		cmd.Println()
	}

	unmatchedHeader := false
	for _, alignment := range result.Alignments {
		for _, miss := range alignment.Unmatched {
			if !unmatchedHeader {
				cmd.Println("Unmatched titles:")
				unmatchedHeader = true
			}
			if miss.BestMatch == "" {
				cmd.Printf("  %s: %q matched nothing\n", alignment.Model, miss.Key)
				continue
			}
			cmd.Printf("  %s: %q matched nothing (best %q, score %d)\n",
				alignment.Model, miss.Key, miss.BestMatch, miss.Score)
		}
	}
	if unmatchedHeader {
		cmd.Println()
	}

	cmd.Printf("Wrote %d row(s) to %s (%s)\n",
		result.RowsWritten, result.ReportPath, strings.Join(result.Columns, ", "))
	if result.RunID != "" {
		cmd.Printf("Run recorded: %s\n", result.RunID)
	}
	cmd.Printf("Done in %s\n", result.Elapsed.Round(time.Millisecond))
}

func validationRow(v domain.Validation, role string) []string {
	mark := "✓"
	if !v.OK {
		mark = "✗"
	}
	return []string{v.Name, role, fmt.Sprintf("%d", v.Pages), mark + " " + v.Message}
}
