package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	runsLimit       int
	runsDeleteForce bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded evaluation runs",
	Long: `Lists and inspects the local ledger of completed evaluation runs.

Without a subcommand, lists the most recent runs.`,
	RunE: runRunsList,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete [run-id]",
	Short: "Delete one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.PersistentFlags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to list")
	runsDeleteCmd.Flags().BoolVarP(&runsDeleteForce, "force", "f", false, "delete without confirmation")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runsService == nil {
		return errors.New("run history service not configured")
	}

	runs, err := runsService.ListRuns(context.Background(), runsLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	table := newTable(cmd.OutOrStdout(), []string{"ID", "STARTED", "REFERENCE", "MODELS", "ROWS", "SEMANTIC"})
	for _, run := range runs {
		semantic := "no"
		if run.Semantic {
			semantic = "yes"
		}
		_ = table.Append([]string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			filepath.Base(run.ReferencePath),
			strings.Join(run.Models, ", "),
			strconv.Itoa(run.RowsWritten),
			semantic,
		})
	}
	_ = table.Render()
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runsService == nil {
		return errors.New("run history service not configured")
	}

	run, err := runsService.GetRun(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Println()
	cmd.Printf("  Started:    %s\n", run.StartedAt.Local().Format(time.RFC3339))
	cmd.Printf("  Finished:   %s (%s)\n", run.FinishedAt.Local().Format(time.RFC3339), run.Duration().Round(time.Millisecond))
	cmd.Printf("  Reference:  %s\n", run.ReferencePath)
	cmd.Printf("  Report:     %s\n", run.ReportPath)
	cmd.Printf("  Models:     %s\n", strings.Join(run.Models, ", "))
	cmd.Printf("  Pages:      %d\n", run.Pages)
	cmd.Printf("  Rows:       %d\n", run.RowsWritten)
	cmd.Printf("  Metrics:    %s\n", strings.Join(run.Metrics, ", "))
	cmd.Printf("  Threshold:  %d\n", run.Threshold)
	cmd.Printf("  Semantic:   %v\n", run.Semantic)
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	if runsService == nil {
		return errors.New("run history service not configured")
	}
	id := args[0]

	if !runsDeleteForce {
		ok, err := confirm(cmd, fmt.Sprintf("Delete run %s? [y/N]: ", id))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := runsService.DeleteRun(context.Background(), id); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	cmd.Printf("Deleted run %s\n", id)
	return nil
}

// confirm prompts on stdin. Non-interactive callers must pass --force.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("stdin is not a terminal, use --force")
	}
	cmd.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes", nil
}
