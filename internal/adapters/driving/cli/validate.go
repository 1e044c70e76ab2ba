package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]...",
	Short: "Validate document structure without scoring",
	Long: `Checks that each file parses as JSON and carries the expected page
structure, and reports what was found where it does not.

The command exits non-zero when any file fails validation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if evalService == nil {
		return errors.New("evaluation service not configured")
	}

	validations, err := evalService.Inspect(context.Background(), args)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	table := newTable(cmd.OutOrStdout(), []string{"FILE", "PAGES", "STATUS"})
	invalid := 0
	for _, v := range validations {
		mark := "✓"
		if !v.OK {
			mark = "✗"
			invalid++
		}
		_ = table.Append([]string{v.Name, strconv.Itoa(v.Pages), mark + " " + v.Message})
	}
	_ = table.Render()

	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", invalid, len(validations))
	}
	return nil
}
