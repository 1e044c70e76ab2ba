package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refscore/refscore/internal/core/domain"
)

func resetRunsFlags() {
	runsLimit = 20
	runsDeleteForce = false
	runsCmd.PersistentFlags().Visit(func(f *pflag.Flag) {
		f.Changed = false
	})
	runsDeleteCmd.Flags().Visit(func(f *pflag.Flag) {
		f.Changed = false
	})
}

func testRun(id string) domain.Run {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Run{
		ID:            id,
		StartedAt:     started,
		FinishedAt:    started.Add(2 * time.Second),
		ReferencePath: "/data/french.json",
		ReportPath:    "scores.csv",
		Models:        []string{"gpt", "claude"},
		Pages:         12,
		RowsWritten:   24,
		Metrics:       []string{"levenshtein", "rouge_l", "bleu"},
		Threshold:     45,
		Semantic:      true,
	}
}

func TestRunsCmd_Use(t *testing.T) {
	assert.Equal(t, "runs", runsCmd.Use)
}

func TestRunsCmd_HasSubcommands(t *testing.T) {
	commands := runsCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "delete")
}

func TestRunsCmd_HasLimitFlag(t *testing.T) {
	flag := runsCmd.PersistentFlags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestRunsCmd_ListsRuns(t *testing.T) {
	oldService := runsService
	runsService = &mockRunHistoryService{runs: []domain.Run{testRun("run-1"), testRun("run-2")}}
	defer func() {
		runsService = oldService
	}()
	defer resetRunsFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run-1")
	assert.Contains(t, buf.String(), "run-2")
	assert.Contains(t, buf.String(), "french.json")
	assert.Contains(t, buf.String(), "gpt, claude")
}

func TestRunsCmd_ListEmpty(t *testing.T) {
	oldService := runsService
	runsService = &mockRunHistoryService{}
	defer func() {
		runsService = oldService
	}()
	defer resetRunsFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No runs recorded.")
}

func TestRunsCmd_ListHonoursLimit(t *testing.T) {
	oldService := runsService
	mock := &mockRunHistoryService{runs: []domain.Run{testRun("run-1"), testRun("run-2"), testRun("run-3")}}
	runsService = mock
	defer func() {
		runsService = oldService
	}()
	defer resetRunsFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs", "list", "-n", "2"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run-2")
	assert.NotContains(t, buf.String(), "run-3")
}

func TestRunsShowCmd_ShowsRun(t *testing.T) {
	oldService := runsService
	run := testRun("run-1")
	runsService = &mockRunHistoryService{run: &run}
	defer func() {
		runsService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs", "show", "run-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Run run-1")
	assert.Contains(t, buf.String(), "/data/french.json")
	assert.Contains(t, buf.String(), "levenshtein, rouge_l, bleu")
	assert.Contains(t, buf.String(), "2s")
}

func TestRunsShowCmd_NotFound(t *testing.T) {
	oldService := runsService
	runsService = &mockRunHistoryService{getErr: domain.ErrNotFound}
	defer func() {
		runsService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"runs", "show", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunsDeleteCmd_ForceDeletes(t *testing.T) {
	oldService := runsService
	mock := &mockRunHistoryService{}
	runsService = mock
	defer func() {
		runsService = oldService
	}()
	defer resetRunsFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs", "delete", "--force", "run-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "run-1", mock.deletedID)
	assert.Contains(t, buf.String(), "Deleted run run-1")
}

func TestRunsDeleteCmd_RefusesWithoutTerminal(t *testing.T) {
	oldService := runsService
	mock := &mockRunHistoryService{}
	runsService = mock
	defer func() {
		runsService = oldService
	}()
	defer resetRunsFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"runs", "delete", "run-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	// Test processes have no terminal on stdin, so the confirmation
	// prompt must refuse and point at --force.
	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
	assert.Empty(t, mock.deletedID)
}

func TestRunsCmd_ServiceNotConfigured(t *testing.T) {
	oldService := runsService
	runsService = nil
	defer func() {
		runsService = oldService
	}()
	defer resetRunsFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"runs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "run history service not configured")
}
