// Command refscore scores model-generated documents against a reference
// and maintains a merged CSV report of per-page results.
package main

import (
	"context"
	"os"
	"time"

	"github.com/refscore/refscore/internal/adapters/driven/config/file"
	"github.com/refscore/refscore/internal/adapters/driven/report/csvfile"
	"github.com/refscore/refscore/internal/adapters/driven/scoring/remote"
	"github.com/refscore/refscore/internal/adapters/driven/storage/memory"
	"github.com/refscore/refscore/internal/adapters/driven/storage/sqlite"
	"github.com/refscore/refscore/internal/adapters/driving/cli"
	"github.com/refscore/refscore/internal/core/domain"
	"github.com/refscore/refscore/internal/core/ports/driven"
	"github.com/refscore/refscore/internal/core/services"
	"github.com/refscore/refscore/internal/logger"
)

// version is stamped at build time via ldflags.
var version = "dev"

// cleanup releases the adapters opened by initialize. Nil until
// initialization has run.
var cleanup func()

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initialize)

	err := cli.Execute()
	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		os.Exit(1)
	}
}

// initialize builds the adapter stack and injects the services. It runs
// after flag parsing so it sees --config and the score command's flags.
func initialize(configDir string) error {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return err
	}

	settings, err := file.LoadSettings(configStore)
	if err != nil {
		return err
	}
	cli.SetConfigPath(configStore.Path())
	cli.SetDefaults(cli.Defaults{
		Output:          settings.Output,
		Threshold:       settings.Threshold,
		CaseInsensitive: settings.CaseInsensitive,
		Rouge:           settings.Rouge,
		Bleu:            settings.Bleu,
		Semantic:        settings.Semantic,
	})

	runStore, closeRuns := openRunStore(settings.DataDir)
	scorer := openScorer(settings)
	cleanup = func() {
		if scorer != nil {
			_ = scorer.Close()
		}
		if closeRuns != nil {
			_ = closeRuns()
		}
	}

	cli.SetEvaluationService(services.NewEvaluationService(csvfile.NewStore(), runStore, scorer))
	cli.SetRunHistoryService(services.NewRunHistoryService(runStore))
	return nil
}

// openRunStore opens the SQLite run ledger. If the database cannot be
// opened, runs are kept in memory for this process only.
func openRunStore(dataDir string) (driven.RunStore, func() error) {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("Run history unavailable (%v), keeping runs in memory only", err)
		return memory.NewRunStore(), nil
	}
	return store.RunStore(), store.Close
}

// openScorer dials the scoring server when the invocation wants the
// semantic pass. An unreachable server degrades the run to lexical
// metrics only.
func openScorer(settings *file.Settings) driven.SemanticScorer {
	if !cli.SemanticRequested() {
		return nil
	}

	cfg := remote.Config{
		BaseURL:       settings.ScorerURL,
		Model:         settings.ScorerModel,
		Timeout:       settings.ScorerTimeout,
		RatePerSecond: settings.ScorerRate,
	}
	if url := cli.ScorerURL(); url != "" {
		cfg.BaseURL = url
	}
	scorer := remote.NewScorer(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := scorer.Ping(ctx); err != nil {
		logger.Warn("%v, lexical metrics only: %v", domain.ErrScorerUnavailable, err)
		_ = scorer.Close()
		return nil
	}
	logger.Debug("Scoring server ready (model %s)", scorer.Model())
	return scorer
}
