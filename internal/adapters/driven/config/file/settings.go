package file

import (
	"fmt"
	"time"

	"github.com/refscore/refscore/internal/align"
	"github.com/refscore/refscore/internal/core/ports/driven"
)

// Built-in defaults for values the config file may omit. Scorer fields
// default to zero here; the scorer adapter fills its own defaults.
const (
	DefaultOutput = "scores.csv"
)

// Settings are the resolved configuration values: file values where
// present, built-in defaults otherwise. Command-line flags still
// override these.
type Settings struct {
	// Threshold is the fuzzy-alignment acceptance threshold (0-100).
	Threshold int

	// Output is the report path.
	Output string

	// CaseInsensitive lowercases the lexical comparison form.
	CaseInsensitive bool

	// Rouge, Bleu and Semantic enable their metric families.
	Rouge    bool
	Bleu     bool
	Semantic bool

	// ScorerURL and ScorerModel configure the semantic scorer. Empty
	// means the scorer's own defaults.
	ScorerURL   string
	ScorerModel string

	// ScorerTimeout is the per-request timeout, zero for the scorer's
	// default.
	ScorerTimeout time.Duration

	// ScorerRate caps sustained scorer request rate, zero for the
	// scorer's default.
	ScorerRate float64

	// DataDir holds the run ledger, empty for the default location.
	DataDir string
}

// LoadSettings resolves settings from a config store, applying defaults
// and validating ranges.
func LoadSettings(store driven.ConfigStore) (*Settings, error) {
	s := &Settings{
		Threshold: align.DefaultThreshold,
		Output:    DefaultOutput,
		Rouge:     true,
		Bleu:      true,
		Semantic:  true,
	}

	if v, ok := store.Get("threshold"); ok {
		s.Threshold = asInt(v)
		if s.Threshold < 0 || s.Threshold > 100 {
			return nil, fmt.Errorf("config threshold %d out of range 0-100", s.Threshold)
		}
	}
	if v := store.GetString("output"); v != "" {
		s.Output = v
	}
	s.CaseInsensitive = store.GetBool("case_insensitive")

	if v, ok := store.Get("metrics.rouge"); ok {
		s.Rouge = asBool(v)
	}
	if v, ok := store.Get("metrics.bleu"); ok {
		s.Bleu = asBool(v)
	}
	if v, ok := store.Get("metrics.semantic"); ok {
		s.Semantic = asBool(v)
	}

	s.ScorerURL = store.GetString("scorer.url")
	s.ScorerModel = store.GetString("scorer.model")
	if v, ok := store.Get("scorer.timeout_seconds"); ok {
		seconds := asInt(v)
		if seconds <= 0 {
			return nil, fmt.Errorf("config scorer.timeout_seconds %d must be positive", seconds)
		}
		s.ScorerTimeout = time.Duration(seconds) * time.Second
	}
	if v, ok := store.Get("scorer.rate_per_second"); ok {
		if rate := asFloat(v); rate > 0 {
			s.ScorerRate = rate
		}
	}

	s.DataDir = store.GetString("storage.data_dir")
	return s, nil
}

// asInt widens the numeric types TOML decodes into.
func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// asFloat widens the numeric types TOML decodes into.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
