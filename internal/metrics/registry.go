package metrics

import "github.com/refscore/refscore/internal/core/domain"

// Spec declares one metric family: its report column, an optional
// companion column, and the alignment strategy it requires.
type Spec struct {
	// Name identifies the family ("levenshtein", "rouge", "bleu",
	// "semantic").
	Name string

	// Column is the report column the family writes.
	Column string

	// Companion is an extra column tied to the family, written and
	// omitted together with it ("semantic_matched").
	Companion string

	// Alignment is the strategy the family scores against.
	Alignment domain.AlignmentKind
}

// Options selects the active metric families. Edit distance is always
// active.
type Options struct {
	Rouge    bool
	Bleu     bool
	Semantic bool
}

// specs is the stable declared order; report columns follow it.
var specs = []Spec{
	{Name: "levenshtein", Column: "levenshtein", Alignment: domain.AlignOrder},
	{Name: "rouge", Column: "rouge_l", Alignment: domain.AlignOrder},
	{Name: "bleu", Column: "bleu", Alignment: domain.AlignOrder},
	{Name: "semantic", Column: "semantic", Companion: "semantic_matched", Alignment: domain.AlignTitle},
}

// Active returns the enabled specs in declared order.
func Active(opts Options) []Spec {
	active := make([]Spec, 0, len(specs))
	for _, spec := range specs {
		switch spec.Name {
		case "rouge":
			if !opts.Rouge {
				continue
			}
		case "bleu":
			if !opts.Bleu {
				continue
			}
		case "semantic":
			if !opts.Semantic {
				continue
			}
		}
		active = append(active, spec)
	}
	return active
}

// Columns returns the metric column layout for the enabled families, in
// declared order, companions included.
func Columns(opts Options) []string {
	var columns []string
	for _, spec := range Active(opts) {
		columns = append(columns, spec.Column)
		if spec.Companion != "" {
			columns = append(columns, spec.Companion)
		}
	}
	return columns
}

// RequiresAlignment reports whether any enabled family scores against
// the given alignment strategy.
func RequiresAlignment(opts Options, kind domain.AlignmentKind) bool {
	for _, spec := range Active(opts) {
		if spec.Alignment == kind {
			return true
		}
	}
	return false
}
