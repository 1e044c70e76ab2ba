package domain

// AlignmentKind names one of the two independent page-alignment
// strategies. Each metric family declares which kind it requires; the
// two must never be conflated.
type AlignmentKind int

const (
	// AlignOrder pairs pages by their integer Order key. Used by the
	// lexical metrics.
	AlignOrder AlignmentKind = iota

	// AlignTitle pairs pages by fuzzy title-key matching. Used only by
	// the semantic metric.
	AlignTitle
)

// String returns the strategy name.
func (k AlignmentKind) String() string {
	switch k {
	case AlignOrder:
		return "order"
	case AlignTitle:
		return "title"
	default:
		return "unknown"
	}
}
