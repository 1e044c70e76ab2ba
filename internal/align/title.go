package align

import (
	"github.com/refscore/refscore/internal/core/domain"
	"github.com/refscore/refscore/internal/textnorm"
)

// DefaultThreshold is the fuzzy acceptance score used when none is
// configured.
const DefaultThreshold = 45

// TitlePage is one page's contribution to a title-key map: its raw
// title, semantic comparison text, and ordering key.
type TitlePage struct {
	Title string
	Text  string
	Order int
}

// TitleStrategy pairs pages by fuzzy title-key matching. It is used only
// by the semantic metric and is independent of OrderStrategy.
type TitleStrategy struct {
	// Threshold is the 0-100 acceptance score for fuzzy matches.
	Threshold int
}

// NewTitleStrategy builds a TitleStrategy, falling back to
// DefaultThreshold for out-of-range values.
func NewTitleStrategy(threshold int) TitleStrategy {
	if threshold < 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return TitleStrategy{Threshold: threshold}
}

// Kind reports the strategy's alignment kind.
func (TitleStrategy) Kind() domain.AlignmentKind {
	return domain.AlignTitle
}

// PageMap builds title-key -> (title, semantic text, order) for a
// document. Duplicate keys resolve last-write-wins; a nil document
// yields an empty map.
func (TitleStrategy) PageMap(doc *domain.Document) map[string]TitlePage {
	pages := make(map[string]TitlePage, doc.PageCount())
	if doc == nil {
		return pages
	}
	for _, page := range doc.Pages {
		pages[textnorm.TitleKey(page.Title)] = TitlePage{
			Title: page.Title,
			Text:  textnorm.SemanticText(page.Title, page.ChunkTexts()),
			Order: page.Order,
		}
	}
	return pages
}

// Align maps candidate title keys to reference title keys. Exact matches
// win outright; otherwise the highest-scoring reference key is accepted
// when its similarity reaches the threshold. Inexact accepted matches
// are reported as notes (Model left for the caller to fill); failures
// are returned as unmatched reports (key, best candidate seen, its
// score), never dropped silently.
func (s TitleStrategy) Align(refKeys, candKeys []string) (map[string]string, []domain.UnmatchedTitle, []domain.MatchNote) {
	refSet := make(map[string]struct{}, len(refKeys))
	for _, k := range refKeys {
		refSet[k] = struct{}{}
	}

	mapping := make(map[string]string, len(candKeys))
	var unmatched []domain.UnmatchedTitle
	var notes []domain.MatchNote

	for _, key := range candKeys {
		if _, ok := refSet[key]; ok {
			mapping[key] = key
			continue
		}

		bestKey, bestScore := "", -1
		for _, ref := range refKeys {
			if score := Similarity(key, ref); score > bestScore {
				bestKey, bestScore = ref, score
			}
		}

		if bestScore >= s.Threshold && bestKey != "" {
			mapping[key] = bestKey
			notes = append(notes, domain.MatchNote{
				Key:       key,
				MatchedTo: bestKey,
				Score:     bestScore,
			})
			continue
		}
		if bestScore < 0 {
			bestScore = 0
		}
		unmatched = append(unmatched, domain.UnmatchedTitle{
			Key:       key,
			BestMatch: bestKey,
			Score:     bestScore,
		})
	}

	return mapping, unmatched, notes
}
