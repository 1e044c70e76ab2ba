package align

import (
	"github.com/refscore/refscore/internal/core/domain"
	"github.com/refscore/refscore/internal/textnorm"
)

// PageText is one page's contribution to an Order map: its raw title and
// its lexical comparison text.
type PageText struct {
	Title string
	Text  string
}

// OrderStrategy pairs pages by their integer Order key. Reference and
// candidate pages with equal Order are compared directly; a reference
// Order missing from the candidate compares against empty text.
type OrderStrategy struct{}

// Kind reports the strategy's alignment kind.
func (OrderStrategy) Kind() domain.AlignmentKind {
	return domain.AlignOrder
}

// PageMap builds Order -> (title, comparison text) for a document.
// Duplicate Orders resolve last-write-wins; a nil document yields an
// empty map.
func (OrderStrategy) PageMap(doc *domain.Document, lowercase bool) map[int]PageText {
	pages := make(map[int]PageText, doc.PageCount())
	if doc == nil {
		return pages
	}
	for _, page := range doc.Pages {
		pages[page.Order] = PageText{
			Title: page.Title,
			Text:  textnorm.ComparisonText(page.Title, page.ChunkTexts(), lowercase),
		}
	}
	return pages
}
