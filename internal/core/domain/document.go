package domain

// Document represents one parsed input file: a named source holding an
// ordered collection of pages. It is the canonical representation after
// loading; pages keep their raw text, normalisation happens downstream.
type Document struct {
	// Source is the logical name of the document (file base name by
	// default, or the name given on the command line).
	Source string

	// Path is the file the document was loaded from.
	Path string

	// Pages is the ordered page collection. Order within the slice is
	// input order; the Order field carries the resolved ordering key.
	Pages []Page
}

// Page is an addressable document section.
type Page struct {
	// Order is the resolved integer ordering key: the page's explicit
	// order field when present and parseable, its positional index
	// otherwise.
	Order int

	// Title is the raw page title.
	Title string

	// Chunks is the ordered content of the page.
	Chunks []Chunk
}

// Chunk is a sub-unit of page content. Text may contain markup.
type Chunk struct {
	// Text is the raw chunk text.
	Text string
}

// ChunkTexts returns the chunk texts in order.
func (p Page) ChunkTexts() []string {
	texts := make([]string, len(p.Chunks))
	for i, c := range p.Chunks {
		texts[i] = c.Text
	}
	return texts
}

// PageCount returns the number of pages, tolerating a nil document.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}
