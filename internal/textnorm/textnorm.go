package textnorm

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Pre-compiled regular expressions for text normalisation performance.
var (
	allTags     = regexp.MustCompile(`<[^>]+>`)
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\s*\n\s*`)
	multiSpaces = regexp.MustCompile(`\s{2,}`)
)

// CleanText applies the lexical pipeline to a single string: decode HTML
// entities, replace each markup tag with a space, NFKC-normalise, collapse
// whitespace runs to single spaces, trim.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	s = allTags.ReplaceAllString(s, " ")
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// ComparisonText builds the lexical comparison form for one page: the
// title and all chunk texts joined by newlines, cleaned, and optionally
// lowercased. Used by edit distance, ROUGE-L, and BLEU.
func ComparisonText(title string, chunks []string, lowercase bool) string {
	parts := make([]string, 0, len(chunks)+1)
	parts = append(parts, title)
	parts = append(parts, chunks...)
	cleaned := CleanText(strings.Join(parts, "\n"))
	if lowercase {
		cleaned = strings.ToLower(cleaned)
	}
	return cleaned
}

// SemanticText builds the semantic comparison form for one page: title and
// body separated by a blank line, converted from HTML to text with a real
// parser (paragraph breaks survive as newlines), whitespace normalised.
// Never lowercased. Used only by the semantic metric.
func SemanticText(title string, chunks []string) string {
	body := strings.Join(chunks, " ")
	piece := body
	if title != "" {
		piece = title + "\n\n" + body
	}
	return normalizeSpace(htmlToText(piece))
}

// Sanitize normalises a string without touching markup: decode HTML
// entities, NFKC-normalise, collapse whitespace. Tags are preserved.
func Sanitize(s string) string {
	return normalizeSpace(html.UnescapeString(s))
}

// TitleKey builds the fuzzy-alignment key for a title: sanitised and
// lowercased. Keys are never used for scoring.
func TitleKey(title string) string {
	return strings.ToLower(Sanitize(title))
}

// htmlToText extracts the text content of markup, separating adjacent text
// nodes with a space so words never fuse across removed tags.
func htmlToText(s string) string {
	s = html.UnescapeString(s)
	tokenizer := xhtml.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == xhtml.ErrorToken {
			// The tokenizer is tolerant; the only error is EOF.
			break
		}
		if tt != xhtml.TextToken {
			continue
		}
		text := string(tokenizer.Text())
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(text)
	}
	return b.String()
}

// normalizeSpace normalises whitespace while keeping paragraph breaks:
// NFKC, space/tab runs to one space, whitespace around newlines to a
// single newline, remaining whitespace runs to one space, trim.
func normalizeSpace(s string) string {
	s = norm.NFKC.String(s)
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	s = multiSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
