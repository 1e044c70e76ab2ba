package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/refscore/refscore/internal/core/domain"
)

// Accepted key aliases, checked in order. Resolution happens here and
// nowhere else.
var (
	pagesKeys   = []string{"Pages", "pages", "data"}
	titleKeys   = []string{"Title", "title", "name"}
	orderKeys   = []string{"Order", "order"}
	contentKeys = []string{"Content", "content"}
	textKeys    = []string{"Text", "text"}
)

// msgLoadFailure is the validation message recorded for files that could
// not be read or decoded.
const msgLoadFailure = "file could not be loaded"

// maxReportedKeys caps how many keys a diagnostic lists.
const maxReportedKeys = 5

// Source is the outcome of loading one document file.
type Source struct {
	// Path is the file the document was read from.
	Path string

	// Name identifies the source in reports: the file base name without
	// extension unless renamed by the caller.
	Name string

	// Doc is the materialised document, nil when validation failed.
	Doc *domain.Document

	// Valid reports whether the structure is usable for scoring.
	Valid bool

	// Message is the validation diagnostic, in the catalogue phrasing.
	Message string
}

// Validation converts the load outcome into its reporting form.
func (s *Source) Validation() domain.Validation {
	return domain.Validation{
		Name:    s.Name,
		Path:    s.Path,
		OK:      s.Valid,
		Message: s.Message,
		Pages:   s.Doc.PageCount(),
	}
}

// Rename overrides the display name, keeping the materialised document
// in sync.
func (s *Source) Rename(name string) {
	s.Name = name
	if s.Doc != nil {
		s.Doc.Source = name
	}
}

// Unloadable builds the Source recorded for a path that could not be
// read or decoded. The underlying error is the caller's to log.
func Unloadable(path string) *Source {
	return &Source{
		Path:    path,
		Name:    nameFromPath(path),
		Message: msgLoadFailure,
	}
}

// Load reads and decodes one document file. Read and decode failures are
// returned as errors; the caller decides whether they are fatal.
// Structural problems are not errors: they come back as an invalid
// Source carrying the diagnostic message.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	src := &Source{Path: path, Name: nameFromPath(path)}

	obj, ok := root.(map[string]any)
	if !ok {
		src.Message = fmt.Sprintf("root is JSON %s, expected object", jsonType(root))
		return src, nil
	}

	pagesKey, rawPages, found := firstKey(obj, pagesKeys)
	if !found {
		src.Message = fmt.Sprintf(`missing "Pages"/"pages"/"data" key, found: %v`, keysOf(obj))
		return src, nil
	}

	arr, ok := rawPages.([]any)
	if !ok {
		src.Message = fmt.Sprintf("%q is JSON %s, expected array", pagesKey, jsonType(rawPages))
		return src, nil
	}
	if len(arr) == 0 {
		src.Message = fmt.Sprintf("%q is empty", pagesKey)
		return src, nil
	}

	first, ok := arr[0].(map[string]any)
	if !ok {
		src.Message = fmt.Sprintf("first page is JSON %s, expected object", jsonType(arr[0]))
		return src, nil
	}
	if _, _, found := firstKey(first, titleKeys); !found {
		src.Message = fmt.Sprintf(`first page missing "Title" key, found: %v`, keysOf(first))
		return src, nil
	}
	if _, _, found := firstKey(first, contentKeys); !found {
		src.Message = fmt.Sprintf(`first page missing "Content" key, found: %v`, keysOf(first))
		return src, nil
	}

	doc := &domain.Document{
		Source: src.Name,
		Path:   path,
		Pages:  materialise(arr),
	}
	src.Doc = doc
	src.Valid = true
	src.Message = fmt.Sprintf("valid (%d page(s))", doc.PageCount())
	return src, nil
}

// materialise converts the raw page array into domain pages. Non-object
// entries are skipped; missing or unparseable order fields fall back to
// the positional index.
func materialise(arr []any) []domain.Page {
	pages := make([]domain.Page, 0, len(arr))
	for idx, entry := range arr {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		_, rawTitle, _ := firstKey(obj, titleKeys)
		title, _ := rawTitle.(string)

		_, rawOrder, _ := firstKey(obj, orderKeys)
		_, rawContent, _ := firstKey(obj, contentKeys)

		pages = append(pages, domain.Page{
			Order:  coerceOrder(rawOrder, idx),
			Title:  title,
			Chunks: chunkList(rawContent),
		})
	}
	return pages
}

// chunkList converts a raw content value into chunks. Entries that are
// not objects, or whose text value is not a string, are skipped.
func chunkList(v any) []domain.Chunk {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	chunks := make([]domain.Chunk, 0, len(arr))
	for _, entry := range arr {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		_, raw, _ := firstKey(obj, textKeys)
		text, ok := raw.(string)
		if !ok {
			continue
		}
		chunks = append(chunks, domain.Chunk{Text: text})
	}
	return chunks
}

// coerceOrder resolves a raw order value to an int: integral numbers and
// int-parseable strings are accepted, anything else falls back.
func coerceOrder(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return fallback
}

// firstKey returns the first alias present in obj, with its value.
func firstKey(obj map[string]any, aliases []string) (string, any, bool) {
	for _, key := range aliases {
		if v, ok := obj[key]; ok {
			return key, v, true
		}
	}
	return "", nil, false
}

// keysOf lists up to maxReportedKeys keys of obj, sorted for stable
// diagnostics.
func keysOf(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxReportedKeys {
		keys = keys[:maxReportedKeys]
	}
	return keys
}

// jsonType names the JSON type of a decoded value.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// nameFromPath derives the default source name: the base filename
// without its extension.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
