package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDoc writes content to a temp file and returns its path.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ==================== Load: Success ====================

func TestLoad_ValidDocument(t *testing.T) {
	path := writeDoc(t, "french.json", `{
		"Pages": [
			{"Order": 1, "Title": "Chapter 1", "Content": [{"Text": "The cat sat."}, {"Text": "It purred."}]},
			{"Order": 2, "Title": "Chapter 2", "Content": [{"Text": "The dog ran."}]}
		]
	}`)

	src, err := Load(path)

	require.NoError(t, err)
	assert.True(t, src.Valid)
	assert.Equal(t, "valid (2 page(s))", src.Message)
	assert.Equal(t, "french", src.Name)
	assert.Equal(t, path, src.Path)

	require.NotNil(t, src.Doc)
	assert.Equal(t, "french", src.Doc.Source)
	require.Len(t, src.Doc.Pages, 2)
	assert.Equal(t, 1, src.Doc.Pages[0].Order)
	assert.Equal(t, "Chapter 1", src.Doc.Pages[0].Title)
	assert.Equal(t, []string{"The cat sat.", "It purred."}, src.Doc.Pages[0].ChunkTexts())
}

func TestLoad_KeyAliases(t *testing.T) {
	// Lower-case and legacy key names resolve to the same document.
	path := writeDoc(t, "model.json", `{
		"data": [
			{"order": "3", "name": "Chapter 1", "content": [{"text": "The cat sat."}]}
		]
	}`)

	src, err := Load(path)

	require.NoError(t, err)
	require.True(t, src.Valid)
	require.Len(t, src.Doc.Pages, 1)
	assert.Equal(t, 3, src.Doc.Pages[0].Order)
	assert.Equal(t, "Chapter 1", src.Doc.Pages[0].Title)
	assert.Equal(t, []string{"The cat sat."}, src.Doc.Pages[0].ChunkTexts())
}

func TestLoad_AliasPrecedence(t *testing.T) {
	// When both casings are present the canonical one wins.
	path := writeDoc(t, "doc.json", `{
		"Pages": [{"Title": "Real", "title": "Shadowed", "Content": []}],
		"pages": [{"Title": "Ignored", "Content": []}]
	}`)

	src, err := Load(path)

	require.NoError(t, err)
	require.True(t, src.Valid)
	require.Len(t, src.Doc.Pages, 1)
	assert.Equal(t, "Real", src.Doc.Pages[0].Title)
}

func TestLoad_SkipsMalformedEntries(t *testing.T) {
	path := writeDoc(t, "doc.json", `{
		"Pages": [
			{"Title": "Good", "Content": [
				{"Text": "kept"},
				"not an object",
				{"Text": 42},
				{"note": "no text key"},
				{"Text": "also kept"}
			]},
			"not a page",
			{"Title": "Second", "Content": []}
		]
	}`)

	src, err := Load(path)

	require.NoError(t, err)
	require.True(t, src.Valid)
	require.Len(t, src.Doc.Pages, 2)
	assert.Equal(t, []string{"kept", "also kept"}, src.Doc.Pages[0].ChunkTexts())
	assert.Empty(t, src.Doc.Pages[1].ChunkTexts())
	assert.Equal(t, "valid (2 page(s))", src.Message)
}

// ==================== Load: Failures ====================

func TestLoad_MissingFile(t *testing.T) {
	src, err := Load(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.Nil(t, src)
	assert.Contains(t, err.Error(), "read document")
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeDoc(t, "broken.json", `{"Pages": [`)

	src, err := Load(path)

	require.Error(t, err)
	assert.Nil(t, src)
	assert.Contains(t, err.Error(), "decode document")
}

// ==================== Validation Messages ====================

func TestLoad_InvalidStructures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "root is array",
			content: `[{"Title": "Chapter 1"}]`,
			message: "root is JSON array, expected object",
		},
		{
			name:    "root is string",
			content: `"just text"`,
			message: "root is JSON string, expected object",
		},
		{
			name:    "no pages key",
			content: `{"chapters": [], "meta": 1}`,
			message: `missing "Pages"/"pages"/"data" key, found: [chapters meta]`,
		},
		{
			name:    "pages not array",
			content: `{"Pages": "nope"}`,
			message: `"Pages" is JSON string, expected array`,
		},
		{
			name:    "data not array",
			content: `{"data": {"a": 1}}`,
			message: `"data" is JSON object, expected array`,
		},
		{
			name:    "pages empty",
			content: `{"Pages": []}`,
			message: `"Pages" is empty`,
		},
		{
			name:    "first page not object",
			content: `{"Pages": [42]}`,
			message: "first page is JSON number, expected object",
		},
		{
			name:    "first page missing title",
			content: `{"Pages": [{"Content": [], "Order": 1}]}`,
			message: `first page missing "Title" key, found: [Content Order]`,
		},
		{
			name:    "first page missing content",
			content: `{"Pages": [{"Title": "Chapter 1"}]}`,
			message: `first page missing "Content" key, found: [Title]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Load(writeDoc(t, "doc.json", tt.content))

			require.NoError(t, err)
			assert.False(t, src.Valid)
			assert.Nil(t, src.Doc)
			assert.Equal(t, tt.message, src.Message)
		})
	}
}

func TestLoad_ReportsFirstFiveKeysOnly(t *testing.T) {
	path := writeDoc(t, "doc.json", `{"a":1,"b":2,"c":3,"d":4,"e":5,"f":6,"g":7}`)

	src, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, `missing "Pages"/"pages"/"data" key, found: [a b c d e]`, src.Message)
}

// ==================== Order Coercion ====================

func TestCoerceOrder(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		fallback int
		want     int
	}{
		{"integer", float64(5), 0, 5},
		{"integral float", float64(3.0), 0, 3},
		{"fractional float", float64(1.5), 7, 7},
		{"numeric string", "12", 0, 12},
		{"padded numeric string", "  8 ", 0, 8},
		{"non-numeric string", "first", 4, 4},
		{"bool", true, 2, 2},
		{"null", nil, 9, 9},
		{"absent", nil, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceOrder(tt.value, tt.fallback))
		})
	}
}

func TestLoad_PositionalOrderFallback(t *testing.T) {
	path := writeDoc(t, "doc.json", `{
		"Pages": [
			{"Title": "A", "Content": []},
			{"Title": "B", "Content": [], "Order": "not a number"},
			{"Title": "C", "Content": [], "Order": 10}
		]
	}`)

	src, err := Load(path)

	require.NoError(t, err)
	require.Len(t, src.Doc.Pages, 3)
	assert.Equal(t, 0, src.Doc.Pages[0].Order)
	assert.Equal(t, 1, src.Doc.Pages[1].Order)
	assert.Equal(t, 10, src.Doc.Pages[2].Order)
}

// ==================== Source Helpers ====================

func TestSource_Rename(t *testing.T) {
	path := writeDoc(t, "gpt-4.json", `{"Pages": [{"Title": "A", "Content": []}]}`)
	src, err := Load(path)
	require.NoError(t, err)

	src.Rename("gpt4-turbo")

	assert.Equal(t, "gpt4-turbo", src.Name)
	assert.Equal(t, "gpt4-turbo", src.Doc.Source)
}

func TestSource_Validation(t *testing.T) {
	path := writeDoc(t, "ref.json", `{"Pages": [{"Title": "A", "Content": []}]}`)
	src, err := Load(path)
	require.NoError(t, err)

	v := src.Validation()

	assert.Equal(t, "ref", v.Name)
	assert.Equal(t, path, v.Path)
	assert.True(t, v.OK)
	assert.Equal(t, "valid (1 page(s))", v.Message)
	assert.Equal(t, 1, v.Pages)
}

func TestUnloadable(t *testing.T) {
	src := Unloadable("/tmp/out/claude.json")

	assert.Equal(t, "claude", src.Name)
	assert.False(t, src.Valid)
	assert.Equal(t, "file could not be loaded", src.Message)

	v := src.Validation()
	assert.False(t, v.OK)
	assert.Equal(t, 0, v.Pages)
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"french.json", "french"},
		{"/data/out/gpt-4o.json", "gpt-4o"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nameFromPath(tt.path), tt.path)
	}
}
