package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refscore/refscore/internal/core/domain"
)

var allColumns = []string{"levenshtein", "rouge_l", "bleu", "semantic", "semantic_matched"}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

// ==================== Write ====================

func TestStore_Write_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	store := NewStore()

	records := []domain.ScoreRecord{
		{
			Source:      "french",
			PageTitle:   "Chapter 1, Part 2",
			Model:       "gpt-4o",
			Valid:       true,
			Levenshtein: intPtr(12),
			RougeL:      floatPtr(0.5),
			Bleu:        floatPtr(0.25),
		},
		{
			Source:    "french",
			PageTitle: "Chapter 2",
			Model:     "claude",
			Valid:     false,
		},
	}

	n, err := store.Write(context.Background(), path, records, []string{"levenshtein", "rouge_l", "bleu"})

	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "source,page_title,model,json_valid,levenshtein,rouge_l,bleu", lines[0])
	assert.Equal(t, `french,"Chapter 1, Part 2",gpt-4o,true,12,0.5,0.25`, lines[1])
	assert.Equal(t, "french,Chapter 2,claude,false,,,", lines[2])
}

func TestStore_Write_OmitsInactiveColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")

	_, err := NewStore().Write(context.Background(), path, []domain.ScoreRecord{
		{Source: "s", PageTitle: "p", Model: "m", Valid: true, Levenshtein: intPtr(3), Semantic: floatPtr(0.9)},
	}, []string{"levenshtein"})

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "source,page_title,model,json_valid,levenshtein\ns,p,m,true,3\n", string(data))
}

func TestStore_Write_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested", "scores.csv")

	n, err := NewStore().Write(context.Background(), path, nil, []string{"levenshtein"})

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.FileExists(t, path)
}

// ==================== Read ====================

func TestStore_Read_MissingFile(t *testing.T) {
	records, err := NewStore().Read(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))

	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestStore_Read_UnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("source,model\n\"unclosed"), 0644))

	records, err := NewStore().Read(context.Background(), path)

	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestStore_Read_ColumnDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	// Extra column, missing semantic columns, short final row.
	content := "source,page_title,model,json_valid,levenshtein,bonus\n" +
		"french,Chapter 1,gpt,true,7,whatever\n" +
		"french,Chapter 2,gpt,true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, err := NewStore().Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "french", records[0].Source)
	assert.Equal(t, intPtr(7), records[0].Levenshtein)
	assert.Nil(t, records[0].Semantic)
	assert.Nil(t, records[0].SemanticMatched)
	assert.Nil(t, records[1].Levenshtein)
	assert.True(t, records[1].Valid)
}

// ==================== Round Trip ====================

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	store := NewStore()

	records := []domain.ScoreRecord{
		{
			Source: "french", PageTitle: "Chapter 1", Model: "gpt-4o", Valid: true,
			Levenshtein: intPtr(0), RougeL: floatPtr(1), Bleu: floatPtr(1),
			Semantic: floatPtr(0.8731), SemanticMatched: boolPtr(true),
		},
		{
			Source: "french", PageTitle: "Chapter 2", Model: "gpt-4o", Valid: true,
			Levenshtein: intPtr(42), RougeL: floatPtr(2.0 / 3.0), Bleu: floatPtr(0),
			SemanticMatched: boolPtr(false),
		},
		{Source: "french", PageTitle: "Chapter 3", Model: "broken", Valid: false},
	}

	_, err := store.Write(context.Background(), path, records, allColumns)
	require.NoError(t, err)

	got, err := store.Read(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestStore_RoundTrip_ByteStable(t *testing.T) {
	// Reading and rewriting untouched records must not change the file.
	path := filepath.Join(t.TempDir(), "scores.csv")
	store := NewStore()

	records := []domain.ScoreRecord{
		{Source: "s", PageTitle: "p", Model: "m", Valid: true, RougeL: floatPtr(2.0 / 3.0), Bleu: floatPtr(1e-9)},
	}
	_, err := store.Write(context.Background(), path, records, allColumns)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	_, err = store.Write(context.Background(), path, got, allColumns)
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
