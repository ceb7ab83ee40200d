package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/statement-ingest/internal/models"
)

func TestDefaultCategoriesCoverClosedSet(t *testing.T) {
	vocab := DefaultCategories()
	require.Len(t, vocab, len(models.Categories()))

	names := make(map[string]bool, len(vocab))
	for _, c := range vocab {
		assert.NotEmpty(t, c.Description, "category %s has no description", c.Name)
		names[c.Name] = true
	}
	assert.True(t, names["OTHER"])
	assert.True(t, names["GROCERIES"])
}

func TestLoadCategoriesWithoutFile(t *testing.T) {
	vocab, err := NewCategoryStore("").LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories(), vocab)
}

func TestLoadCategoriesOverridesDescriptions(t *testing.T) {
	path := writeYAML(t, `categories:
  - name: GROCERIES
    description: "Albert Heijn, Jumbo, Lidl"
`)

	vocab, err := NewCategoryStore(path).LoadCategories()
	require.NoError(t, err)

	for _, c := range vocab {
		if c.Name == "GROCERIES" {
			assert.Equal(t, "Albert Heijn, Jumbo, Lidl", c.Description)
			return
		}
	}
	t.Fatal("GROCERIES missing from vocabulary")
}

func TestLoadCategoriesRejectsUnknownName(t *testing.T) {
	path := writeYAML(t, `categories:
  - name: CRYPTO
    description: "not in the closed set"
`)

	_, err := NewCategoryStore(path).LoadCategories()
	assert.Error(t, err)
}

func TestLoadCategoriesMissingFile(t *testing.T) {
	_, err := NewCategoryStore(filepath.Join(t.TempDir(), "nope.yaml")).LoadCategories()
	assert.Error(t, err)
}

func TestLoadCategoriesMalformedYAML(t *testing.T) {
	path := writeYAML(t, "categories: [not: valid: yaml")

	_, err := NewCategoryStore(path).LoadCategories()
	assert.Error(t, err)
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
