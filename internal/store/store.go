// Package store loads the category vocabulary used to instruct the
// categorization model. The vocabulary names are fixed to the closed
// category set; the YAML file only enriches them with human descriptions
// that help the model pick the right one.
package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finflow/statement-ingest/internal/models"
)

// CategoryConfig is one vocabulary entry: a member of the closed category
// set plus a short description fed into the model's system instruction.
type CategoryConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type categoriesFile struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryStore resolves the active vocabulary.
type CategoryStore struct {
	path string
}

// NewCategoryStore creates a store reading from the given YAML file. An
// empty path means the built-in vocabulary is used as-is.
func NewCategoryStore(path string) *CategoryStore {
	return &CategoryStore{path: path}
}

// LoadCategories returns the vocabulary. Descriptions from the YAML file
// override the defaults for matching names; entries whose name is not in
// the closed set are rejected, since the model must never be offered a
// category the pipeline cannot represent.
func (s *CategoryStore) LoadCategories() ([]CategoryConfig, error) {
	vocab := DefaultCategories()
	if s.path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}

	var parsed categoriesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing categories file: %w", err)
	}

	byName := make(map[string]int, len(vocab))
	for i, c := range vocab {
		byName[c.Name] = i
	}
	for _, c := range parsed.Categories {
		i, ok := byName[c.Name]
		if !ok {
			return nil, fmt.Errorf("category %q is not part of the closed set", c.Name)
		}
		if c.Description != "" {
			vocab[i].Description = c.Description
		}
	}
	return vocab, nil
}

// DefaultCategories is the built-in vocabulary covering the closed set.
func DefaultCategories() []CategoryConfig {
	descriptions := map[models.Category]string{
		models.CategoryGroceries:     "supermarkets, food stores, bakeries",
		models.CategoryRestaurants:   "restaurants, cafes, bars, takeaway",
		models.CategoryTransport:     "public transport, fuel, parking, taxis",
		models.CategoryShopping:      "retail purchases, clothing, electronics",
		models.CategoryUtilities:     "electricity, water, internet, phone bills",
		models.CategoryEntertainment: "cinema, streaming, games, events",
		models.CategoryHealth:        "pharmacies, doctors, insurance, fitness",
		models.CategorySalary:        "salary and other regular income",
		models.CategoryTransfers:     "transfers between own accounts, payments to people",
		models.CategoryRent:          "rent and housing costs",
		models.CategoryTravel:        "flights, hotels, travel bookings",
		models.CategoryOther:         "anything that fits no other category",
	}

	cats := models.Categories()
	vocab := make([]CategoryConfig, len(cats))
	for i, c := range cats {
		vocab[i] = CategoryConfig{Name: string(c), Description: descriptions[c]}
	}
	return vocab
}
