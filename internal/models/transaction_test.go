package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() Transaction {
	return Transaction{
		StartedAt:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		Description: "Coffee shop",
		Amount:      decimal.RequireFromString("50.00"),
		Currency:    "EUR",
	}
}

func TestTransactionValidate(t *testing.T) {
	assert.NoError(t, validTransaction().Validate())
}

func TestTransactionValidateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"empty description", func(tx *Transaction) { tx.Description = "" }},
		{"overlong description", func(tx *Transaction) {
			tx.Description = strings.Repeat("x", MaxDescriptionLength+1)
		}},
		{"too many decimals", func(tx *Transaction) {
			tx.Amount = decimal.RequireFromString("1.234")
		}},
		{"excessive magnitude", func(tx *Transaction) {
			tx.Amount = decimal.RequireFromString("1000000000000.00")
		}},
		{"lowercase currency", func(tx *Transaction) { tx.Currency = "eur" }},
		{"long currency", func(tx *Transaction) { tx.Currency = "EURO" }},
		{"zero started date", func(tx *Transaction) { tx.StartedAt = time.Time{} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			assert.Error(t, tx.Validate())
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"50.00", "50"},
		{"50,25", "50.25"},
		{"-12.50", "-12.5"},
		{"1'234.56", "1234.56"},
		{"  7.30 ", "7.3"},
	}

	for _, tc := range tests {
		d, err := ParseAmount(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, d.String(), "input %q", tc.input)
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "abc", "12.34.56", "12a"} {
		_, err := ParseAmount(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTransactionValidateDescriptionBoundCountsRunes(t *testing.T) {
	// The bound is on characters, not bytes: a multi-byte description at the
	// limit is valid even though its byte length exceeds it.
	tx := validTransaction()
	tx.Description = strings.Repeat("é", MaxDescriptionLength)
	assert.NoError(t, tx.Validate())

	tx.Description = strings.Repeat("é", MaxDescriptionLength+1)
	assert.Error(t, tx.Validate())
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "Foo Bar", NormalizeDescription("Foo   \n Bar"))
	assert.Equal(t, "Coffee shop", NormalizeDescription("  Coffee \t shop  "))
	assert.Equal(t, "", NormalizeDescription("   "))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("GROCERIES")
	assert.True(t, ok)
	assert.Equal(t, CategoryGroceries, c)

	c, ok = ParseCategory("NOT_A_CATEGORY")
	assert.False(t, ok)
	assert.Equal(t, CategoryOther, c)

	// case sensitive: the model is instructed with the exact spelling
	c, ok = ParseCategory("groceries")
	assert.False(t, ok)
	assert.Equal(t, CategoryOther, c)
}

func TestCategoriesIncludesFallback(t *testing.T) {
	assert.Contains(t, Categories(), CategoryOther)
}

func TestParseBank(t *testing.T) {
	b, err := ParseBank("ABN_AMRO")
	require.NoError(t, err)
	assert.Equal(t, BankABNAmro, b)

	b, err = ParseBank("REVOLUT")
	require.NoError(t, err)
	assert.Equal(t, BankRevolut, b)

	_, err = ParseBank("MONZO")
	assert.Error(t, err)
}

func TestCategorizedTransactionMarshalCSV(t *testing.T) {
	tx := CategorizedTransaction{Transaction: validTransaction(), Category: CategoryGroceries}
	row, err := tx.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2023-01-01T00:00:00Z",
		"2023-01-02T00:00:00Z",
		"Coffee shop",
		"50.00",
		"EUR",
		"GROCERIES",
	}, row)
}
