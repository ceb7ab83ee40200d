// Package models provides the data structures shared by the ingestion pipeline.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// MaxDescriptionLength is the upper bound on a normalized description.
	MaxDescriptionLength = 500

	// Amounts at or above 10^maxAmountDigits are treated as corrupt source data.
	maxAmountDigits = 12
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	currencyRe   = regexp.MustCompile(`^[A-Z]{3}$`)

	maxAmountMagnitude = decimal.New(1, maxAmountDigits) // 10^12
)

// Transaction is the bank-agnostic shape of a single statement entry after
// mapping. Instances are built by the bank mappers and treated as immutable
// from then on.
type Transaction struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
}

/// Validate checks the invariants every mapped transaction must hold:
// a non-empty bounded description, an amount with at most two fractional
// digits and bounded magnitude, and a three-letter uppercase currency code.
func (t Transaction) Validate() error {
	if t.Description == "" {
		return fmt.Errorf("description must not be empty")
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}
	if t.Amount.Exponent() < -2 {
		return fmt.Errorf("amount %s has more than 2 decimal places", t.Amount.String())
	}
	if t.Amount.Abs().GreaterThanOrEqual(maxAmountMagnitude) {
		return fmt.Errorf("amount %s exceeds the allowed magnitude", t.Amount.String())
	}
	if !currencyRe.MatchString(t.Currency) {
		return fmt.Errorf("currency %q is not a 3-letter ISO code", t.Currency)
	}
	if t.StartedAt.IsZero() || t.CompletedAt.IsZero() {
		return fmt.Errorf("transaction dates must be set")
	}
	return nil
}

// NormalizeDescription collapses runs of whitespace to a single space and
// trims both ends. Uniform across all bank variants.
func NormalizeDescription(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ParseAmount parses a numeric string into a decimal, accepting both comma
// and dot as the decimal separator and stripping apostrophe thousand
// separators as they appear in some bank exports.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// CategorizedTransaction is the pipeline's final output: a mapped
// transaction plus its assigned category.
type CategorizedTransaction struct {
	Transaction
	Category Category
}

// MarshalCSV renders the transaction as a CSV row in the standard output
// column order used by the CSV sink.
func (t *CategorizedTransaction) MarshalCSV() ([]string, error) {
	return []string{
		t.StartedAt.Format(time.RFC3339),
		t.CompletedAt.Format(time.RFC3339),
		t.Description,
		t.Amount.StringFixed(2),
		t.Currency,
		string(t.Category),
	}, nil
}
