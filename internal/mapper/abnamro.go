package mapper

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"finflow/statement-ingest/internal/models"
	"finflow/statement-ingest/internal/tabular"
)

// ABN AMRO TXT/CSV exports carry 8-digit dates and the currency in the
// "mutationcode" column.
const abnDateLayout = "20060102"

var (
	errMissingField = errors.New("required field is missing or empty")

	abnDateRe   = regexp.MustCompile(`^\d{8}$`)
	abnAmountRe = regexp.MustCompile(`^-?\d+([.,]\d{1,2})?$`)
)

// mapABNAmro validates and maps one ABN AMRO record. Expected raw fields:
// transactiondate and valuedate as YYYYMMDD strings, mutationcode holding
// the currency code, amount as a numeric string (comma or dot decimals),
// and a free-form description.
func mapABNAmro(rec tabular.Record) (models.Transaction, error) {
	bank := models.BankABNAmro

	if err := requireFields(bank, rec,
		"transactiondate", "valuedate", "mutationcode", "amount", "description"); err != nil {
		return models.Transaction{}, err
	}

	if !abnAmountRe.MatchString(rec["amount"]) {
		return models.Transaction{}, unprocessable(bank, "amount", rec["amount"],
			errors.New("not a numeric amount string"))
	}

	startedAt, err := parseABNDate(rec["transactiondate"])
	if err != nil {
		return models.Transaction{}, unprocessable(bank, "transactiondate", rec["transactiondate"], err)
	}
	completedAt, err := parseABNDate(rec["valuedate"])
	if err != nil {
		return models.Transaction{}, unprocessable(bank, "valuedate", rec["valuedate"], err)
	}

	amount, err := models.ParseAmount(rec["amount"])
	if err != nil {
		return models.Transaction{}, unprocessable(bank, "amount", rec["amount"], err)
	}

	tx := models.Transaction{
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		Description: models.NormalizeDescription(rec["description"]),
		Amount:      amount,
		Currency:    rec["mutationcode"],
	}
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, unprocessable(bank, "record", "", err)
	}
	return tx, nil
}

// parseABNDate parses an 8-digit YYYYMMDD string into a UTC calendar date.
// The parsed date must round-trip back to the input, which rejects values
// like day 31 in a 30-day month rather than letting them roll over.
func parseABNDate(s string) (time.Time, error) {
	if !abnDateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("expected an 8-digit YYYYMMDD date, got %q", s)
	}
	t, err := time.ParseInLocation(abnDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	if t.Format(abnDateLayout) != s {
		return time.Time{}, fmt.Errorf("date %q does not exist", s)
	}
	return t, nil
}
