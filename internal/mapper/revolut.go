package mapper

import (
	"errors"
	"fmt"
	"time"

	"finflow/statement-ingest/internal/models"
	"finflow/statement-ingest/internal/tabular"
)

// Revolut CSV exports carry full timestamps, e.g. "2025-01-02 08:07:09" or
// strict ISO-8601. Header keys are the camel-cased forms of the export's
// "Started Date" / "Completed Date" / "Description" / "Amount" / "Currency".
var revolutTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// mapRevolut validates and maps one Revolut record.
func mapRevolut(rec tabular.Record) (models.Transaction, error) {
	bank := models.BankRevolut

	if err := requireFields(bank, rec,
		"startedDate", "completedDate", "description", "amount", "currency"); err != nil {
		return models.Transaction{}, err
	}

	startedAt, err := parseRevolutTime(rec["startedDate"])
	if err != nil {
		return models.Transaction{}, unprocessable(bank, "startedDate", rec["startedDate"], err)
	}
	completedAt, err := parseRevolutTime(rec["completedDate"])
	if err != nil {
		return models.Transaction{}, unprocessable(bank, "completedDate", rec["completedDate"], err)
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
		Currency:    rec["currency"],
	}
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, unprocessable(bank, "record", "", err)
	}
	return tx, nil
}

func parseRevolutTime(s string) (time.Time, error) {
	for _, layout := range revolutTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, errBadTimestamp)
}

var errBadTimestamp = errors.New("expected an ISO-8601 timestamp")
