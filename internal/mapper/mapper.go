// Package mapper normalizes raw statement records into the canonical
// transaction shape. Each supported bank has its own raw field names, date
// encoding and validation schema; dispatch is a closed, enum-keyed table so
// adding a bank is one variant function plus one table entry.
package mapper

import (
	"finflow/statement-ingest/internal/ingesterror"
	"finflow/statement-ingest/internal/models"
	"finflow/statement-ingest/internal/tabular"
)

// Mapper converts one raw record into a normalized transaction, validating
// the record against its bank's schema first. A transaction is never
// returned partially populated: validation failure rejects the record.
type Mapper interface {
	Map(rec tabular.Record) (models.Transaction, error)
	Bank() models.Bank
}

type mapFunc func(rec tabular.Record) (models.Transaction, error)

type bankMapper struct {
	bank models.Bank
	fn   mapFunc
}

func (m *bankMapper) Map(rec tabular.Record) (models.Transaction, error) {
	return m.fn(rec)
}

func (m *bankMapper) Bank() models.Bank {
	return m.bank
}

// variants is the closed dispatch table.
var variants = map[models.Bank]mapFunc{
	models.BankABNAmro: mapABNAmro,
	models.BankRevolut: mapRevolut,
}

// New returns the mapper for the given bank, or an UnsupportedBankError for
// any identifier outside the closed set.
func New(bank models.Bank) (Mapper, error) {
	fn, ok := variants[bank]
	if !ok {
		return nil, &ingesterror.UnsupportedBankError{Bank: string(bank)}
	}
	return &bankMapper{bank: bank, fn: fn}, nil
}

// requireFields checks that every named field is present and non-empty in
// the record, returning a typed unprocessable error naming the bank on the
// first miss.
func requireFields(bank models.Bank, rec tabular.Record, fields ...string) error {
	for _, f := range fields {
		if rec[f] == "" {
			return &ingesterror.UnprocessableRecordError{
				Bank:  string(bank),
				Field: f,
				Value: "",
				Err:   errMissingField,
			}
		}
	}
	return nil
}

// unprocessable wraps a field-level failure into the typed error.
func unprocessable(bank models.Bank, field, value string, err error) error {
	return &ingesterror.UnprocessableRecordError{
		Bank:  string(bank),
		Field: field,
		Value: value,
		Err:   err,
	}
}
