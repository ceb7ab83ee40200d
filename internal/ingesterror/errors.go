// Package ingesterror defines the typed errors surfaced by the statement
// ingestion pipeline. Every type here is a client error: the upload is
// rejected and retrying without changing the input will not help.
package ingesterror

import "fmt"

// UnsupportedFileTypeError is returned when the declared content type does
// not match any known decoding strategy.
type UnsupportedFileTypeError struct {
	ContentType string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.ContentType)
}

// UnsupportedBankError is returned by the mapper factory for any bank
// identifier outside the closed set.
type UnsupportedBankError struct {
	Bank string
}

func (e *UnsupportedBankError) Error() string {
	return fmt.Sprintf("bank not supported: %s", e.Bank)
}

// ParseError reports a structural failure while decoding the uploaded file,
// such as a CSV row whose field count differs from the header row. Row is the
// 1-based position of the row in the file after the header row; skipped blank
// rows still count, so the number matches what the user sees in the file.
type ParseError struct {
	Format string
	Row    int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: %v", e.Format, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnprocessableRecordError reports a record that failed the bank-specific
// raw schema validation or could not be mapped. It names the bank so the
// surfaced message reads "this file is not a valid statement for bank X".
type UnprocessableRecordError struct {
	Bank  string
	Field string
	Value string
	Err   error
}

func (e *UnprocessableRecordError) Error() string {
	return fmt.Sprintf("%s: unprocessable record, field %s=%q: %v",
		e.Bank, e.Field, e.Value, e.Err)
}

func (e *UnprocessableRecordError) Unwrap() error {
	return e.Err
}

// CurrencyMismatchError is returned when a mapped transaction's currency
// differs from the currency of the target account. The whole upload is
// rejected.
type CurrencyMismatchError struct {
	Account string
	File    string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("statement currency %s does not match account currency %s",
		e.File, e.Account)
}
