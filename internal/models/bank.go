package models

import "fmt"

// Bank identifies which bank's export format a statement uses. The set is
// closed; adding a bank means adding a constant here and a mapping variant
// in the mapper package.
type Bank string

const (
	BankABNAmro Bank = "ABN_AMRO"
	BankRevolut Bank = "REVOLUT"
)

// ParseBank resolves a raw identifier to a supported bank.
func ParseBank(s string) (Bank, error) {
	switch Bank(s) {
	case BankABNAmro:
		return BankABNAmro, nil
	case BankRevolut:
		return BankRevolut, nil
	default:
		return "", fmt.Errorf("unknown bank: %s", s)
	}
}
