package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tolerance is the default absolute tolerance used for every balance check.
var Tolerance = decimal.New(1, -2)

// JournalEntry is a dated, balanced set of journal lines.
type JournalEntry struct {
	ID    string
	Date  time.Time
	Memo  string
	Lines []JournalLine
}

// JournalLine is one side of a double-entry posting.
type JournalLine struct {
	AccountID   string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Description string
}

// TotalDebit sums the debit column of the entry.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit column of the entry.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether debits and credits agree within tol.
func (e JournalEntry) IsBalanced(tol decimal.Decimal) bool {
	return e.TotalDebit().Sub(e.TotalCredit()).Abs().LessThanOrEqual(tol)
}

// Round2 rounds d to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
