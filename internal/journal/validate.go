package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/model"
)

// Invariants checked by ValidateEntries.
const (
	InvariantBalanced    = 1
	InvariantOneSide     = 2
	InvariantAccount     = 3
	InvariantHeader      = 4
	InvariantDecimals    = 5
	InvariantUniqueID    = 6
	InvariantInPeriod    = 7
	InvariantHasLines    = 8
	InvariantNonNegative = 9
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests account references in journal lines.
type AccountChecker interface {
	Exists(id string) bool
	IsHeader(id string) bool
}

// ValidateEntries checks entries against the double-entry invariants. It
// never stops at the first problem: every violation is reported.
func ValidateEntries(entries []model.JournalEntry, accounts AccountChecker, tol decimal.Decimal) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		if seen[e.ID] {
			errs = append(errs, ValidationError{
				Invariant:   InvariantUniqueID,
				EntryID:     e.ID,
				Description: "duplicate entry id",
			})
		}
		seen[e.ID] = true

		if len(e.Lines) == 0 {
			errs = append(errs, ValidationError{
				Invariant:   InvariantHasLines,
				EntryID:     e.ID,
				Description: "entry has no lines",
			})
			continue
		}

		if !e.IsBalanced(tol) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantBalanced,
				EntryID:     e.ID,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", e.TotalDebit().StringFixed(2), e.TotalCredit().StringFixed(2)),
			})
		}

		for i, line := range e.Lines {
			errs = append(errs, validateLine(e.ID, i, line, accounts)...)
		}
	}
	return errs
}

func validateLine(entryID string, i int, line model.JournalLine, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	add := func(inv int, format string, args ...any) {
		errs = append(errs, ValidationError{
			Invariant:   inv,
			EntryID:     entryID,
			Description: fmt.Sprintf("line %d: ", i+1) + fmt.Sprintf(format, args...),
		})
	}

	if !line.Debit.IsZero() && !line.Credit.IsZero() {
		add(InvariantOneSide, "line has both debit and credit")
	}
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		add(InvariantNonNegative, "negative amount")
	}

	switch {
	case !accounts.Exists(line.AccountID):
		add(InvariantAccount, "unknown account %q", line.AccountID)
	case accounts.IsHeader(line.AccountID):
		add(InvariantHeader, "account %q is a header account", line.AccountID)
	}

	hundred := decimal.NewFromInt(100)
	for _, amt := range []decimal.Decimal{line.Debit, line.Credit} {
		if !amt.IsZero() && !amt.Mul(hundred).Equal(amt.Mul(hundred).Floor()) {
			add(InvariantDecimals, "amount %s has more than 2 decimal places", amt)
		}
	}
	return errs
}

// ValidatePeriod reports entries dated outside [from, to].
func ValidatePeriod(entries []model.JournalEntry, from, to time.Time) []ValidationError {
	var errs []ValidationError
	for _, e := range entries {
		if e.Date.Before(from) || e.Date.After(to) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantInPeriod,
				EntryID:     e.ID,
				Description: fmt.Sprintf("date %s not in %s..%s", e.Date.Format(dateFormat), from.Format(dateFormat), to.Format(dateFormat)),
			})
		}
	}
	return errs
}
