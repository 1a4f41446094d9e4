package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contalivre/contalivre/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	ids     map[string]bool
	headers map[string]bool
}

func (m *mockAccounts) Exists(id string) bool   { return m.ids[id] }
func (m *mockAccounts) IsHeader(id string) bool { return m.headers[id] }

func newMockAccounts(ids ...string) *mockAccounts {
	m := &mockAccounts{ids: make(map[string]bool), headers: map[string]bool{"1.1.01": true}}
	for _, id := range ids {
		m.ids[id] = true
	}
	m.ids["1.1.01"] = true
	return m
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func balancedEntry(id, debitAcct, creditAcct, amount string) model.JournalEntry {
	return model.JournalEntry{
		ID:   id,
		Date: date(2025, 1, 15),
		Memo: "test",
		Lines: []model.JournalLine{
			{AccountID: debitAcct, Debit: dec(amount)},
			{AccountID: creditAcct, Credit: dec(amount)},
		},
	}
}

var defaultAccounts = newMockAccounts("caja", "capital", "mercaderias", "ventas")

func hasInvariant(errs []ValidationError, inv int) bool {
	for _, e := range errs {
		if e.Invariant == inv {
			return true
		}
	}
	return false
}

func TestValidate_Balanced(t *testing.T) {
	errs := ValidateEntries([]model.JournalEntry{balancedEntry("e1", "caja", "capital", "10000.00")}, defaultAccounts, model.Tolerance)
	assert.Empty(t, errs)
}

func TestValidate_Unbalanced(t *testing.T) {
	e := balancedEntry("e1", "caja", "capital", "100.00")
	e.Lines[1].Credit = dec("99.00")
	errs := ValidateEntries([]model.JournalEntry{e}, defaultAccounts, model.Tolerance)
	require.NotEmpty(t, errs)
	assert.Equal(t, InvariantBalanced, errs[0].Invariant)
}

func TestValidate_WithinTolerance(t *testing.T) {
	e := balancedEntry("e1", "caja", "capital", "100.00")
	e.Lines[1].Credit = dec("99.99")
	errs := ValidateEntries([]model.JournalEntry{e}, defaultAccounts, model.Tolerance)
	assert.False(t, hasInvariant(errs, InvariantBalanced))
}

func TestValidate_BothSides(t *testing.T) {
	e := balancedEntry("e1", "caja", "capital", "100.00")
	e.Lines[0].Credit = dec("100.00")
	e.Lines[1].Debit = dec("100.00")
	errs := ValidateEntries([]model.JournalEntry{e}, defaultAccounts, model.Tolerance)
	assert.True(t, hasInvariant(errs, InvariantOneSide))
}

func TestValidate_ZeroLineAllowed(t *testing.T) {
	e := balancedEntry("e1", "caja", "capital", "100.00")
	e.Lines = append(e.Lines, model.JournalLine{AccountID: "ventas"})
	errs := ValidateEntries([]model.JournalEntry{e}, defaultAccounts, model.Tolerance)
	assert.Empty(t, errs)
}

func TestValidate_UnknownAccount(t *testing.T) {
	errs := ValidateEntries([]model.JournalEntry{balancedEntry("e1", "nada", "capital", "50.00")}, defaultAccounts, model.Tolerance)
	assert.True(t, hasInvariant(errs, InvariantAccount))
}

func TestValidate_HeaderAccount(t *testing.T) {
	errs := ValidateEntries([]model.JournalEntry{balancedEntry("e1", "1.1.01", "capital", "50.00")}, defaultAccounts, model.Tolerance)
	assert.True(t, hasInvariant(errs, InvariantHeader))
	assert.False(t, hasInvariant(errs, InvariantAccount))
}

func TestValidate_TooManyDecimals(t *testing.T) {
	errs := ValidateEntries([]model.JournalEntry{balancedEntry("e1", "caja", "capital", "10.123")}, defaultAccounts, model.Tolerance)
	assert.True(t, hasInvariant(errs, InvariantDecimals))
}

func TestValidate_Negative(t *testing.T) {
	errs := ValidateEntries([]model.JournalEntry{balancedEntry("e1", "caja", "capital", "-10.00")}, defaultAccounts, model.Tolerance)
	assert.True(t, hasInvariant(errs, InvariantNonNegative))
}

func TestValidate_DuplicateAndEmpty(t *testing.T) {
	entries := []model.JournalEntry{
		balancedEntry("e1", "caja", "capital", "10.00"),
		balancedEntry("e1", "caja", "capital", "10.00"),
		{ID: "e2", Date: date(2025, 1, 1)},
	}
	errs := ValidateEntries(entries, defaultAccounts, model.Tolerance)
	assert.True(t, hasInvariant(errs, InvariantUniqueID))
	assert.True(t, hasInvariant(errs, InvariantHasLines))
}

func TestValidate_MultiError(t *testing.T) {
	e := balancedEntry("e1", "nada", "capital", "100.00")
	e.Lines[1].Credit = dec("50.00")
	errs := ValidateEntries([]model.JournalEntry{e}, defaultAccounts, model.Tolerance)
	assert.Greater(t, len(errs), 1, "should have multiple errors")
}

func TestValidate_Empty(t *testing.T) {
	assert.Empty(t, ValidateEntries(nil, defaultAccounts, model.Tolerance))
}

func TestValidatePeriod(t *testing.T) {
	entries := []model.JournalEntry{
		balancedEntry("in", "caja", "capital", "1.00"),
		{ID: "out", Date: date(2026, 1, 1)},
	}
	errs := ValidatePeriod(entries, date(2025, 1, 1), date(2025, 12, 31))
	require.Len(t, errs, 1)
	assert.Equal(t, "out", errs[0].EntryID)
	assert.Equal(t, InvariantInPeriod, errs[0].Invariant)
}
