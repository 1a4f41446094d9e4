package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contalivre/contalivre/internal/accounts"
	"github.com/contalivre/contalivre/internal/model"
)

func TestTrialBalance_Contribution(t *testing.T) {
	chart := accounts.DefaultChart()
	l := ComputeLedger([]model.JournalEntry{
		entry("e1", date(2025, 1, 2), caja, capital, "10000"),
	}, chart)
	tb := ComputeTrialBalance(l, chart)

	require.Len(t, tb.Rows, 2)
	assert.Equal(t, caja, tb.Rows[0].Account.ID)
	assert.True(t, tb.Rows[0].BalanceDebit.Equal(dec("10000")))
	assert.True(t, tb.Rows[0].BalanceCredit.IsZero())
	assert.Equal(t, capital, tb.Rows[1].Account.ID)
	assert.True(t, tb.Rows[1].BalanceCredit.Equal(dec("10000")))

	assert.True(t, tb.TotalSumDebit.Equal(dec("10000")))
	assert.True(t, tb.TotalSumCredit.Equal(dec("10000")))
	assert.True(t, tb.IsBalanced)
	assert.True(t, tb.Difference.IsZero())
}

func TestTrialBalance_NeverBothSides(t *testing.T) {
	chart := accounts.DefaultChart()
	l := ComputeLedger([]model.JournalEntry{
		entry("e1", date(2025, 1, 2), caja, capital, "10000"),
		entry("e2", date(2025, 1, 5), mercaderias, caja, "3000"),
		entry("e3", date(2025, 1, 9), caja, ventas, "4500.55"),
		entry("e4", date(2025, 1, 9), mercaderias, proveedores, "800"),
		entry("e5", date(2025, 1, 9), proveedores, caja, "800"),
	}, chart)
	tb := ComputeTrialBalance(l, chart)

	for _, r := range tb.Rows {
		assert.False(t, r.BalanceDebit.IsPositive() && r.BalanceCredit.IsPositive(), r.Account.ID)
		assert.False(t, r.BalanceDebit.IsNegative() || r.BalanceCredit.IsNegative(), r.Account.ID)
		assert.False(t, r.Account.IsHeader)
	}
	row, ok := tb.Find(caja)
	require.True(t, ok)
	assert.True(t, row.BalanceDebit.Equal(dec("10700.55")))

	row, ok = tb.Find(proveedores)
	require.True(t, ok, "settled accounts with activity stay listed")
	assert.True(t, row.Net().IsZero())
	assert.True(t, tb.IsBalanced)
}

func TestTrialBalance_ExcludesHeaderAndIdle(t *testing.T) {
	chart := accounts.DefaultChart()
	l := ComputeLedger([]model.JournalEntry{
		entry("e1", date(2025, 1, 2), "1.1.01", capital, "100"),
	}, chart)
	tb := ComputeTrialBalance(l, chart)

	require.Len(t, tb.Rows, 1)
	assert.Equal(t, capital, tb.Rows[0].Account.ID)
	assert.False(t, tb.IsBalanced, "the header line was dropped")
	assert.True(t, tb.Difference.Equal(dec("-100")))
}

func TestTrialBalance_Idempotent(t *testing.T) {
	chart := accounts.DefaultChart()
	entries := []model.JournalEntry{
		entry("e1", date(2025, 1, 2), caja, capital, "10000"),
		entry("e2", date(2025, 1, 5), mercaderias, caja, "3000"),
	}
	a := ComputeTrialBalance(ComputeLedger(entries, chart), chart)
	b := ComputeTrialBalance(ComputeLedger(entries, chart), chart)
	assert.Equal(t, a, b)
}

func TestTrialBalance_Tolerance(t *testing.T) {
	chart := accounts.DefaultChart()
	e := entry("e1", date(2025, 1, 2), caja, capital, "100")
	e.Lines[1].Credit = dec("99.99")
	l := ComputeLedger([]model.JournalEntry{e}, chart)

	assert.True(t, ComputeTrialBalance(l, chart).IsBalanced)
	assert.False(t, ComputeTrialBalanceWithTolerance(l, chart, dec("0.001")).IsBalanced)
}

func TestRow_Natural(t *testing.T) {
	chart := accounts.DefaultChart()
	l := ComputeLedger([]model.JournalEntry{
		entry("e1", date(2025, 1, 2), caja, ventas, "250"),
	}, chart)
	tb := ComputeTrialBalance(l, chart)

	r, _ := tb.Find(ventas)
	assert.True(t, r.Natural().Equal(dec("250")))
	assert.True(t, r.Net().Equal(dec("-250")))
}
