package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalEntryBalance(t *testing.T) {
	tests := []struct {
		name   string
		debit  string
		credit string
		want   bool
	}{
		{"exact", "100.00", "100.00", true},
		{"within tolerance", "100.00", "99.99", true},
		{"outside tolerance", "100.00", "99.98", false},
		{"empty", "0", "0", true},
	}
	for _, tt := range tests {
		e := JournalEntry{Lines: []JournalLine{
			{AccountID: "a", Debit: decimal.RequireFromString(tt.debit)},
			{AccountID: "b", Credit: decimal.RequireFromString(tt.credit)},
		}}
		assert.Equal(t, tt.want, e.IsBalanced(Tolerance), tt.name)
	}
}

func TestDefaultNormalSide(t *testing.T) {
	assert.Equal(t, SideDebit, DefaultNormalSide(KindAsset))
	assert.Equal(t, SideDebit, DefaultNormalSide(KindExpense))
	assert.Equal(t, SideCredit, DefaultNormalSide(KindLiability))
	assert.Equal(t, SideCredit, DefaultNormalSide(KindEquity))
	assert.Equal(t, SideCredit, DefaultNormalSide(KindIncome))

	acct := Account{Kind: KindAsset}
	assert.Equal(t, SideDebit, acct.Side())
	acct.NormalSide = SideCredit
	assert.Equal(t, SideCredit, acct.Side())
}

func TestDefaultSide_Contra(t *testing.T) {
	assert.Equal(t, SideDebit, DefaultSide(KindAsset, false))
	assert.Equal(t, SideCredit, DefaultSide(KindAsset, true))
	assert.Equal(t, SideDebit, DefaultSide(KindLiability, true))
	assert.Equal(t, SideDebit, DefaultSide(KindIncome, true))

	acct := Account{Kind: KindAsset, IsContra: true}
	assert.Equal(t, SideCredit, acct.Side())
}

func TestAccountKindValid(t *testing.T) {
	assert.True(t, KindIncome.Valid())
	assert.False(t, AccountKind("revenue").Valid())
}
