package model

import "github.com/contalivre/contalivre/internal/taxonomy"

// AccountKind classifies accounts in the chart of accounts.
type AccountKind string

const (
	KindAsset     AccountKind = "asset"
	KindLiability AccountKind = "liability"
	KindEquity    AccountKind = "equity"
	KindIncome    AccountKind = "income"
	KindExpense   AccountKind = "expense"
)

// Valid reports whether k is one of the five known kinds.
func (k AccountKind) Valid() bool {
	switch k {
	case KindAsset, KindLiability, KindEquity, KindIncome, KindExpense:
		return true
	}
	return false
}

// Side is the side of an account that increases its balance.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID             string
	Code           string // dot-separated, e.g. "1.1.02.01"
	Name           string
	Kind           AccountKind
	Section        taxonomy.AccountSection
	StatementGroup taxonomy.Group // empty when unmapped
	NormalSide     Side
	IsContra       bool // balance is presented with inverted sign
	IsHeader       bool // aggregation only, never posted to
	ParentID       string
}

// DefaultNormalSide returns the side that increases an account of kind k.
func DefaultNormalSide(k AccountKind) Side {
	switch k {
	case KindAsset, KindExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// DefaultSide returns the normal side of an account of kind k. Contra
// accounts increase on the side opposite to their kind.
func DefaultSide(k AccountKind, contra bool) Side {
	s := DefaultNormalSide(k)
	if !contra {
		return s
	}
	if s == SideDebit {
		return SideCredit
	}
	return SideDebit
}

// Side returns the account's normal side, falling back to DefaultSide.
func (a Account) Side() Side {
	if a.NormalSide == "" {
		return DefaultSide(a.Kind, a.IsContra)
	}
	return a.NormalSide
}
