// Package statements builds the Balance Sheet and Income Statement from a
// trial balance.
package statements

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/code"
	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/model"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

// minBalance is the smallest absolute balance that earns a statement line.
var minBalance = decimal.New(1, -2)

// Line is one account within a section. Balance is already sign-adjusted:
// contra accounts carry the inverted sign.
type Line struct {
	Account   model.Account
	Balance   decimal.Decimal
	IsContra  bool
	Synthetic bool // computed line with no backing account
}

// Section groups lines under a statement section.
type Section struct {
	Key      tx.SectionKey
	Label    string
	Lines    []Line
	Subtotal decimal.Decimal // non-contra lines only
	NetTotal decimal.Decimal // all lines
}

// IsEmpty reports whether the section has no lines.
func (s Section) IsEmpty() bool { return len(s.Lines) == 0 }

// SectionFor returns the statement section an account reports under: the
// section of its statement group, or one derived from its kind and section
// when it has none.
func SectionFor(a model.Account) tx.SectionKey {
	if d, ok := tx.Lookup(a.StatementGroup); ok {
		return d.Section
	}
	switch a.Kind {
	case model.KindAsset:
		if a.Section == tx.SectionNonCurrent {
			return tx.NonCurrentAssets
		}
		return tx.CurrentAssets
	case model.KindLiability:
		if a.Section == tx.SectionNonCurrent {
			return tx.NonCurrentLiabilities
		}
		return tx.CurrentLiabilities
	case model.KindEquity:
		return tx.Equity
	case model.KindIncome:
		switch a.Section {
		case tx.SectionFinancial:
			return tx.FinancialIncome
		case tx.SectionOther:
			return tx.OtherIncome
		}
		return tx.Sales
	case model.KindExpense:
		switch a.Section {
		case tx.SectionCost:
			return tx.CostOfSales
		case tx.SectionSelling:
			return tx.SellingExpenses
		case tx.SectionFinancial:
			return tx.FinancialExpenses
		case tx.SectionOther:
			return tx.OtherExpenses
		}
		return tx.AdminExpenses
	}
	return ""
}

// LineBalance returns the sign-adjusted statement balance of a row.
func LineBalance(r ledger.Row) decimal.Decimal {
	b := r.Natural()
	if r.Account.IsContra {
		b = b.Neg()
	}
	return model.Round2(b)
}

// buildSections distributes trial-balance rows over the requested sections.
func buildSections(tb ledger.TrialBalance, keys ...tx.SectionKey) map[tx.SectionKey]*Section {
	out := make(map[tx.SectionKey]*Section, len(keys))
	for _, k := range keys {
		out[k] = &Section{Key: k, Label: tx.SectionLabel(k)}
	}

	for _, r := range tb.Rows {
		if r.Account.IsHeader {
			continue
		}
		s, ok := out[SectionFor(r.Account)]
		if !ok {
			continue
		}
		b := LineBalance(r)
		if b.Abs().LessThan(minBalance) {
			continue
		}
		s.Lines = append(s.Lines, Line{Account: r.Account, Balance: b, IsContra: r.Account.IsContra})
	}

	for _, s := range out {
		sortLines(s.Lines)
		s.total()
	}
	return out
}

func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].Account, lines[j].Account
		if oa, ob := tx.Order(a.StatementGroup), tx.Order(b.StatementGroup); oa != ob {
			return oa < ob
		}
		if c := code.Compare(a.Code, b.Code); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}

func (s *Section) total() {
	s.Subtotal, s.NetTotal = decimal.Zero, decimal.Zero
	for _, l := range s.Lines {
		if !l.IsContra {
			s.Subtotal = s.Subtotal.Add(l.Balance)
		}
		s.NetTotal = s.NetTotal.Add(l.Balance)
	}
	s.Subtotal = model.Round2(s.Subtotal)
	s.NetTotal = model.Round2(s.NetTotal)
}
