package statements

import (
	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/model"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

// Labels of the synthetic equity line carrying the period result.
const (
	NetIncomeGainLabel = "Resultado del ejercicio (Ganancia)"
	NetIncomeLossLabel = "Resultado del ejercicio (Pérdida)"
)

// BalanceSheet is the "Estado de Situación Patrimonial".
type BalanceSheet struct {
	CurrentAssets         Section
	NonCurrentAssets      Section
	CurrentLiabilities    Section
	NonCurrentLiabilities Section
	Equity                Section

	TotalAssets               decimal.Decimal
	TotalLiabilities          decimal.Decimal
	TotalEquity               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	NetIncome                 decimal.Decimal

	// Difference is TotalAssets - TotalLiabilitiesAndEquity.
	Difference decimal.Decimal
	IsBalanced bool
}

// Sections returns the five sections in presentation order.
func (bs *BalanceSheet) Sections() []Section {
	return []Section{bs.CurrentAssets, bs.NonCurrentAssets, bs.CurrentLiabilities, bs.NonCurrentLiabilities, bs.Equity}
}

// BuildBalanceSheet groups balance-sheet rows of tb into sections and adds
// netIncome to equity as a synthetic line so the sheet balances before the
// closing entry is booked.
func BuildBalanceSheet(tb ledger.TrialBalance, netIncome, tol decimal.Decimal) *BalanceSheet {
	s := buildSections(tb, tx.CurrentAssets, tx.NonCurrentAssets, tx.CurrentLiabilities, tx.NonCurrentLiabilities, tx.Equity)
	netIncome = model.Round2(netIncome)

	equity := s[tx.Equity]
	if netIncome.Abs().GreaterThanOrEqual(minBalance) {
		label := NetIncomeGainLabel
		if netIncome.IsNegative() {
			label = NetIncomeLossLabel
		}
		equity.Lines = append(equity.Lines, Line{
			Account:   model.Account{Name: label, Kind: model.KindEquity, NormalSide: model.SideCredit},
			Balance:   netIncome,
			Synthetic: true,
		})
		equity.total()
	}

	bs := &BalanceSheet{
		CurrentAssets:         *s[tx.CurrentAssets],
		NonCurrentAssets:      *s[tx.NonCurrentAssets],
		CurrentLiabilities:    *s[tx.CurrentLiabilities],
		NonCurrentLiabilities: *s[tx.NonCurrentLiabilities],
		Equity:                *equity,
		NetIncome:             netIncome,
	}
	bs.TotalAssets = model.Round2(bs.CurrentAssets.NetTotal.Add(bs.NonCurrentAssets.NetTotal))
	bs.TotalLiabilities = model.Round2(bs.CurrentLiabilities.NetTotal.Add(bs.NonCurrentLiabilities.NetTotal))
	bs.TotalEquity = bs.Equity.NetTotal
	bs.TotalLiabilitiesAndEquity = model.Round2(bs.TotalLiabilities.Add(bs.TotalEquity))
	bs.Difference = bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity)
	bs.IsBalanced = bs.Difference.Abs().LessThanOrEqual(tol)
	return bs
}

// GroupTotal returns the net balance of every line under group g.
func (bs *BalanceSheet) GroupTotal(g tx.Group) decimal.Decimal {
	total := decimal.Zero
	for _, s := range bs.Sections() {
		for _, l := range s.Lines {
			if l.Account.StatementGroup == g {
				total = total.Add(l.Balance)
			}
		}
	}
	return model.Round2(total)
}
