package statements

import (
	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/model"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

// IncomeStatement is the "Estado de Resultados".
type IncomeStatement struct {
	Sales             Section
	CostOfSales       Section
	AdminExpenses     Section
	SellingExpenses   Section
	FinancialIncome   Section
	FinancialExpenses Section
	OtherIncome       Section
	OtherExpenses     Section

	GrossProfit        decimal.Decimal
	OperatingIncome    decimal.Decimal
	NetFinancialResult decimal.Decimal
	NetOtherResult     decimal.Decimal
	NetIncome          decimal.Decimal
}

// Sections returns the eight sections in presentation order.
func (is *IncomeStatement) Sections() []Section {
	return []Section{
		is.Sales, is.CostOfSales, is.AdminExpenses, is.SellingExpenses,
		is.FinancialIncome, is.FinancialExpenses, is.OtherIncome, is.OtherExpenses,
	}
}

// BuildIncomeStatement groups result rows of tb and derives the subtotals.
// Each subtotal is rounded as soon as it is computed.
func BuildIncomeStatement(tb ledger.TrialBalance) *IncomeStatement {
	s := buildSections(tb,
		tx.Sales, tx.CostOfSales, tx.AdminExpenses, tx.SellingExpenses,
		tx.FinancialIncome, tx.FinancialExpenses, tx.OtherIncome, tx.OtherExpenses)

	is := &IncomeStatement{
		Sales:             *s[tx.Sales],
		CostOfSales:       *s[tx.CostOfSales],
		AdminExpenses:     *s[tx.AdminExpenses],
		SellingExpenses:   *s[tx.SellingExpenses],
		FinancialIncome:   *s[tx.FinancialIncome],
		FinancialExpenses: *s[tx.FinancialExpenses],
		OtherIncome:       *s[tx.OtherIncome],
		OtherExpenses:     *s[tx.OtherExpenses],
	}

	is.GrossProfit = model.Round2(is.Sales.NetTotal.Sub(is.CostOfSales.NetTotal.Abs()))
	is.OperatingIncome = model.Round2(is.GrossProfit.
		Sub(is.AdminExpenses.NetTotal.Abs()).
		Sub(is.SellingExpenses.NetTotal.Abs()))
	is.NetFinancialResult = model.Round2(is.FinancialIncome.NetTotal.Sub(is.FinancialExpenses.NetTotal.Abs()))
	is.NetOtherResult = model.Round2(is.OtherIncome.NetTotal.Sub(is.OtherExpenses.NetTotal.Abs()))
	is.NetIncome = model.Round2(is.OperatingIncome.Add(is.NetFinancialResult).Add(is.NetOtherResult))
	return is
}
