package notes

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/code"
	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/model"
	"github.com/contalivre/contalivre/internal/statements"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

// ExpenseRow is one expense account spread over the annex columns.
type ExpenseRow struct {
	Code      string
	Name      string
	Cost      decimal.Decimal
	Admin     decimal.Decimal
	Selling   decimal.Decimal
	Financial decimal.Decimal
	Other     decimal.Decimal
	Total     decimal.Decimal
}

func (r ExpenseRow) add(o ExpenseRow) ExpenseRow {
	r.Cost = r.Cost.Add(o.Cost)
	r.Admin = r.Admin.Add(o.Admin)
	r.Selling = r.Selling.Add(o.Selling)
	r.Financial = r.Financial.Add(o.Financial)
	r.Other = r.Other.Add(o.Other)
	r.Total = r.Total.Add(o.Total)
	return r
}

// ExpenseAnnex is the "Anexo de gastos" with row and column totals.
type ExpenseAnnex struct {
	Rows   []ExpenseRow
	Totals ExpenseRow
}

// BuildExpenseAnnex spreads every expense line of is over the cost,
// administrative, selling, financial and other columns.
func BuildExpenseAnnex(is *statements.IncomeStatement) ExpenseAnnex {
	columns := []struct {
		section statements.Section
		set     func(*ExpenseRow, decimal.Decimal)
	}{
		{is.CostOfSales, func(r *ExpenseRow, d decimal.Decimal) { r.Cost = d }},
		{is.AdminExpenses, func(r *ExpenseRow, d decimal.Decimal) { r.Admin = d }},
		{is.SellingExpenses, func(r *ExpenseRow, d decimal.Decimal) { r.Selling = d }},
		{is.FinancialExpenses, func(r *ExpenseRow, d decimal.Decimal) { r.Financial = d }},
		{is.OtherExpenses, func(r *ExpenseRow, d decimal.Decimal) { r.Other = d }},
	}

	byCode := make(map[string]*ExpenseRow)
	var a ExpenseAnnex
	for _, c := range columns {
		for _, l := range c.section.Lines {
			key := l.Account.ID
			row, ok := byCode[key]
			if !ok {
				row = &ExpenseRow{Code: l.Account.Code, Name: l.Account.Name}
				byCode[key] = row
			}
			var cell ExpenseRow
			c.set(&cell, l.Balance)
			cell.Total = l.Balance
			*row = row.add(cell)
		}
	}

	for _, r := range byCode {
		a.Rows = append(a.Rows, *r)
	}
	sort.Slice(a.Rows, func(i, j int) bool {
		if c := code.Compare(a.Rows[i].Code, a.Rows[j].Code); c != 0 {
			return c < 0
		}
		return a.Rows[i].Name < a.Rows[j].Name
	})
	for _, r := range a.Rows {
		a.Totals = a.Totals.add(r)
	}
	a.Totals.Name = "Total"
	a.Totals = roundRow(a.Totals)
	return a
}

func roundRow(r ExpenseRow) ExpenseRow {
	r.Cost = model.Round2(r.Cost)
	r.Admin = model.Round2(r.Admin)
	r.Selling = model.Round2(r.Selling)
	r.Financial = model.Round2(r.Financial)
	r.Other = model.Round2(r.Other)
	r.Total = model.Round2(r.Total)
	return r
}

// CostAnnex is the "Anexo de costo de mercaderías vendidas".
type CostAnnex struct {
	OpeningInventory decimal.Decimal
	Purchases        decimal.Decimal
	ClosingInventory decimal.Decimal
	CostOfSales      decimal.Decimal
}

// BuildCostAnnex derives purchases from CMV = opening + purchases −
// closing. Opening inventory comes from prior and is zero when prior is nil.
func BuildCostAnnex(current, prior *statements.BalanceSheet, is *statements.IncomeStatement) CostAnnex {
	a := CostAnnex{CostOfSales: is.CostOfSales.NetTotal}
	if current != nil {
		a.ClosingInventory = current.GroupTotal(tx.Inventories)
	}
	if prior != nil {
		a.OpeningInventory = prior.GroupTotal(tx.Inventories)
	}
	a.Purchases = model.Round2(a.CostOfSales.Sub(a.OpeningInventory).Add(a.ClosingInventory))
	return a
}

// VATPosition surfaces the VAT balance. It is not a tax return.
type VATPosition struct {
	Credit  decimal.Decimal // IVA crédito fiscal
	Debit   decimal.Decimal // IVA débito fiscal
	Net     decimal.Decimal // Debit - Credit
	Payable bool
}

// BuildVATPosition sums the VAT credit and debit groups of tb.
func BuildVATPosition(tb ledger.TrialBalance) VATPosition {
	var v VATPosition
	for _, r := range tb.Rows {
		switch r.Account.StatementGroup {
		case tx.VATCredit:
			v.Credit = v.Credit.Add(statements.LineBalance(r))
		case tx.VATDebit:
			v.Debit = v.Debit.Add(statements.LineBalance(r))
		}
	}
	v.Credit = model.Round2(v.Credit)
	v.Debit = model.Round2(v.Debit)
	v.Net = v.Debit.Sub(v.Credit)
	v.Payable = v.Net.IsPositive()
	return v
}
