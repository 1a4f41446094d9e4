package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/model"
)

// Row is one account of the trial balance. At most one of BalanceDebit and
// BalanceCredit is non-zero.
type Row struct {
	Account       model.Account
	SumDebit      decimal.Decimal
	SumCredit     decimal.Decimal
	BalanceDebit  decimal.Decimal
	BalanceCredit decimal.Decimal
}

// Net returns BalanceDebit - BalanceCredit.
func (r Row) Net() decimal.Decimal {
	return r.BalanceDebit.Sub(r.BalanceCredit)
}

// Natural returns the balance on the account's normal side.
func (r Row) Natural() decimal.Decimal {
	return NormalBalance(r.Account, r.BalanceDebit, r.BalanceCredit)
}

// TrialBalance is the "Balance de Sumas y Saldos".
type TrialBalance struct {
	Rows               []Row
	TotalSumDebit      decimal.Decimal
	TotalSumCredit     decimal.Decimal
	TotalBalanceDebit  decimal.Decimal
	TotalBalanceCredit decimal.Decimal
	// Difference is TotalBalanceDebit - TotalBalanceCredit.
	Difference decimal.Decimal
	IsBalanced bool
}

// ComputeTrialBalance builds the trial balance with the default tolerance.
func ComputeTrialBalance(l *Ledger, accounts []model.Account) TrialBalance {
	return ComputeTrialBalanceWithTolerance(l, accounts, model.Tolerance)
}

// ComputeTrialBalanceWithTolerance builds one row per non-header account
// with activity, ordered by code. An imbalance beyond tol only clears
// IsBalanced; it never stops the pipeline.
func ComputeTrialBalanceWithTolerance(l *Ledger, accounts []model.Account, tol decimal.Decimal) TrialBalance {
	ordered := make([]model.Account, len(accounts))
	copy(ordered, accounts)
	sort.SliceStable(ordered, func(i, j int) bool { return lessAccount(ordered[i], ordered[j]) })

	tb := TrialBalance{}
	for _, acct := range ordered {
		if acct.IsHeader {
			continue
		}
		la, ok := l.Get(acct.ID)
		if !ok {
			continue
		}
		if len(la.Movements) == 0 && la.TotalDebit.IsZero() && la.TotalCredit.IsZero() {
			continue
		}

		row := Row{
			Account:   acct,
			SumDebit:  model.Round2(la.TotalDebit),
			SumCredit: model.Round2(la.TotalCredit),
		}
		net := row.SumDebit.Sub(row.SumCredit)
		if net.IsPositive() {
			row.BalanceDebit = net
		} else {
			row.BalanceCredit = net.Neg()
		}
		tb.Rows = append(tb.Rows, row)

		tb.TotalSumDebit = tb.TotalSumDebit.Add(row.SumDebit)
		tb.TotalSumCredit = tb.TotalSumCredit.Add(row.SumCredit)
		tb.TotalBalanceDebit = tb.TotalBalanceDebit.Add(row.BalanceDebit)
		tb.TotalBalanceCredit = tb.TotalBalanceCredit.Add(row.BalanceCredit)
	}

	tb.Difference = tb.TotalBalanceDebit.Sub(tb.TotalBalanceCredit)
	tb.IsBalanced = tb.Difference.Abs().LessThanOrEqual(tol)
	return tb
}

// Find returns the row of an account.
func (tb TrialBalance) Find(id string) (Row, bool) {
	for _, r := range tb.Rows {
		if r.Account.ID == id {
			return r, true
		}
	}
	return Row{}, false
}
