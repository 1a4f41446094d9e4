package statements

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/fiscal"
	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/model"
)

// Options tune statement computation.
type Options struct {
	// Tolerance for the trial balance and balance sheet checks. Zero means
	// model.Tolerance.
	Tolerance decimal.Decimal
}

func (o Options) tolerance() decimal.Decimal {
	if o.Tolerance.IsZero() {
		return model.Tolerance
	}
	return o.Tolerance
}

// Diagnostics collects the non-fatal findings of a computation.
type Diagnostics struct {
	UnmappedLines      int
	UnmappedAccountIDs []string
	HeaderLines        int

	TrialBalanceUnbalanced bool
	TrialBalanceDifference decimal.Decimal
	BalanceSheetUnbalanced bool
	BalanceSheetDifference decimal.Decimal
}

// Warnings renders the diagnostics as human readable messages.
func (d Diagnostics) Warnings() []string {
	var out []string
	if d.UnmappedLines > 0 {
		out = append(out, fmt.Sprintf("%d journal lines reference unknown accounts %v", d.UnmappedLines, d.UnmappedAccountIDs))
	}
	if d.HeaderLines > 0 {
		out = append(out, fmt.Sprintf("%d journal lines post to header accounts", d.HeaderLines))
	}
	if d.TrialBalanceUnbalanced {
		out = append(out, fmt.Sprintf("trial balance off by %s", d.TrialBalanceDifference.StringFixed(2)))
	}
	if d.BalanceSheetUnbalanced {
		out = append(out, fmt.Sprintf("balance sheet off by %s", d.BalanceSheetDifference.StringFixed(2)))
	}
	return out
}

// Statements bundles the outputs computed for one period.
type Statements struct {
	Period          fiscal.Context
	TrialBalance    ledger.TrialBalance
	BalanceSheet    *BalanceSheet
	IncomeStatement *IncomeStatement
	Diagnostics     Diagnostics
}

// Compute builds both statements from a trial balance.
func Compute(tb ledger.TrialBalance, opts Options) *Statements {
	is := BuildIncomeStatement(tb)
	bs := BuildBalanceSheet(tb, is.NetIncome, opts.tolerance())
	return &Statements{
		TrialBalance:    tb,
		BalanceSheet:    bs,
		IncomeStatement: is,
		Diagnostics: Diagnostics{
			TrialBalanceUnbalanced: !tb.IsBalanced,
			TrialBalanceDifference: tb.Difference,
			BalanceSheetUnbalanced: !bs.IsBalanced,
			BalanceSheetDifference: bs.Difference,
		},
	}
}

// ComputeForPeriod runs the whole pipeline over the entries dated inside
// ctx. Balances are not carried forward from earlier periods: a fiscal year
// after the first must book its own opening entry (asiento de apertura), or
// its balance sheet starts from zero.
func ComputeForPeriod(entries []model.JournalEntry, accounts []model.Account, ctx fiscal.Context, opts Options) *Statements {
	l := ledger.ComputeLedger(ctx.Filter(entries), accounts)
	tb := ledger.ComputeTrialBalanceWithTolerance(l, accounts, opts.tolerance())
	st := Compute(tb, opts)
	st.Period = ctx
	st.Diagnostics.UnmappedLines = l.UnmappedLines
	st.Diagnostics.UnmappedAccountIDs = l.UnmappedAccountIDs
	st.Diagnostics.HeaderLines = l.HeaderLines
	return st
}

// Comparative holds the current period and, when the journal has entries
// for it, the prior one.
type Comparative struct {
	Current *Statements
	Prior   *Statements
}

// ComputeWithComparative computes ctx and the fiscal year before it. Each
// period is computed once; Prior is nil when no entry falls in it.
func ComputeWithComparative(entries []model.JournalEntry, accounts []model.Account, ctx fiscal.Context, opts Options) Comparative {
	c := Comparative{Current: ComputeForPeriod(entries, accounts, ctx, opts)}
	prior := ctx.Prior()
	if len(prior.Filter(entries)) > 0 {
		c.Prior = ComputeForPeriod(entries, accounts, prior, opts)
	}
	return c
}
