package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/notes"
	"github.com/contalivre/contalivre/internal/report"
	"github.com/contalivre/contalivre/internal/statements"
)

func newLedgerCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Print the general ledger for the fiscal period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(cmd.OutOrStdout(), opts)
		},
	}
}

func runLedger(w io.Writer, opts *globalOptions) error {
	p, ctx, err := opts.open()
	if err != nil {
		return err
	}
	l := ledger.ComputeLedger(ctx.Filter(p.Entries), p.Accounts.All())
	return report.WriteLedger(w, l, formatter(p))
}

func newBalanceCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the trial balance (sumas y saldos) for the fiscal period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd.OutOrStdout(), opts)
		},
	}
}

func runBalance(w io.Writer, opts *globalOptions) error {
	p, ctx, err := opts.open()
	if err != nil {
		return err
	}
	accts := p.Accounts.All()
	l := ledger.ComputeLedger(ctx.Filter(p.Entries), accts)
	tb := ledger.ComputeTrialBalanceWithTolerance(l, accts, p.Config.Tolerance)
	if !tb.IsBalanced {
		slog.Warn("trial balance does not balance", "difference", tb.Difference.StringFixed(2))
	}
	return report.WriteTrialBalance(w, tb, formatter(p))
}

func newStatementsCommand(opts *globalOptions) *cobra.Command {
	var comparative bool

	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Print the balance sheet and income statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatements(cmd.OutOrStdout(), opts, comparative)
		},
	}

	cmd.Flags().BoolVar(&comparative, "comparative", false, "include the prior fiscal year as a comparative column")

	return cmd
}

func runStatements(w io.Writer, opts *globalOptions, comparative bool) error {
	p, ctx, err := opts.open()
	if err != nil {
		return err
	}
	c := p.Statements(ctx, comparative)
	if comparative && c.Prior == nil {
		slog.Info("no entries in prior fiscal year, comparative column omitted", "period", ctx.Prior().String())
	}
	return report.WriteStatements(w, c.Current, c.Prior, formatter(p))
}

func newNotesCommand(opts *globalOptions) *cobra.Command {
	var first int

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Print notes, annexes and adjustment disclosures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotes(cmd.OutOrStdout(), opts, first)
		},
	}

	cmd.Flags().IntVar(&first, "first", 1, "number of the first note")

	return cmd
}

func runNotes(w io.Writer, opts *globalOptions, first int) error {
	p, ctx, err := opts.open()
	if err != nil {
		return err
	}
	f := formatter(p)
	c := p.Statements(ctx, true)
	cur := c.Current

	ns := notes.Number(notes.BuildNotes(cur.BalanceSheet, cur.IncomeStatement), first)
	if err := report.WriteNotes(w, ns, f); err != nil {
		return err
	}

	var priorBS *statements.BalanceSheet
	if c.Prior != nil {
		priorBS = c.Prior.BalanceSheet
	}
	ea := notes.BuildExpenseAnnex(cur.IncomeStatement)
	ca := notes.BuildCostAnnex(cur.BalanceSheet, priorBS, cur.IncomeStatement)
	vat := notes.BuildVATPosition(cur.TrialBalance)
	if err := report.WriteAnnexes(w, ea, ca, vat, f); err != nil {
		return err
	}

	if len(p.RT6) > 0 {
		s, ind, err := p.Inflation(ctx)
		if err != nil {
			slog.Warn("inflation disclosure omitted", "error", err)
		} else if err := report.WriteDisclosure(w, notes.InflationNote(s, &ind), f); err != nil {
			return err
		}
	}
	if len(p.RT17) > 0 {
		if err := report.WriteDisclosure(w, notes.HoldingNote(p.Valuation()), f); err != nil {
			return err
		}
	}
	return nil
}
