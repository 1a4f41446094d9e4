package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/contalivre/contalivre/internal/journal"
)

func newJournalCommand(opts *globalOptions) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal operations",
	}
	journalCmd.AddCommand(newJournalAddCommand(opts))
	return journalCmd
}

type journalAddFlags struct {
	date        string
	memo        string
	description string
	debit       string
	credit      string
	amount      string
}

func newJournalAddCommand(opts *globalOptions) *cobra.Command {
	var f journalAddFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a two-line entry to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalAdd(cmd.OutOrStdout(), opts, f)
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "entry date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.memo, "memo", "", "entry memo")
	cmd.Flags().StringVar(&f.description, "description", "", "line description")
	cmd.Flags().StringVar(&f.debit, "debit", "", "account debited (required)")
	cmd.Flags().StringVar(&f.credit, "credit", "", "account credited (required)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount (required)")
	for _, name := range []string{"date", "debit", "credit", "amount"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runJournalAdd(w io.Writer, opts *globalOptions, f journalAddFlags) error {
	date, err := parseDate(f.date)
	if err != nil {
		return err
	}
	amount, err := parseAmount(f.amount)
	if err != nil {
		return err
	}

	p, ctx, err := opts.open()
	if err != nil {
		return err
	}
	if !ctx.Contains(date) {
		slog.Warn("entry date outside the fiscal period", "date", f.date, "period", ctx.String())
	}

	id, err := p.Journal.AddDouble(journal.AddDoubleParams{
		Date:          date,
		Memo:          f.memo,
		Description:   f.description,
		DebitAccount:  f.debit,
		CreditAccount: f.credit,
		Amount:        amount,
	})
	if err != nil {
		return fmt.Errorf("adding entry: %w", err)
	}
	fmt.Fprintln(w, id)
	return nil
}
