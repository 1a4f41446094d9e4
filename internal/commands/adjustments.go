package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/contalivre/contalivre/internal/report"
	"github.com/contalivre/contalivre/internal/rt17"
	"github.com/contalivre/contalivre/internal/rt6"
)

func newClassifyCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Classify accounts as monetary or non-monetary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.OutOrStdout(), opts)
		},
	}
}

func runClassify(w io.Writer, opts *globalOptions) error {
	p, _, err := opts.open()
	if err != nil {
		return err
	}
	return report.WriteClassification(w, p.Classifier().ClassifyAll(p.Accounts.All()))
}

func newRT6Command(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rt6",
		Short: "Restate partidas for inflation and compute RECPAM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRT6(cmd.OutOrStdout(), opts)
		},
	}
	cmd.AddCommand(newRT6AddLotCommand(opts))
	return cmd
}

func runRT6(w io.Writer, opts *globalOptions) error {
	p, ctx, err := opts.open()
	if err != nil {
		return err
	}
	s, ind, err := p.Inflation(ctx)
	if err != nil {
		return fmt.Errorf("computing inflation adjustment: %w", err)
	}
	return report.WriteRT6(w, s, &ind, formatter(p))
}

type addLotFlags struct {
	date    string
	amount  string
	group   string
	rubro   string
	account string
	profile string
}

func newRT6AddLotCommand(opts *globalOptions) *cobra.Command {
	var f addLotFlags

	cmd := &cobra.Command{
		Use:   "add-lot <partida>",
		Short: "Add an origin lot to a partida, creating the partida if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRT6AddLot(cmd.OutOrStdout(), opts, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "origin date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "base amount (required)")
	cmd.Flags().StringVar(&f.group, "group", string(rt6.GroupActivo), "group for a new partida: activo, pasivo or pn")
	cmd.Flags().StringVar(&f.rubro, "rubro", "", "rubro for a new partida")
	cmd.Flags().StringVar(&f.account, "account", "", "account code for a new partida")
	cmd.Flags().StringVar(&f.profile, "profile", "", "profile: mercaderias, moneda_extranjera or generic")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runRT6AddLot(w io.Writer, opts *globalOptions, id string, f addLotFlags) error {
	date, err := parseDate(f.date)
	if err != nil {
		return err
	}
	amount, err := parseAmount(f.amount)
	if err != nil {
		return err
	}

	p, _, err := opts.open()
	if err != nil {
		return err
	}

	partidas := make([]rt6.Partida, len(p.RT6))
	copy(partidas, p.RT6)

	idx := -1
	for i, pa := range partidas {
		if pa.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		partidas = append(partidas, rt6.Partida{
			ID:          id,
			Group:       rt6.Group(f.group),
			Rubro:       f.rubro,
			AccountCode: f.account,
		})
		idx = len(partidas) - 1
	}
	if f.profile != "" {
		partidas[idx] = partidas[idx].WithProfile(rt6.Profile(f.profile))
	}
	if err := partidas[idx].Validate(); err != nil {
		return err
	}

	lot := rt6.NewLot(date, amount)
	partidas[idx] = partidas[idx].WithLot(lot)
	if err := p.SaveRT6(partidas); err != nil {
		return err
	}
	fmt.Fprintln(w, lot.ID)
	return nil
}

func newRT17Command(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rt17",
		Short: "Value partidas at current values and compute holding results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRT17(cmd.OutOrStdout(), opts)
		},
	}
	cmd.AddCommand(newRT17SeedCommand(opts))
	return cmd
}

func runRT17(w io.Writer, opts *globalOptions) error {
	p, _, err := opts.open()
	if err != nil {
		return err
	}
	return report.WriteRT17(w, p.Valuation(), formatter(p))
}

func newRT17SeedCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create RT17 partidas from restated RT6 partidas",
		Long: "Adds an RT17 partida for every RT6 partida that has none yet, using the\n" +
			"restated total as base reference and the method suggested by its profile.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRT17Seed(cmd.OutOrStdout(), opts)
		},
	}
}

func runRT17Seed(w io.Writer, opts *globalOptions) error {
	p, ctx, err := opts.open()
	if err != nil {
		return err
	}
	s, _, err := p.Inflation(ctx)
	if err != nil {
		return fmt.Errorf("computing inflation adjustment: %w", err)
	}

	existing := make(map[string]bool, len(p.RT17))
	for _, pa := range p.RT17 {
		existing[pa.ID] = true
	}
	partidas := make([]rt17.Partida, len(p.RT17))
	copy(partidas, p.RT17)

	added := 0
	for _, r := range s.Results {
		if existing[r.Partida.ID] {
			continue
		}
		if !r.Complete() {
			slog.Warn("partida has lots without index, base reference is partial", "partida", r.Partida.ID)
		}
		partidas = append(partidas, rt17.FromRT6(r))
		added++
	}
	if added == 0 {
		fmt.Fprintln(w, "No new partidas.")
		return nil
	}
	if err := p.SaveRT17(partidas); err != nil {
		return err
	}
	fmt.Fprintf(w, "Added %d partidas.\n", added)
	return nil
}
