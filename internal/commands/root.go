package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/contalivre/contalivre/internal/buildinfo"
	"github.com/contalivre/contalivre/internal/fiscal"
	"github.com/contalivre/contalivre/internal/project"
	"github.com/contalivre/contalivre/internal/report"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	dir   string
	year  int
	debug bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "contalivre",
		Short:   "Argentine financial statements with RT6 and RT17 adjustments",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "project directory")
	rootCmd.PersistentFlags().IntVar(&opts.year, "year", 0, "closing year of the fiscal period (default: current year)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newLedgerCommand(opts),
		newBalanceCommand(opts),
		newStatementsCommand(opts),
		newNotesCommand(opts),
		newClassifyCommand(opts),
		newRT6Command(opts),
		newRT17Command(opts),
		newJournalCommand(opts),
	)

	return rootCmd
}

// open loads the project and resolves the fiscal period from the flags.
func (o *globalOptions) open() (*project.Project, fiscal.Context, error) {
	dir, err := filepath.Abs(o.dir)
	if err != nil {
		return nil, fiscal.Context{}, fmt.Errorf("resolving path: %w", err)
	}
	p, err := project.Open(dir, slog.Default())
	if err != nil {
		return nil, fiscal.Context{}, err
	}
	year := o.year
	if year == 0 {
		year = time.Now().Year()
	}
	ctx, err := p.Period(year)
	if err != nil {
		return nil, fiscal.Context{}, fmt.Errorf("resolving fiscal period: %w", err)
	}
	slog.Debug("fiscal period", "period", ctx.String())
	return p, ctx, nil
}

func formatter(p *project.Project) report.Formatter {
	return report.NewFormatter(p.Config.Currency)
}
