// Package project loads a ContaLivre project directory and feeds the core
// engines with already-resolved collections.
package project

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/contalivre/contalivre/internal/accounts"
	"github.com/contalivre/contalivre/internal/config"
	"github.com/contalivre/contalivre/internal/fiscal"
	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/journal"
	"github.com/contalivre/contalivre/internal/model"
	"github.com/contalivre/contalivre/internal/monetary"
	"github.com/contalivre/contalivre/internal/rt17"
	"github.com/contalivre/contalivre/internal/rt6"
	"github.com/contalivre/contalivre/internal/statements"
)

// Project holds every input found under a project root.
type Project struct {
	Root     string
	Config   *config.Config
	Accounts *accounts.Service
	Journal  *journal.Service
	Entries  []model.JournalEntry

	// Indices is nil when the index file does not exist.
	Indices   *indices.Table
	RT6       []rt6.Partida
	RT17      []rt17.Partida
	Overrides []monetary.Override

	logger *slog.Logger
}

// Open loads config, chart, journal and adjustment overlays from root.
// Journal entries that break a validation rule are logged and kept; the
// engines degrade gracefully on them.
func Open(root string, logger *slog.Logger) (*Project, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := config.LoadProject(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	accts, err := accounts.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	jrnl := journal.NewService(root, accts, cfg.Tolerance)
	entries, err := jrnl.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	for _, v := range journal.ValidateEntries(entries, accts, cfg.Tolerance) {
		logger.Warn("journal validation", "entry", v.EntryID, "invariant", v.Invariant, "detail", v.Description)
	}

	p := &Project{
		Root:     root,
		Config:   cfg,
		Accounts: accts,
		Journal:  jrnl,
		Entries:  entries,
		logger:   logger,
	}

	if p.Indices, err = loadIndices(p.path(cfg.Paths.Indices)); err != nil {
		return nil, err
	}
	if p.RT6, err = rt6.LoadPartidas(p.path(cfg.Paths.RT6)); err != nil {
		return nil, fmt.Errorf("loading rt6 partidas: %w", err)
	}
	if p.RT17, err = rt17.LoadPartidas(p.path(cfg.Paths.RT17)); err != nil {
		return nil, fmt.Errorf("loading rt17 partidas: %w", err)
	}
	if p.Overrides, err = monetary.LoadOverrides(p.path(cfg.Paths.Overrides)); err != nil {
		return nil, fmt.Errorf("loading monetary overrides: %w", err)
	}

	logger.Debug("project loaded",
		"root", root,
		"accounts", len(accts.All()),
		"entries", len(entries),
		"rt6", len(p.RT6),
		"rt17", len(p.RT17),
	)
	return p, nil
}

func loadIndices(path string) (*indices.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	t, err := indices.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading indices: %w", err)
	}
	return t, nil
}

func (p *Project) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Root, rel)
}

// Period returns the fiscal context closing in closingYear.
func (p *Project) Period(closingYear int) (fiscal.Context, error) {
	return p.Config.Period(closingYear)
}

// Options returns statement options from the config.
func (p *Project) Options() statements.Options {
	return statements.Options{Tolerance: p.Config.Tolerance}
}

// Statements computes ctx and, when comparative is set, the prior year.
// Diagnostics are logged at warn level.
func (p *Project) Statements(ctx fiscal.Context, comparative bool) statements.Comparative {
	var c statements.Comparative
	if comparative {
		c = statements.ComputeWithComparative(p.Entries, p.Accounts.All(), ctx, p.Options())
	} else {
		c = statements.Comparative{Current: statements.ComputeForPeriod(p.Entries, p.Accounts.All(), ctx, p.Options())}
	}
	for _, w := range c.Current.Diagnostics.Warnings() {
		p.logger.Warn(w, "period", ctx.String())
	}
	return c
}

// Classifier returns the default cascade with the project's overrides.
func (p *Project) Classifier() *monetary.Classifier {
	return monetary.NewClassifier(nil).WithOverrides(p.Overrides)
}

// RT6Engine returns an engine closing at ctx's last month.
func (p *Project) RT6Engine(ctx fiscal.Context) (*rt6.Engine, error) {
	if p.Indices == nil {
		return nil, fmt.Errorf("no price index table at %s", p.path(p.Config.Paths.Indices))
	}
	return rt6.NewEngine(p.Indices, ctx.Closing())
}

// Inflation runs the lot-wise restatement and the indirect RECPAM for ctx.
// Missing indices are logged, never fatal.
func (p *Project) Inflation(ctx fiscal.Context) (rt6.Summary, rt6.IndirectResult, error) {
	e, err := p.RT6Engine(ctx)
	if err != nil {
		return rt6.Summary{}, rt6.IndirectResult{}, err
	}
	s := e.ComputeAll(p.RT6)
	positions := rt6.BuildMonthlyPositions(p.Entries, p.Accounts.All(), p.Classifier(), ctx)
	ind := e.ComputeIndirect(positions)

	if len(s.MissingPeriods) > 0 {
		p.logger.Warn("missing price indices for lots", "periods", s.MissingPeriods)
	}
	if !ind.Complete {
		p.logger.Warn("missing price indices for indirect RECPAM", "periods", ind.MissingIndices)
	}
	for id, err := range s.Errors {
		p.logger.Warn("rt6 partida skipped", "partida", id, "error", err)
	}
	return s, ind, nil
}

// Valuation values the project's RT17 partidas.
func (p *Project) Valuation() rt17.Summary {
	s := rt17.ValuateAll(p.RT17)
	for _, id := range s.Invalid {
		p.logger.Warn("rt17 partida missing parameters", "partida", id)
	}
	for id, err := range s.Errors {
		p.logger.Warn("rt17 partida skipped", "partida", id, "error", err)
	}
	return s
}

// SaveRT6 replaces the project's RT6 overlay with partidas.
func (p *Project) SaveRT6(partidas []rt6.Partida) error {
	if err := rt6.SavePartidas(p.path(p.Config.Paths.RT6), partidas); err != nil {
		return fmt.Errorf("saving rt6 partidas: %w", err)
	}
	p.RT6 = partidas
	return nil
}

// SaveRT17 replaces the project's RT17 overlay with partidas.
func (p *Project) SaveRT17(partidas []rt17.Partida) error {
	if err := rt17.SavePartidas(p.path(p.Config.Paths.RT17), partidas); err != nil {
		return fmt.Errorf("saving rt17 partidas: %w", err)
	}
	p.RT17 = partidas
	return nil
}
