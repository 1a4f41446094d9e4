package rt6

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/model"
)

// Engine restates amounts to the closing period of an index table.
type Engine struct {
	Table        *indices.Table
	Closing      indices.Period
	closingIndex decimal.Decimal
}

// NewEngine fails when table has no index for the closing period.
func NewEngine(table *indices.Table, closing indices.Period) (*Engine, error) {
	if table == nil {
		return nil, errors.New("rt6: nil index table")
	}
	v, ok := table.At(closing)
	if !ok {
		return nil, fmt.Errorf("closing index: %w", indices.NewMissingIndexError(closing))
	}
	return &Engine{Table: table, Closing: closing, closingIndex: v}, nil
}

// ClosingIndex returns the index of the closing period.
func (e *Engine) ClosingIndex() decimal.Decimal { return e.closingIndex }

// LotResult is the restatement of one lot.
type LotResult struct {
	Lot         Lot
	Period      indices.Period
	Coefficient decimal.Decimal // full precision
	Homogeneous decimal.Decimal
	Recpam      decimal.Decimal
	Missing     bool
}

// DisplayCoefficient rounds the coefficient to 6 decimals.
func (r LotResult) DisplayCoefficient() decimal.Decimal {
	return r.Coefficient.Round(6)
}

// ComputeLot restates one lot. When the origin period has no index the
// result is flagged Missing and a *indices.MissingIndexError is returned.
func (e *Engine) ComputeLot(l Lot) (LotResult, error) {
	r := LotResult{Lot: l, Period: indices.PeriodOf(l.OriginDate)}
	coef, err := e.Table.Coefficient(r.Period, e.Closing)
	if err != nil {
		r.Missing = true
		return r, err
	}
	base := model.Round2(l.BaseAmount)
	r.Coefficient = coef
	r.Homogeneous = model.Round2(l.BaseAmount.Mul(coef))
	r.Recpam = r.Homogeneous.Sub(base)
	return r, nil
}

// Totals are the base, homogeneous and RECPAM sums of a set of lots.
type Totals struct {
	Base        decimal.Decimal
	Homogeneous decimal.Decimal
	Recpam      decimal.Decimal
}

func (t Totals) add(o Totals) Totals {
	return Totals{
		Base:        t.Base.Add(o.Base),
		Homogeneous: t.Homogeneous.Add(o.Homogeneous),
		Recpam:      t.Recpam.Add(o.Recpam),
	}
}

// PartidaResult is the restatement of a partida.
type PartidaResult struct {
	Partida Partida
	Lots    []LotResult
	// Totals cover only the lots that could be computed.
	Totals         Totals
	MissingPeriods []indices.Period
}

// Complete reports whether every lot was restated.
func (r PartidaResult) Complete() bool { return len(r.MissingPeriods) == 0 }

// ComputePartida restates every lot of p. Lots with a missing index are
// left out of the totals and their periods are returned as one
// *indices.MissingIndexError.
func (e *Engine) ComputePartida(p Partida) (PartidaResult, error) {
	if err := p.Validate(); err != nil {
		return PartidaResult{Partida: p}, err
	}
	res := PartidaResult{Partida: p, Lots: make([]LotResult, 0, len(p.Lots))}
	var missing []indices.Period
	for _, l := range p.Lots {
		lr, err := e.ComputeLot(l)
		res.Lots = append(res.Lots, lr)
		if err != nil {
			missing = append(missing, lr.Period)
			continue
		}
		res.Totals = res.Totals.add(Totals{Base: model.Round2(l.BaseAmount), Homogeneous: lr.Homogeneous, Recpam: lr.Recpam})
	}
	res.MissingPeriods = indices.SortedUnique(missing)
	return res, indices.NewMissingIndexError(res.MissingPeriods...)
}

// Summary aggregates the results of many partidas.
type Summary struct {
	Results        []PartidaResult
	ByGroup        map[Group]Totals
	Total          Totals
	MissingPeriods []indices.Period
	// Errors holds failures other than missing indices, keyed by partida ID.
	Errors map[string]error
}

// Complete reports whether every partida was fully restated.
func (s Summary) Complete() bool { return len(s.MissingPeriods) == 0 && len(s.Errors) == 0 }

// ComputeAll restates every partida and never stops at the first problem.
func (e *Engine) ComputeAll(partidas []Partida) Summary {
	s := Summary{ByGroup: make(map[Group]Totals), Errors: make(map[string]error)}
	var missing []indices.Period
	for _, p := range partidas {
		r, err := e.ComputePartida(p)
		if err != nil && !errors.Is(err, indices.ErrMissingIndex) {
			s.Errors[p.ID] = err
			continue
		}
		s.Results = append(s.Results, r)
		s.ByGroup[p.Group] = s.ByGroup[p.Group].add(r.Totals)
		s.Total = s.Total.add(r.Totals)
		missing = append(missing, r.MissingPeriods...)
	}
	s.MissingPeriods = indices.SortedUnique(missing)
	return s
}
