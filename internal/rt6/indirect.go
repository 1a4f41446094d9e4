package rt6

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/fiscal"
	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/model"
)

// MonthlyPosition is the average monetary position of one month.
type MonthlyPosition struct {
	Period              indices.Period
	MonetaryAssets      decimal.Decimal
	MonetaryLiabilities decimal.Decimal
}

// NetPosition is MonetaryAssets - MonetaryLiabilities.
func (m MonthlyPosition) NetPosition() decimal.Decimal {
	return m.MonetaryAssets.Sub(m.MonetaryLiabilities)
}

// IndirectMonth is the RECPAM of one month.
type IndirectMonth struct {
	Period      indices.Period
	NetPosition decimal.Decimal
	Coefficient decimal.Decimal
	Recpam      decimal.Decimal
	Missing     bool
}

// IndirectResult is the RECPAM estimated from monthly net positions.
type IndirectResult struct {
	Months []IndirectMonth
	// Total sums only the months with an index; see MissingIndices.
	Total          decimal.Decimal
	MissingIndices []indices.Period
	Complete       bool
}

// ComputeIndirect computes netPosition × (coefficient − 1) for each month.
// Months without an index are flagged and listed, never assumed to carry
// zero inflation.
func (e *Engine) ComputeIndirect(positions []MonthlyPosition) IndirectResult {
	res := IndirectResult{Months: make([]IndirectMonth, 0, len(positions))}
	var missing []indices.Period
	for _, pos := range positions {
		m := IndirectMonth{Period: pos.Period, NetPosition: model.Round2(pos.NetPosition())}
		coef, err := e.Table.Coefficient(pos.Period, e.Closing)
		if err != nil {
			m.Missing = true
			missing = append(missing, pos.Period)
			res.Months = append(res.Months, m)
			continue
		}
		m.Coefficient = coef
		m.Recpam = model.Round2(m.NetPosition.Mul(coef.Sub(decimal.NewFromInt(1))))
		res.Total = res.Total.Add(m.Recpam)
		res.Months = append(res.Months, m)
	}
	res.Total = model.Round2(res.Total)
	res.MissingIndices = indices.SortedUnique(missing)
	res.Complete = len(res.MissingIndices) == 0
	return res
}

// MonetaryChecker reports whether an account is a monetary item.
type MonetaryChecker interface {
	IsMonetary(a model.Account) bool
}

// BuildMonthlyPositions derives, for every month of ctx, the average of
// the opening and closing monetary asset and liability balances. Balances
// accumulate every entry dated up to the month end, including those before
// ctx.
func BuildMonthlyPositions(entries []model.JournalEntry, accounts []model.Account, classifier MonetaryChecker, ctx fiscal.Context) []MonthlyPosition {
	kinds := make(map[string]model.AccountKind)
	for _, a := range accounts {
		if a.IsHeader {
			continue
		}
		if a.Kind != model.KindAsset && a.Kind != model.KindLiability {
			continue
		}
		if classifier.IsMonetary(a) {
			kinds[a.ID] = a.Kind
		}
	}

	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	var assets, liabilities decimal.Decimal
	next := 0
	advance := func(limit func(model.JournalEntry) bool) {
		for next < len(sorted) && limit(sorted[next]) {
			for _, line := range sorted[next].Lines {
				switch kinds[line.AccountID] {
				case model.KindAsset:
					assets = assets.Add(line.Debit).Sub(line.Credit)
				case model.KindLiability:
					liabilities = liabilities.Add(line.Credit).Sub(line.Debit)
				}
			}
			next++
		}
	}

	advance(func(e model.JournalEntry) bool { return e.Date.Before(ctx.Start) })

	two := decimal.NewFromInt(2)
	months := ctx.Months()
	out := make([]MonthlyPosition, 0, len(months))
	for _, p := range months {
		openA, openL := assets, liabilities
		bound := p.Next().Start()
		advance(func(e model.JournalEntry) bool { return e.Date.Before(bound) })
		out = append(out, MonthlyPosition{
			Period:              p,
			MonetaryAssets:      model.Round2(openA.Add(assets).Div(two)),
			MonetaryLiabilities: model.Round2(openL.Add(liabilities).Div(two)),
		})
	}
	return out
}
