package indices

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMissingIndex is matched by every *MissingIndexError.
var ErrMissingIndex = errors.New("missing price index")

// MissingIndexError reports periods that have no index in the table.
// Callers must not assume a coefficient of 1 for them.
type MissingIndexError struct {
	Periods []Period
}

func (e *MissingIndexError) Error() string {
	names := make([]string, len(e.Periods))
	for i, p := range e.Periods {
		names[i] = p.String()
	}
	return fmt.Sprintf("cannot compute, missing price index for %s", strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrMissingIndex) succeed.
func (e *MissingIndexError) Is(target error) bool {
	return target == ErrMissingIndex
}

// NewMissingIndexError returns an error listing the given periods sorted
// and deduplicated, or nil when there are none.
func NewMissingIndexError(periods ...Period) error {
	ps := SortedUnique(periods)
	if len(ps) == 0 {
		return nil
	}
	return &MissingIndexError{Periods: ps}
}

// SortedUnique returns a sorted copy of periods without duplicates.
func SortedUnique(periods []Period) []Period {
	seen := make(map[Period]bool, len(periods))
	var out []Period
	for _, p := range periods {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Row is one published index value.
type Row struct {
	Period Period
	Value  decimal.Decimal
}

// Table is an immutable, period-ordered set of index values.
type Table struct {
	rows     []Row
	byPeriod map[Period]decimal.Decimal
}

// NewTable validates rows and returns a Table ordered by period.
func NewTable(rows []Row) (*Table, error) {
	t := &Table{byPeriod: make(map[Period]decimal.Decimal, len(rows))}
	for _, r := range rows {
		if _, dup := t.byPeriod[r.Period]; dup {
			return nil, fmt.Errorf("duplicate index for period %s", r.Period)
		}
		if !r.Value.IsPositive() {
			return nil, fmt.Errorf("index for period %s must be positive, got %s", r.Period, r.Value)
		}
		t.byPeriod[r.Period] = r.Value
		t.rows = append(t.rows, r)
	}
	sort.Slice(t.rows, func(i, j int) bool { return t.rows[i].Period.Before(t.rows[j].Period) })
	return t, nil
}

// Rows returns a copy of the rows in period order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of periods in the table.
func (t *Table) Len() int { return len(t.rows) }

// At returns the index for p by exact lookup.
func (t *Table) At(p Period) (decimal.Decimal, bool) {
	v, ok := t.byPeriod[p]
	return v, ok
}

// Latest returns the most recent period in the table.
func (t *Table) Latest() (Period, bool) {
	if len(t.rows) == 0 {
		return Period{}, false
	}
	return t.rows[len(t.rows)-1].Period, true
}

// Coefficient returns index(closing) / index(origin). Missing periods are
// reported as a *MissingIndexError covering both ends when needed.
func (t *Table) Coefficient(origin, closing Period) (decimal.Decimal, error) {
	var missing []Period
	closingIdx, ok := t.At(closing)
	if !ok {
		missing = append(missing, closing)
	}
	originIdx, ok := t.At(origin)
	if !ok {
		missing = append(missing, origin)
	}
	if err := NewMissingIndexError(missing...); err != nil {
		return decimal.Zero, err
	}
	return closingIdx.Div(originIdx), nil
}

// Missing lists the periods between from and to (inclusive) with no index.
func (t *Table) Missing(from, to Period) []Period {
	var out []Period
	for _, p := range Range(from, to) {
		if _, ok := t.byPeriod[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
