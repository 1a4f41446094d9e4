// Package indices holds the monthly price-index table used to restate
// historical amounts into closing-period purchasing power.
package indices

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a calendar year-month, printed as "YYYY-MM".
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod returns a normalized Period (month 13 rolls into the next year).
func NewPeriod(year int, month time.Month) Period {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Year: t.Year(), Month: t.Month()}
}

// PeriodOf truncates a date to its year-month.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return Period{}, fmt.Errorf("invalid period %q want format YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("invalid year in period %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month in period %q", s)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// MustParsePeriod is like ParsePeriod but panics on error.
func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err.Error())
	}
	return p
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Next returns the following month.
func (p Period) Next() Period { return NewPeriod(p.Year, p.Month+1) }

// Prev returns the preceding month.
func (p Period) Prev() Period { return NewPeriod(p.Year, p.Month-1) }

// Compare returns -1, 0 or 1 as p is before, equal to or after q.
func (p Period) Compare(q Period) int {
	switch {
	case p.Year < q.Year, p.Year == q.Year && p.Month < q.Month:
		return -1
	case p == q:
		return 0
	}
	return 1
}

// Before reports whether p is strictly before q.
func (p Period) Before(q Period) bool { return p.Compare(q) < 0 }

// After reports whether p is strictly after q.
func (p Period) After(q Period) bool { return p.Compare(q) > 0 }

// Start returns midnight UTC of the first day of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC of the last day of the month. Use Next().Start()
// as the exclusive bound when comparing timestamps.
func (p Period) End() time.Time {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Range returns every period from p to q inclusive; empty when q < p.
func Range(p, q Period) []Period {
	var out []Period
	for cur := p; !cur.After(q); cur = cur.Next() {
		out = append(out, cur)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
