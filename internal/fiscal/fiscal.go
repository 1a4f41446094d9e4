// Package fiscal describes the accounting period every computation runs
// against. A Context is passed explicitly into each pipeline call.
package fiscal

import (
	"fmt"
	"time"

	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/model"
)

const dateFormat = "2006-01-02"

// Context is a closed date interval [Start, End] at day granularity.
type Context struct {
	Start time.Time
	End   time.Time
}

// NewContext returns the context between two dates, inclusive.
func NewContext(start, end time.Time) (Context, error) {
	start, end = truncate(start), truncate(end)
	if end.Before(start) {
		return Context{}, fmt.Errorf("period end %s before start %s", end.Format(dateFormat), start.Format(dateFormat))
	}
	return Context{Start: start, End: end}, nil
}

// ForYear returns the fiscal year that closes in closingYear, given the
// year start as "MM-DD" (e.g. "01-01", "07-01").
func ForYear(closingYear int, yearStart string) (Context, error) {
	md, err := time.Parse("01-02", yearStart)
	if err != nil {
		return Context{}, fmt.Errorf("invalid fiscal year start %q want MM-DD: %w", yearStart, err)
	}
	month, day := md.Month(), md.Day()
	startYear := closingYear
	if month != time.January || day != 1 {
		startYear--
	}
	start := time.Date(startYear, month, day, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return Context{Start: start, End: end}, nil
}

// Contains reports whether t falls within the context.
func (c Context) Contains(t time.Time) bool {
	d := truncate(t)
	return !d.Before(c.Start) && !d.After(c.End)
}

// Filter returns the entries dated inside the context, keeping their order.
func (c Context) Filter(entries []model.JournalEntry) []model.JournalEntry {
	var out []model.JournalEntry
	for _, e := range entries {
		if c.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Closing returns the year-month of the closing date.
func (c Context) Closing() indices.Period {
	return indices.PeriodOf(c.End)
}

// Months returns every year-month the context touches.
func (c Context) Months() []indices.Period {
	return indices.Range(indices.PeriodOf(c.Start), indices.PeriodOf(c.End))
}

// Prior returns the context of the same length ending the day before Start.
func (c Context) Prior() Context {
	end := c.Start.AddDate(0, 0, -1)
	return Context{Start: c.Start.AddDate(-1, 0, 0), End: end}
}

func (c Context) String() string {
	return c.Start.Format(dateFormat) + ".." + c.End.Format(dateFormat)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
