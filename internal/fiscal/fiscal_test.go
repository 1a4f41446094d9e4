package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contalivre/contalivre/internal/model"
)

func day(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func TestForYearCalendar(t *testing.T) {
	ctx, err := ForYear(2025, "01-01")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 1, 1), ctx.Start)
	assert.Equal(t, day(2025, 12, 31), ctx.End)
	assert.Equal(t, "2025-12", ctx.Closing().String())
	assert.Len(t, ctx.Months(), 12)
}

func TestForYearShifted(t *testing.T) {
	ctx, err := ForYear(2025, "07-01")
	require.NoError(t, err)
	assert.Equal(t, day(2024, 7, 1), ctx.Start)
	assert.Equal(t, day(2025, 6, 30), ctx.End)
	assert.Equal(t, "2024-07", ctx.Months()[0].String())
}

func TestForYearInvalid(t *testing.T) {
	for _, s := range []string{"", "13-01", "1-1x", "00-10"} {
		_, err := ForYear(2025, s)
		assert.Error(t, err, "ForYear(%q)", s)
	}
}

func TestFilterAndPrior(t *testing.T) {
	ctx, err := ForYear(2025, "01-01")
	require.NoError(t, err)

	entries := []model.JournalEntry{
		{ID: "a", Date: day(2024, 12, 31)},
		{ID: "b", Date: day(2025, 1, 1)},
		{ID: "c", Date: time.Date(2025, 12, 31, 18, 30, 0, 0, time.UTC)},
		{ID: "d", Date: day(2026, 1, 1)},
	}
	got := ctx.Filter(entries)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	prior := ctx.Prior()
	assert.Equal(t, day(2024, 1, 1), prior.Start)
	assert.Equal(t, day(2024, 12, 31), prior.End)
	assert.Equal(t, "2024-01-01..2024-12-31", prior.String())
}

func TestNewContext(t *testing.T) {
	_, err := NewContext(day(2025, 2, 1), day(2025, 1, 1))
	assert.Error(t, err)
	ctx, err := NewContext(day(2025, 1, 1), day(2025, 3, 31))
	require.NoError(t, err)
	assert.True(t, ctx.Contains(day(2025, 3, 31)))
	assert.False(t, ctx.Contains(day(2025, 4, 1)))
}
