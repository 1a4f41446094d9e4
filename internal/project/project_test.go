package project

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contalivre/contalivre/internal/config"
	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/journal"
	"github.com/contalivre/contalivre/internal/rt17"
	"github.com/contalivre/contalivre/internal/rt6"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Init(dir, "Almacén", "sa"))
	return dir
}

func TestInit_Layout(t *testing.T) {
	dir := setup(t)
	for _, f := range []string{
		config.FileName,
		"accounts/chart-of-accounts.csv",
		"journal/entries.csv",
		"indices/ipc.csv",
		"adjustments/rt6.yaml",
		"adjustments/rt17.yaml",
		"adjustments/monetary-overrides.yaml",
	} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	assert.Error(t, Init(dir, "Otra", "sa"), "init refuses to overwrite a project")
}

func TestOpen_EmptyProject(t *testing.T) {
	dir := setup(t)
	var logs bytes.Buffer
	p, err := Open(dir, newLogger(&logs))
	require.NoError(t, err)

	assert.Equal(t, "Almacén", p.Config.Business.Name)
	assert.Empty(t, p.Entries)
	require.NotNil(t, p.Indices)
	assert.Zero(t, p.Indices.Len())
	assert.Empty(t, p.RT6)
	assert.Empty(t, p.RT17)
	assert.Empty(t, p.Overrides)
	assert.Contains(t, logs.String(), "project loaded")
}

func TestOpen_MissingConfig(t *testing.T) {
	_, err := Open(t.TempDir(), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProject_Pipeline(t *testing.T) {
	dir := setup(t)
	p, err := Open(dir, nil)
	require.NoError(t, err)

	add := func(d time.Time, debit, credit, amount string) {
		_, err := p.Journal.AddDouble(journal.AddDoubleParams{
			Date: d, Memo: "test", DebitAccount: debit, CreditAccount: credit, Amount: dec(amount),
		})
		require.NoError(t, err)
	}
	add(date(2025, 1, 2), "1.1.01.01", "3.1.01", "10000")
	add(date(2025, 1, 10), "1.1.04.01", "1.1.01.01", "3000")
	add(date(2025, 6, 1), "1.1.01.01", "4.1.01", "5000")

	f, err := os.Create(filepath.Join(dir, "indices", "ipc.csv"))
	require.NoError(t, err)
	var rows []indices.Row
	for m := 1; m <= 12; m++ {
		rows = append(rows, indices.Row{Period: indices.NewPeriod(2025, time.Month(m)), Value: decimal.NewFromInt(int64(100 + 5*(m-1)))})
	}
	require.NoError(t, indices.WriteRows(f, rows))
	require.NoError(t, f.Close())

	require.NoError(t, rt6.SavePartidas(filepath.Join(dir, "adjustments", "rt6.yaml"), []rt6.Partida{{
		ID: "merc", Group: rt6.GroupActivo, Rubro: "Mercaderías", AccountCode: "1.1.04.01", Profile: rt6.ProfileMercaderias,
		Lots: []rt6.Lot{{ID: "l1", OriginDate: date(2025, 1, 10), BaseAmount: dec("3000")}},
	}}))
	require.NoError(t, rt17.SavePartidas(filepath.Join(dir, "adjustments", "rt17.yaml"), []rt17.Partida{{
		ID: "merc", Group: rt6.GroupActivo, Rubro: "Mercaderías", BaseReference: dec("4650"),
		Method: rt17.MethodReposicion, Params: rt17.Params{Value: rt17.Set(dec("5000"))},
	}}))

	var logs bytes.Buffer
	p, err = Open(dir, newLogger(&logs))
	require.NoError(t, err)
	require.Len(t, p.Entries, 3)

	ctx, err := p.Period(2025)
	require.NoError(t, err)

	c := p.Statements(ctx, true)
	require.NotNil(t, c.Current)
	assert.Nil(t, c.Prior)
	assert.True(t, c.Current.BalanceSheet.IsBalanced)
	assert.True(t, c.Current.IncomeStatement.NetIncome.Equal(dec("5000")))

	s, ind, err := p.Inflation(ctx)
	require.NoError(t, err)
	require.Len(t, s.Results, 1)
	// closing index 155 over origin 100
	assert.True(t, s.Total.Homogeneous.Equal(dec("4650")))
	assert.True(t, ind.Complete)
	assert.Len(t, ind.Months, 12)

	v := p.Valuation()
	assert.True(t, v.TotalTenencia.Equal(dec("350")))
	assert.NotContains(t, logs.String(), "level=WARN")
}

func TestProject_InflationWithoutIndices(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "indices", "ipc.csv")))

	p, err := Open(dir, nil)
	require.NoError(t, err)
	assert.Nil(t, p.Indices)

	ctx, err := p.Period(2025)
	require.NoError(t, err)
	_, _, err = p.Inflation(ctx)
	assert.ErrorContains(t, err, "no price index table")
}

func TestProject_InflationMissingClosing(t *testing.T) {
	dir := setup(t)
	p, err := Open(dir, nil)
	require.NoError(t, err)

	ctx, err := p.Period(2025)
	require.NoError(t, err)
	_, _, err = p.Inflation(ctx)
	assert.ErrorIs(t, err, indices.ErrMissingIndex)
}
