package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contalivre/contalivre/internal/accounts"
	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/model"
	"github.com/contalivre/contalivre/internal/monetary"
	"github.com/contalivre/contalivre/internal/notes"
	"github.com/contalivre/contalivre/internal/rt17"
	"github.com/contalivre/contalivre/internal/rt6"
	"github.com/contalivre/contalivre/internal/statements"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(id string, d time.Time, debitAcct, creditAcct, amount string) model.JournalEntry {
	return model.JournalEntry{
		ID: id, Date: d, Memo: "asiento " + id,
		Lines: []model.JournalLine{
			{AccountID: debitAcct, Debit: dec(amount)},
			{AccountID: creditAcct, Credit: dec(amount)},
		},
	}
}

func fixture() (*ledger.Ledger, *statements.Statements) {
	chart := accounts.DefaultChart()
	d := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		entry("e1", d, "1.1.01.01", "3.1.01", "10000"),
		entry("e2", d, "1.1.01.01", "4.1.01", "2500"),
		entry("e3", d, "5.2.03", "1.1.01.01", "500"),
	}
	l := ledger.ComputeLedger(entries, chart)
	tb := ledger.ComputeTrialBalance(l, chart)
	return l, statements.Compute(tb, statements.Options{})
}

func TestFormatter(t *testing.T) {
	usd := NewFormatter("USD")
	assert.Equal(t, "USD", usd.Code())
	assert.Equal(t, "$1,234.56", usd.Amount(dec("1234.56")))
	assert.Equal(t, "$0.01", usd.Amount(dec("0.005")))
	assert.Equal(t, "", usd.Blank(decimal.Zero))

	ars := NewFormatter("ARS").Amount(dec("1234.56"))
	assert.Contains(t, ars, "234")
	assert.Contains(t, ars, "56")
}

func TestWriteLedger(t *testing.T) {
	l, _ := fixture()
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, l, NewFormatter("USD")))

	out := buf.String()
	assert.Contains(t, out, "# Libro mayor")
	assert.Contains(t, out, "1.1.01.01 Caja")
	assert.Contains(t, out, "asiento e1")
	assert.Contains(t, out, "$12,000.00")
}

func TestWriteTrialBalance(t *testing.T) {
	_, st := fixture()
	var buf bytes.Buffer
	require.NoError(t, WriteTrialBalance(&buf, st.TrialBalance, NewFormatter("USD")))

	out := buf.String()
	assert.Contains(t, out, "Balance de sumas y saldos")
	assert.Contains(t, out, "Totales")
	assert.Contains(t, out, "Balance cuadrado.")
}

func TestWriteStatements(t *testing.T) {
	_, st := fixture()
	var buf bytes.Buffer
	require.NoError(t, WriteStatements(&buf, st, nil, NewFormatter("USD")))

	out := buf.String()
	assert.Contains(t, out, "Estado de situación patrimonial")
	assert.Contains(t, out, "Activo corriente")
	assert.Contains(t, out, statements.NetIncomeGainLabel)
	assert.Contains(t, out, "Resultado del ejercicio")
	assert.Contains(t, out, "$2,000.00")
	assert.NotContains(t, out, "Ejercicio anterior")
	assert.NotContains(t, out, "Advertencias")
}

func TestWriteStatements_Comparative(t *testing.T) {
	_, st := fixture()
	_, prior := fixture()
	var buf bytes.Buffer
	require.NoError(t, WriteStatements(&buf, st, prior, NewFormatter("USD")))
	assert.Contains(t, buf.String(), "Ejercicio anterior")
}

func TestWriteNotesAndAnnexes(t *testing.T) {
	_, st := fixture()
	f := NewFormatter("USD")

	var buf bytes.Buffer
	require.NoError(t, WriteNotes(&buf, notes.BuildNotes(st.BalanceSheet, st.IncomeStatement), f))
	assert.Contains(t, buf.String(), "Nota 1. Caja y bancos")

	buf.Reset()
	ea := notes.BuildExpenseAnnex(st.IncomeStatement)
	ca := notes.BuildCostAnnex(st.BalanceSheet, nil, st.IncomeStatement)
	vat := notes.BuildVATPosition(st.TrialBalance)
	require.NoError(t, WriteAnnexes(&buf, ea, ca, vat, f))
	out := buf.String()
	assert.Contains(t, out, "Anexo de gastos")
	assert.Contains(t, out, "Alquileres")
	assert.Contains(t, out, "Posición de IVA")
}

func TestWriteClassification(t *testing.T) {
	cs := monetary.NewClassifier(nil).WithOverride("1.1.01.03", monetary.NonMonetary).ClassifyAll(accounts.DefaultChart())
	var buf bytes.Buffer
	require.NoError(t, WriteClassification(&buf, cs))
	out := buf.String()
	assert.Contains(t, out, "No monetaria")
	assert.Contains(t, out, "override (manual)")
}

func TestWriteRT6AndRT17(t *testing.T) {
	tbl, err := indices.NewTable([]indices.Row{
		{Period: indices.MustParsePeriod("2025-01"), Value: dec("100")},
		{Period: indices.MustParsePeriod("2025-12"), Value: dec("150")},
	})
	require.NoError(t, err)
	e, err := rt6.NewEngine(tbl, indices.MustParsePeriod("2025-12"))
	require.NoError(t, err)

	s := e.ComputeAll([]rt6.Partida{{
		ID: "m", Group: rt6.GroupActivo, Rubro: "Mercaderías",
		Lots: []rt6.Lot{
			{OriginDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), BaseAmount: dec("1000")},
			{OriginDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), BaseAmount: dec("1")},
		},
	}})
	ind := e.ComputeIndirect([]rt6.MonthlyPosition{{Period: indices.MustParsePeriod("2025-01"), MonetaryAssets: dec("100")}})

	f := NewFormatter("USD")
	var buf bytes.Buffer
	require.NoError(t, WriteRT6(&buf, s, &ind, f))
	out := buf.String()
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "$1,500.00")
	assert.Contains(t, out, "sin índice")
	assert.Contains(t, out, "Faltan índices para: 2025-03")
	assert.Contains(t, out, "RECPAM por método indirecto")

	buf.Reset()
	vs := rt17.ValuateAll([]rt17.Partida{
		rt17.FromRT6(s.Results[0]).WithMethod(rt17.MethodManual).WithParams(rt17.Params{Value: rt17.Set(dec("1600"))}),
	})
	require.NoError(t, WriteRT17(&buf, vs, f))
	assert.Contains(t, buf.String(), "$100.00")

	buf.Reset()
	require.NoError(t, WriteDisclosure(&buf, notes.HoldingNote(vs), f))
	assert.Contains(t, buf.String(), "Resultados por tenencia")
}
