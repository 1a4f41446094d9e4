package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/ledger"
	"github.com/contalivre/contalivre/internal/monetary"
	"github.com/contalivre/contalivre/internal/notes"
	"github.com/contalivre/contalivre/internal/rt17"
	"github.com/contalivre/contalivre/internal/rt6"
	"github.com/contalivre/contalivre/internal/statements"
)

// WriteLedger renders every account ledger with its movements.
func WriteLedger(w io.Writer, l *ledger.Ledger, f Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1("Libro mayor")
	for _, a := range l.Sorted() {
		doc.H2(fmt.Sprintf("%s %s", a.Account.Code, a.Account.Name))
		rows := make([][]string, 0, len(a.Movements)+1)
		for _, m := range a.Movements {
			desc := m.Description
			if desc == "" {
				desc = m.Memo
			}
			rows = append(rows, []string{
				m.Date.Format("2006-01-02"), m.EntryID, desc,
				f.Blank(m.Debit), f.Blank(m.Credit), f.Amount(m.Balance),
			})
		}
		rows = append(rows, []string{"", "", "Total", f.Amount(a.TotalDebit), f.Amount(a.TotalCredit), f.Amount(a.Balance)})
		doc.Table(md.TableSet{
			Header: []string{"Fecha", "Asiento", "Detalle", "Debe", "Haber", "Saldo"},
			Rows:   rows,
		})
	}
	if l.UnmappedLines > 0 || l.HeaderLines > 0 {
		doc.H2("Advertencias")
		var items []string
		if l.UnmappedLines > 0 {
			items = append(items, fmt.Sprintf("%d líneas con cuentas inexistentes: %s", l.UnmappedLines, strings.Join(l.UnmappedAccountIDs, ", ")))
		}
		if l.HeaderLines > 0 {
			items = append(items, fmt.Sprintf("%d líneas imputadas a cuentas totalizadoras", l.HeaderLines))
		}
		doc.BulletList(items...)
	}
	return doc.Build()
}

// WriteTrialBalance renders the "Balance de Sumas y Saldos".
func WriteTrialBalance(w io.Writer, tb ledger.TrialBalance, f Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1("Balance de sumas y saldos")
	rows := make([][]string, 0, len(tb.Rows)+1)
	for _, r := range tb.Rows {
		rows = append(rows, []string{
			r.Account.Code, r.Account.Name,
			f.Amount(r.SumDebit), f.Amount(r.SumCredit),
			f.Blank(r.BalanceDebit), f.Blank(r.BalanceCredit),
		})
	}
	rows = append(rows, []string{
		"", "Totales",
		f.Amount(tb.TotalSumDebit), f.Amount(tb.TotalSumCredit),
		f.Amount(tb.TotalBalanceDebit), f.Amount(tb.TotalBalanceCredit),
	})
	doc.Table(md.TableSet{
		Header: []string{"Código", "Cuenta", "Debe", "Haber", "Saldo deudor", "Saldo acreedor"},
		Rows:   rows,
	})
	if tb.IsBalanced {
		doc.PlainText("Balance cuadrado.")
	} else {
		doc.PlainText("Balance descuadrado por " + f.Amount(tb.Difference) + ".")
	}
	return doc.Build()
}

// WriteStatements renders both statements. prior may be nil; when present
// a comparative column is added.
func WriteStatements(w io.Writer, cur, prior *statements.Statements, f Formatter) error {
	doc := md.NewMarkdown(w)
	header := []string{"Código", "Cuenta", "Ejercicio actual"}
	if prior != nil {
		header = append(header, "Ejercicio anterior")
	}

	doc.H1("Estado de situación patrimonial")
	if !cur.Period.Start.IsZero() {
		doc.PlainText("Ejercicio " + cur.Period.String())
	}
	var priorBS *statements.BalanceSheet
	if prior != nil {
		priorBS = prior.BalanceSheet
	}
	bsSections := cur.BalanceSheet.Sections()
	for i, s := range bsSections {
		var ps *statements.Section
		if priorBS != nil {
			p := priorBS.Sections()[i]
			ps = &p
		}
		doc.H2(s.Label)
		doc.Table(md.TableSet{Header: header, Rows: sectionRows(s, ps, f)})
	}
	totals := [][]string{
		totalRow("Total activo", cur.BalanceSheet.TotalAssets, bsTotal(priorBS, func(b *statements.BalanceSheet) decimal.Decimal { return b.TotalAssets }), f),
		totalRow("Total pasivo", cur.BalanceSheet.TotalLiabilities, bsTotal(priorBS, func(b *statements.BalanceSheet) decimal.Decimal { return b.TotalLiabilities }), f),
		totalRow("Total patrimonio neto", cur.BalanceSheet.TotalEquity, bsTotal(priorBS, func(b *statements.BalanceSheet) decimal.Decimal { return b.TotalEquity }), f),
		totalRow("Total pasivo y patrimonio neto", cur.BalanceSheet.TotalLiabilitiesAndEquity, bsTotal(priorBS, func(b *statements.BalanceSheet) decimal.Decimal { return b.TotalLiabilitiesAndEquity }), f),
	}
	doc.Table(md.TableSet{Header: header, Rows: totals})

	doc.H1("Estado de resultados")
	var priorIS *statements.IncomeStatement
	if prior != nil {
		priorIS = prior.IncomeStatement
	}
	for i, s := range cur.IncomeStatement.Sections() {
		if s.IsEmpty() {
			continue
		}
		var ps *statements.Section
		if priorIS != nil {
			p := priorIS.Sections()[i]
			ps = &p
		}
		doc.H2(s.Label)
		doc.Table(md.TableSet{Header: header, Rows: sectionRows(s, ps, f)})
	}
	is := cur.IncomeStatement
	isTotal := func(get func(*statements.IncomeStatement) decimal.Decimal) *decimal.Decimal {
		if priorIS == nil {
			return nil
		}
		v := get(priorIS)
		return &v
	}
	doc.Table(md.TableSet{Header: header, Rows: [][]string{
		totalRow("Resultado bruto", is.GrossProfit, isTotal(func(s *statements.IncomeStatement) decimal.Decimal { return s.GrossProfit }), f),
		totalRow("Resultado operativo", is.OperatingIncome, isTotal(func(s *statements.IncomeStatement) decimal.Decimal { return s.OperatingIncome }), f),
		totalRow("Resultados financieros", is.NetFinancialResult, isTotal(func(s *statements.IncomeStatement) decimal.Decimal { return s.NetFinancialResult }), f),
		totalRow("Otros resultados", is.NetOtherResult, isTotal(func(s *statements.IncomeStatement) decimal.Decimal { return s.NetOtherResult }), f),
		totalRow("Resultado del ejercicio", is.NetIncome, isTotal(func(s *statements.IncomeStatement) decimal.Decimal { return s.NetIncome }), f),
	}})

	if warnings := cur.Diagnostics.Warnings(); len(warnings) > 0 {
		doc.H2("Advertencias")
		doc.BulletList(warnings...)
	}
	return doc.Build()
}

func bsTotal(b *statements.BalanceSheet, get func(*statements.BalanceSheet) decimal.Decimal) *decimal.Decimal {
	if b == nil {
		return nil
	}
	v := get(b)
	return &v
}

func totalRow(label string, cur decimal.Decimal, prior *decimal.Decimal, f Formatter) []string {
	row := []string{"", "**" + label + "**", f.Amount(cur)}
	if prior != nil {
		row = append(row, f.Amount(*prior))
	}
	return row
}

// sectionRows lists current lines first, then lines only present in prior.
func sectionRows(cur statements.Section, prior *statements.Section, f Formatter) [][]string {
	priorByKey := map[string]decimal.Decimal{}
	if prior != nil {
		for _, l := range prior.Lines {
			priorByKey[lineKey(l)] = l.Balance
		}
	}
	seen := map[string]bool{}
	var rows [][]string
	for _, l := range cur.Lines {
		row := []string{l.Account.Code, l.Account.Name, f.Amount(l.Balance)}
		if prior != nil {
			row = append(row, f.Blank(priorByKey[lineKey(l)]))
		}
		seen[lineKey(l)] = true
		rows = append(rows, row)
	}
	if prior != nil {
		for _, l := range prior.Lines {
			if seen[lineKey(l)] {
				continue
			}
			rows = append(rows, []string{l.Account.Code, l.Account.Name, "", f.Amount(l.Balance)})
		}
	}

	subtotal := []string{"", "Subtotal", f.Amount(cur.NetTotal)}
	if prior != nil {
		subtotal = append(subtotal, f.Amount(prior.NetTotal))
	}
	return append(rows, subtotal)
}

func lineKey(l statements.Line) string {
	if l.Synthetic {
		return "synthetic"
	}
	return l.Account.ID
}

// WriteNotes renders numbered notes.
func WriteNotes(w io.Writer, ns []notes.ComputedNote, f Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1("Notas a los estados contables")
	for _, n := range ns {
		writeNote(doc, n, f)
	}
	return doc.Build()
}

func writeNote(doc *md.Markdown, n notes.ComputedNote, f Formatter) {
	title := n.Title
	if n.Number > 0 {
		title = fmt.Sprintf("Nota %d. %s", n.Number, n.Title)
	}
	doc.H2(title)
	if len(n.Rows) > 0 {
		rows := make([][]string, 0, len(n.Rows)+1)
		for _, r := range n.Rows {
			rows = append(rows, []string{r.Code, r.Name, r.Detail, f.Amount(r.Amount)})
		}
		rows = append(rows, []string{"", "Total", "", f.Amount(n.Total)})
		doc.Table(md.TableSet{Header: []string{"Código", "Concepto", "Detalle", "Importe"}, Rows: rows})
	}
	for _, t := range n.Text {
		doc.PlainText(t)
	}
}

// WriteAnnexes renders the expense annex, the cost annex and the VAT
// position.
func WriteAnnexes(w io.Writer, ea notes.ExpenseAnnex, ca notes.CostAnnex, vat notes.VATPosition, f Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1("Anexo de gastos")
	rows := make([][]string, 0, len(ea.Rows)+1)
	all := make([]notes.ExpenseRow, 0, len(ea.Rows)+1)
	all = append(all, ea.Rows...)
	for _, r := range append(all, ea.Totals) {
		rows = append(rows, []string{
			r.Code, r.Name,
			f.Blank(r.Cost), f.Blank(r.Admin), f.Blank(r.Selling), f.Blank(r.Financial), f.Blank(r.Other),
			f.Amount(r.Total),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Código", "Cuenta", "Costo", "Administración", "Comercialización", "Financieros", "Otros", "Total"},
		Rows:   rows,
	})

	doc.H1("Anexo de costo de mercaderías vendidas")
	doc.Table(md.TableSet{
		Header: []string{"Concepto", "Importe"},
		Rows: [][]string{
			{"Existencia inicial", f.Amount(ca.OpeningInventory)},
			{"Compras", f.Amount(ca.Purchases)},
			{"Existencia final", f.Amount(ca.ClosingInventory.Neg())},
			{"Costo de mercaderías vendidas", f.Amount(ca.CostOfSales)},
		},
	})

	doc.H1("Posición de IVA")
	status := "a favor"
	if vat.Payable {
		status = "a pagar"
	}
	doc.Table(md.TableSet{
		Header: []string{"Concepto", "Importe"},
		Rows: [][]string{
			{"IVA débito fiscal", f.Amount(vat.Debit)},
			{"IVA crédito fiscal", f.Amount(vat.Credit)},
			{"Saldo " + status, f.Amount(vat.Net.Abs())},
		},
	})
	return doc.Build()
}

// WriteClassification renders the monetary classification of accounts.
func WriteClassification(w io.Writer, cs []monetary.Classification) error {
	doc := md.NewMarkdown(w)
	doc.H1("Clasificación monetaria")
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		class := "Monetaria"
		if c.Class == monetary.NonMonetary {
			class = "No monetaria"
		}
		rule := c.Rule
		if c.Overridden {
			rule += " (manual)"
		}
		rows = append(rows, []string{c.Account.Code, c.Account.Name, class, rule})
	}
	doc.Table(md.TableSet{Header: []string{"Código", "Cuenta", "Clase", "Regla"}, Rows: rows})
	return doc.Build()
}

// WriteRT6 renders the restatement of every partida and, when present,
// the indirect RECPAM by month.
func WriteRT6(w io.Writer, s rt6.Summary, indirect *rt6.IndirectResult, f Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1("Reexpresión en moneda homogénea (RT 6)")
	for _, r := range s.Results {
		doc.H2(fmt.Sprintf("%s (%s)", r.Partida.Rubro, r.Partida.Group))
		rows := make([][]string, 0, len(r.Lots)+1)
		for _, l := range r.Lots {
			if l.Missing {
				rows = append(rows, []string{l.Period.String(), f.Amount(l.Lot.BaseAmount), "sin índice", "", ""})
				continue
			}
			rows = append(rows, []string{
				l.Period.String(), f.Amount(l.Lot.BaseAmount), l.DisplayCoefficient().String(),
				f.Amount(l.Homogeneous), f.Amount(l.Recpam),
			})
		}
		rows = append(rows, []string{"Total", f.Amount(r.Totals.Base), "", f.Amount(r.Totals.Homogeneous), f.Amount(r.Totals.Recpam)})
		doc.Table(md.TableSet{Header: []string{"Origen", "Importe histórico", "Coeficiente", "Importe homogéneo", "RECPAM"}, Rows: rows})
	}

	doc.H2("Totales por grupo")
	rows := [][]string{}
	for _, g := range rt6.Groups {
		t := s.ByGroup[g]
		rows = append(rows, []string{string(g), f.Amount(t.Base), f.Amount(t.Homogeneous), f.Amount(t.Recpam)})
	}
	rows = append(rows, []string{"Total", f.Amount(s.Total.Base), f.Amount(s.Total.Homogeneous), f.Amount(s.Total.Recpam)})
	doc.Table(md.TableSet{Header: []string{"Grupo", "Histórico", "Homogéneo", "RECPAM"}, Rows: rows})

	if indirect != nil {
		doc.H2("RECPAM por método indirecto")
		rows := make([][]string, 0, len(indirect.Months)+1)
		for _, m := range indirect.Months {
			if m.Missing {
				rows = append(rows, []string{m.Period.String(), f.Amount(m.NetPosition), "sin índice", ""})
				continue
			}
			rows = append(rows, []string{m.Period.String(), f.Amount(m.NetPosition), m.Coefficient.Round(6).String(), f.Amount(m.Recpam)})
		}
		rows = append(rows, []string{"Total", "", "", f.Amount(indirect.Total)})
		doc.Table(md.TableSet{Header: []string{"Mes", "Posición monetaria neta", "Coeficiente", "RECPAM"}, Rows: rows})
	}

	var problems []string
	if len(s.MissingPeriods) > 0 {
		problems = append(problems, "Faltan índices para: "+joinPeriods(s.MissingPeriods))
	}
	problems = append(problems, errorItems(s.Errors)...)
	if len(problems) > 0 {
		doc.H2("Advertencias")
		doc.BulletList(problems...)
	}
	return doc.Build()
}

// WriteRT17 renders the current-value valuation of every partida.
func WriteRT17(w io.Writer, s rt17.Summary, f Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1("Valuación a valores corrientes (RT 17)")
	rows := make([][]string, 0, len(s.Results)+1)
	for _, r := range s.Results {
		if !r.Valid {
			rows = append(rows, []string{r.Partida.Rubro, string(r.Method), f.Amount(r.Partida.BaseReference), "faltan: " + strings.Join(r.Missing, ", "), ""})
			continue
		}
		rows = append(rows, []string{r.Partida.Rubro, string(r.Method), f.Amount(r.Partida.BaseReference), f.Amount(r.CurrentValue), f.Amount(r.ResultadoTenencia)})
	}
	rows = append(rows, []string{"Total", "", f.Amount(s.TotalBase), f.Amount(s.TotalCurrentValue), f.Amount(s.TotalTenencia)})
	doc.Table(md.TableSet{Header: []string{"Partida", "Método", "Valor homogéneo", "Valor corriente", "Resultado por tenencia"}, Rows: rows})

	if len(s.Errors) > 0 {
		doc.H2("Errores")
		doc.BulletList(errorItems(s.Errors)...)
	}
	return doc.Build()
}

// WriteDisclosure renders a single unnumbered note such as the inflation
// or holding-result disclosure.
func WriteDisclosure(w io.Writer, n notes.ComputedNote, f Formatter) error {
	doc := md.NewMarkdown(w)
	writeNote(doc, n, f)
	return doc.Build()
}

func errorItems(errs map[string]error) []string {
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]string, len(ids))
	for i, id := range ids {
		items[i] = fmt.Sprintf("%s: %v", id, errs[id])
	}
	return items
}

func joinPeriods(ps []indices.Period) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return strings.Join(out, ", ")
}
