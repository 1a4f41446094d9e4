// Package notes builds the notes and annexes that accompany the financial
// statements.
package notes

import (
	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/model"
	"github.com/contalivre/contalivre/internal/statements"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

// Row is one line of a note.
type Row struct {
	Code   string
	Name   string
	Amount decimal.Decimal
	Detail string
}

// ComputedNote is a numbered disclosure note.
type ComputedNote struct {
	Number int
	Group  tx.Group // empty for notes not tied to a statement group
	Title  string
	Rows   []Row
	Total  decimal.Decimal
	Text   []string
}

// BuildNotes returns one note per statement group with at least one line,
// numbered in taxonomy order. Lines of accounts without a group are
// collected in a trailing note per section.
func BuildNotes(bs *statements.BalanceSheet, is *statements.IncomeStatement) []ComputedNote {
	byGroup := make(map[tx.Group][]statements.Line)
	var ungroupedKeys []tx.SectionKey
	ungrouped := make(map[tx.SectionKey][]statements.Line)

	collect := func(sections []statements.Section) {
		for _, s := range sections {
			for _, l := range s.Lines {
				if l.Synthetic {
					continue
				}
				if _, ok := tx.Lookup(l.Account.StatementGroup); ok {
					byGroup[l.Account.StatementGroup] = append(byGroup[l.Account.StatementGroup], l)
					continue
				}
				if _, seen := ungrouped[s.Key]; !seen {
					ungroupedKeys = append(ungroupedKeys, s.Key)
				}
				ungrouped[s.Key] = append(ungrouped[s.Key], l)
			}
		}
	}
	if bs != nil {
		collect(bs.Sections())
	}
	if is != nil {
		collect(is.Sections())
	}

	var out []ComputedNote
	for _, d := range tx.All() {
		lines := byGroup[d.Group]
		if len(lines) == 0 {
			continue
		}
		n := noteFromLines(lines)
		n.Group = d.Group
		n.Title = d.Label
		out = append(out, n)
	}
	for _, k := range ungroupedKeys {
		n := noteFromLines(ungrouped[k])
		n.Title = tx.SectionLabel(k) + " (sin rubro)"
		out = append(out, n)
	}
	return Number(out, 1)
}

func noteFromLines(lines []statements.Line) ComputedNote {
	var n ComputedNote
	total := decimal.Zero
	for _, l := range lines {
		n.Rows = append(n.Rows, Row{Code: l.Account.Code, Name: l.Account.Name, Amount: l.Balance})
		total = total.Add(l.Balance)
	}
	n.Total = model.Round2(total)
	return n
}

// Number assigns consecutive numbers starting at first and returns notes.
func Number(notes []ComputedNote, first int) []ComputedNote {
	for i := range notes {
		notes[i].Number = first + i
	}
	return notes
}
