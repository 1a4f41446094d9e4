// Package monetary classifies accounts as monetary or non-monetary items
// for inflation restatement.
package monetary

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/contalivre/contalivre/internal/code"
	"github.com/contalivre/contalivre/internal/model"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

// Class is the monetary classification of an account.
type Class string

const (
	Monetary    Class = "monetary"
	NonMonetary Class = "non_monetary"
)

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	return c == Monetary || c == NonMonetary
}

// ParseClass parses a class name.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid monetary class %q", s)
	}
	return c, nil
}

// Rule is one step of the classification cascade.
type Rule struct {
	Name  string
	Match func(model.Account) bool
	Class Class
}

// Rule names reported in Result.Rule.
const (
	RuleKind               = "kind"
	RuleStatementGroup     = "statement_group"
	RuleCodePrefix         = "code_prefix"
	RuleKeywordNonMonetary = "keyword_non_monetary"
	RuleKeywordMonetary    = "keyword_monetary"
	RuleDefault            = "default"
	RuleOverride           = "override"
)

var groupClasses = map[tx.Group]Class{
	tx.CashAndBanks:           Monetary,
	tx.ShortTermInvestments:   Monetary,
	tx.TradeReceivables:       Monetary,
	tx.OtherReceivables:       Monetary,
	tx.VATCredit:              Monetary,
	tx.LongTermReceivables:    Monetary,
	tx.TradePayables:          Monetary,
	tx.BankLoans:              Monetary,
	tx.PayrollLiabilities:     Monetary,
	tx.TaxLiabilities:         Monetary,
	tx.VATDebit:               Monetary,
	tx.OtherLiabilities:       Monetary,
	tx.LongTermLoans:          Monetary,
	tx.Provisions:             Monetary,
	tx.Inventories:            NonMonetary,
	tx.LongTermInvestments:    NonMonetary,
	tx.PropertyPlantEquipment: NonMonetary,
	tx.Intangibles:            NonMonetary,
}

type prefixClass struct {
	prefix string
	class  Class
}

// codePrefixes is matched most specific first.
var codePrefixes = []prefixClass{
	{"1.1.01", Monetary},
	{"1.1.02", Monetary},
	{"1.1.03", Monetary},
	{"1.1.04", NonMonetary},
	{"1.2.01", NonMonetary},
	{"1.2.02", NonMonetary},
	{"1.2.03", NonMonetary},
	{"2.1", Monetary},
	{"2.2", Monetary},
}

var nonMonetaryKeywords = []string{
	"mercaderia", "bienes de cambio", "materia prima", "productos terminados",
	"bienes de uso", "rodado", "inmueble", "maquinaria", "muebles", "instalaciones",
	"amortizacion", "intangible", "marca", "patente", "llave de negocio",
	"participacion", "inversiones permanentes", "anticipo a proveedores",
}

var monetaryKeywords = []string{
	"caja", "banco", "moneda extranjera", "plazo fijo", "deudor", "cliente",
	"documentos a cobrar", "credito", "iva", "impuesto", "proveedor", "acreedor",
	"documentos a pagar", "prestamo", "sueldo", "cargas sociales", "prevision",
}

// DefaultRules returns the classification cascade in evaluation order.
// The first matching rule wins, so the order is part of the result.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			Name:  RuleKind,
			Class: NonMonetary,
			Match: func(a model.Account) bool {
				return a.Kind == model.KindEquity || a.Kind == model.KindIncome || a.Kind == model.KindExpense
			},
		},
		groupRule(Monetary),
		groupRule(NonMonetary),
	}

	prefixes := make([]prefixClass, len(codePrefixes))
	copy(prefixes, codePrefixes)
	sort.SliceStable(prefixes, func(i, j int) bool {
		return code.Level(prefixes[i].prefix) > code.Level(prefixes[j].prefix)
	})
	for _, p := range prefixes {
		p := p
		rules = append(rules, Rule{
			Name:  RuleCodePrefix + ":" + p.prefix,
			Class: p.class,
			Match: func(a model.Account) bool { return code.IsUnder(a.Code, p.prefix) },
		})
	}

	return append(rules,
		Rule{Name: RuleKeywordNonMonetary, Class: NonMonetary, Match: keywordMatcher(nonMonetaryKeywords)},
		Rule{Name: RuleKeywordMonetary, Class: Monetary, Match: keywordMatcher(monetaryKeywords)},
		Rule{Name: RuleDefault, Class: Monetary, Match: func(model.Account) bool { return true }},
	)
}

func groupRule(c Class) Rule {
	return Rule{
		Name:  RuleStatementGroup,
		Class: c,
		Match: func(a model.Account) bool {
			gc, ok := groupClasses[a.StatementGroup]
			return ok && gc == c
		},
	}
}

func keywordMatcher(keywords []string) func(model.Account) bool {
	return func(a model.Account) bool {
		name := Fold(a.Name)
		for _, k := range keywords {
			if strings.Contains(name, k) {
				return true
			}
		}
		return false
	}
}

// Fold lowercases s and strips diacritics so "Mercaderías" matches
// "mercaderias".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
