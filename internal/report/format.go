// Package report renders computed statements as markdown.
package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders amounts in one currency.
type Formatter struct {
	cur money.Currency
}

// NewFormatter returns a formatter for an ISO 4217 code. Unknown codes
// are rendered with go-money's fallback currency.
func NewFormatter(code string) Formatter {
	// money.New never returns a nil currency.
	return Formatter{cur: *money.New(0, code).Currency()}
}

// Code returns the currency code.
func (f Formatter) Code() string { return f.cur.Code }

// Amount formats d with the currency's grapheme and separators.
func (f Formatter) Amount(d decimal.Decimal) string {
	minor := d.Shift(int32(f.cur.Fraction)).Round(0)
	return f.cur.Formatter().Format(minor.IntPart())
}

// Blank formats d, or returns "" when d is zero.
func (f Formatter) Blank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return f.Amount(d)
}
