package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", d)
	}
	return d, nil
}
