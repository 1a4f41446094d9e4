// Package rt17 values items at current value and computes holding results
// (resultado por tenencia) against their restated base.
package rt17

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/model"
	"github.com/contalivre/contalivre/internal/rt6"
)

// ErrUnknownMethod is returned when a partida names no known method.
var ErrUnknownMethod = errors.New("unknown valuation method")

// Method is a current-value valuation method.
type Method string

const (
	MethodFX         Method = "fx"
	MethodVNR        Method = "vnr"
	MethodVPP        Method = "vpp"
	MethodReposicion Method = "reposicion"
	MethodRevaluo    Method = "revaluo"
	MethodManual     Method = "manual"
	MethodNA         Method = "na"
)

// Methods lists every method.
var Methods = []Method{MethodFX, MethodVNR, MethodVPP, MethodReposicion, MethodRevaluo, MethodManual, MethodNA}

// ParseMethod parses a method name.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMethod, s)
}

// Params holds the method-specific inputs. Unset values are invalid
// NullDecimals.
type Params struct {
	Quantity       decimal.NullDecimal `yaml:"quantity,omitempty"`
	ClosingRate    decimal.NullDecimal `yaml:"closing_rate,omitempty"`
	UnitPrice      decimal.NullDecimal `yaml:"unit_price,omitempty"`
	SellingCosts   decimal.NullDecimal `yaml:"selling_costs,omitempty"`
	OwnershipPct   decimal.NullDecimal `yaml:"ownership_pct,omitempty"`
	InvesteeEquity decimal.NullDecimal `yaml:"investee_equity,omitempty"`
	Value          decimal.NullDecimal `yaml:"value,omitempty"`
}

// Set wraps d as a valid NullDecimal.
func Set(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Partida is an item valued at current value.
type Partida struct {
	ID          string    `yaml:"id"`
	AccountCode string    `yaml:"account_code"`
	Rubro       string    `yaml:"rubro"`
	Group       rt6.Group `yaml:"group"`
	// BaseReference is the homogeneous value computed upstream. It is never
	// modified here.
	BaseReference decimal.Decimal `yaml:"base_reference"`
	Method        Method          `yaml:"method"`
	Params        Params          `yaml:"params,omitempty"`
	Notes         string          `yaml:"notes,omitempty"`
}

// WithMethod returns a copy of p using m.
func (p Partida) WithMethod(m Method) Partida {
	p.Method = m
	return p
}

// WithParams returns a copy of p with params replaced.
func (p Partida) WithParams(params Params) Partida {
	p.Params = params
	return p
}

// Result is the valuation of one partida. When Valid is false the values
// are zero and Missing names the absent parameters.
type Result struct {
	Partida           Partida
	Method            Method // effective method
	CurrentValue      decimal.Decimal
	ResultadoTenencia decimal.Decimal
	Valid             bool
	Missing           []string
}

// Valuate computes the current value of p. Equity partidas are always
// valued with MethodNA. Missing inputs produce an invalid Result, not an
// error.
func Valuate(p Partida) (Result, error) {
	method := p.Method
	if p.Group == rt6.GroupPN {
		method = MethodNA
	}
	r := Result{Partida: p, Method: method}
	pr := p.Params

	var value decimal.Decimal
	switch method {
	case MethodFX:
		r.Missing = missing(map[string]decimal.NullDecimal{"quantity": pr.Quantity, "closing_rate": pr.ClosingRate})
		value = pr.Quantity.Decimal.Mul(pr.ClosingRate.Decimal)
	case MethodVNR:
		r.Missing = missing(map[string]decimal.NullDecimal{"unit_price": pr.UnitPrice, "quantity": pr.Quantity})
		value = pr.UnitPrice.Decimal.Mul(pr.Quantity.Decimal)
		if pr.SellingCosts.Valid {
			value = value.Sub(pr.SellingCosts.Decimal)
		}
	case MethodVPP:
		r.Missing = missing(map[string]decimal.NullDecimal{"ownership_pct": pr.OwnershipPct, "investee_equity": pr.InvesteeEquity})
		value = pr.OwnershipPct.Decimal.Div(decimal.NewFromInt(100)).Mul(pr.InvesteeEquity.Decimal)
	case MethodReposicion, MethodRevaluo, MethodManual:
		r.Missing = missing(map[string]decimal.NullDecimal{"value": pr.Value})
		value = pr.Value.Decimal
	case MethodNA:
		value = p.BaseReference
	default:
		return r, fmt.Errorf("partida %s: %w %q", p.ID, ErrUnknownMethod, p.Method)
	}

	if len(r.Missing) > 0 {
		return r, nil
	}
	r.Valid = true
	r.CurrentValue = model.Round2(value)
	r.ResultadoTenencia = r.CurrentValue.Sub(model.Round2(p.BaseReference))
	return r, nil
}

// missing returns the sorted names of invalid params.
func missing(params map[string]decimal.NullDecimal) []string {
	var out []string
	for name, v := range params {
		if !v.Valid {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Summary aggregates valuations.
type Summary struct {
	Results           []Result
	TotalBase         decimal.Decimal
	TotalCurrentValue decimal.Decimal
	TotalTenencia     decimal.Decimal
	// Invalid lists the IDs of partidas with missing parameters.
	Invalid []string
	Errors  map[string]error
}

// ValuateAll values every partida. Totals cover valid results only.
func ValuateAll(partidas []Partida) Summary {
	s := Summary{Errors: make(map[string]error)}
	for _, p := range partidas {
		r, err := Valuate(p)
		if err != nil {
			s.Errors[p.ID] = err
			continue
		}
		s.Results = append(s.Results, r)
		if !r.Valid {
			s.Invalid = append(s.Invalid, p.ID)
			continue
		}
		s.TotalBase = s.TotalBase.Add(model.Round2(p.BaseReference))
		s.TotalCurrentValue = s.TotalCurrentValue.Add(r.CurrentValue)
		s.TotalTenencia = s.TotalTenencia.Add(r.ResultadoTenencia)
	}
	return s
}

// SuggestMethod maps an RT6 profile to its usual valuation method.
func SuggestMethod(profile rt6.Profile) Method {
	switch profile {
	case rt6.ProfileMonedaExtranjera:
		return MethodFX
	case rt6.ProfileMercaderias:
		return MethodReposicion
	}
	return MethodManual
}

// FromRT6 seeds a partida from an RT6 result, taking its homogeneous total
// as the base reference.
func FromRT6(r rt6.PartidaResult) Partida {
	p := r.Partida
	method := SuggestMethod(p.Profile)
	if p.Group == rt6.GroupPN {
		method = MethodNA
	}
	return Partida{
		ID:            p.ID,
		AccountCode:   p.AccountCode,
		Rubro:         p.Rubro,
		Group:         p.Group,
		BaseReference: r.Totals.Homogeneous,
		Method:        method,
	}
}
