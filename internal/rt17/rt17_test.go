package rt17

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contalivre/contalivre/internal/rt6"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValuate_FX(t *testing.T) {
	p := Partida{
		ID: "usd", Group: rt6.GroupActivo, Method: MethodFX,
		BaseReference: dec("95000"),
		Params:        Params{Quantity: Set(dec("100")), ClosingRate: Set(dec("1050"))},
	}
	r, err := Valuate(p)
	require.NoError(t, err)
	assert.True(t, r.Valid)
	assert.True(t, r.CurrentValue.Equal(dec("105000")))
	assert.True(t, r.ResultadoTenencia.Equal(dec("10000")))
}

func TestValuate_Methods(t *testing.T) {
	tests := []struct {
		name   string
		method Method
		params Params
		want   string
	}{
		{"vnr", MethodVNR, Params{UnitPrice: Set(dec("12.5")), Quantity: Set(dec("100")), SellingCosts: Set(dec("50"))}, "1200"},
		{"vnr without selling costs", MethodVNR, Params{UnitPrice: Set(dec("12.5")), Quantity: Set(dec("100"))}, "1250"},
		{"vpp", MethodVPP, Params{OwnershipPct: Set(dec("30")), InvesteeEquity: Set(dec("10000"))}, "3000"},
		{"reposicion", MethodReposicion, Params{Value: Set(dec("777.777"))}, "777.78"},
		{"revaluo", MethodRevaluo, Params{Value: Set(dec("5000"))}, "5000"},
		{"manual", MethodManual, Params{Value: Set(dec("1"))}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Valuate(Partida{ID: tt.name, Group: rt6.GroupActivo, Method: tt.method, Params: tt.params, BaseReference: dec("1000")})
			require.NoError(t, err)
			require.True(t, r.Valid)
			assert.Equal(t, dec(tt.want).String(), r.CurrentValue.String())
			assert.True(t, r.ResultadoTenencia.Equal(r.CurrentValue.Sub(dec("1000"))))
		})
	}
}

func TestValuate_NAPassesThrough(t *testing.T) {
	r, err := Valuate(Partida{ID: "x", Group: rt6.GroupActivo, Method: MethodNA, BaseReference: dec("4321.10")})
	require.NoError(t, err)
	assert.True(t, r.Valid)
	assert.True(t, r.CurrentValue.Equal(dec("4321.10")))
	assert.True(t, r.ResultadoTenencia.IsZero())
}

func TestValuate_EquityIsAlwaysNA(t *testing.T) {
	r, err := Valuate(Partida{
		ID: "cap", Group: rt6.GroupPN, Method: MethodFX, BaseReference: dec("500"),
		Params: Params{Quantity: Set(dec("1")), ClosingRate: Set(dec("1000"))},
	})
	require.NoError(t, err)
	assert.Equal(t, MethodNA, r.Method)
	assert.True(t, r.CurrentValue.Equal(dec("500")))
	assert.True(t, r.ResultadoTenencia.IsZero())
}

func TestValuate_MissingParams(t *testing.T) {
	r, err := Valuate(Partida{ID: "usd", Group: rt6.GroupActivo, Method: MethodFX, BaseReference: dec("100"),
		Params: Params{Quantity: Set(dec("10"))}})
	require.NoError(t, err)
	assert.False(t, r.Valid)
	assert.Equal(t, []string{"closing_rate"}, r.Missing)
	assert.True(t, r.CurrentValue.IsZero())
	assert.True(t, r.ResultadoTenencia.IsZero())

	r, err = Valuate(Partida{ID: "inv", Group: rt6.GroupActivo, Method: MethodVPP})
	require.NoError(t, err)
	assert.Equal(t, []string{"investee_equity", "ownership_pct"}, r.Missing)
}

func TestValuate_UnknownMethod(t *testing.T) {
	_, err := Valuate(Partida{ID: "x", Group: rt6.GroupActivo, Method: "magic"})
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestValuateAll(t *testing.T) {
	s := ValuateAll([]Partida{
		{ID: "a", Group: rt6.GroupActivo, Method: MethodManual, BaseReference: dec("100"), Params: Params{Value: Set(dec("150"))}},
		{ID: "b", Group: rt6.GroupActivo, Method: MethodFX, BaseReference: dec("100")},
		{ID: "c", Group: rt6.GroupPN, Method: MethodNA, BaseReference: dec("300")},
		{ID: "d", Group: rt6.GroupActivo, Method: "bogus"},
	})
	assert.True(t, s.TotalBase.Equal(dec("400")))
	assert.True(t, s.TotalCurrentValue.Equal(dec("450")))
	assert.True(t, s.TotalTenencia.Equal(dec("50")))
	assert.Equal(t, []string{"b"}, s.Invalid)
	assert.Contains(t, s.Errors, "d")
	assert.Len(t, s.Results, 3)
}

func TestSuggestMethodAndFromRT6(t *testing.T) {
	assert.Equal(t, MethodFX, SuggestMethod(rt6.ProfileMonedaExtranjera))
	assert.Equal(t, MethodReposicion, SuggestMethod(rt6.ProfileMercaderias))
	assert.Equal(t, MethodManual, SuggestMethod(rt6.ProfileGeneric))

	res := rt6.PartidaResult{
		Partida: rt6.Partida{ID: "m", Group: rt6.GroupActivo, Rubro: "Mercaderías", AccountCode: "1.1.04.01", Profile: rt6.ProfileMercaderias},
		Totals:  rt6.Totals{Base: dec("1000"), Homogeneous: dec("1500"), Recpam: dec("500")},
	}
	p := FromRT6(res)
	assert.Equal(t, "m", p.ID)
	assert.Equal(t, MethodReposicion, p.Method)
	assert.True(t, p.BaseReference.Equal(dec("1500")))

	res.Partida.Group = rt6.GroupPN
	assert.Equal(t, MethodNA, FromRT6(res).Method)
}

func TestPartida_WithUpdates(t *testing.T) {
	orig := Partida{ID: "p", Method: MethodManual}
	next := orig.WithMethod(MethodFX).WithParams(Params{ClosingRate: Set(dec("1000"))})
	assert.Equal(t, MethodManual, orig.Method)
	assert.False(t, orig.Params.ClosingRate.Valid)
	assert.Equal(t, MethodFX, next.Method)
	assert.True(t, next.Params.ClosingRate.Valid)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" FX ")
	require.NoError(t, err)
	assert.Equal(t, MethodFX, m)

	_, err = ParseMethod("magic")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestPartidas_YAML(t *testing.T) {
	in := []Partida{{
		ID: "usd", AccountCode: "1.1.01.03", Rubro: "Moneda extranjera", Group: rt6.GroupActivo,
		BaseReference: dec("95000"), Method: MethodFX,
		Params: Params{Quantity: Set(dec("100")), ClosingRate: Set(dec("1050"))},
	}}
	path := filepath.Join(t.TempDir(), "rt17.yaml")
	require.NoError(t, SavePartidas(path, in))

	out, err := LoadPartidas(path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Params.ClosingRate.Valid)
	assert.False(t, out[0].Params.UnitPrice.Valid)

	r, err := Valuate(out[0])
	require.NoError(t, err)
	assert.True(t, r.ResultadoTenencia.Equal(dec("10000")))
}

func TestReadPartidas_UnknownMethod(t *testing.T) {
	_, err := ReadPartidas(strings.NewReader("partidas:\n  - id: a\n    method: magic\n"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
