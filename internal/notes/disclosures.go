package notes

import (
	"fmt"
	"strings"

	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/model"
	"github.com/contalivre/contalivre/internal/rt17"
	"github.com/contalivre/contalivre/internal/rt6"
)

// InflationNote discloses the restatement of each partida. indirect may be
// nil when no monthly positions were computed.
func InflationNote(s rt6.Summary, indirect *rt6.IndirectResult) ComputedNote {
	n := ComputedNote{Title: "Ajuste por inflación (RT 6)"}
	for _, r := range s.Results {
		detail := fmt.Sprintf("base %s, reexpresado %s", r.Totals.Base.StringFixed(2), r.Totals.Homogeneous.StringFixed(2))
		if !r.Complete() {
			detail += ", incompleto"
		}
		n.Rows = append(n.Rows, Row{
			Code:   r.Partida.AccountCode,
			Name:   r.Partida.Rubro,
			Amount: r.Totals.Recpam,
			Detail: detail,
		})
	}
	n.Total = model.Round2(s.Total.Recpam)

	if len(s.MissingPeriods) > 0 {
		n.Text = append(n.Text, "Faltan índices para: "+periods(s.MissingPeriods)+". Los lotes de esos períodos no se reexpresaron.")
	}
	if indirect != nil {
		n.Text = append(n.Text, fmt.Sprintf("RECPAM estimado por método indirecto: %s.", indirect.Total.StringFixed(2)))
		if !indirect.Complete {
			n.Text = append(n.Text, "El método indirecto excluye los meses sin índice: "+periods(indirect.MissingIndices)+".")
		}
	}
	return n
}

// HoldingNote discloses the holding result of each valued partida.
func HoldingNote(s rt17.Summary) ComputedNote {
	n := ComputedNote{Title: "Resultados por tenencia (RT 17)"}
	for _, r := range s.Results {
		row := Row{Code: r.Partida.AccountCode, Name: r.Partida.Rubro, Detail: string(r.Method)}
		if r.Valid {
			row.Amount = r.ResultadoTenencia
		} else {
			row.Detail += ", faltan: " + strings.Join(r.Missing, ", ")
		}
		n.Rows = append(n.Rows, row)
	}
	n.Total = model.Round2(s.TotalTenencia)
	if len(s.Invalid) > 0 {
		n.Text = append(n.Text, fmt.Sprintf("%d partidas sin datos suficientes para valuar.", len(s.Invalid)))
	}
	return n
}

func periods(ps []indices.Period) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return strings.Join(out, ", ")
}
