package iosynth

import (
	"fmt"
	"strings"

	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/datasets"
	"github.com/sdmtools/sdmins/pkg/insight"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/sdmtools/sdmins/pkg/sdmins"
)

// buildPrompt renders the insight prompt for one campus: the fixed
// instructions plus the machine-readable fact block holding the only
// values the oracle may state.
func buildPrompt(
	id campus.ID,
	computed report.ComputedChanges,
	pubs datasets.CampusPublications,
	scores datasets.CampusScores,
	meta report.Meta,
) (string, error) {
	data := &sdmins.PromptData{
		CampusID:   string(id),
		CampusName: id.Name(),
		Month:      meta.Month,
		Year:       meta.Year,
		Categories: report.CategoryClaims{
			SaludDeMarca: scores.Totales.SaludDeMarcaCategoria,
			Visibilidad:  scores.Totales.VisibilidadCategoria,
			Resonancia:   scores.Totales.ResonanciaCategoria,
		},
	}

	for metric, c := range map[string]insight.Change{
		"alcance":       computed.Reach,
		"interacciones": computed.Interactions,
		"comentarios":   computed.Comments,
	} {
		if !c.Defined() {
			data.MissingBaselines = append(data.MissingBaselines, metric)
			continue
		}
		data.Claims = append(data.Claims, report.PctClaim{
			Metric:    metric,
			Direction: c.Direction(),
			PctChange: signedRounded(c),
		})
	}
	sortClaims(data)

	for _, p := range pubs.Publications {
		data.ThemePool = append(data.ThemePool, p.Content)
	}

	block, err := data.Encode()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(block)
	return b.String(), nil
}

// signedRounded returns the signed percentage change rounded to one
// decimal, the exact value the narrative must state.
func signedRounded(c insight.Change) float64 {
	if c.Pct == nil {
		return 0
	}
	return insight.Round1(*c.Pct)
}

// sortClaims fixes the claim order (alcance, interacciones, comentarios)
// so prompts are deterministic.
func sortClaims(data *sdmins.PromptData) {
	rank := map[string]int{
		"alcance": 0, "interacciones": 1, "comentarios": 2,
	}
	claims := data.Claims
	for i := range claims {
		for j := i + 1; j < len(claims); j++ {
			if rank[claims[j].Metric] < rank[claims[i].Metric] {
				claims[i], claims[j] = claims[j], claims[i]
			}
		}
	}
	missing := data.MissingBaselines
	for i := range missing {
		for j := i + 1; j < len(missing); j++ {
			if rank[missing[j]] < rank[missing[i]] {
				missing[i], missing[j] = missing[j], missing[i]
			}
		}
	}
}

var instructions = fmt.Sprintf(`Eres un analista de redes sociales universitarias.
Redacta un párrafo de insight en español para el campus indicado.

Reglas estrictas:
  1. Usa únicamente los valores del bloque %s: porcentajes, direcciones
     y categorías. No inventes ni recalcules números.
  2. Cada porcentaje se menciona con su palabra de dirección y su
     magnitud a un decimal, por ejemplo "aumentó un 82.1%%".
  3. Menciona las categorías con su palabra exacta (salud de marca,
     visibilidad, resonancia). Nunca menciones puntajes numéricos de
     calificación.
  4. Cita al menos un tema de publicación tomado literalmente de
     theme_pool. No inventes publicaciones.
  5. Para métricas listadas en missing_baselines indica que no hay
     línea base, sin cifras.

Responde solo con el JSON del esquema solicitado.`,
	sdmins.PromptDataBegin)
