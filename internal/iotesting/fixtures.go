// Package iotesting provides shared fixtures for pipeline tests: a small
// but complete dataset bundle and helpers that render it in the on-disk
// source formats.
package iotesting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdmtools/sdmins/pkg/datasets"
)

// Campuses in the fixture bundle:
//   - MTY, GDL: complete, with previous-year baselines
//   - PUE: complete, but no previous-year metrics (undefined changes)
//   - SAL: publications missing
//   - QRO: scores present but empty (counts as missing)
//
// All other registry campuses are absent from every dataset.

func intPtr(i int) *int { return &i }

// Bundle returns the fixture dataset bundle. The returned value is fresh
// on every call; tests may mutate it freely.
func Bundle(t *testing.T) *datasets.Bundle {
	t.Helper()

	metrics := &datasets.Metrics{
		Regions: []datasets.CampusMetrics{
			{
				CampusID:   "MTY",
				CampusName: "Monterrey",
				CurrentMonth: datasets.PeriodMetrics{
					PostComments:      320,
					ReachTotal:        1000,
					PublicationVolume: 42,
					InteractionsTotal: 5400,
				},
				PreviousYearMonth: datasets.PeriodMetrics{
					PostComments:      400,
					ReachTotal:        549,
					PublicationVolume: 38,
					InteractionsTotal: 4500,
				},
			},
			{
				CampusID:   "GDL",
				CampusName: "Guadalajara",
				CurrentMonth: datasets.PeriodMetrics{
					PostComments:      150,
					ReachTotal:        800,
					PublicationVolume: 30,
					InteractionsTotal: 2000,
				},
				PreviousYearMonth: datasets.PeriodMetrics{
					PostComments:      200,
					ReachTotal:        1000,
					PublicationVolume: 33,
					InteractionsTotal: 2500,
				},
			},
			{
				CampusID:   "PUE",
				CampusName: "Puebla",
				CurrentMonth: datasets.PeriodMetrics{
					PostComments:      90,
					ReachTotal:        600,
					PublicationVolume: 25,
					InteractionsTotal: 1200,
				},
				// Zero previous period: baseline missing.
			},
			{
				CampusID:   "SAL",
				CampusName: "Saltillo",
				CurrentMonth: datasets.PeriodMetrics{
					PostComments:      10,
					ReachTotal:        100,
					PublicationVolume: 5,
					InteractionsTotal: 200,
				},
				PreviousYearMonth: datasets.PeriodMetrics{
					PostComments:      12,
					ReachTotal:        110,
					PublicationVolume: 6,
					InteractionsTotal: 220,
				},
			},
			{
				CampusID:   "QRO",
				CampusName: "Querétaro",
				CurrentMonth: datasets.PeriodMetrics{
					PostComments:      20,
					ReachTotal:        300,
					PublicationVolume: 12,
					InteractionsTotal: 500,
				},
			},
		},
	}

	pubs := &datasets.Publications{
		Campuses: []datasets.CampusPublications{
			{
				CampusID: "MTY",
				Publications: []datasets.Publication{
					pub("instagram", "Feria del libro en el campus", 500, 4000),
					pub("instagram", "Torneo de robótica estudiantil", 450, 3500),
					pub("facebook", "Semana de bienvenida agosto", 300, 5000),
					pub("facebook", "Graduación generación 2025", 280, 4500),
				},
			},
			{
				CampusID: "GDL",
				Publications: []datasets.Publication{
					pub("instagram", "Festival cultural de verano", 200, 2500),
					pub("facebook", "Charla de emprendimiento", 150, 1800),
				},
			},
			{
				CampusID: "PUE",
				Publications: []datasets.Publication{
					pub("instagram", "Concurso de fotografía", 90, 900),
				},
			},
			{
				CampusID: "QRO",
				Publications: []datasets.Publication{
					pub("facebook", "Jornada deportiva", 40, 600),
				},
			},
		},
	}

	scores := &datasets.Scores{
		Campuses: []datasets.CampusScores{
			{
				CampusID:   "MTY",
				CampusName: "Monterrey",
				Totales: datasets.PlatformScores{
					Visibilidad:           intPtr(145),
					VisibilidadCategoria:  "excepcional",
					Resonancia:            intPtr(110),
					ResonanciaCategoria:   "satisfactorio",
					SaludDeMarca:          intPtr(130),
					SaludDeMarcaCategoria: "sobresaliente",
				},
				Instagram: datasets.PlatformScores{
					SaludDeMarca:          intPtr(125),
					SaludDeMarcaCategoria: "sobresaliente",
				},
			},
			{
				CampusID:   "GDL",
				CampusName: "Guadalajara",
				Totales: datasets.PlatformScores{
					Visibilidad:           intPtr(90),
					VisibilidadCategoria:  "regular",
					Resonancia:            intPtr(105),
					ResonanciaCategoria:   "satisfactorio",
					SaludDeMarca:          intPtr(98),
					SaludDeMarcaCategoria: "regular",
				},
			},
			{
				CampusID:   "PUE",
				CampusName: "Puebla",
				Totales: datasets.PlatformScores{
					Visibilidad:           intPtr(70),
					VisibilidadCategoria:  "deficiente",
					Resonancia:            intPtr(80),
					ResonanciaCategoria:   "regular",
					SaludDeMarca:          intPtr(76),
					SaludDeMarcaCategoria: "regular",
				},
			},
			{
				CampusID:   "SAL",
				CampusName: "Saltillo",
				Totales: datasets.PlatformScores{
					Visibilidad:           intPtr(82),
					VisibilidadCategoria:  "regular",
					Resonancia:            intPtr(77),
					ResonanciaCategoria:   "regular",
					SaludDeMarca:          intPtr(79),
					SaludDeMarcaCategoria: "regular",
				},
			},
			{
				CampusID:   "QRO",
				CampusName: "Querétaro",
				// All dimensions empty: counts as missing.
			},
		},
	}

	return &datasets.Bundle{
		Metrics:      metrics,
		Publications: pubs,
		Scores:       scores,
	}
}

func pub(platform, content string, inter, alcance int) datasets.Publication {
	return datasets.Publication{
		Platform:        platform,
		Content:         content,
		Interacciones:   inter,
		Alcance:         alcance,
		EngagementScore: inter*10 + alcance,
	}
}

// WriteDatasets renders the bundle into the three on-disk source formats
// inside dir and returns the three file paths (metrics, publications,
// scores).
func WriteDatasets(
	t *testing.T, dir string, b *datasets.Bundle,
) (string, string, string) {
	t.Helper()

	metricsPath := filepath.Join(dir, "metrics.json")
	writeJSON(t, metricsPath, b.Metrics)

	pubsPath := filepath.Join(dir, "publications.jsonl")
	var lines []byte
	for _, c := range b.Publications.Campuses {
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("cannot marshal publications: %v", err)
		}
		lines = append(lines, data...)
		lines = append(lines, '\n')
	}
	if err := os.WriteFile(pubsPath, lines, 0644); err != nil {
		t.Fatalf("cannot write %s: %v", pubsPath, err)
	}

	scoresPath := filepath.Join(dir, "scores.json")
	writeJSON(t, scoresPath, b.Scores)

	return metricsPath, pubsPath, scoresPath
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("cannot marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("cannot write %s: %v", path, err)
	}
}

// ExpectedReachPct is the known percentage change of MTY reach in the
// fixture: (1000-549)/549*100.
func ExpectedReachPct() float64 {
	return (1000.0 - 549.0) / 549.0 * 100
}
