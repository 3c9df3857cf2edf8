// Package datasets defines the shapes of the three preprocessed source
// datasets consumed by the pipeline: per-campus metrics, per-campus top
// publications, and per-campus performance scores.
//
// The types mirror the files produced by the external preprocessing
// collaborators and are never mutated after loading. Field names in JSON
// tags follow the upstream export format.
package datasets

import (
	"fmt"

	"github.com/sdmtools/sdmins/pkg/campus"
)

// PeriodMetrics holds the numeric metrics for one campus in one period.
type PeriodMetrics struct {
	PostComments      int     `json:"POST_COMMENTS__SUM"`
	ReachTotal        float64 `json:"ALCANCE_TOTAL"`
	PublicationVolume int     `json:"VOLUMEN_DE_PUBLICACIONES"`
	InteractionsTotal int     `json:"INTERACCIONES_TOTALES"`
}

// IsZero reports whether all metric fields are zero. The preprocessing
// step fills missing periods with zeros, so a zero payload counts as
// missing rather than present.
func (m PeriodMetrics) IsZero() bool {
	return m.PostComments == 0 && m.ReachTotal == 0 &&
		m.PublicationVolume == 0 && m.InteractionsTotal == 0
}

// CampusMetrics holds current-month and previous-year-month metrics for
// one campus.
type CampusMetrics struct {
	CampusID          string        `json:"campus_id"`
	CampusName        string        `json:"campus_name"`
	CurrentMonth      PeriodMetrics `json:"current_month"`
	PreviousYearMonth PeriodMetrics `json:"previous_year_month"`
}

// Metrics is the root structure of the metrics JSON document.
type Metrics struct {
	Regions  []CampusMetrics `json:"regions"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// ByCampus returns the metrics keyed by campus ID.
func (m *Metrics) ByCampus() map[campus.ID]CampusMetrics {
	res := make(map[campus.ID]CampusMetrics, len(m.Regions))
	for _, r := range m.Regions {
		res[campus.ID(r.CampusID)] = r
	}
	return res
}

// Publication is one top social-media post for a campus.
type Publication struct {
	// Platform is the social network, "instagram" or "facebook".
	Platform string `json:"platform"`
	// Content is the text of the post; generated insights may only cite
	// themes drawn from these texts.
	Content       string `json:"content"`
	Interacciones int    `json:"interacciones"`
	Alcance       int    `json:"alcance"`
	// EngagementScore is (interacciones × 10) + alcance, computed by the
	// preprocessing step and used for the top-8 ranking.
	EngagementScore int `json:"engagement_score"`
}

// CampusPublications is the ranked top-8 list (up to 4 Instagram and
// 4 Facebook posts) for one campus. It is delivered as one JSON object
// per line in the publications dataset.
type CampusPublications struct {
	CampusID     string        `json:"campus_id"`
	Publications []Publication `json:"publications"`
}

// Publications is the loaded publications dataset keyed by campus.
type Publications struct {
	Campuses []CampusPublications
}

// ByCampus returns the publication lists keyed by campus ID.
func (p *Publications) ByCampus() map[campus.ID]CampusPublications {
	res := make(map[campus.ID]CampusPublications, len(p.Campuses))
	for _, c := range p.Campuses {
		res[campus.ID(c.CampusID)] = c
	}
	return res
}

// PlatformScores holds the per-dimension numeric scores and their category
// labels for one platform. Nil score means the dimension was not measured.
type PlatformScores struct {
	Visibilidad            *int   `json:"visibilidad"`
	VisibilidadCategoria   string `json:"visibilidad_categoria,omitempty"`
	Resonancia             *int   `json:"resonancia"`
	ResonanciaCategoria    string `json:"resonancia_categoria,omitempty"`
	Permanencia            *int   `json:"permanencia"`
	PermanenciaCategoria   string `json:"permanencia_categoria,omitempty"`
	Sentimiento            *int   `json:"sentimiento"`
	SentimientoCategoria   string `json:"sentimiento_categoria,omitempty"`
	SaludDeMarca           *int   `json:"salud_de_marca"`
	SaludDeMarcaCategoria  string `json:"salud_de_marca_categoria,omitempty"`
}

// IsZero reports whether no dimension carries a score or a category.
func (p PlatformScores) IsZero() bool {
	return p.Visibilidad == nil && p.Resonancia == nil &&
		p.Permanencia == nil && p.Sentimiento == nil &&
		p.SaludDeMarca == nil &&
		p.VisibilidadCategoria == "" && p.ResonanciaCategoria == "" &&
		p.PermanenciaCategoria == "" && p.SentimientoCategoria == "" &&
		p.SaludDeMarcaCategoria == ""
}

// numericValues returns the defined numeric scores of the platform.
func (p PlatformScores) numericValues() []int {
	var res []int
	for _, v := range []*int{
		p.Visibilidad, p.Resonancia, p.Permanencia,
		p.Sentimiento, p.SaludDeMarca,
	} {
		if v != nil {
			res = append(res, *v)
		}
	}
	return res
}

// CampusScores holds the performance scores for one campus across
// platforms. Totales aggregates all platforms and is the source of the
// category labels cited in insights.
type CampusScores struct {
	CampusID   string         `json:"campus_id"`
	CampusName string         `json:"campus_name"`
	Facebook   PlatformScores `json:"facebook"`
	Twitter    PlatformScores `json:"twitter"`
	Instagram  PlatformScores `json:"instagram"`
	Totales    PlatformScores `json:"totales"`
}

// NumericScores returns every defined underlying numeric score of the
// campus across all platforms. The auditor uses this set to detect raw
// score values leaked into generated prose.
func (c CampusScores) NumericScores() []int {
	var res []int
	for _, p := range []PlatformScores{
		c.Facebook, c.Twitter, c.Instagram, c.Totales,
	} {
		res = append(res, p.numericValues()...)
	}
	return res
}

// Scores is the root structure of the scores JSON document.
type Scores struct {
	Campuses []CampusScores `json:"campuses"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ByCampus returns the scores keyed by campus ID.
func (s *Scores) ByCampus() map[campus.ID]CampusScores {
	res := make(map[campus.ID]CampusScores, len(s.Campuses))
	for _, c := range s.Campuses {
		res[campus.ID(c.CampusID)] = c
	}
	return res
}

// Bundle carries the three loaded datasets through the pipeline stages.
// It is immutable after loading.
type Bundle struct {
	Metrics      *Metrics
	Publications *Publications
	Scores       *Scores
}

// Validate checks the closed-set invariants: every campus ID must belong
// to the registry and every category word to the vocabulary. A violation
// is a fatal input error, not a completeness gap.
func (b *Bundle) Validate() error {
	for _, r := range b.Metrics.Regions {
		if _, err := campus.Parse(r.CampusID); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	for _, c := range b.Publications.Campuses {
		if _, err := campus.Parse(c.CampusID); err != nil {
			return fmt.Errorf("publications: %w", err)
		}
	}
	for _, c := range b.Scores.Campuses {
		if _, err := campus.Parse(c.CampusID); err != nil {
			return fmt.Errorf("scores: %w", err)
		}
		for _, p := range []PlatformScores{
			c.Facebook, c.Twitter, c.Instagram, c.Totales,
		} {
			for _, cat := range []string{
				p.VisibilidadCategoria, p.ResonanciaCategoria,
				p.PermanenciaCategoria, p.SentimientoCategoria,
				p.SaludDeMarcaCategoria,
			} {
				if cat == "" {
					continue
				}
				if _, err := campus.ParseCategory(cat); err != nil {
					return fmt.Errorf("scores %s: %w", c.CampusID, err)
				}
			}
		}
	}
	return nil
}
