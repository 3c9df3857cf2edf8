package sdmins

import (
	"encoding/json"
	"fmt"

	"github.com/sdmtools/sdmins/pkg/report"
)

// InsightReply is the structured result the oracle must return for one
// campus. The synthesizer validates its shape (a contract violation
// triggers a bounded retry); the auditor later verifies its truth.
type InsightReply struct {
	InsightText string                `json:"insight_text"`
	Themes      []string              `json:"themes"`
	Claims      []report.PctClaim     `json:"claims"`
	Categories  report.CategoryClaims `json:"categories"`
}

// ParseInsightReply decodes and structurally validates an oracle reply.
// Truthfulness is not checked here; that is the auditor's job.
func ParseInsightReply(raw json.RawMessage) (*InsightReply, error) {
	var res InsightReply
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("malformed oracle reply: %w", err)
	}
	if res.InsightText == "" {
		return nil, fmt.Errorf("oracle reply has empty insight_text")
	}
	if len(res.Themes) == 0 {
		return nil, fmt.Errorf("oracle reply cites no publication themes")
	}
	for _, c := range res.Claims {
		if c.Metric == "" || c.Direction == "" {
			return nil, fmt.Errorf("oracle reply has an incomplete claim")
		}
	}
	if res.Categories.SaludDeMarca == "" ||
		res.Categories.Visibilidad == "" ||
		res.Categories.Resonancia == "" {
		return nil, fmt.Errorf("oracle reply misses a category label")
	}
	return &res, nil
}

// InsightReplySchema returns the reply schema sent to the oracle.
func InsightReplySchema() *Schema {
	pctClaim := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"metric": {
				Type: TypeString,
				Enum: []string{"alcance", "interacciones", "comentarios"},
			},
			"direction": {Type: TypeString},
			"pct_change": {
				Type:        TypeNumber,
				Description: "signed percentage change, one decimal",
			},
		},
		Required: []string{"metric", "direction", "pct_change"},
	}

	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"insight_text": {
				Type:        TypeString,
				Description: "the rendered narrative paragraph",
			},
			"themes": {
				Type:        TypeArray,
				Items:       &Schema{Type: TypeString},
				Description: "publication themes cited in the narrative",
			},
			"claims": {
				Type:  TypeArray,
				Items: pctClaim,
			},
			"categories": {
				Type: TypeObject,
				Properties: map[string]*Schema{
					"salud_de_marca": {Type: TypeString},
					"visibilidad":    {Type: TypeString},
					"resonancia":     {Type: TypeString},
				},
				Required: []string{
					"salud_de_marca", "visibilidad", "resonancia",
				},
			},
		},
		Required: []string{
			"insight_text", "themes", "claims", "categories",
		},
	}
}
