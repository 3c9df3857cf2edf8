package sdmins_test

import (
	"encoding/json"
	"testing"

	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/sdmtools/sdmins/pkg/sdmins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptDataRoundTrip(t *testing.T) {
	data := &sdmins.PromptData{
		CampusID:   "MTY",
		CampusName: "Monterrey",
		Month:      "agosto",
		Year:       2025,
		Claims: []report.PctClaim{
			{Metric: "alcance", Direction: "aumentó", PctChange: 82.1},
		},
		Categories: report.CategoryClaims{
			SaludDeMarca: "sobresaliente",
			Visibilidad:  "excepcional",
			Resonancia:   "satisfactorio",
		},
		ThemePool:        []string{"Feria del libro", "Torneo de robótica"},
		MissingBaselines: []string{"comentarios"},
	}

	block, err := data.Encode()
	require.NoError(t, err)

	prompt := "Genera un insight.\n\n" + block + "\n\nResponde en JSON."
	got, err := sdmins.ExtractPromptData(prompt)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestExtractPromptDataMissingBlock(t *testing.T) {
	_, err := sdmins.ExtractPromptData("no data here")
	assert.Error(t, err)

	_, err = sdmins.ExtractPromptData(sdmins.PromptDataBegin + "\n{}")
	assert.Error(t, err)
}

func TestParseInsightReply(t *testing.T) {
	valid := sdmins.InsightReply{
		InsightText: "En agosto 2025, Monterrey mantuvo un desempeño sobresaliente.",
		Themes:      []string{"Feria del libro"},
		Claims: []report.PctClaim{
			{Metric: "alcance", Direction: "aumentó", PctChange: 82.1},
		},
		Categories: report.CategoryClaims{
			SaludDeMarca: "sobresaliente",
			Visibilidad:  "excepcional",
			Resonancia:   "satisfactorio",
		},
	}

	raw, err := json.Marshal(valid)
	require.NoError(t, err)
	got, err := sdmins.ParseInsightReply(raw)
	require.NoError(t, err)
	assert.Equal(t, valid.InsightText, got.InsightText)

	tests := []struct {
		msg    string
		mutate func(r *sdmins.InsightReply)
	}{
		{"empty text", func(r *sdmins.InsightReply) { r.InsightText = "" }},
		{"no themes", func(r *sdmins.InsightReply) { r.Themes = nil }},
		{
			"incomplete claim",
			func(r *sdmins.InsightReply) { r.Claims[0].Direction = "" },
		},
		{
			"missing category",
			func(r *sdmins.InsightReply) { r.Categories.Resonancia = "" },
		},
	}

	for _, v := range tests {
		bad := valid
		bad.Themes = append([]string{}, valid.Themes...)
		bad.Claims = append([]report.PctClaim{}, valid.Claims...)
		v.mutate(&bad)
		raw, err := json.Marshal(bad)
		require.NoError(t, err, v.msg)
		_, err = sdmins.ParseInsightReply(raw)
		assert.Error(t, err, v.msg)
	}

	_, err = sdmins.ParseInsightReply([]byte("not json"))
	assert.Error(t, err)
}
