package ioreport_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdmtools/sdmins/internal/ioreport"
	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInsights() *report.Insights {
	meta := report.NewMeta("agosto", 2025, time.Now().UTC())
	recs := []report.InsightRecord{
		{
			CampusID:    campus.MTY,
			CampusName:  campus.MTY.Name(),
			Month:       "agosto",
			Year:        2025,
			InsightText: "En agosto 2025, Monterrey registró…",
			Themes:      []string{"Bienvenida semestral"},
			Claims: []report.PctClaim{
				{Metric: "alcance", Direction: "aumentó", PctChange: 82.1},
			},
		},
	}
	return report.AssembleInsights(recs, meta)
}

func TestWriteInsightsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := ioreport.WriteInsights(dir, sampleInsights())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ioreport.FileInsights), path)

	got, err := ioreport.ReadInsights(path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalInsights)
	assert.Equal(t, campus.MTY, got.Insights[0].CampusID)
	assert.Equal(t, "agosto", got.Meta.Month)
	require.Len(t, got.Insights[0].Claims, 1)
	assert.InDelta(t, 82.1, got.Insights[0].Claims[0].PctChange, 0.001)
}

func TestWriteIsPretty(t *testing.T) {
	dir := t.TempDir()

	path, err := ioreport.WriteInsights(dir, sampleInsights())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  "),
		"report files are indented for human reading")
}

func TestWriteValidationAndQuality(t *testing.T) {
	dir := t.TempDir()
	meta := report.NewMeta("agosto", 2025, time.Now().UTC())

	v := report.AssembleValidation([]report.ValidationEntry{
		{CampusID: campus.MTY, CampusName: campus.MTY.Name(), IsComplete: true},
	}, meta)
	path, err := ioreport.WriteValidation(dir, v)
	require.NoError(t, err)
	gotV, err := ioreport.ReadValidation(path)
	require.NoError(t, err)
	assert.Equal(t, 1, gotV.CompleteCampuses)

	q := report.AssembleQuality([]report.QualityEntry{
		{CampusID: campus.MTY, IsAccurate: true},
	}, meta)
	_, err = ioreport.WriteQuality(dir, q)
	require.NoError(t, err)
}

func TestReadInsightsMissing(t *testing.T) {
	_, err := ioreport.ReadInsights(
		filepath.Join(t.TempDir(), "no-such.json"),
	)
	assert.Error(t, err)
}

func TestReadInsightsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ioreport.FileInsights)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := ioreport.ReadInsights(path)
	assert.Error(t, err)
}
