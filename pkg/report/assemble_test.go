package report_test

import (
	"testing"
	"time"

	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeta() report.Meta {
	return report.NewMeta("agosto", 2025,
		time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
}

func TestAssembleValidation(t *testing.T) {
	entries := []report.ValidationEntry{
		{CampusID: campus.MTY, IsComplete: true},
		{CampusID: campus.GDL, IsComplete: true},
		{CampusID: campus.SAL, IsComplete: false},
	}

	res := report.AssembleValidation(entries, testMeta())

	assert.Equal(t, 3, res.TotalCampuses)
	assert.Equal(t, 2, res.CompleteCampuses)
	assert.Equal(t, 1, res.IncompleteCampuses)
	assert.Equal(t,
		res.TotalCampuses,
		res.CompleteCampuses+res.IncompleteCampuses,
	)
	assert.Equal(t, []campus.ID{campus.MTY, campus.GDL}, res.Complete())
	assert.NotEmpty(t, res.Meta.RunID)
}

func TestAssembleValidationDeterministic(t *testing.T) {
	meta := testMeta()
	entries := []report.ValidationEntry{{CampusID: campus.MTY, IsComplete: true}}

	a := report.AssembleValidation(entries, meta)
	b := report.AssembleValidation(entries, meta)
	assert.Equal(t, a, b)
}

func TestAssembleInsights(t *testing.T) {
	recs := []report.InsightRecord{
		{CampusID: campus.MTY},
		{CampusID: campus.PUE},
	}

	res := report.AssembleInsights(recs, testMeta())
	assert.Equal(t, 2, res.TotalInsights)
	assert.Len(t, res.Insights, 2)
}

func TestAssembleQuality(t *testing.T) {
	checks := []report.QualityEntry{
		{CampusID: campus.MTY, IsAccurate: true},
		{CampusID: campus.PUE, IsAccurate: true},
		{CampusID: campus.GDL, IsAccurate: true},
		{
			CampusID: campus.SAL,
			IssuesFound: []report.Issue{
				{IssueType: report.IssuePercentage, Severity: report.SeverityHigh},
				{IssueType: report.IssuePublication, Severity: report.SeverityCritical},
			},
		},
	}

	res := report.AssembleQuality(checks, testMeta())

	assert.Equal(t, 4, res.TotalCampusesChecked)
	assert.Equal(t, 3, res.AccurateCampuses)
	assert.Equal(t, 1, res.CampusesWithErrors)
	assert.Equal(t, 2, res.TotalIssuesFound)
	assert.InDelta(t, 75.0, res.OverallAccuracyRate, 1e-9)
}

func TestAssembleQualityEmpty(t *testing.T) {
	res := report.AssembleQuality(nil, testMeta())
	assert.Zero(t, res.TotalCampusesChecked)
	assert.Zero(t, res.OverallAccuracyRate)
}

func TestComputedByMetric(t *testing.T) {
	c := report.ComputedChanges{}
	for _, metric := range []string{"alcance", "interacciones", "comentarios"} {
		_, ok := c.ByMetric(metric)
		require.True(t, ok, metric)
	}
	_, ok := c.ByMetric("seguidores")
	assert.False(t, ok)
}
