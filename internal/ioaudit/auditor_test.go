package ioaudit_test

import (
	"context"
	"testing"
	"time"

	"github.com/sdmtools/sdmins/internal/ioaudit"
	"github.com/sdmtools/sdmins/internal/iooracle"
	"github.com/sdmtools/sdmins/internal/iosynth"
	"github.com/sdmtools/sdmins/internal/iotesting"
	"github.com/sdmtools/sdmins/internal/iovalidate"
	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/datasets"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeline runs validation and stub synthesis over the shared fixture
// bundle and returns everything the auditor consumes.
func pipeline(
	t *testing.T,
) (*config.Config, *datasets.Bundle, *report.Insights, report.Meta) {
	t.Helper()
	cfg := config.New()
	cfg.Oracle.Provider = "stub"
	cfg.Oracle.RetryDelay = 0
	cfg.JobsNumber = 2

	bundle := iotesting.Bundle(t)
	meta := report.NewMeta("agosto", 2025, time.Now())
	ctx := context.Background()

	validation, err := iovalidate.New(cfg).Validate(ctx, bundle, meta)
	require.NoError(t, err)

	s := iosynth.NewQuiet(cfg, iooracle.NewStub())
	insights, err := s.Synthesize(ctx, bundle, validation, meta)
	require.NoError(t, err)
	return cfg, bundle, insights, meta
}

// mty returns a pointer to the Monterrey record inside the report.
func mty(t *testing.T, insights *report.Insights) *report.InsightRecord {
	t.Helper()
	for i := range insights.Insights {
		if insights.Insights[i].CampusID == campus.MTY {
			return &insights.Insights[i]
		}
	}
	t.Fatal("no MTY insight in report")
	return nil
}

func issueTypes(entry report.QualityEntry) []report.IssueType {
	var res []report.IssueType
	for _, is := range entry.IssuesFound {
		res = append(res, is.IssueType)
	}
	return res
}

func TestAuditStubInsightsAreAccurate(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)

	q, err := ioaudit.New(cfg).Audit(
		context.Background(), insights, bundle, meta,
	)
	require.NoError(t, err)

	assert.Equal(t, 3, q.TotalCampusesChecked)
	assert.Equal(t, 3, q.AccurateCampuses)
	assert.Equal(t, 0, q.TotalIssuesFound)
	assert.InDelta(t, 100.0, q.OverallAccuracyRate, 0.001)
	for _, c := range q.CampusChecks {
		assert.True(t, c.IsAccurate, "campus %s", c.CampusID)
		assert.Equal(t, c.TotalClaims, c.VerifiedClaims)
		assert.Greater(t, c.TotalClaims, 0)
	}
}

func TestAuditPercentageErrorSeverity(t *testing.T) {
	tests := []struct {
		msg    string
		stated float64
		issues int
		sev    report.Severity
	}{
		// Reach grew 82.15%; tolerance 3.0, escalation 5.0.
		{"within tolerance", 80.0, 0, ""},
		{"beyond tolerance", 78.5, 1, report.SeverityMedium},
		{"beyond escalation threshold", 76.9, 1, report.SeverityHigh},
	}

	for _, v := range tests {
		cfg, bundle, insights, meta := pipeline(t)
		rec := mty(t, insights)
		for i := range rec.Claims {
			if rec.Claims[i].Metric == "alcance" {
				rec.Claims[i].PctChange = v.stated
			}
		}

		q, err := ioaudit.New(cfg).Audit(
			context.Background(), insights, bundle, meta,
		)
		require.NoError(t, err)

		entry := q.CampusChecks[0]
		require.Len(t, entry.IssuesFound, v.issues, v.msg)
		if v.issues == 0 {
			assert.True(t, entry.IsAccurate, v.msg)
			continue
		}
		assert.False(t, entry.IsAccurate, v.msg)
		assert.Equal(t,
			report.IssuePercentage, entry.IssuesFound[0].IssueType, v.msg)
		assert.Equal(t, v.sev, entry.IssuesFound[0].Severity, v.msg)
		assert.Equal(t,
			entry.TotalClaims-1, entry.VerifiedClaims, v.msg)
	}
}

func TestAuditDirectionMismatch(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)
	rec := mty(t, insights)
	// Comments dropped 20%; claim the opposite direction.
	for i := range rec.Claims {
		if rec.Claims[i].Metric == "comentarios" {
			rec.Claims[i].Direction = "aumentó"
			rec.Claims[i].PctChange = 20.0
		}
	}

	q, err := ioaudit.New(cfg).Audit(
		context.Background(), insights, bundle, meta,
	)
	require.NoError(t, err)

	entry := q.CampusChecks[0]
	require.NotEmpty(t, entry.IssuesFound)
	assert.Contains(t, issueTypes(entry), report.IssuePercentage)
	assert.Contains(t,
		entry.IssuesFound[0].CorrectInformation, "disminuyó")
}

func TestAuditFabricatedBaseline(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)

	// Puebla has no previous-year metrics: any percentage claim for it
	// is fabricated.
	for i := range insights.Insights {
		if insights.Insights[i].CampusID == campus.PUE {
			require.Empty(t, insights.Insights[i].Claims)
			insights.Insights[i].Claims = []report.PctClaim{
				{Metric: "alcance", Direction: "aumentó", PctChange: 12.3},
			}
		}
	}

	q, err := ioaudit.New(cfg).Audit(
		context.Background(), insights, bundle, meta,
	)
	require.NoError(t, err)

	var pue report.QualityEntry
	for _, c := range q.CampusChecks {
		if c.CampusID == campus.PUE {
			pue = c
		}
	}
	require.Len(t, pue.IssuesFound, 1)
	assert.Equal(t, report.IssuePercentage, pue.IssuesFound[0].IssueType)
	assert.Equal(t, report.SeverityHigh, pue.IssuesFound[0].Severity)
	assert.Contains(t,
		pue.IssuesFound[0].CorrectInformation, "undefined")
}

func TestAuditCategoriaMismatch(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)
	rec := mty(t, insights)
	// Actual visibilidad category for Monterrey is "excepcional".
	rec.Categories.Visibilidad = "regular"

	q, err := ioaudit.New(cfg).Audit(
		context.Background(), insights, bundle, meta,
	)
	require.NoError(t, err)

	entry := q.CampusChecks[0]
	require.Len(t, entry.IssuesFound, 1)
	is := entry.IssuesFound[0]
	assert.Equal(t, report.IssueCategoriaMismatch, is.IssueType)
	assert.Equal(t, report.SeverityMedium, is.Severity)
	assert.Contains(t, is.CorrectInformation, "excepcional")
}

func TestAuditPublicationMismatch(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)
	rec := mty(t, insights)
	rec.Themes = append(rec.Themes, "Feria de Ciencias")

	q, err := ioaudit.New(cfg).Audit(
		context.Background(), insights, bundle, meta,
	)
	require.NoError(t, err)

	entry := q.CampusChecks[0]
	require.Len(t, entry.IssuesFound, 1)
	is := entry.IssuesFound[0]
	assert.Equal(t, report.IssuePublication, is.IssueType)
	assert.Equal(t, report.SeverityCritical, is.Severity)
	assert.Contains(t, is.IncorrectStatement, "Feria de Ciencias")
}

func TestAuditScoreLeak(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)
	rec := mty(t, insights)
	// 145 is Monterrey's visibilidad score in the scores dataset.
	rec.InsightText += " El campus alcanzó un puntaje de 145."

	q, err := ioaudit.New(cfg).Audit(
		context.Background(), insights, bundle, meta,
	)
	require.NoError(t, err)

	entry := q.CampusChecks[0]
	require.Len(t, entry.IssuesFound, 1)
	is := entry.IssuesFound[0]
	assert.Equal(t, report.IssueScore, is.IssueType)
	assert.Equal(t, report.SeverityCritical, is.Severity)
	// A narrative-level finding does not change the claim counts.
	assert.Equal(t, entry.TotalClaims, entry.VerifiedClaims)
}

func TestAuditIgnoresPercentagesAndYear(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)
	rec := mty(t, insights)
	// Percentages, decimals and the year are never score leaks even
	// when they collide with score values.
	rec.InsightText += " Creció un 110% respecto a 2025, es decir 130.5 puntos." //nolint:lll

	q, err := ioaudit.New(cfg).Audit(
		context.Background(), insights, bundle, meta,
	)
	require.NoError(t, err)
	assert.True(t, q.CampusChecks[0].IsAccurate)
}

func TestAuditIsIdempotent(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)
	rec := mty(t, insights)
	rec.Categories.Resonancia = "deficiente"

	a := ioaudit.New(cfg)
	first, err := a.Audit(context.Background(), insights, bundle, meta)
	require.NoError(t, err)
	second, err := a.Audit(context.Background(), insights, bundle, meta)
	require.NoError(t, err)

	assert.Equal(t, first.CampusChecks, second.CampusChecks)
	assert.Equal(t, first.TotalIssuesFound, second.TotalIssuesFound)
}

func TestAuditCanceled(t *testing.T) {
	cfg, bundle, insights, meta := pipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ioaudit.New(cfg).Audit(ctx, insights, bundle, meta)
	assert.Error(t, err)
}
