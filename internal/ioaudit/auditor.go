// Package ioaudit implements the Auditor interface: an independent
// recomputation of every claim of every insight against the original
// source datasets. Discrepancies are data, not errors; the audit always
// completes and reports an accuracy rate even at 0%.
package ioaudit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/datasets"
	"github.com/sdmtools/sdmins/pkg/insight"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/sdmtools/sdmins/pkg/sdmins"
)

// severityFor is the base severity per issue type. Within
// percentage_error the configured high-severity threshold escalates
// medium to high; all other types keep their fixed grade.
var severityFor = map[report.IssueType]report.Severity{
	report.IssuePercentage:        report.SeverityMedium,
	report.IssueScore:             report.SeverityCritical,
	report.IssuePublication:       report.SeverityCritical,
	report.IssueCategoriaMismatch: report.SeverityMedium,
}

type auditor struct {
	cfg *config.Config
}

// New creates a new Auditor.
func New(cfg *config.Config) sdmins.Auditor {
	return &auditor{cfg: cfg}
}

// Audit recomputes every percentage, category and theme claim of every
// insight from the source datasets and records the discrepancies. The
// generated narrative is additionally scanned for leaked raw score
// values. Audit never fails on a discrepancy, only on a canceled run.
func (a *auditor) Audit(
	ctx context.Context,
	insights *report.Insights,
	bundle *datasets.Bundle,
	meta report.Meta,
) (*report.Quality, error) {
	metrics := bundle.Metrics.ByCampus()
	pubs := bundle.Publications.ByCampus()
	scores := bundle.Scores.ByCampus()

	slog.Info("Starting quality audit",
		"insights", insights.TotalInsights,
		"tolerance", a.cfg.Audit.PercentageTolerance,
	)
	startTime := time.Now()

	checks := make([]report.QualityEntry, 0, len(insights.Insights))
	for _, rec := range insights.Insights {
		select {
		case <-ctx.Done():
			return nil, CanceledError(len(checks), len(insights.Insights))
		default:
		}

		entry := a.auditInsight(
			rec, metrics[rec.CampusID], pubs[rec.CampusID],
			scores[rec.CampusID],
		)
		checks = append(checks, entry)
	}

	res := report.AssembleQuality(checks, meta)
	slog.Info("Quality audit complete",
		"accurate", res.AccurateCampuses,
		"issues", res.TotalIssuesFound,
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return res, nil
}

// auditInsight verifies one insight record. Every claim counts toward
// total_claims; a claim with no issue counts toward verified_claims.
// The score scan is a narrative-level check and affects is_accurate
// without entering the claim counts.
func (a *auditor) auditInsight(
	rec report.InsightRecord,
	m datasets.CampusMetrics,
	p datasets.CampusPublications,
	sc datasets.CampusScores,
) report.QualityEntry {
	entry := report.QualityEntry{
		CampusID:   rec.CampusID,
		CampusName: rec.CampusName,
	}

	computed := recompute(m)
	for _, claim := range rec.Claims {
		entry.TotalClaims++
		if issue := a.checkPctClaim(claim, computed); issue != nil {
			entry.IssuesFound = append(entry.IssuesFound, *issue)
		} else {
			entry.VerifiedClaims++
		}
	}

	for _, cc := range categoryClaims(rec.Categories, sc.Totales) {
		if cc.stated == "" {
			continue
		}
		entry.TotalClaims++
		if issue := checkCategory(cc); issue != nil {
			entry.IssuesFound = append(entry.IssuesFound, *issue)
		} else {
			entry.VerifiedClaims++
		}
	}

	themePool := make([]string, 0, len(p.Publications))
	for _, pub := range p.Publications {
		themePool = append(themePool, pub.Content)
	}
	for _, theme := range rec.Themes {
		entry.TotalClaims++
		if issue := checkTheme(theme, themePool); issue != nil {
			entry.IssuesFound = append(entry.IssuesFound, *issue)
		} else {
			entry.VerifiedClaims++
		}
	}

	entry.IssuesFound = append(entry.IssuesFound,
		scanScoreLeaks(rec.InsightText, rec.Year, sc.NumericScores())...)

	entry.IsAccurate = len(entry.IssuesFound) == 0
	return entry
}

// recompute derives the ground-truth percentage changes from the source
// metrics. The synthesizer's own computed block is deliberately not
// trusted here.
func recompute(m datasets.CampusMetrics) report.ComputedChanges {
	return report.ComputedChanges{
		Reach: insight.PctChange(
			m.CurrentMonth.ReachTotal,
			m.PreviousYearMonth.ReachTotal,
		),
		Interactions: insight.PctChange(
			float64(m.CurrentMonth.InteractionsTotal),
			float64(m.PreviousYearMonth.InteractionsTotal),
		),
		Comments: insight.PctChange(
			float64(m.CurrentMonth.PostComments),
			float64(m.PreviousYearMonth.PostComments),
		),
	}
}

// checkPctClaim verifies one percentage statement against the
// recomputed change. The absolute difference beyond the configured
// tolerance is a percentage_error; beyond the high-severity threshold
// its severity escalates from medium to high.
func (a *auditor) checkPctClaim(
	claim report.PctClaim,
	computed report.ComputedChanges,
) *report.Issue {
	stated := fmt.Sprintf(
		"%s %s un %.1f%%", claim.Metric, claim.Direction,
		math.Abs(claim.PctChange),
	)

	want, ok := computed.ByMetric(claim.Metric)
	if !ok {
		return &report.Issue{
			IssueType:          report.IssuePercentage,
			IncorrectStatement: stated,
			CorrectInformation: fmt.Sprintf(
				"unknown metric %q, no such value in the source datasets",
				claim.Metric,
			),
			Severity: report.SeverityHigh,
		}
	}

	if !want.Defined() {
		// Claims over an absent baseline are fabrications.
		return &report.Issue{
			IssueType:          report.IssuePercentage,
			IncorrectStatement: stated,
			CorrectInformation: fmt.Sprintf(
				"%s has no previous-year baseline, the change is undefined",
				claim.Metric,
			),
			Severity: report.SeverityHigh,
		}
	}

	correct := fmt.Sprintf(
		"%s %s un %.1f%%", claim.Metric, want.Direction(), want.Magnitude(),
	)

	signed := claim.PctChange
	if claim.Direction == insight.DirectionDown && signed > 0 {
		signed = -signed
	}
	diff := math.Abs(*want.Pct - signed)
	if diff > a.cfg.Audit.PercentageTolerance {
		sev := severityFor[report.IssuePercentage]
		if diff > a.cfg.Audit.HighSeverityThreshold {
			sev = report.SeverityHigh
		}
		return &report.Issue{
			IssueType:          report.IssuePercentage,
			IncorrectStatement: stated,
			CorrectInformation: correct,
			Severity:           sev,
		}
	}

	if claim.Direction != want.Direction() {
		return &report.Issue{
			IssueType:          report.IssuePercentage,
			IncorrectStatement: stated,
			CorrectInformation: correct,
			Severity:           severityFor[report.IssuePercentage],
		}
	}
	return nil
}

type categoryClaim struct {
	dimension string
	stated    string
	want      string
}

func categoryClaims(
	c report.CategoryClaims, totals datasets.PlatformScores,
) []categoryClaim {
	return []categoryClaim{
		{"salud de marca", c.SaludDeMarca, totals.SaludDeMarcaCategoria},
		{"visibilidad", c.Visibilidad, totals.VisibilidadCategoria},
		{"resonancia", c.Resonancia, totals.ResonanciaCategoria},
	}
}

func checkCategory(cc categoryClaim) *report.Issue {
	if strings.EqualFold(cc.stated, cc.want) {
		return nil
	}
	return &report.Issue{
		IssueType: report.IssueCategoriaMismatch,
		IncorrectStatement: fmt.Sprintf(
			"%s %q", cc.dimension, cc.stated,
		),
		CorrectInformation: fmt.Sprintf(
			"the scores dataset grades %s as %q", cc.dimension, cc.want,
		),
		Severity: severityFor[report.IssueCategoriaMismatch],
	}
}

// checkTheme verifies a cited theme against the campus top-8
// publications. A theme matches when it equals a publication text or is
// contained in one, case-folded.
func checkTheme(theme string, pool []string) *report.Issue {
	folded := strings.ToLower(strings.TrimSpace(theme))
	for _, content := range pool {
		c := strings.ToLower(content)
		if c == folded || strings.Contains(c, folded) {
			return nil
		}
	}
	return &report.Issue{
		IssueType: report.IssuePublication,
		IncorrectStatement: fmt.Sprintf(
			"cited publication theme %q", theme,
		),
		CorrectInformation: "not among the campus top-8 publications",
		Severity:           severityFor[report.IssuePublication],
	}
}

var numToken = regexp.MustCompile(`\d+(?:[.,]\d+)?%?`)

// scanScoreLeaks finds raw numeric score values leaked into the
// narrative. Percentages, decimals and the report year are not scores
// and are ignored.
func scanScoreLeaks(text string, year int, scores []int) []report.Issue {
	if len(scores) == 0 {
		return nil
	}
	scoreSet := make(map[int]bool, len(scores))
	for _, s := range scores {
		scoreSet[s] = true
	}

	var issues []report.Issue
	seen := make(map[int]bool)
	for _, tok := range numToken.FindAllString(text, -1) {
		if strings.HasSuffix(tok, "%") ||
			strings.ContainsAny(tok, ".,") {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n == year || seen[n] {
			continue
		}
		if scoreSet[n] {
			seen[n] = true
			issues = append(issues, report.Issue{
				IssueType: report.IssueScore,
				IncorrectStatement: fmt.Sprintf(
					"raw score value %d appears in the narrative", n,
				),
				CorrectInformation: "underlying score values never appear " +
					"in generated prose, only their category words",
				Severity: severityFor[report.IssueScore],
			})
		}
	}
	return issues
}
