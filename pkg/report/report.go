// Package report defines the derived records produced by the three
// pipeline stages and the assembler that wraps them with run metadata.
//
// All records are produced once per run and never mutated after emission.
// Totals on the report level are always recomputed from the entries by the
// assembler, never trusted from callers.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/insight"
)

// Meta is the run metadata attached to every report.
type Meta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	// IncompleteRun marks a report produced by an aborted run. A partial
	// report is never written as if it were final.
	IncompleteRun bool `json:"incomplete_run,omitempty"`
}

// NewMeta creates run metadata with a fresh run ID.
func NewMeta(month string, year int, now time.Time) Meta {
	return Meta{
		RunID:       uuid.NewString(),
		GeneratedAt: now,
		Month:       month,
		Year:        year,
	}
}

// ValidationEntry is the completeness status of one campus.
type ValidationEntry struct {
	CampusID           campus.ID `json:"campus_id"`
	CampusName         string    `json:"campus_name"`
	HasPublications    bool      `json:"has_publications"`
	PublicationCount   int       `json:"publication_count"`
	HasCurrentMetrics  bool      `json:"has_current_metrics"`
	HasPreviousMetrics bool      `json:"has_previous_metrics"`
	HasScores          bool      `json:"has_platform_scores"`
	// IsComplete is true when publications, current metrics and scores
	// are all present. A missing previous period does not affect
	// completeness, it only makes percentage changes undefined.
	IsComplete bool   `json:"is_complete"`
	Notes      string `json:"notes,omitempty"`
}

// Validation is the stage-1 output.
type Validation struct {
	TotalCampuses      int               `json:"total_campuses"`
	CompleteCampuses   int               `json:"complete_campuses"`
	IncompleteCampuses int               `json:"incomplete_campuses"`
	Validations        []ValidationEntry `json:"validations"`
	Summary            string            `json:"summary,omitempty"`
	Meta               Meta              `json:"metadata"`
}

// Complete returns the IDs of campuses that passed validation, in entry
// order.
func (v *Validation) Complete() []campus.ID {
	var res []campus.ID
	for _, e := range v.Validations {
		if e.IsComplete {
			res = append(res, e.CampusID)
		}
	}
	return res
}

// PctClaim is one percentage statement made by the oracle for one metric.
// The metric names follow the source dataset: "alcance", "interacciones",
// "comentarios".
type PctClaim struct {
	Metric    string  `json:"metric"`
	Direction string  `json:"direction"`
	PctChange float64 `json:"pct_change"`
}

// CategoryClaims are the category words stated in the insight, one per
// scored dimension of the campus totals.
type CategoryClaims struct {
	SaludDeMarca string `json:"salud_de_marca"`
	Visibilidad  string `json:"visibilidad"`
	Resonancia   string `json:"resonancia"`
}

// ComputedChanges are the locally owned percentage changes injected into
// the oracle prompt. They are the ground truth the auditor compares
// claims against.
type ComputedChanges struct {
	Reach        insight.Change `json:"alcance"`
	Interactions insight.Change `json:"interacciones"`
	Comments     insight.Change `json:"comentarios"`
}

// ByMetric returns the computed change for a metric name from the claim
// vocabulary.
func (c ComputedChanges) ByMetric(metric string) (insight.Change, bool) {
	switch metric {
	case "alcance":
		return c.Reach, true
	case "interacciones":
		return c.Interactions, true
	case "comentarios":
		return c.Comments, true
	}
	return insight.Change{}, false
}

// InsightRecord is one generated insight for one complete campus.
type InsightRecord struct {
	CampusID   campus.ID `json:"campus_id"`
	CampusName string    `json:"campus_name"`
	Month      string    `json:"month"`
	Year       int       `json:"year"`
	// InsightText is the oracle-rendered narrative.
	InsightText string `json:"insight_text"`
	// Themes are the publication themes the narrative cites; each must be
	// drawn from the campus top-8 publications.
	Themes []string `json:"themes"`
	// Claims are the numeric statements the oracle committed to.
	Claims []PctClaim `json:"claims"`
	// Categories are the category words the oracle committed to.
	Categories CategoryClaims `json:"categories"`
	// Computed holds the locally computed changes.
	Computed ComputedChanges `json:"computed"`
}

// Insights is the stage-2 output.
type Insights struct {
	TotalInsights int             `json:"total_insights"`
	Insights      []InsightRecord `json:"insights"`
	Meta          Meta            `json:"metadata"`
}

// IssueType classifies a factual discrepancy found by the auditor.
type IssueType string

const (
	IssuePercentage        IssueType = "percentage_error"
	IssueScore             IssueType = "score_error"
	IssuePublication       IssueType = "publication_mismatch"
	IssueCategoriaMismatch IssueType = "categoria_mismatch"
)

// Severity grades a factual discrepancy.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Issue is one factual discrepancy between an insight and the source
// datasets.
type Issue struct {
	IssueType          IssueType `json:"issue_type"`
	IncorrectStatement string    `json:"incorrect_statement"`
	CorrectInformation string    `json:"correct_information"`
	Severity           Severity  `json:"severity"`
}

// QualityEntry is the audit result for one insight.
type QualityEntry struct {
	CampusID       campus.ID `json:"campus_id"`
	CampusName     string    `json:"campus_name"`
	IsAccurate     bool      `json:"is_accurate"`
	IssuesFound    []Issue   `json:"issues_found"`
	VerifiedClaims int       `json:"verified_claims"`
	TotalClaims    int       `json:"total_claims"`
}

// Quality is the stage-3 output.
type Quality struct {
	TotalCampusesChecked int            `json:"total_campuses_checked"`
	AccurateCampuses     int            `json:"accurate_campuses"`
	CampusesWithErrors   int            `json:"campuses_with_errors"`
	TotalIssuesFound     int            `json:"total_issues_found"`
	OverallAccuracyRate  float64        `json:"overall_accuracy_rate"`
	CampusChecks         []QualityEntry `json:"campus_checks"`
	Summary              string         `json:"summary,omitempty"`
	Meta                 Meta           `json:"metadata"`
}
