package report

import (
	"fmt"
)

// AssembleValidation wraps validation entries into the stage-1 report.
// Totals and summary are derived from the entries.
func AssembleValidation(entries []ValidationEntry, meta Meta) *Validation {
	res := &Validation{
		Validations: entries,
		Meta:        meta,
	}
	res.TotalCampuses = len(entries)
	for _, e := range entries {
		if e.IsComplete {
			res.CompleteCampuses++
		}
	}
	res.IncompleteCampuses = res.TotalCampuses - res.CompleteCampuses
	res.Summary = fmt.Sprintf(
		"%d of %d campuses have complete data",
		res.CompleteCampuses, res.TotalCampuses,
	)
	return res
}

// AssembleInsights wraps insight records into the stage-2 report.
func AssembleInsights(records []InsightRecord, meta Meta) *Insights {
	return &Insights{
		TotalInsights: len(records),
		Insights:      records,
		Meta:          meta,
	}
}

// AssembleQuality wraps audit entries into the stage-3 report. Totals and
// the accuracy rate are derived from the entries.
func AssembleQuality(checks []QualityEntry, meta Meta) *Quality {
	res := &Quality{
		CampusChecks: checks,
		Meta:         meta,
	}
	res.TotalCampusesChecked = len(checks)
	for _, c := range checks {
		if c.IsAccurate {
			res.AccurateCampuses++
		}
		res.TotalIssuesFound += len(c.IssuesFound)
	}
	res.CampusesWithErrors = res.TotalCampusesChecked - res.AccurateCampuses
	if res.TotalCampusesChecked > 0 {
		res.OverallAccuracyRate = float64(res.AccurateCampuses) /
			float64(res.TotalCampusesChecked) * 100
	}
	res.Summary = fmt.Sprintf(
		"%d of %d insights verified without issues (%d issues found)",
		res.AccurateCampuses, res.TotalCampusesChecked, res.TotalIssuesFound,
	)
	return res
}
