// Package iovalidate implements the Validator interface: the
// completeness check of the three source datasets against the campus
// registry. No network calls; the only failure mode is malformed input,
// which the loader already rejects.
package iovalidate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/datasets"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/sdmtools/sdmins/pkg/sdmins"
)

type validator struct {
	cfg *config.Config
}

// New creates a new Validator.
func New(cfg *config.Config) sdmins.Validator {
	return &validator{cfg: cfg}
}

// Validate checks every campus of the registry for membership in each of
// the three datasets. A key present with an empty or zero payload counts
// as missing, not present.
func (v *validator) Validate(
	ctx context.Context,
	bundle *datasets.Bundle,
	meta report.Meta,
) (*report.Validation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := bundle.Metrics.ByCampus()
	pubs := bundle.Publications.ByCampus()
	scores := bundle.Scores.ByCampus()

	entries := make([]report.ValidationEntry, 0, campus.Count)
	for _, id := range campus.All() {
		entry := report.ValidationEntry{
			CampusID:   id,
			CampusName: id.Name(),
		}

		if p, ok := pubs[id]; ok && len(p.Publications) > 0 {
			entry.HasPublications = true
			entry.PublicationCount = len(p.Publications)
		}

		if m, ok := metrics[id]; ok {
			entry.HasCurrentMetrics = !m.CurrentMonth.IsZero()
			entry.HasPreviousMetrics = !m.PreviousYearMonth.IsZero()
		}

		if s, ok := scores[id]; ok && !s.Totales.IsZero() {
			entry.HasScores = true
		}

		entry.IsComplete = entry.HasPublications &&
			entry.HasCurrentMetrics && entry.HasScores
		entry.Notes = notes(entry)
		entries = append(entries, entry)
	}

	res := report.AssembleValidation(entries, meta)
	slog.Info("Validation complete",
		"total", res.TotalCampuses,
		"complete", res.CompleteCampuses,
		"incomplete", res.IncompleteCampuses,
	)
	return res, nil
}

// notes summarizes the gaps of an incomplete campus for the report.
func notes(e report.ValidationEntry) string {
	var missing []string
	if !e.HasPublications {
		missing = append(missing, "publications")
	}
	if !e.HasCurrentMetrics {
		missing = append(missing, "current metrics")
	}
	if !e.HasScores {
		missing = append(missing, "scores")
	}
	if len(missing) > 0 {
		return fmt.Sprintf("missing %s", strings.Join(missing, ", "))
	}
	if !e.HasPreviousMetrics {
		return "no previous-year baseline, percentage changes undefined"
	}
	return ""
}
