// Package sdmins defines the contracts between the pipeline stages.
//
// The pipeline is strictly sequential with full context passing:
// Validator → Synthesizer → Auditor. Each stage consumes the previous
// stage's immutable report; no stage starts before its predecessor
// completes. Implementations live in the internal/io* packages.
package sdmins

import (
	"context"

	"github.com/sdmtools/sdmins/pkg/datasets"
	"github.com/sdmtools/sdmins/pkg/report"
)

// Validator checks the three source datasets for per-campus completeness
// against the fixed registry. It makes no network calls and fails only on
// malformed input.
type Validator interface {
	Validate(
		ctx context.Context,
		bundle *datasets.Bundle,
		meta report.Meta,
	) (*report.Validation, error)
}

// Synthesizer produces one insight per complete campus. It owns the
// percentage computations and the structural contract the oracle must
// satisfy; the oracle only selects themes and phrases the narrative.
//
// A report returned together with a non-nil error carries partial results
// with IncompleteRun set in its metadata; it must not be treated as final.
type Synthesizer interface {
	Synthesize(
		ctx context.Context,
		bundle *datasets.Bundle,
		validation *report.Validation,
		meta report.Meta,
	) (*report.Insights, error)
}

// Auditor independently recomputes every claim of every insight against
// the original source datasets and reports discrepancies. Discrepancies
// are data, not errors: the audit always completes, even at 0% accuracy.
type Auditor interface {
	Audit(
		ctx context.Context,
		insights *report.Insights,
		bundle *datasets.Bundle,
		meta report.Meta,
	) (*report.Quality, error)
}
