package iovalidate_test

import (
	"context"
	"testing"
	"time"

	"github.com/sdmtools/sdmins/internal/iotesting"
	"github.com/sdmtools/sdmins/internal/iovalidate"
	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidation(t *testing.T) *report.Validation {
	t.Helper()
	v := iovalidate.New(config.New())
	meta := report.NewMeta("agosto", 2025, time.Now())
	res, err := v.Validate(context.Background(), iotesting.Bundle(t), meta)
	require.NoError(t, err)
	return res
}

func TestValidateTotals(t *testing.T) {
	res := runValidation(t)

	assert.Equal(t, campus.Count, res.TotalCampuses)
	assert.Equal(t, 3, res.CompleteCampuses)
	assert.Equal(t, campus.Count-3, res.IncompleteCampuses)
	assert.Equal(t,
		res.TotalCampuses,
		res.CompleteCampuses+res.IncompleteCampuses,
	)
	assert.Len(t, res.Validations, campus.Count)
}

func TestValidateEntries(t *testing.T) {
	res := runValidation(t)

	byID := make(map[campus.ID]report.ValidationEntry)
	for _, e := range res.Validations {
		byID[e.CampusID] = e
	}

	mty := byID[campus.MTY]
	assert.True(t, mty.IsComplete)
	assert.True(t, mty.HasPreviousMetrics)
	assert.Equal(t, 4, mty.PublicationCount)
	assert.Empty(t, mty.Notes)

	// Complete but without a previous-year baseline.
	pue := byID[campus.PUE]
	assert.True(t, pue.IsComplete)
	assert.False(t, pue.HasPreviousMetrics)
	assert.Contains(t, pue.Notes, "baseline")

	// Publications missing.
	sal := byID[campus.SAL]
	assert.False(t, sal.IsComplete)
	assert.False(t, sal.HasPublications)
	assert.True(t, sal.HasCurrentMetrics)
	assert.Contains(t, sal.Notes, "publications")

	// Scores record exists but its payload is empty: counts as missing.
	qro := byID[campus.QRO]
	assert.False(t, qro.IsComplete)
	assert.False(t, qro.HasScores)
	assert.Contains(t, qro.Notes, "scores")

	// Campus absent from every dataset.
	son := byID[campus.SON]
	assert.False(t, son.IsComplete)
	assert.False(t, son.HasPublications)
	assert.False(t, son.HasCurrentMetrics)
	assert.False(t, son.HasScores)
}

func TestValidateCompleteList(t *testing.T) {
	res := runValidation(t)
	assert.Equal(t,
		[]campus.ID{campus.MTY, campus.PUE, campus.GDL},
		res.Complete(),
	)
}

func TestValidateCanceledContext(t *testing.T) {
	v := iovalidate.New(config.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	meta := report.NewMeta("agosto", 2025, time.Now())
	_, err := v.Validate(ctx, iotesting.Bundle(t), meta)
	assert.Error(t, err)
}
