package ioarchive_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdmtools/sdmins/internal/ioarchive"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openArchive(t *testing.T) *ioarchive.Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	a, err := ioarchive.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func run(id string, at time.Time) ioarchive.RunSummary {
	return ioarchive.RunSummary{
		RunID:            id,
		GeneratedAt:      at,
		Month:            "agosto",
		Year:             2025,
		CompleteCampuses: 18,
		TotalCampuses:    20,
		TotalInsights:    18,
		AccurateCampuses: 17,
		TotalIssues:      2,
		AccuracyRate:     94.4,
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()
	at := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, a.RecordRun(ctx, run("run-1", at)))

	runs, err := a.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "agosto", got.Month)
	assert.Equal(t, 18, got.TotalInsights)
	assert.InDelta(t, 94.4, got.AccuracyRate, 0.001)
	assert.False(t, got.IncompleteRun)
	assert.WithinDuration(t, at, got.GeneratedAt, time.Second)
}

func TestArchiveReverseChronological(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t,
			a.RecordRun(ctx, run(id, base.AddDate(0, i, 0))))
	}

	runs, err := a.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].RunID)
	assert.Equal(t, "mid", runs[1].RunID)
	assert.Equal(t, "old", runs[2].RunID)

	limited, err := a.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].RunID)
}

func TestArchiveDuplicateRunID(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, a.RecordRun(ctx, run("dup", at)))
	assert.Error(t, a.RecordRun(ctx, run("dup", at)))
}

func TestArchiveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	a, err := ioarchive.New(path)
	require.NoError(t, err)
	require.NoError(t, a.RecordRun(ctx, run("persisted", time.Now().UTC())))
	require.NoError(t, a.Close())

	b, err := ioarchive.New(path)
	require.NoError(t, err)
	defer b.Close()

	runs, err := b.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].RunID)
}

func TestSummarize(t *testing.T) {
	meta := report.NewMeta("agosto", 2025, time.Now().UTC())
	v := report.AssembleValidation([]report.ValidationEntry{
		{IsComplete: true}, {IsComplete: false},
	}, meta)
	ins := report.AssembleInsights([]report.InsightRecord{{}}, meta)
	q := report.AssembleQuality([]report.QualityEntry{
		{IsAccurate: true},
	}, meta)

	s := ioarchive.Summarize(v, ins, q)
	assert.Equal(t, meta.RunID, s.RunID)
	assert.Equal(t, 1, s.CompleteCampuses)
	assert.Equal(t, 2, s.TotalCampuses)
	assert.Equal(t, 1, s.TotalInsights)
	assert.Equal(t, 1, s.AccurateCampuses)
	assert.InDelta(t, 100.0, s.AccuracyRate, 0.001)
}
