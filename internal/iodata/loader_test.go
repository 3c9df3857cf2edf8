package iodata_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdmtools/sdmins/internal/iodata"
	"github.com/sdmtools/sdmins/internal/iotesting"
	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	m, p, s := iotesting.WriteDatasets(t, dir, iotesting.Bundle(t))

	cfg := config.New()
	cfg.Datasets.Metrics = m
	cfg.Datasets.Publications = p
	cfg.Datasets.Scores = s
	return cfg
}

func TestLoadBundle(t *testing.T) {
	cfg := writeFixture(t)

	bundle, err := iodata.New(cfg).Load()
	require.NoError(t, err)

	metrics := bundle.Metrics.ByCampus()
	mty, ok := metrics[campus.MTY]
	require.True(t, ok)
	assert.InDelta(t, 1000.0, mty.CurrentMonth.ReachTotal, 0.001)
	assert.InDelta(t, 549.0, mty.PreviousYearMonth.ReachTotal, 0.001)

	pubs := bundle.Publications.ByCampus()
	assert.NotEmpty(t, pubs[campus.MTY].Publications)

	scores := bundle.Scores.ByCampus()
	require.Contains(t, scores, campus.MTY)
	require.NotNil(t, scores[campus.MTY].Totales.Visibilidad)
	assert.Equal(t, 145, *scores[campus.MTY].Totales.Visibilidad)
	assert.Equal(t,
		"excepcional", scores[campus.MTY].Totales.VisibilidadCategoria)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := writeFixture(t)
	cfg.Datasets.Metrics = filepath.Join(t.TempDir(), "no-such.json")

	_, err := iodata.New(cfg).Load()
	assert.Error(t, err)
}

func TestLoadEmptyMetrics(t *testing.T) {
	cfg := writeFixture(t)
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t,
		os.WriteFile(path, []byte(`{"regions": []}`), 0644))
	cfg.Datasets.Metrics = path

	_, err := iodata.New(cfg).Load()
	assert.Error(t, err)
}

func TestLoadPublicationsBadLine(t *testing.T) {
	cfg := writeFixture(t)

	// Corrupt the third line of the publications file.
	data, err := os.ReadFile(cfg.Datasets.Publications)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	lines[2] = `{"campus_id": "GDL", "publications": [`

	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t,
		os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
	cfg.Datasets.Publications = path

	_, err = iodata.New(cfg).Load()
	require.Error(t, err)
	// The error names the offending line.
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadPublicationsSkipsBlankLines(t *testing.T) {
	cfg := writeFixture(t)

	data, err := os.ReadFile(cfg.Datasets.Publications)
	require.NoError(t, err)
	padded := "\n" + strings.ReplaceAll(string(data), "\n", "\n\n")

	path := filepath.Join(t.TempDir(), "padded.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(padded), 0644))
	cfg.Datasets.Publications = path

	bundle, err := iodata.New(cfg).Load()
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.Publications.Campuses)
}

func TestLoadRejectsUnknownCampus(t *testing.T) {
	cfg := writeFixture(t)

	data, err := os.ReadFile(cfg.Datasets.Metrics)
	require.NoError(t, err)
	mutated := strings.Replace(string(data), `"MTY"`, `"XXX"`, 1)

	path := filepath.Join(t.TempDir(), "unknown.json")
	require.NoError(t, os.WriteFile(path, []byte(mutated), 0644))
	cfg.Datasets.Metrics = path

	_, err = iodata.New(cfg).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XXX")
}
