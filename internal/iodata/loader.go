// Package iodata loads the three preprocessed source datasets from disk.
// This is an impure I/O package; the loaded shapes live in pkg/datasets.
//
// Metrics and scores arrive as single JSON documents. Publications arrive
// as a sequence of independently parseable JSON objects, one line per
// campus, and are read record by record rather than as one structural
// document.
package iodata

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/gnames/gnfmt"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/datasets"
)

type loader struct {
	cfg *config.Config
}

// New creates a dataset loader for the configured paths.
func New(cfg *config.Config) *loader {
	return &loader{cfg: cfg}
}

// Load reads all three datasets and verifies the closed-set invariants.
// Any failure here is fatal for the run; there is no per-campus recovery
// from malformed input.
func (l *loader) Load() (*datasets.Bundle, error) {
	metrics, err := l.LoadMetrics(l.cfg.Datasets.Metrics)
	if err != nil {
		return nil, err
	}

	pubs, err := l.LoadPublications(l.cfg.Datasets.Publications)
	if err != nil {
		return nil, err
	}

	scores, err := l.LoadScores(l.cfg.Datasets.Scores)
	if err != nil {
		return nil, err
	}

	bundle := &datasets.Bundle{
		Metrics:      metrics,
		Publications: pubs,
		Scores:       scores,
	}
	if err := bundle.Validate(); err != nil {
		return nil, UnknownIdentifierError(err)
	}

	slog.Info("Loaded source datasets",
		"metrics", len(metrics.Regions),
		"publications", len(pubs.Campuses),
		"scores", len(scores.Campuses),
	)
	return bundle, nil
}

// LoadMetrics reads the per-campus metrics JSON document.
func (l *loader) LoadMetrics(path string) (*datasets.Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, MetricsReadError(path, err)
	}

	var res datasets.Metrics
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &res); err != nil {
		return nil, MetricsReadError(path, err)
	}
	if len(res.Regions) == 0 {
		return nil, MetricsReadError(path, errEmptyDataset)
	}
	return &res, nil
}

// LoadPublications reads the one-object-per-line publications dataset.
// Blank lines are skipped; any unparseable line is fatal.
func (l *loader) LoadPublications(path string) (*datasets.Publications, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, PublicationsReadError(path, 0, err)
	}
	defer file.Close()

	res := &datasets.Publications{}
	scanner := bufio.NewScanner(file)
	// Campus lines carry up to 8 posts with full text, allow long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec datasets.CampusPublications
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, PublicationsReadError(path, lineNum, err)
		}
		res.Campuses = append(res.Campuses, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, PublicationsReadError(path, lineNum, err)
	}
	if len(res.Campuses) == 0 {
		return nil, PublicationsReadError(path, 0, errEmptyDataset)
	}
	return res, nil
}

// LoadScores reads the per-campus performance scores JSON document.
func (l *loader) LoadScores(path string) (*datasets.Scores, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ScoresReadError(path, err)
	}

	var res datasets.Scores
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &res); err != nil {
		return nil, ScoresReadError(path, err)
	}
	if len(res.Campuses) == 0 {
		return nil, ScoresReadError(path, errEmptyDataset)
	}
	return &res, nil
}
