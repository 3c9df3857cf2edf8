// Package iosynth implements the Synthesizer interface: one generated
// insight per complete campus. The percentage arithmetic is owned here;
// the oracle only selects themes and phrases the narrative, constrained
// by the fact block of the prompt and a structured reply schema.
package iosynth

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/datasets"
	"github.com/sdmtools/sdmins/pkg/insight"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/sdmtools/sdmins/pkg/sdmins"
)

type synthesizer struct {
	cfg    *config.Config
	oracle sdmins.Oracle
	// progress switches the per-campus progress bar on; disabled in
	// tests.
	progress bool
}

// New creates a new Synthesizer backed by the given oracle.
func New(cfg *config.Config, oracle sdmins.Oracle) sdmins.Synthesizer {
	return &synthesizer{cfg: cfg, oracle: oracle, progress: true}
}

// NewQuiet creates a Synthesizer without a progress bar.
func NewQuiet(cfg *config.Config, oracle sdmins.Oracle) sdmins.Synthesizer {
	return &synthesizer{cfg: cfg, oracle: oracle}
}

// Synthesize produces one insight for every campus the validation report
// marks complete. Campuses with gaps are skipped, never synthesized from
// partial data. Per-campus calls run concurrently; a campus whose oracle
// retries are exhausted fails the whole stage.
//
// If the run is aborted, the partial report is returned with
// IncompleteRun set in its metadata together with the error, so the
// caller can persist it flagged rather than silently truncated.
func (s *synthesizer) Synthesize(
	ctx context.Context,
	bundle *datasets.Bundle,
	validation *report.Validation,
	meta report.Meta,
) (*report.Insights, error) {
	complete := validation.Complete()
	if len(complete) == 0 {
		return nil, NoCompleteCampusesError()
	}

	metrics := bundle.Metrics.ByCampus()
	pubs := bundle.Publications.ByCampus()
	scores := bundle.Scores.ByCampus()

	slog.Info("Starting insight synthesis",
		"campuses", len(complete),
		"provider", s.cfg.Oracle.Provider,
	)
	startTime := time.Now()

	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.Full.Start(len(complete))
		bar.Set("prefix", "Insights ")
		bar.Set(pb.CleanOnFinish, true)
	}

	records := make([]report.InsightRecord, 0, len(complete))
	ch := make(chan report.InsightRecord)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.JobsNumber)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for rec := range ch {
			records = append(records, rec)
			if bar != nil {
				bar.Increment()
			}
		}
	}()

	for _, id := range complete {
		g.Go(func() error {
			rec, err := s.synthesizeCampus(
				gCtx, id, metrics[id], pubs[id], scores[id], meta,
			)
			if err != nil {
				return err
			}
			select {
			case ch <- *rec:
				return nil
			case <-gCtx.Done():
				return gCtx.Err()
			}
		})
	}

	err := g.Wait()
	close(ch)
	<-done
	if bar != nil {
		bar.Finish()
	}

	// Keep report order independent of goroutine scheduling.
	order := make(map[campus.ID]int, len(complete))
	for i, id := range complete {
		order[id] = i
	}
	sort.Slice(records, func(i, j int) bool {
		return order[records[i].CampusID] < order[records[j].CampusID]
	})

	if err != nil {
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			meta.IncompleteRun = true
			partial := report.AssembleInsights(records, meta)
			return partial, CanceledError(len(records), len(complete))
		}
		return nil, err
	}

	// The oracle contract: exactly one insight per complete campus.
	if len(records) != len(complete) {
		return nil, ContractError(len(records), len(complete))
	}

	res := report.AssembleInsights(records, meta)
	slog.Info("Insight synthesis complete",
		"insights", res.TotalInsights,
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return res, nil
}

// synthesizeCampus computes the fact block for one campus, asks the
// oracle to phrase it, and validates the structural contract with a
// bounded retry.
func (s *synthesizer) synthesizeCampus(
	ctx context.Context,
	id campus.ID,
	m datasets.CampusMetrics,
	p datasets.CampusPublications,
	sc datasets.CampusScores,
	meta report.Meta,
) (*report.InsightRecord, error) {
	computed := report.ComputedChanges{
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

	prompt, err := buildPrompt(id, computed, p, sc, meta)
	if err != nil {
		return nil, OracleError(id, err)
	}

	reply, err := s.generateWithRetry(ctx, id, prompt)
	if err != nil {
		return nil, err
	}

	return &report.InsightRecord{
		CampusID:    id,
		CampusName:  id.Name(),
		Month:       meta.Month,
		Year:        meta.Year,
		InsightText: reply.InsightText,
		Themes:      reply.Themes,
		Claims:      reply.Claims,
		Categories:  reply.Categories,
		Computed:    computed,
	}, nil
}

// generateWithRetry calls the oracle with a bounded retry and doubling
// backoff. Malformed structured output is a contract violation and is
// retried; a canceled context is not.
func (s *synthesizer) generateWithRetry(
	ctx context.Context,
	id campus.ID,
	prompt string,
) (*sdmins.InsightReply, error) {
	schema := sdmins.InsightReplySchema()
	delay := time.Duration(s.cfg.Oracle.RetryDelay) * time.Second

	var lastErr error
	for attempt := 1; attempt <= s.cfg.Oracle.MaxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("Retrying oracle call",
				"campus", id, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}

		raw, err := s.oracle.Generate(ctx, prompt, schema)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		reply, err := sdmins.ParseInsightReply(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return reply, nil
	}

	return nil, OracleError(id, lastErr)
}
