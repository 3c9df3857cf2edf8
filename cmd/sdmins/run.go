package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/sdmtools/sdmins/internal/ioarchive"
	"github.com/sdmtools/sdmins/internal/ioaudit"
	"github.com/sdmtools/sdmins/internal/ioreport"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/spf13/cobra"
)

func getRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full validate, insights and audit pipeline",
		Long: `Runs the three stages in order with full context passing: the
insight stage only sees campuses the validation stage marked complete,
and the audit stage re-checks every insight against the same in-memory
datasets the insights were generated from.

Writes all three reports to the output directory and records the run
outcome in the local history (disable with archive.enabled: false).

Examples:
  sdmins run
  sdmins run --month julio --year 2025 -o reports/`,
		RunE: runPipeline,
	}
	addStageFlags(cmd)
	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	start := time.Now()

	validation, insights, err := synthesize(ctx)
	if err != nil {
		return err
	}

	// The audit reuses the loaded datasets' on-disk form; reloading
	// keeps the stage honest about reading the same sources.
	bundle, err := loadBundle()
	if err != nil {
		return err
	}
	quality, err := ioaudit.New(cfg).
		Audit(ctx, insights, bundle, insights.Meta)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	path, err := ioreport.WriteQuality(cfg.Run.OutputDir, quality)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	printQuality(quality, path)

	if cfg.Archive.Enabled {
		recordRun(ctx, validation, insights, quality)
	}

	gn.Info("Pipeline finished in %s: <em>%s</em> campuses checked, "+
		"<em>%s</em> issues found",
		gnfmt.TimeString(time.Since(start).Seconds()),
		humanize.Comma(int64(quality.TotalCampusesChecked)),
		humanize.Comma(int64(quality.TotalIssuesFound)),
	)
	return nil
}

// recordRun archives the run summary. Archive failures never fail a run
// that already produced its reports.
func recordRun(
	ctx context.Context,
	v *report.Validation,
	ins *report.Insights,
	q *report.Quality,
) {
	archive, err := ioarchive.New(config.ArchiveFilePath(cfg.HomeDir))
	if err != nil {
		gn.Warn("Run history unavailable: %v", err)
		return
	}
	defer archive.Close()

	if err = archive.RecordRun(
		ctx, ioarchive.Summarize(v, ins, q),
	); err != nil {
		gn.Warn("Could not record the run: %v", err)
	}
}
