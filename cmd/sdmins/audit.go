package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/internal/ioaudit"
	"github.com/sdmtools/sdmins/internal/ioreport"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/spf13/cobra"
)

var flagInsightsPath string

func getAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Fact-check a generated insights report",
		Long: `Recomputes every claim of every insight in an existing insights
report against the original source datasets: percentage changes,
direction words, category labels, cited publication themes and leaked
raw score values.

Discrepancies are data, not errors. The audit always completes and
reports an accuracy rate, even at 0%; the severity of each issue is
recorded in quality_report.json.

By default the insights report is read from the output directory; use
--insights to audit a report stored elsewhere.

Examples:
  sdmins audit
  sdmins audit --insights reports/insights_report.json`,
		RunE: runAudit,
	}
	addStageFlags(cmd)
	cmd.Flags().StringVar(&flagInsightsPath, "insights", "",
		"path to an insights report (default: <output>/insights_report.json)")
	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)
	ctx := context.Background()

	path := flagInsightsPath
	if path == "" {
		path = filepath.Join(cfg.Run.OutputDir, ioreport.FileInsights)
	}
	insights, err := ioreport.ReadInsights(path)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	bundle, err := loadBundle()
	if err != nil {
		return err
	}

	meta := report.NewMeta(cfg.Run.Month, cfg.Run.Year, time.Now())
	quality, err := ioaudit.New(cfg).Audit(ctx, insights, bundle, meta)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	outPath, err := ioreport.WriteQuality(cfg.Run.OutputDir, quality)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	printQuality(quality, outPath)
	return nil
}

func printQuality(q *report.Quality, path string) {
	reportHeader("Quality audit")
	gn.Info("%s", q.Summary)
	gn.Info("Overall accuracy: <em>%.1f%%</em>", q.OverallAccuracyRate)
	for _, c := range q.CampusChecks {
		if c.IsAccurate {
			continue
		}
		gn.Warn("  <em>%s</em> (%s): %d issues",
			c.CampusID, c.CampusName, len(c.IssuesFound))
		for _, is := range c.IssuesFound {
			gn.Warn("    [%s/%s] %s",
				is.IssueType, is.Severity, is.IncorrectStatement)
		}
	}
	gn.Info("Report written to <em>%s</em>", path)
}
