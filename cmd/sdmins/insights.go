package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/sdmtools/sdmins/internal/ioreport"
	"github.com/sdmtools/sdmins/internal/iosynth"
	"github.com/sdmtools/sdmins/internal/iovalidate"
	"github.com/spf13/cobra"

	"github.com/sdmtools/sdmins/pkg/report"
)

func getInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate one verified insight per complete campus",
		Long: `Validates the source datasets and generates a monthly insight for
every complete campus. All year-over-year percentages are computed
locally from the metrics; the language model receives them as fixed
facts and only selects themes and phrases the narrative.

Generation runs concurrently with bounded retries per campus. An
interrupted run writes the partial report flagged incomplete_run and
exits non-zero.

Writes validation_report.json and insights_report.json to the output
directory.

Examples:
  sdmins insights
  sdmins insights --month julio -o reports/
  SDMINS_ORACLE_PROVIDER=stub sdmins insights`,
		RunE: runInsights,
	}
	addStageFlags(cmd)
	return cmd
}

func runInsights(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	_, _, err := synthesize(ctx)
	return err
}

// synthesize runs stages 1 and 2 and writes both reports. On an aborted
// run the partial insights report is still written, flagged, before the
// error is returned.
func synthesize(ctx context.Context) (
	*report.Validation, *report.Insights, error,
) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, nil, err
	}

	meta := report.NewMeta(cfg.Run.Month, cfg.Run.Year, time.Now())
	validation, err := iovalidate.New(cfg).Validate(ctx, bundle, meta)
	if err != nil {
		gn.PrintErrorMessage(err)
		return nil, nil, err
	}
	if _, err = ioreport.WriteValidation(
		cfg.Run.OutputDir, validation,
	); err != nil {
		gn.PrintErrorMessage(err)
		return nil, nil, err
	}

	oracle, err := newOracle(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return nil, nil, err
	}

	start := time.Now()
	insights, synthErr := iosynth.New(cfg, oracle).
		Synthesize(ctx, bundle, validation, meta)
	if insights != nil {
		path, err := ioreport.WriteInsights(cfg.Run.OutputDir, insights)
		if err != nil {
			gn.PrintErrorMessage(err)
			return nil, nil, err
		}

		reportHeader("Insights")
		gn.Info("Generated <em>%d</em> insights in %s",
			insights.TotalInsights,
			gnfmt.TimeString(time.Since(start).Seconds()),
		)
		if insights.Meta.IncompleteRun {
			gn.Warn("The run was interrupted; the report is flagged " +
				"<em>incomplete_run</em>")
		}
		gn.Info("Report written to <em>%s</em>", path)
	}
	if synthErr != nil {
		gn.PrintErrorMessage(synthErr)
		return nil, nil, synthErr
	}
	return validation, insights, nil
}
