package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/internal/ioarchive"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

func getHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived pipeline runs",
		Long: `Lists past pipeline runs from the local history, most recent
first: reporting period, campus completeness, insight count and the
audited accuracy rate.

Examples:
  sdmins history
  sdmins history --limit 5`,
		RunE: runHistory,
	}
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20,
		"maximum number of runs to show (0 shows all)")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	archive, err := ioarchive.New(config.ArchiveFilePath(cfg.HomeDir))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer archive.Close()

	runs, err := archive.ListRuns(ctx, flagHistoryLimit)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if len(runs) == 0 {
		gn.Info("No archived runs yet; <em>sdmins run</em> records one")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w,
		"WHEN\tPERIOD\tCOMPLETE\tINSIGHTS\tISSUES\tACCURACY\tRUN ID")
	for _, r := range runs {
		period := fmt.Sprintf("%s %d", r.Month, r.Year)
		if r.IncompleteRun {
			period += " (incomplete)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\t%d\t%.1f%%\t%s\n",
			humanize.Time(r.GeneratedAt),
			period,
			r.CompleteCampuses, r.TotalCampuses,
			r.TotalInsights, r.TotalIssues, r.AccuracyRate,
			r.RunID,
		)
	}
	return w.Flush()
}
