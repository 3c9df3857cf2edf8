package main

import (
	"context"
	"time"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/internal/ioreport"
	"github.com/sdmtools/sdmins/internal/iovalidate"
	"github.com/sdmtools/sdmins/pkg/report"
	"github.com/spf13/cobra"
)

func getValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the source datasets for per-campus completeness",
		Long: `Checks the three source datasets against the fixed campus registry
and reports which campuses carry everything the later stages need:
top publications, current-month metrics and platform scores.

A campus with gaps is recorded as incomplete and excluded from insight
generation; it never fails the run. A missing previous-year period only
makes percentage changes undefined.

The result is written to validation_report.json in the output
directory.

Examples:
  sdmins validate
  sdmins validate --month julio --year 2025 -o reports/`,
		RunE: runValidate,
	}
	addStageFlags(cmd)
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)
	ctx := context.Background()

	bundle, err := loadBundle()
	if err != nil {
		return err
	}

	meta := report.NewMeta(cfg.Run.Month, cfg.Run.Year, time.Now())
	validation, err := iovalidate.New(cfg).Validate(ctx, bundle, meta)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	path, err := ioreport.WriteValidation(cfg.Run.OutputDir, validation)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	reportHeader("Validation")
	gn.Info("%s", validation.Summary)
	for _, e := range validation.Validations {
		if !e.IsComplete {
			gn.Warn("  <em>%s</em> (%s): %s",
				e.CampusID, e.CampusName, e.Notes)
		}
	}
	gn.Info("Report written to <em>%s</em>", path)
	return nil
}
