package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/internal/ioconfig"
	"github.com/sdmtools/sdmins/internal/iodata"
	"github.com/sdmtools/sdmins/internal/iologger"
	"github.com/sdmtools/sdmins/internal/iooracle"
	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/datasets"
	"github.com/sdmtools/sdmins/pkg/sdmins"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config

	// Flag overrides shared by the stage commands.
	flagMonth  string
	flagYear   int
	flagOutput string
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sdmins",
		Short: "sdmins generates audited social-media insights per campus",
		Long: `sdmins runs a three-stage pipeline over the monthly social-media
datasets of the campus network:

  1. validate  - check the three source datasets for per-campus
                 completeness against the fixed 20-campus registry
  2. insights  - generate one verified insight per complete campus;
                 all percentages are computed locally, the language
                 model only phrases them
  3. audit     - recompute every claim of every insight against the
                 source data and grade the discrepancies

Each stage writes a JSON report into the output directory. The run
command executes all three stages in order and records the outcome in
the local run history.

Configuration precedence (highest to lowest):
  1. CLI flags (--month, --year, ...)
  2. Environment variables (SDMINS_*)
  3. Config file (~/.config/sdmins/config.yaml)
  4. Built-in defaults

The Gemini oracle needs an API key in oracle.api_key or in the
GEMINI_API_KEY environment variable. Set oracle.provider to "stub" to
run the whole pipeline offline with deterministic output.`,
		Version:           Version,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/sdmins/config.yaml)")

	rootCmd.Flags().BoolP("version", "V", false, "version for sdmins")

	rootCmd.AddCommand(getValidateCmd())
	rootCmd.AddCommand(getInsightsCmd())
	rootCmd.AddCommand(getAuditCmd())
	rootCmd.AddCommand(getRunCmd())
	rootCmd.AddCommand(getHistoryCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	// Auto-generate an annotated config file on first run.
	if cfgFile == "" {
		exists, err := ioconfig.ConfigFileExists()
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if !exists {
			path, err := ioconfig.GenerateDefaultConfig()
			if err != nil {
				gn.Warn("Could not generate config file: %v", err)
			} else {
				gn.Info("Generated default config at <em>%s</em>", path)
			}
		}
	}

	res, err := ioconfig.Load(cfgFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg = res.Config

	logDir := config.LogDir(cfg.HomeDir)
	if err = iologger.Init(logDir, cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	switch res.Source {
	case "file":
		slog.Info("Configuration loaded", "config_file", res.SourcePath)
	case "defaults+env":
		slog.Info("Using built-in defaults with environment overrides")
	default:
		slog.Info("Using built-in defaults")
	}
	return nil
}

// applyFlags folds command flag overrides into the loaded config.
func applyFlags(cmd *cobra.Command) {
	var opts []config.Option
	if cmd.Flags().Changed("month") {
		opts = append(opts, config.OptRunMonth(flagMonth))
	}
	if cmd.Flags().Changed("year") {
		opts = append(opts, config.OptRunYear(flagYear))
	}
	if cmd.Flags().Changed("output") {
		opts = append(opts, config.OptRunOutputDir(flagOutput))
	}
	cfg.Update(opts)
}

func addStageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagMonth, "month", "",
		"report month, Spanish lowercase (default from config)")
	cmd.Flags().IntVar(&flagYear, "year", 0,
		"report year (default from config)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"directory for the JSON reports (default from config)")
}

// loadBundle reads the three source datasets from the configured paths.
func loadBundle() (*datasets.Bundle, error) {
	bundle, err := iodata.New(cfg).Load()
	if err != nil {
		gn.PrintErrorMessage(err)
		return nil, err
	}
	return bundle, nil
}

// newOracle creates the configured oracle backend.
func newOracle(ctx context.Context) (sdmins.Oracle, error) {
	switch cfg.Oracle.Provider {
	case "stub":
		gn.Info("Using the offline <em>stub</em> oracle")
		return iooracle.NewStub(), nil
	default:
		return iooracle.NewGemini(ctx, cfg.Oracle)
	}
}

func reportHeader(stage string) {
	fmt.Println()
	gn.Info("<em>%s</em> — %s %d", stage, cfg.Run.Month, cfg.Run.Year)
}
