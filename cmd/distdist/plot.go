package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/distdist/internal/chart"
	"github.com/nao1215/distdist/internal/classify"
	"github.com/nao1215/distdist/internal/config"
	"github.com/nao1215/distdist/internal/database"
	"github.com/nao1215/distdist/internal/model"
	"github.com/nao1215/distdist/internal/pipeline"
	"github.com/nao1215/distdist/internal/report"
	"github.com/spf13/cobra"
)

// NewPlotCmd creates the plot command.
func NewPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Classify stars by distance and draw the histograms",
		Long: `Plot runs the full analysis on the Taurus-Auriga catalog:

- Stars without a measured rotation period (CITau, CX Tau, DOTau) are excluded
- The rest are split into a near group (d < threshold) and a far group
  (d > threshold); a star exactly at the threshold belongs to neither
- The mean rotation period of the near group is computed
- Period and distance histograms are drawn side by side and saved

Examples:
  # Default analysis, writes DistRotDist.jpeg
  distdist plot

  # Move the threshold and write a PNG
  distdist plot -t 145 -o out/figure.png

  # JSON report to a file, no figure
  distdist plot --json -r report.json --no-figure

  # Use a custom configuration file
  distdist plot -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runPlotCmd,
	}

	cmd.Flags().Float64P("threshold", "t", config.DefaultThreshold,
		"Distance in parsecs separating near from far")
	cmd.Flags().Int("period-bins", config.DefaultPeriodBins,
		"Number of bins in the period histogram")
	cmd.Flags().Int("distance-bins", config.DefaultDistanceBins,
		"Number of bins in the distance histogram")

	cmd.Flags().StringP("output", "o", config.DefaultFigurePath,
		"Figure output path (.jpeg, .jpg or .png)")
	cmd.Flags().Bool("no-figure", false,
		"Skip figure rendering")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .distdist in current directory, ~/.config/distdist/config.yaml, or ~/.distdist)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("report", "r", "",
		"Write report to specified file path (creates directories if needed)")

	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runPlotCmd executes the plot command.
func runPlotCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runPlot(ctx, cmd.OutOrStdout(), cfg, logger)
}

// buildConfig creates a Config from defaults, the config file and flags,
// in that order of precedence. Only flags set on the command line override
// file values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		if cfg.Threshold, err = flags.GetFloat64("threshold"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("period-bins") {
		if cfg.PeriodBins, err = flags.GetInt("period-bins"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("distance-bins") {
		if cfg.DistanceBins, err = flags.GetInt("distance-bins"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.FigurePath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.SkipFigure, err = flags.GetBool("no-figure"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("report"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveToDB = false
	}

	return cfg, nil
}

// figureOptions maps the configuration to renderer options.
func figureOptions(cfg *config.Config) chart.Options {
	return chart.Options{
		Path:      cfg.FigurePath,
		Width:     cfg.FigureWidth,
		Height:    cfg.FigureHeight,
		NearColor: cfg.NearColor,
		FarColor:  cfg.FarColor,
		NearLabel: cfg.NearLabel(),
		FarLabel:  cfg.FarLabel(),
		Software:  config.AppName + " " + getVersion(),
	}
}

// runPlot executes the analysis, records it and writes the report.
func runPlot(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"threshold", cfg.Threshold,
		"figure", cfg.FigurePath,
		"saveToDB", cfg.SaveToDB,
	)

	p := pipeline.DefaultPipeline(
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineBins(cfg.PeriodBins, cfg.DistanceBins),
		pipeline.WithPipelineFigure(figureOptions(cfg)),
		pipeline.WithPipelineSkipFigure(cfg.SkipFigure),
		pipeline.WithPipelineObservers(classify.LogObserver(logger)),
	)
	logger.Debug("pipeline assembled", "steps", p.StepNames())

	a := model.NewAnalysis(cfg.Threshold)
	runErr := p.Execute(ctx, a)

	if cfg.SaveToDB && !errors.Is(runErr, context.Canceled) {
		if err := saveRun(ctx, cfg.DBDir, a, logger); err != nil {
			// History is auxiliary; a failed save does not fail the run.
			logger.Warn("failed to record run", "error", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("analysis failed: %w", runErr)
	}

	return outputReport(cfg, out, a)
}

// saveRun records the analysis in the history database.
func saveRun(ctx context.Context, dbDir string, a *model.Analysis, logger *slog.Logger) error {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, a)
	if err != nil {
		return err
	}

	logger.Info("run saved to database", "id", id, "path", db.Path())
	return nil
}

// newWriter returns the report writer selected by the configuration.
func newWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output,
			report.WithMarkdownDistanceRange(cfg.DistanceFloor, cfg.DistanceCeiling))
	default:
		return report.NewSimpleWriter(output,
			report.WithDistanceRange(cfg.DistanceFloor, cfg.DistanceCeiling),
			report.WithVerbose(cfg.Verbose))
	}
}

// openReportOutput returns the report destination and a function closing it.
// With no report file configured the destination is out.
func openReportOutput(cfg *config.Config, out io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return out, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// outputReport writes the analysis in the requested format.
func outputReport(cfg *config.Config, out io.Writer, a *model.Analysis) (err error) {
	output, closeOutput, err := openReportOutput(cfg, out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", cerr)
		}
	}()

	_, err = newWriter(cfg, output).Write(a)
	return err
}
