package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/distdist/internal/catalog"
	"github.com/nao1215/distdist/internal/chart"
	"github.com/nao1215/distdist/internal/classify"
	"github.com/nao1215/distdist/internal/config"
	"github.com/nao1215/distdist/internal/model"
	"github.com/nao1215/distdist/internal/stats"
)

// LoadCatalogStep fills Analysis.Catalog with the input stars.
// By default it loads the Taurus-Auriga reference catalog.
type LoadCatalogStep struct {
	// columns, when set, replaces the reference catalog.
	columns *catalog.Columns

	// logger for structured logging.
	logger *slog.Logger
}

// LoadCatalogStepOption configures a LoadCatalogStep.
type LoadCatalogStepOption func(*LoadCatalogStep)

// WithColumns loads the catalog from parallel columns instead of the
// reference data. Mismatched column lengths fail the step.
func WithColumns(c catalog.Columns) LoadCatalogStepOption {
	return func(s *LoadCatalogStep) {
		s.columns = &c
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadCatalogStepOption {
	return func(s *LoadCatalogStep) {
		s.logger = logger
	}
}

// NewLoadCatalogStep creates a new catalog loading step.
func NewLoadCatalogStep(opts ...LoadCatalogStepOption) *LoadCatalogStep {
	s := &LoadCatalogStep{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadCatalogStep) Name() string {
	return "load_catalog"
}

// Do executes the load step.
func (s *LoadCatalogStep) Do(_ context.Context, a *model.Analysis) error {
	if s.columns == nil {
		a.Catalog = catalog.Reference()
	} else {
		records, err := catalog.FromColumns(*s.columns)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		a.Catalog = records
	}
	s.logger.Debug("catalog loaded", "stars", len(a.Catalog))
	return nil
}

// FilterPeriodsStep drops stars without a measured rotation period.
// Retained stars go to Analysis.Records and dropped ones to Analysis.Excluded.
type FilterPeriodsStep struct {
	logger *slog.Logger
}

// NewFilterPeriodsStep creates a new period filter step.
func NewFilterPeriodsStep(logger *slog.Logger) *FilterPeriodsStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilterPeriodsStep{logger: logger}
}

// Name returns the step name.
func (s *FilterPeriodsStep) Name() string {
	return "filter_periods"
}

// Do executes the filter step.
func (s *FilterPeriodsStep) Do(_ context.Context, a *model.Analysis) error {
	a.Records, a.Excluded = catalog.WithPeriod(a.Catalog)
	if len(a.Excluded) > 0 {
		s.logger.Info("excluded stars without rotation period",
			"count", len(a.Excluded),
			"names", model.Names(a.Excluded),
		)
	}
	return nil
}

// ClassifyStep splits Analysis.Records into the near and far groups and
// assigns each record its color.
type ClassifyStep struct {
	// observers are notified of every record and its bucket.
	observers []classify.Observer
}

// NewClassifyStep creates a new classification step.
func NewClassifyStep(observers ...classify.Observer) *ClassifyStep {
	return &ClassifyStep{observers: observers}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classification step.
func (s *ClassifyStep) Do(_ context.Context, a *model.Analysis) error {
	a.Near, a.Far = classify.Classify(a.Records, a.Threshold, s.observers...)
	a.Colors = classify.Colors(a.Records, a.Threshold)
	return nil
}

// MeanPeriodStep computes the mean and standard deviation of the near
// group's rotation periods. An empty near group fails the step.
type MeanPeriodStep struct {
	logger *slog.Logger
}

// NewMeanPeriodStep creates a new aggregation step.
func NewMeanPeriodStep(logger *slog.Logger) *MeanPeriodStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &MeanPeriodStep{logger: logger}
}

// Name returns the step name.
func (s *MeanPeriodStep) Name() string {
	return model.StepMeanPeriod
}

// Do executes the aggregation step.
func (s *MeanPeriodStep) Do(_ context.Context, a *model.Analysis) error {
	mean, err := classify.MeanPeriod(a.Near)
	if err != nil {
		return fmt.Errorf("near group: %w", err)
	}
	stddev, err := classify.PeriodStdDev(a.Near)
	if err != nil {
		return fmt.Errorf("near group: %w", err)
	}
	a.NearMeanPeriod = mean
	a.NearPeriodStdDev = stddev
	s.logger.Debug("near group aggregated", "mean_period", mean, "stddev", stddev)
	return nil
}

// BinStep fills the period and distance histograms.
// Near and far are binned against shared edges.
type BinStep struct {
	periodBins   int
	distanceBins int
}

// NewBinStep creates a new binning step.
func NewBinStep(periodBins, distanceBins int) *BinStep {
	return &BinStep{periodBins: periodBins, distanceBins: distanceBins}
}

// Name returns the step name.
func (s *BinStep) Name() string {
	return "bin"
}

// Do executes the binning step.
func (s *BinStep) Do(_ context.Context, a *model.Analysis) error {
	var err error
	a.PeriodHistogram, err = stats.Histogram(model.Periods(a.Near), model.Periods(a.Far), s.periodBins)
	if err != nil {
		return fmt.Errorf("period histogram: %w", err)
	}
	a.DistanceHistogram, err = stats.Histogram(model.Distances(a.Near), model.Distances(a.Far), s.distanceBins)
	if err != nil {
		return fmt.Errorf("distance histogram: %w", err)
	}
	return nil
}

// RenderStep draws the histograms to an image file.
type RenderStep struct {
	opts   chart.Options
	logger *slog.Logger
}

// NewRenderStep creates a new rendering step.
func NewRenderStep(opts chart.Options, logger *slog.Logger) *RenderStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RenderStep{opts: opts, logger: logger}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do executes the rendering step.
func (s *RenderStep) Do(_ context.Context, a *model.Analysis) error {
	if err := chart.Render(a, s.opts); err != nil {
		return fmt.Errorf("failed to render figure: %w", err)
	}
	a.FigurePath = s.opts.Path
	s.logger.Info("figure written", "path", s.opts.Path)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// PeriodBins and DistanceBins are the histogram bin counts.
	PeriodBins   int
	DistanceBins int

	// Figure configures rendering. Ignored when SkipFigure is set.
	Figure chart.Options

	// SkipFigure omits the render step.
	SkipFigure bool

	// Columns, when set, replaces the reference catalog.
	Columns *catalog.Columns

	// Observers are notified of every classified record.
	Observers []classify.Observer
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineBins sets the histogram bin counts.
func WithPipelineBins(periodBins, distanceBins int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.PeriodBins = periodBins
		c.DistanceBins = distanceBins
	}
}

// WithPipelineFigure sets the figure options.
func WithPipelineFigure(opts chart.Options) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Figure = opts
	}
}

// WithPipelineSkipFigure omits the render step.
func WithPipelineSkipFigure(skip bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SkipFigure = skip
	}
}

// WithPipelineColumns loads the catalog from parallel columns.
func WithPipelineColumns(cols catalog.Columns) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Columns = &cols
	}
}

// WithPipelineObservers adds classification observers.
func WithPipelineObservers(observers ...classify.Observer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Observers = append(c.Observers, observers...)
	}
}

// DefaultPipeline creates a pipeline with all analysis steps configured:
// load, filter, classify, mean period, bin and render.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts config options (WithPipelineBins, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	defaults := config.Config{
		Threshold:       config.DefaultThreshold,
		DistanceFloor:   config.DefaultDistanceFloor,
		DistanceCeiling: config.DefaultDistanceCeiling,
	}
	cfg := &DefaultPipelineConfig{
		PeriodBins:   config.DefaultPeriodBins,
		DistanceBins: config.DefaultDistanceBins,
		Figure: chart.Options{
			Path:      chart.DefaultPath,
			Width:     chart.DefaultWidth,
			Height:    chart.DefaultHeight,
			NearColor: config.DefaultNearColor,
			FarColor:  config.DefaultFarColor,
			NearLabel: defaults.NearLabel(),
			FarLabel:  defaults.FarLabel(),
			Software:  config.AppName,
		},
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	var loadOpts []LoadCatalogStepOption
	loadOpts = append(loadOpts, WithLoadLogger(p.logger))
	if cfg.Columns != nil {
		loadOpts = append(loadOpts, WithColumns(*cfg.Columns))
	}

	p.AddSteps(
		NewLoadCatalogStep(loadOpts...),
		NewFilterPeriodsStep(p.logger),
		NewClassifyStep(cfg.Observers...),
		NewMeanPeriodStep(p.logger),
		NewBinStep(cfg.PeriodBins, cfg.DistanceBins),
	)
	if !cfg.SkipFigure {
		p.AddStep(NewRenderStep(cfg.Figure, p.logger))
	}

	return p
}
