package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultThreshold is the distance in parsecs separating the near and far
	// Taurus associations (centred at 130.6 pc and 160.2 pc).
	DefaultThreshold = 150.0

	// DefaultPeriodBins is the number of bins in the period histogram.
	DefaultPeriodBins = 11

	// DefaultDistanceBins is the number of bins in the distance histogram.
	DefaultDistanceBins = 10

	// DefaultDistanceFloor and DefaultDistanceCeiling bound the distance
	// range shown in legend labels and report headings.
	DefaultDistanceFloor   = 110.0
	DefaultDistanceCeiling = 180.0

	// DefaultFigurePath is the output image written by the plot command.
	DefaultFigurePath = "DistRotDist.jpeg"

	// DefaultFigureWidth and DefaultFigureHeight are in inches.
	DefaultFigureWidth  = 6.4
	DefaultFigureHeight = 4.8

	// DefaultNearColor and DefaultFarColor are SVG color names.
	DefaultNearColor = "red"
	DefaultFarColor  = "blue"

	// AppName is the application name used for XDG directory paths.
	AppName = "distdist"
)

// Config holds all configuration options for a distdist run.
// It is populated from defaults, then the config file, then CLI flags, and
// passed through the application rather than kept in global state.
type Config struct {
	// Threshold is the distance in parsecs separating near from far.
	Threshold float64

	// PeriodBins is the number of period histogram bins.
	PeriodBins int

	// DistanceBins is the number of distance histogram bins.
	DistanceBins int

	// DistanceFloor is the lower distance bound used in labels.
	DistanceFloor float64

	// DistanceCeiling is the upper distance bound used in labels.
	DistanceCeiling float64

	// FigurePath is the output image path. The extension selects the format.
	FigurePath string

	// FigureWidth and FigureHeight are the figure size in inches.
	FigureWidth  float64
	FigureHeight float64

	// NearColor and FarColor are the bucket colors used in the figure.
	NearColor string
	FarColor  string

	// SkipFigure disables figure rendering.
	SkipFigure bool

	// Verbose enables debug logging, including one line per classified star.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the current directory, the XDG config
	// directory and the home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output. Mutually exclusive with
	// JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// DBDir is the directory holding the run history database.
	// Defaults to the XDG data directory (~/.local/share/distdist on Linux).
	DBDir string

	// SaveToDB records the run in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Threshold:       DefaultThreshold,
		PeriodBins:      DefaultPeriodBins,
		DistanceBins:    DefaultDistanceBins,
		DistanceFloor:   DefaultDistanceFloor,
		DistanceCeiling: DefaultDistanceCeiling,
		FigurePath:      DefaultFigurePath,
		FigureWidth:     DefaultFigureWidth,
		FigureHeight:    DefaultFigureHeight,
		NearColor:       DefaultNearColor,
		FarColor:        DefaultFarColor,
		DBDir:           XDGDataDir(),
		SaveToDB:        true,
	}
}

// XDGDataDir returns the XDG data directory for distdist.
// On Linux: ~/.local/share/distdist
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for distdist.
// On Linux: ~/.config/distdist
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// NearLabel returns the legend label of the near group, e.g. "110 - 150 pc".
func (c *Config) NearLabel() string {
	return fmt.Sprintf("%g - %g pc", c.DistanceFloor, c.Threshold)
}

// FarLabel returns the legend label of the far group, e.g. "150 - 180 pc".
func (c *Config) FarLabel() string {
	return fmt.Sprintf("%g - %g pc", c.Threshold, c.DistanceCeiling)
}

// figureExtensions lists the output formats the renderer supports.
var figureExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Threshold <= 0 || math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return ErrInvalidThreshold
	}

	if c.PeriodBins <= 0 || c.DistanceBins <= 0 {
		return ErrInvalidBins
	}

	if c.DistanceFloor >= c.Threshold || c.DistanceCeiling <= c.Threshold {
		return ErrInvalidDistanceRange
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if !c.SkipFigure {
		if c.FigureWidth <= 0 || c.FigureHeight <= 0 {
			return ErrInvalidFigureSize
		}
		if !figureExtensions[strings.ToLower(filepath.Ext(c.FigurePath))] {
			return ErrUnsupportedFigureFormat
		}
	}

	return nil
}
