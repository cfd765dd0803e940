package model

import (
	"slices"
	"time"
)

// StepMeanPeriod names the pipeline step that sets NearMeanPeriod.
const StepMeanPeriod = "mean_period"

// HistogramBin is one bin of a two-group histogram.
// Near and far counts share the same edges so they can be drawn stacked.
type HistogramBin struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Near int     `json:"near"`
	Far  int     `json:"far"`
}

// Total returns the combined count of the bin.
func (b HistogramBin) Total() int {
	return b.Near + b.Far
}

// Analysis holds the result of one classification and aggregation run.
// It is populated step by step by the analysis pipeline.
type Analysis struct {
	// Threshold is the distance in parsecs separating near from far.
	Threshold float64 `json:"threshold"`

	// DateAnalyzed is when the run started.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// Catalog is the full input catalog, including excluded stars.
	Catalog []StarRecord `json:"-"`

	// Records are the catalog stars that passed the period filter.
	Records []StarRecord `json:"records"`

	// Excluded are the catalog stars dropped because their rotation period
	// is undefined.
	Excluded []StarRecord `json:"excluded,omitempty"`

	// Near holds stars closer than Threshold, in catalog order.
	Near []StarRecord `json:"near"`

	// Far holds stars farther than Threshold, in catalog order.
	Far []StarRecord `json:"far"`

	// Colors is the marker color of each entry in Records.
	Colors []Color `json:"colors"`

	// NearMeanPeriod is the arithmetic mean rotation period of Near, in days.
	NearMeanPeriod float64 `json:"near_mean_period"`

	// NearPeriodStdDev is the sample standard deviation of Near's periods.
	// Zero when Near has fewer than two members.
	NearPeriodStdDev float64 `json:"near_period_stddev"`

	// PeriodHistogram bins the rotation periods of Records.
	PeriodHistogram []HistogramBin `json:"period_histogram,omitempty"`

	// DistanceHistogram bins the distances of Records.
	DistanceHistogram []HistogramBin `json:"distance_histogram,omitempty"`

	// FigurePath is where the rendered figure was written.
	// Empty when rendering was skipped.
	FigurePath string `json:"figure_path,omitempty"`

	// Steps lists the pipeline steps that ran, in order.
	Steps []string `json:"steps,omitempty"`

	// Canceled reports whether the run was interrupted before finishing.
	Canceled bool `json:"canceled,omitempty"`

	// Error holds the error that stopped the run, if any.
	// Not serialized; see ErrorMessage.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAnalysis creates an Analysis for the given threshold.
func NewAnalysis(threshold float64) *Analysis {
	return &Analysis{
		Threshold:    threshold,
		DateAnalyzed: time.Now(),
	}
}

// Unclassified returns the number of records that fell in neither bucket.
func (a *Analysis) Unclassified() int {
	return len(a.Records) - len(a.Near) - len(a.Far)
}

// HasMeanPeriod reports whether NearMeanPeriod was computed. A run that
// failed after aggregation still has one.
func (a *Analysis) HasMeanPeriod() bool {
	return slices.Contains(a.Steps, StepMeanPeriod)
}
