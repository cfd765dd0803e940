package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidThreshold is returned when the distance threshold is not a
	// positive finite number.
	ErrInvalidThreshold = errors.New("invalid threshold: must be a positive distance in parsecs")

	// ErrInvalidBins is returned when a histogram bin count is not positive.
	ErrInvalidBins = errors.New("invalid bin count: must be positive")

	// ErrInvalidDistanceRange is returned when the label floor is not below
	// the threshold or the ceiling is not above it.
	ErrInvalidDistanceRange = errors.New("invalid distance range: floor < threshold < ceiling is required")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidFigureSize is returned when the figure width or height is not
	// positive.
	ErrInvalidFigureSize = errors.New("invalid figure size: width and height must be positive")

	// ErrUnsupportedFigureFormat is returned when the figure path does not end
	// in .jpeg, .jpg or .png.
	ErrUnsupportedFigureFormat = errors.New("unsupported figure format: use .jpeg, .jpg or .png")
)
