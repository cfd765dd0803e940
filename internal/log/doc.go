// Package log provides logging for distdist, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Rounding of float attributes so measured values print the way they were
//     catalogued (137.2, not 137.20000000000002)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("star classified", "name", "AATau", "distance", 137.2)
//	slog.SetDefault(logger)
package log
