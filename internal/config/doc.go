// Package config provides configuration structures and utilities for distdist.
// It defines the classification threshold, histogram binning, figure output
// and report preferences, and loads overrides from a YAML file.
package config
