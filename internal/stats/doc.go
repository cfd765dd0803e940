// Package stats bins near and far values into shared-edge histograms.
package stats
