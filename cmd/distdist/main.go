// Package main provides the entry point for the distdist CLI.
//
// distdist classifies young stars in the Taurus-Auriga star-forming region
// into near and far groups by distance, reports the mean rotation period of
// the near group, and draws period and distance histograms of both groups.
//
// Usage:
//
//	distdist plot
//	distdist plot -t 145 -o figure.png
//	distdist stars "CX Tau"
//
// See --help for all available options.
package main

// main is the entry point for distdist.
func main() {
	Execute()
}
