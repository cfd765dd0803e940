package stats

import (
	"errors"
	"math"
	"slices"

	"github.com/nao1215/distdist/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidBinCount is returned when fewer than one bin is requested.
	ErrInvalidBinCount = errors.New("invalid bin count: must be positive")

	// ErrNoValues is returned when there is nothing to bin.
	ErrNoValues = errors.New("no values to bin")
)

// finite returns the non-NaN, non-infinite values of v.
func finite(v []float64) []float64 {
	out := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

// Edges returns n+1 equally spaced bin edges spanning the minimum and maximum
// of values. A range of zero width is widened by 0.5 on each side.
func Edges(values []float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, ErrInvalidBinCount
	}
	v := finite(values)
	if len(v) == 0 {
		return nil, ErrNoValues
	}

	lo, hi := floats.Min(v), floats.Max(v)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	edges := floats.Span(make([]float64, n+1), lo, hi)
	edges[0], edges[n] = lo, hi
	return edges, nil
}

// Count returns how many values fall in each bin. Bins are half-open except
// the last, which includes its upper edge. Values outside the edges are
// ignored.
func Count(values, edges []float64) []int {
	if len(edges) < 2 {
		return nil
	}
	lo, hi := edges[0], edges[len(edges)-1]

	x := make([]float64, 0, len(values))
	for _, v := range finite(values) {
		if v >= lo && v <= hi {
			x = append(x, v)
		}
	}
	slices.Sort(x)

	dividers := slices.Clone(edges)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))

	weights := stat.Histogram(nil, dividers, x, nil)
	counts := make([]int, len(weights))
	for i, w := range weights {
		counts[i] = int(math.Round(w))
	}
	return counts
}

// Histogram bins near and far against the same n edges, spanning both groups.
func Histogram(near, far []float64, n int) ([]model.HistogramBin, error) {
	all := make([]float64, 0, len(near)+len(far))
	all = append(all, near...)
	all = append(all, far...)

	edges, err := Edges(all, n)
	if err != nil {
		return nil, err
	}

	nearCounts := Count(near, edges)
	farCounts := Count(far, edges)

	bins := make([]model.HistogramBin, n)
	for i := range bins {
		bins[i] = model.HistogramBin{
			Min:  edges[i],
			Max:  edges[i+1],
			Near: nearCounts[i],
			Far:  farCounts[i],
		}
	}
	return bins, nil
}
