package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/distdist/internal/model"
)

// Default distance range shown in the group headings, in parsecs.
const (
	DefaultFloor   = 110.0
	DefaultCeiling = 180.0
)

// SimpleWriter outputs human-readable text reports.
// The near group is listed first with its mean rotation period, followed by
// the far group.
type SimpleWriter struct {
	baseWriter

	// floor and ceiling bound the distance range named in the headings.
	floor   float64
	ceiling float64

	// verbose adds excluded stars and histogram bins to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithDistanceRange sets the outer distance bounds named in the headings.
func WithDistanceRange(floor, ceiling float64) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.floor = floor
		w.ceiling = ceiling
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		floor:      DefaultFloor,
		ceiling:    DefaultCeiling,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis in human-readable format.
func (w *SimpleWriter) Write(a *model.Analysis) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "These are the systems that are close (d = %s pcs):\n", rangeLabel(w.floor, a.Threshold))
	w.writeTable(&sb, a.Near)
	fmt.Fprintf(&sb, "The average of their rotational periods is %s\n", FormatFloat(a.NearMeanPeriod))
	sb.WriteString(strings.Repeat("-", 72))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "These are the systems that are far (d = %s pcs)\n", rangeLabel(a.Threshold, w.ceiling))
	w.writeTable(&sb, a.Far)

	if n := a.Unclassified(); n > 0 {
		fmt.Fprintf(&sb, "\n%d system(s) lie exactly at %s pcs and belong to neither group\n", n, FormatFloat(a.Threshold))
	}

	if w.verbose {
		w.writeExcluded(&sb, a.Excluded)
		w.writeHistogram(&sb, "Period [days]", a.PeriodHistogram)
		w.writeHistogram(&sb, "Distance [pcs]", a.DistanceHistogram)
	}

	if a.FigurePath != "" {
		fmt.Fprintf(&sb, "\nFigure saved to %s\n", a.FigurePath)
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteStars outputs the records as a single table.
func (w *SimpleWriter) WriteStars(records []model.StarRecord) (int, error) {
	var sb strings.Builder
	w.writeTable(&sb, records)
	return w.output.Write([]byte(sb.String()))
}

// writeTable writes the header line and one row per record.
func (w *SimpleWriter) writeTable(sb *strings.Builder, records []model.StarRecord) {
	tw := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(starColumns, "\t"))
	for _, s := range records {
		fmt.Fprintln(tw, strings.Join(starRow(s), "\t"))
	}
	_ = tw.Flush() // writes into a strings.Builder, which never fails
}

// writeExcluded lists stars dropped for lacking a rotation period.
func (w *SimpleWriter) writeExcluded(sb *strings.Builder, excluded []model.StarRecord) {
	if len(excluded) == 0 {
		return
	}
	fmt.Fprintf(sb, "\nExcluded (no rotation period): %s\n", strings.Join(model.Names(excluded), ", "))
}

// writeHistogram writes the bins of one histogram panel.
func (w *SimpleWriter) writeHistogram(sb *strings.Builder, title string, bins []model.HistogramBin) {
	if len(bins) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", title)
	tw := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Bin\tNear\tFar")
	for _, b := range bins {
		fmt.Fprintf(tw, "%.2f - %.2f\t%d\t%d\n", b.Min, b.Max, b.Near, b.Far)
	}
	_ = tw.Flush()
}
