package report

import (
	"io"

	"github.com/nao1215/distdist/internal/model"
)

// Writer defines the interface for report output.
// Implementations write analysis results in various formats.
type Writer interface {
	// Write outputs the analysis report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(a *model.Analysis) (int, error)

	// WriteStars outputs a plain catalog listing without any analysis.
	WriteStars(records []model.StarRecord) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(a *model.Analysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(a)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteStars outputs the catalog listing to all configured Writers.
func (m *MultiWriter) WriteStars(records []model.StarRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteStars(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// starColumns is the header shared by every star table.
var starColumns = []string{"Name", "Spectral", "Radius", "Period", "RA", "DEC", "Paralax", "Distance"}

// starRow formats a record for a star table.
// An undefined period is shown as "-".
func starRow(s model.StarRecord) []string {
	period := "-"
	if p, ok := s.PeriodDays(); ok {
		period = FormatFloat(p)
	}
	return []string{
		s.Name,
		s.SpectralType,
		FormatFloat(s.Radius),
		period,
		FormatFloat(s.RightAscension),
		FormatFloat(s.Declination),
		FormatFloat(s.Parallax),
		FormatFloat(s.Distance),
	}
}
