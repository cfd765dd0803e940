package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/distdist/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis in JSON format.
func (w *JSONWriter) Write(a *model.Analysis) (int, error) {
	syncErrorMessage(a)
	return w.writeJSON(a)
}

// WriteStars outputs the records as a JSON array.
func (w *JSONWriter) WriteStars(records []model.StarRecord) (int, error) {
	if records == nil {
		records = []model.StarRecord{}
	}
	return w.writeJSON(records)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}

// syncErrorMessage copies a.Error into its serializable form.
func syncErrorMessage(a *model.Analysis) {
	if a.Error != nil && a.ErrorMessage == "" {
		a.ErrorMessage = a.Error.Error()
	}
}

// JSONReport wraps an analysis with version metadata.
type JSONReport struct {
	// Version is the distdist version that produced the analysis.
	Version string `json:"version"`

	// Analysis is the full analysis result.
	Analysis *model.Analysis `json:"analysis"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(a *model.Analysis, version string) *JSONReport {
	return &JSONReport{
		Version:  version,
		Analysis: a,
	}
}

// FullJSONWriter outputs analyses with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the distdist version string.
	version string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the analysis wrapped with metadata.
func (w *FullJSONWriter) Write(a *model.Analysis) (int, error) {
	syncErrorMessage(a)
	return w.writeJSON(NewJSONReport(a, w.version))
}
