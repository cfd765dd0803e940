package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/distdist/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter

	// floor and ceiling bound the distance range named in the headings.
	floor   float64
	ceiling float64
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownDistanceRange sets the outer distance bounds named in the headings.
func WithMarkdownDistanceRange(floor, ceiling float64) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.floor = floor
		w.ceiling = ceiling
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		floor:      DefaultFloor,
		ceiling:    DefaultCeiling,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the analysis in Markdown format.
func (w *MarkdownWriter) Write(a *model.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, a)
	w.writeGroup(md, "Near systems (d = "+rangeLabel(w.floor, a.Threshold)+" pcs)", a.Near)
	md.PlainTextf("The average of their rotational periods is **%s** days.", FormatFloat(a.NearMeanPeriod))
	md.PlainText("")
	w.writeGroup(md, "Far systems (d = "+rangeLabel(a.Threshold, w.ceiling)+" pcs)", a.Far)
	w.writePieChart(md, a)
	w.writeExcluded(md, a)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteStars outputs the records as a single Markdown table.
func (w *MarkdownWriter) WriteStars(records []model.StarRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Taurus-Auriga Catalog")
	md.PlainText("")
	w.writeTable(md, records)
	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, a *model.Analysis) {
	md.H1("Distance and Rotation Report")
	md.PlainText("")

	rows := [][]string{
		{"Analysis Date", a.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
		{"Threshold", FormatFloat(a.Threshold) + " pc"},
		{"Near Systems", strconv.Itoa(len(a.Near))},
		{"Far Systems", strconv.Itoa(len(a.Far))},
		{"Near Mean Period", FormatFloat(a.NearMeanPeriod) + " d"},
		{"Near Period Std Dev", FormatFloat(a.NearPeriodStdDev) + " d"},
	}
	if a.FigurePath != "" {
		rows = append(rows, []string{"Figure", "`" + a.FigurePath + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeGroup writes one bucket under its own heading.
func (w *MarkdownWriter) writeGroup(md *markdown.Markdown, title string, records []model.StarRecord) {
	md.H2(title)
	md.PlainText("")
	if len(records) == 0 {
		md.PlainText("No systems in this range.")
		md.PlainText("")
		return
	}
	w.writeTable(md, records)
}

// writeTable writes a star table.
func (w *MarkdownWriter) writeTable(md *markdown.Markdown, records []model.StarRecord) {
	rows := make([][]string, len(records))
	for i, s := range records {
		rows[i] = starRow(s)
	}
	md.Table(markdown.TableSet{
		Header: starColumns,
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the bucket sizes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, a *model.Analysis) {
	if len(a.Near)+len(a.Far) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Systems by Distance Group"),
		piechart.WithShowData(true),
	)
	if len(a.Near) > 0 {
		chart.LabelAndIntValue("Near", uint64(len(a.Near)))
	}
	if len(a.Far) > 0 {
		chart.LabelAndIntValue("Far", uint64(len(a.Far)))
	}

	md.H2("Group Sizes")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeExcluded notes stars dropped by the period filter and stars at the threshold.
func (w *MarkdownWriter) writeExcluded(md *markdown.Markdown, a *model.Analysis) {
	if len(a.Excluded) > 0 {
		md.Note(fmt.Sprintf("%d system(s) have no measured rotation period and were excluded.", len(a.Excluded)))
		md.PlainText("")
		md.BulletList(model.Names(a.Excluded)...)
		md.PlainText("")
	}
	if n := a.Unclassified(); n > 0 {
		md.Warningf("%d system(s) lie exactly at %s pc and belong to neither group.", n, FormatFloat(a.Threshold))
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Distances from Fleming et al. (2019), rotation periods from Rebull et al. (2004).*")
}
