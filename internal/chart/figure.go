package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/distdist/internal/model"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Default figure settings.
const (
	DefaultWidth  = 6.4 // inches
	DefaultHeight = 4.8 // inches
	DefaultPath   = "DistRotDist.jpeg"
)

var (
	// ErrUnsupportedFormat is returned for output paths whose extension is
	// not .jpeg, .jpg or .png.
	ErrUnsupportedFormat = errors.New("unsupported figure format: use .jpeg, .jpg or .png")

	// ErrUnknownColor is returned for color names not in the SVG 1.1 palette.
	ErrUnknownColor = errors.New("unknown color name")

	// ErrNoHistogram is returned when the analysis has not been binned yet.
	ErrNoHistogram = errors.New("analysis has no histogram bins")
)

// Options configures figure rendering.
type Options struct {
	// Path is the output file. Its extension selects the image format.
	Path string

	// Width and Height are the figure size in inches.
	Width  float64
	Height float64

	// NearColor and FarColor are SVG color names (e.g. "red", "blue").
	NearColor string
	FarColor  string

	// NearLabel and FarLabel are the legend entries.
	NearLabel string
	FarLabel  string

	// Software is stamped into the EXIF Software tag of JPEG output.
	Software string
}

// ParseColor resolves an SVG color name such as "red" or "steelblue".
func ParseColor(name string) (color.Color, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// Format returns the image format for path, or ErrUnsupportedFormat.
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpeg", ".jpg":
		return "jpeg", nil
	case ".png":
		return "png", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Render draws the analysis histograms and writes the figure to opts.Path.
// Parent directories are created as needed.
func Render(a *model.Analysis, opts Options) error {
	if len(a.PeriodHistogram) == 0 || len(a.DistanceHistogram) == 0 {
		return ErrNoHistogram
	}
	format, err := Format(opts.Path)
	if err != nil {
		return err
	}
	nearColor, err := ParseColor(opts.NearColor)
	if err != nil {
		return err
	}
	farColor, err := ParseColor(opts.FarColor)
	if err != nil {
		return err
	}

	period, _, _ := panel(a.PeriodHistogram, "Period [days]", nearColor, farColor)
	period.Y.Label.Text = "Frequency"

	distance, distNear, distTotal := panel(a.DistanceHistogram, "Distance [pcs]", nearColor, farColor)
	distance.Legend.Add(opts.NearLabel, distNear)
	distance.Legend.Add(opts.FarLabel, distTotal)
	distance.Legend.Top = true

	ymax := float64(max(maxCount(a.PeriodHistogram), maxCount(a.DistanceHistogram)))
	for _, p := range []*plot.Plot{period, distance} {
		p.Y.Min = 0
		p.Y.Max = ymax
	}

	img := vgimg.New(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align([][]*plot.Plot{{period, distance}}, tiles, dc)
	period.Draw(canvases[0][0])
	distance.Draw(canvases[0][1])

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		jc := vgimg.JpegCanvas{Canvas: img}
		if _, err := jc.WriteTo(&buf); err != nil {
			return fmt.Errorf("failed to encode jpeg: %w", err)
		}
	case "png":
		pc := vgimg.PngCanvas{Canvas: img}
		if _, err := pc.WriteTo(&buf); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	}

	data := buf.Bytes()
	if format == "jpeg" {
		data, err = stampEXIF(data, []exifTag{
			{name: "ImageDescription", value: describe(a)},
			{name: "Software", value: opts.Software},
		})
		if err != nil {
			return fmt.Errorf("failed to write exif metadata: %w", err)
		}
	}

	if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	return nil
}

// panel builds one histogram panel and returns the near and total layers so
// they can be reused as legend thumbnails.
func panel(bins []model.HistogramBin, xLabel string, nearColor, farColor color.Color) (*plot.Plot, *plotter.Histogram, *plotter.Histogram) {
	p := plot.New()
	p.X.Label.Text = xLabel

	total := layer(bins, farColor, func(b model.HistogramBin) int { return b.Total() })
	near := layer(bins, nearColor, func(b model.HistogramBin) int { return b.Near })
	p.Add(total, near)

	return p, near, total
}

// layer converts bins into a filled gonum histogram using weight for counts.
func layer(bins []model.HistogramBin, fill color.Color, weight func(model.HistogramBin) int) *plotter.Histogram {
	hb := make([]plotter.HistogramBin, len(bins))
	for i, b := range bins {
		hb[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(weight(b))}
	}
	return &plotter.Histogram{
		Bins:      hb,
		Width:     bins[0].Max - bins[0].Min,
		FillColor: fill,
		LineStyle: plotter.DefaultLineStyle,
	}
}

// maxCount returns the largest bin total.
func maxCount(bins []model.HistogramBin) int {
	m := 0
	for _, b := range bins {
		m = max(m, b.Total())
	}
	return m
}

// describe summarizes the analysis for the EXIF ImageDescription tag.
func describe(a *model.Analysis) string {
	return fmt.Sprintf("Taurus-Auriga rotation period and distance distribution: %d near (< %g pc), %d far (> %g pc), near mean period %.2f d",
		len(a.Near), a.Threshold, len(a.Far), a.Threshold, a.NearMeanPeriod)
}
