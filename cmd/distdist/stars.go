package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nao1215/distdist/internal/catalog"
	"github.com/nao1215/distdist/internal/config"
	"github.com/nao1215/distdist/internal/model"
	"github.com/nao1215/distdist/internal/report"
	"github.com/spf13/cobra"
)

// errStarNotFound is returned when a named star is not in the catalog.
var errStarNotFound = errors.New("star not found in catalog")

// NewStarsCmd creates the stars command.
func NewStarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stars [name]",
		Short: "List the catalog or show one star",
		Long: `Stars prints the Taurus-Auriga catalog.

Without arguments, the stars with a measured rotation period are listed.
Use --all to include stars whose period is undefined.
With a name, every catalogued attribute of that star is shown. Names are
matched ignoring case and spaces, so "cx tau" finds "CX Tau".

Examples:
  # List stars used in the analysis
  distdist stars

  # List the whole catalog as Markdown
  distdist stars --all --markdown

  # Show one star
  distdist stars aatau`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStarsCmd,
	}

	cmd.Flags().BoolP("all", "a", false,
		"Include stars without a measured rotation period")
	cmd.Flags().Float64P("threshold", "t", config.DefaultThreshold,
		"Distance in parsecs used to report a star's group")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")

	return cmd
}

// runStarsCmd executes the stars command.
func runStarsCmd(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	threshold, err := cmd.Flags().GetFloat64("threshold")
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	cfg.Threshold = threshold
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return config.ErrConflictingReportFormats
	}

	out := cmd.OutOrStdout()
	records := catalog.Reference()

	if len(args) == 1 {
		star, ok := catalog.Lookup(records, args[0])
		if !ok {
			return fmt.Errorf("%w: %s", errStarNotFound, args[0])
		}
		if cfg.JSONReport || cfg.MarkdownReport {
			_, err := newWriter(cfg, out).WriteStars([]model.StarRecord{star})
			return err
		}
		return writeStarDetail(out, star, threshold)
	}

	if !all {
		records, _ = catalog.WithPeriod(records)
	}
	_, err = newWriter(cfg, out).WriteStars(records)
	return err
}

// writeStarDetail prints every attribute of one star as aligned key/value lines.
func writeStarDetail(w io.Writer, s model.StarRecord, threshold float64) error {
	period := "undefined"
	if p, ok := s.PeriodDays(); ok {
		period = report.FormatFloat(p) + " d"
	}
	group := model.BucketFor(s.Distance, threshold).String()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Name", s.Name},
		{"Spectral type", s.SpectralType},
		{"Radius", report.FormatFloat(s.Radius) + " Rsun"},
		{"v sin i", report.FormatFloat(s.VSinI) + " km/s"},
		{"Period", period},
		{"RA", report.FormatFloat(s.RightAscension) + " deg"},
		{"DEC", report.FormatFloat(s.Declination) + " deg"},
		{"Parallax", report.FormatFloat(s.Parallax) + " mas"},
		{"Distance", report.FormatFloat(s.Distance) + " pc"},
		{"PM RA", report.FormatFloat(s.ProperMotionRA) + " mas/yr"},
		{"PM DEC", report.FormatFloat(s.ProperMotionDec) + " mas/yr"},
		{"Gaia DR2", s.GaiaDR2},
		{"Group", fmt.Sprintf("%s (threshold %s pc)", group, report.FormatFloat(threshold))},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}
