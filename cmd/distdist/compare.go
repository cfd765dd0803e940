package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/distdist/internal/database"
	"github.com/nao1215/distdist/internal/model"
	"github.com/nao1215/distdist/internal/report"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

// ComparisonResult holds the differences between two recorded runs.
type ComparisonResult struct {
	// PreviousID and CurrentID are the compared run IDs.
	PreviousID int64 `json:"previous_id"`
	CurrentID  int64 `json:"current_id"`

	// PreviousThreshold and CurrentThreshold are the distance splits.
	PreviousThreshold float64 `json:"previous_threshold"`
	CurrentThreshold  float64 `json:"current_threshold"`

	// MeanPeriodDelta is current minus previous near mean period.
	// Nil when either run has no mean.
	MeanPeriodDelta *float64 `json:"mean_period_delta,omitempty"`

	// NearDelta and FarDelta are the bucket size changes.
	NearDelta int `json:"near_delta"`
	FarDelta  int `json:"far_delta"`

	// Moved lists stars whose bucket changed.
	Moved []BucketChange `json:"moved,omitempty"`
}

// BucketChange records one star moving between buckets.
type BucketChange struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <previous-id> <current-id>",
		Short: "Compare two recorded runs",
		Long: `Compare shows how two recorded runs differ:
- Threshold and near mean rotation period
- Near and far group sizes
- Stars that moved between groups

Use 'distdist history' to list run IDs.

Examples:
  distdist compare 1 2
  distdist compare --json 1 2`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", arg, err)
		}
		ids[i] = id
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return fmt.Errorf("--json and --markdown cannot be used together")
	}

	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := loadComparison(cmd.Context(), db, ids[0], ids[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case markdownOutput:
		return outputComparisonMarkdown(out, result)
	default:
		outputComparisonText(out, result)
		return nil
	}
}

// loadComparison reads both runs and compares them.
func loadComparison(ctx context.Context, db *database.RunDB, previousID, currentID int64) (*ComparisonResult, error) {
	load := func(id int64) (*model.Analysis, []database.Member, error) {
		a, err := db.GetRunByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if a == nil {
			return nil, nil, fmt.Errorf("run %d not found", id)
		}
		members, err := db.GetRunMembers(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return a, members, nil
	}

	previous, previousMembers, err := load(previousID)
	if err != nil {
		return nil, err
	}
	current, currentMembers, err := load(currentID)
	if err != nil {
		return nil, err
	}

	result := compareRuns(previous, current, previousMembers, currentMembers)
	result.PreviousID = previousID
	result.CurrentID = currentID
	return result, nil
}

// compareRuns computes the differences between two runs. Moved stars are
// listed in the order of the current run.
func compareRuns(previous, current *model.Analysis, previousMembers, currentMembers []database.Member) *ComparisonResult {
	result := &ComparisonResult{
		PreviousThreshold: previous.Threshold,
		CurrentThreshold:  current.Threshold,
		NearDelta:         len(current.Near) - len(previous.Near),
		FarDelta:          len(current.Far) - len(previous.Far),
	}

	if previous.HasMeanPeriod() && current.HasMeanPeriod() {
		delta := current.NearMeanPeriod - previous.NearMeanPeriod
		result.MeanPeriodDelta = &delta
	}

	before := make(map[string]string, len(previousMembers))
	for _, m := range previousMembers {
		before[m.Name] = m.Bucket
	}
	for _, m := range currentMembers {
		from, ok := before[m.Name]
		if !ok {
			from = model.BucketNone.String()
		}
		if from != m.Bucket {
			result.Moved = append(result.Moved, BucketChange{Name: m.Name, From: from, To: m.Bucket})
		}
	}

	return result
}

// outputComparisonText prints the comparison for terminal display.
func outputComparisonText(out io.Writer, r *ComparisonResult) {
	fmt.Fprintf(out, "Comparing run %d with run %d\n\n", r.PreviousID, r.CurrentID)
	fmt.Fprintf(out, "  Threshold:    %s pc -> %s pc\n", report.FormatFloat(r.PreviousThreshold), report.FormatFloat(r.CurrentThreshold))
	fmt.Fprintf(out, "  Near systems: %s\n", formatDelta(r.NearDelta))
	fmt.Fprintf(out, "  Far systems:  %s\n", formatDelta(r.FarDelta))
	fmt.Fprintf(out, "  Mean period:  %s\n", formatMeanDelta(r.MeanPeriodDelta))
	fmt.Fprintln(out)

	if len(r.Moved) == 0 {
		fmt.Fprintln(out, "No stars changed group.")
		return
	}
	fmt.Fprintf(out, "Stars that changed group (%d):\n", len(r.Moved))
	for _, c := range r.Moved {
		fmt.Fprintf(out, "  * %s: %s -> %s\n", c.Name, c.From, c.To)
	}
}

// outputComparisonMarkdown writes the comparison as Markdown.
func outputComparisonMarkdown(out io.Writer, r *ComparisonResult) error {
	md := markdown.NewMarkdown(out)
	md.H1(fmt.Sprintf("Run %d vs Run %d", r.PreviousID, r.CurrentID))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Change"},
		Rows: [][]string{
			{"Threshold", report.FormatFloat(r.PreviousThreshold) + " pc -> " + report.FormatFloat(r.CurrentThreshold) + " pc"},
			{"Near systems", formatDelta(r.NearDelta)},
			{"Far systems", formatDelta(r.FarDelta)},
			{"Mean period", formatMeanDelta(r.MeanPeriodDelta)},
		},
	})
	md.PlainText("")

	md.H2("Stars That Changed Group")
	md.PlainText("")
	if len(r.Moved) == 0 {
		md.PlainText("No stars changed group.")
		return md.Build()
	}
	rows := make([][]string, len(r.Moved))
	for i, c := range r.Moved {
		rows[i] = []string{c.Name, c.From, c.To}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Star", "From", "To"},
		Rows:   rows,
	})
	return md.Build()
}

// formatDelta formats a count change with an explicit sign.
func formatDelta(delta int) string {
	if delta == 0 {
		return "no change"
	}
	return fmt.Sprintf("%+d", delta)
}

// formatMeanDelta formats a mean period change, or "n/a" when a run has no mean.
func formatMeanDelta(delta *float64) string {
	if delta == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.4f d", *delta)
}
