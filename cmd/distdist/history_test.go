package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/distdist/internal/database"
	"github.com/nao1215/distdist/internal/model"
)

// recordRuns runs the analysis once per threshold and returns the database directory.
func recordRuns(t *testing.T, thresholds ...string) string {
	t.Helper()

	dbDir := filepath.Join(t.TempDir(), "db")
	cfg := emptyConfig(t)
	for _, threshold := range thresholds {
		if _, _, err := executeCmd(t, "plot", "-c", cfg, "--no-figure", "-t", threshold, "--db-dir", dbDir); err != nil {
			t.Fatalf("plot -t %s failed: %v", threshold, err)
		}
	}
	return dbDir
}

// TestHistoryCmd tests listing, showing and deleting runs.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCmd(t, "history", "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No runs recorded.") {
			t.Errorf("unexpected output: %s", stdout)
		}
	})

	t.Run("lists runs", func(t *testing.T) {
		t.Parallel()

		dbDir := recordRuns(t, "150", "135")
		stdout, _, err := executeCmd(t, "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Recorded runs (2):") {
			t.Errorf("expected two runs, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "6.2089") {
			t.Errorf("expected reference mean, got:\n%s", stdout)
		}
	})

	t.Run("shows one run as JSON", func(t *testing.T) {
		t.Parallel()

		dbDir := recordRuns(t, "150")
		stdout, _, err := executeCmd(t, "history", "--db-dir", dbDir, "--id", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var a model.Analysis
		if err := json.Unmarshal([]byte(stdout), &a); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if a.Threshold != 150 || len(a.Near) != 9 {
			t.Errorf("unexpected analysis: threshold=%v near=%d", a.Threshold, len(a.Near))
		}
	})

	t.Run("missing run", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCmd(t, "history", "--db-dir", t.TempDir(), "--id", "7")
		if err == nil || !strings.Contains(err.Error(), "run 7 not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("deletes run", func(t *testing.T) {
		t.Parallel()

		dbDir := recordRuns(t, "150")
		stdout, _, err := executeCmd(t, "history", "--db-dir", dbDir, "--delete", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Deleted run 1") {
			t.Errorf("unexpected output: %s", stdout)
		}

		stdout, _, err = executeCmd(t, "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout, "No runs recorded.") {
			t.Errorf("expected empty history after delete, got:\n%s", stdout)
		}
	})
}

// TestCompareCmd tests comparing two recorded runs.
func TestCompareCmd(t *testing.T) {
	t.Parallel()

	dbDir := recordRuns(t, "150", "135")

	t.Run("text output lists moved stars", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCmd(t, "compare", "--db-dir", dbDir, "1", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"Threshold:    150 pc -> 135 pc",
			"Near systems: -2",
			"Far systems:  +2",
			"AATau: near -> far",
			"DITau: near -> far",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output, got:\n%s", want, stdout)
			}
		}
		if strings.Contains(stdout, "DLTau:") {
			t.Error("DLTau stayed far and should not be listed")
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCmd(t, "compare", "--db-dir", dbDir, "--json", "1", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var result ComparisonResult
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(result.Moved) != 2 || result.NearDelta != -2 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCmd(t, "compare", "--db-dir", dbDir, "--markdown", "1", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# Run 1 vs Run 2") || !strings.Contains(stdout, "AATau") {
			t.Errorf("unexpected markdown:\n%s", stdout)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCmd(t, "compare", "--db-dir", dbDir, "one", "2")
		if err == nil || !strings.Contains(err.Error(), "invalid run ID") {
			t.Errorf("expected invalid ID error, got %v", err)
		}
	})
}

// TestCompareRuns tests the comparison logic directly.
func TestCompareRuns(t *testing.T) {
	t.Parallel()

	aggregated := []string{"classify", model.StepMeanPeriod}
	previous := &model.Analysis{Threshold: 150, NearMeanPeriod: 6, Near: make([]model.StarRecord, 2), Steps: aggregated}
	current := &model.Analysis{Threshold: 140, NearMeanPeriod: 5.5, Near: make([]model.StarRecord, 1), Steps: aggregated}

	result := compareRuns(previous, current,
		[]database.Member{{Name: "A", Bucket: "near"}, {Name: "B", Bucket: "near"}},
		[]database.Member{{Name: "A", Bucket: "near"}, {Name: "B", Bucket: "far"}, {Name: "C", Bucket: "far"}},
	)

	if result.MeanPeriodDelta == nil || *result.MeanPeriodDelta != -0.5 || result.NearDelta != -1 {
		t.Errorf("unexpected deltas: %+v", result)
	}
	want := []BucketChange{{Name: "B", From: "near", To: "far"}, {Name: "C", From: "none", To: "far"}}
	if len(result.Moved) != len(want) {
		t.Fatalf("expected %d moves, got %+v", len(want), result.Moved)
	}
	for i := range want {
		if result.Moved[i] != want[i] {
			t.Errorf("move %d: got %+v, want %+v", i, result.Moved[i], want[i])
		}
	}
}

// TestCompareRunsWithoutMean tests that a run lacking a mean has no mean delta.
func TestCompareRunsWithoutMean(t *testing.T) {
	t.Parallel()

	previous := &model.Analysis{Threshold: 150, NearMeanPeriod: 6.2, Steps: []string{"classify", model.StepMeanPeriod}}
	failed := &model.Analysis{Threshold: 120, Steps: []string{"classify"}, ErrorMessage: model.ErrEmptyBucket.Error()}

	result := compareRuns(previous, failed, nil, nil)
	if result.MeanPeriodDelta != nil {
		t.Errorf("expected no mean delta, got %v", *result.MeanPeriodDelta)
	}

	var buf bytes.Buffer
	outputComparisonText(&buf, result)
	if !strings.Contains(buf.String(), "Mean period:  n/a") {
		t.Errorf("expected n/a mean period, got:\n%s", buf.String())
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "mean_period_delta") {
		t.Errorf("expected mean_period_delta omitted, got %s", data)
	}
}

// TestFormatMeanDelta tests mean period change formatting.
func TestFormatMeanDelta(t *testing.T) {
	t.Parallel()

	delta := 0.25
	if got := formatMeanDelta(&delta); got != "+0.2500 d" {
		t.Errorf("formatMeanDelta(0.25) = %q", got)
	}
	if got := formatMeanDelta(nil); got != "n/a" {
		t.Errorf("formatMeanDelta(nil) = %q", got)
	}
}

// TestFormatDelta tests signed count formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := map[int]string{0: "no change", 2: "+2", -3: "-3"}
	for in, want := range tests {
		if got := formatDelta(in); got != want {
			t.Errorf("formatDelta(%d) = %q, want %q", in, got, want)
		}
	}
}
