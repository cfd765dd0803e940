package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/distdist/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *RunDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// createTestAnalysis returns a small completed analysis.
func createTestAnalysis(at time.Time) *model.Analysis {
	a := model.NewAnalysis(150)
	a.DateAnalyzed = at

	aa := model.StarRecord{Name: "AATau", Period: model.Days(8.22), Distance: 137.2}
	dl := model.StarRecord{Name: "DLTau", Period: model.Days(9.4), Distance: 159.3}
	edge := model.StarRecord{Name: "Edge", Period: model.Days(1), Distance: 150}

	a.Records = []model.StarRecord{aa, dl, edge}
	a.Excluded = []model.StarRecord{{Name: "CITau", Distance: 158.7}}
	a.Near = []model.StarRecord{aa}
	a.Far = []model.StarRecord{dl}
	a.NearMeanPeriod = 8.22
	a.FigurePath = "DistRotDist.jpeg"
	a.Steps = []string{"load_catalog", "filter_periods", "classify", model.StepMeanPeriod, "bin", "render"}
	return a
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = db.Close()

		db, err = Open(dbDir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		_ = db.Close()
	})

	t.Run("without WAL", func(t *testing.T) {
		t.Parallel()

		db, err := Open(t.TempDir(), Options{CreateIfNotExists: true})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		_ = db.Close()
	})
}

// TestSaveRun tests storing and retrieving runs.
func TestSaveRun(t *testing.T) {
	t.Parallel()

	t.Run("round trips analysis", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := t.Context()
		at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

		id, err := db.SaveRun(ctx, createTestAnalysis(at))
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
		if id <= 0 {
			t.Fatalf("expected positive ID, got %d", id)
		}

		got, err := db.GetRunByID(ctx, id)
		if err != nil {
			t.Fatalf("GetRunByID failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected stored analysis")
		}
		if got.Threshold != 150 || got.NearMeanPeriod != 8.22 {
			t.Errorf("unexpected analysis: threshold=%v mean=%v", got.Threshold, got.NearMeanPeriod)
		}
		if len(got.Near) != 1 || got.Near[0].Name != "AATau" {
			t.Errorf("unexpected near bucket: %+v", got.Near)
		}
		if p, ok := got.Near[0].PeriodDays(); !ok || p != 8.22 {
			t.Errorf("expected period 8.22, got %v (%v)", p, ok)
		}
		if !got.DateAnalyzed.Equal(at) {
			t.Errorf("expected date %v, got %v", at, got.DateAnalyzed)
		}
	})

	t.Run("stores members with buckets", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := t.Context()

		id, err := db.SaveRun(ctx, createTestAnalysis(time.Now()))
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		members, err := db.GetRunMembers(ctx, id)
		if err != nil {
			t.Fatalf("GetRunMembers failed: %v", err)
		}
		want := []struct{ name, bucket string }{
			{"AATau", "near"},
			{"DLTau", "far"},
			{"Edge", "none"},
		}
		if len(members) != len(want) {
			t.Fatalf("expected %d members, got %d", len(want), len(members))
		}
		for i, w := range want {
			if members[i].Name != w.name || members[i].Bucket != w.bucket {
				t.Errorf("member %d: got %s/%s, want %s/%s", i, members[i].Name, members[i].Bucket, w.name, w.bucket)
			}
			if !members[i].Period.Valid {
				t.Errorf("member %d: expected period", i)
			}
		}
	})

	t.Run("failed run has no mean", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := t.Context()

		a := createTestAnalysis(time.Now())
		a.Near = nil
		a.NearMeanPeriod = 0
		a.Error = model.ErrEmptyBucket
		a.Steps = []string{"load_catalog", "filter_periods", "classify"}

		if _, err := db.SaveRun(ctx, a); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		runs, err := db.ListRuns(ctx)
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}
		if runs[0].NearMeanPeriod.Valid {
			t.Error("expected NULL mean for failed run")
		}
	})

	t.Run("run failing after aggregation keeps its mean", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := t.Context()

		a := createTestAnalysis(time.Now())
		a.Steps = []string{"load_catalog", "filter_periods", "classify", model.StepMeanPeriod, "bin"}
		a.Error = errors.New("render: disk full")
		a.FigurePath = ""

		if _, err := db.SaveRun(ctx, a); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		runs, err := db.ListRuns(ctx)
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}
		if !runs[0].NearMeanPeriod.Valid || runs[0].NearMeanPeriod.Float64 != 8.22 {
			t.Errorf("expected mean 8.22 kept, got %+v", runs[0].NearMeanPeriod)
		}
	})
}

// TestListRuns tests history listing.
func TestListRuns(t *testing.T) {
	t.Parallel()

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		runs, err := setupTestDB(t).ListRuns(t.Context())
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})

	t.Run("newest first with metadata", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := t.Context()
		older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := older.Add(24 * time.Hour)

		oldID, err := db.SaveRun(ctx, createTestAnalysis(older))
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
		newID, err := db.SaveRun(ctx, createTestAnalysis(newer))
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		runs, err := db.ListRuns(ctx)
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].ID != newID || runs[1].ID != oldID {
			t.Errorf("expected newest first, got IDs %d, %d", runs[0].ID, runs[1].ID)
		}
		if !runs[0].Timestamp.Equal(newer) {
			t.Errorf("expected timestamp %v, got %v", newer, runs[0].Timestamp)
		}

		meta := runs[0]
		if meta.NearCount != 1 || meta.FarCount != 1 || meta.ExcludedCount != 1 {
			t.Errorf("unexpected counts: %+v", meta)
		}
		if !meta.NearMeanPeriod.Valid || meta.NearMeanPeriod.Float64 != 8.22 {
			t.Errorf("unexpected mean: %+v", meta.NearMeanPeriod)
		}
		if meta.FigurePath != "DistRotDist.jpeg" {
			t.Errorf("unexpected figure path %q", meta.FigurePath)
		}
	})
}

// TestGetRunByID tests lookup of missing runs.
func TestGetRunByID(t *testing.T) {
	t.Parallel()

	got, err := setupTestDB(t).GetRunByID(t.Context(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing run")
	}
}

// TestDeleteRun tests removal of runs and members.
func TestDeleteRun(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := t.Context()

	id, err := db.SaveRun(ctx, createTestAnalysis(time.Now()))
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	deleted, err := db.DeleteRun(ctx, id)
	if err != nil || !deleted {
		t.Fatalf("expected run deleted, got %v, %v", deleted, err)
	}

	members, err := db.GetRunMembers(ctx, id)
	if err != nil {
		t.Fatalf("GetRunMembers failed: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("expected members removed, got %d", len(members))
	}

	deleted, err = db.DeleteRun(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report nothing removed")
	}
}

// TestParseTimestamp tests the supported timestamp formats.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name  string
		input string
	}{
		{"sqlite default", "2026-01-02 03:04:05"},
		{"iso with Z", "2026-01-02T03:04:05Z"},
		{"iso without zone", "2026-01-02T03:04:05"},
		{"rfc3339", "2026-01-02T03:04:05+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tt.input); !got.Equal(want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}

	t.Run("invalid returns zero", func(t *testing.T) {
		t.Parallel()
		if got := parseTimestamp("not a time"); !got.IsZero() {
			t.Errorf("expected zero time, got %v", got)
		}
	})
}

// TestSaveRunCanceled tests that a canceled context aborts the save.
func TestSaveRunCanceled(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := db.SaveRun(ctx, createTestAnalysis(time.Now()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	runs, err := db.ListRuns(t.Context())
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected nothing stored, got %d runs", len(runs))
	}
}
