package catalog

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/nao1215/distdist/internal/model"
)

// TestReference verifies the embedded Taurus-Auriga dataset.
func TestReference(t *testing.T) {
	t.Parallel()

	records := Reference()

	t.Run("contains 13 catalogued stars", func(t *testing.T) {
		t.Parallel()
		if len(records) != 13 {
			t.Errorf("expected 13 stars, got %d", len(records))
		}
	})

	t.Run("names are unique", func(t *testing.T) {
		t.Parallel()
		seen := make(map[string]bool)
		for _, r := range records {
			if seen[r.Name] {
				t.Errorf("duplicate star name %q", r.Name)
			}
			seen[r.Name] = true
		}
	})

	t.Run("distances lie in the Taurus range", func(t *testing.T) {
		t.Parallel()
		for _, r := range records {
			if r.Distance < 110 || r.Distance > 180 {
				t.Errorf("%s: distance %v outside 110-180 pc", r.Name, r.Distance)
			}
		}
	})

	t.Run("returns a fresh slice on every call", func(t *testing.T) {
		t.Parallel()
		a := Reference()
		a[0].Name = "mutated"
		if Reference()[0].Name != "AATau" {
			t.Error("expected Reference to be unaffected by caller mutation")
		}
	})
}

// TestWithPeriod verifies the undefined-period exclusion.
func TestWithPeriod(t *testing.T) {
	t.Parallel()

	kept, excluded := WithPeriod(Reference())

	if len(kept) != 10 {
		t.Errorf("expected 10 stars with periods, got %d", len(kept))
	}

	wantExcluded := []string{"CITau", "CX Tau", "DOTau"}
	if got := model.Names(excluded); !slices.Equal(got, wantExcluded) {
		t.Errorf("expected excluded %v, got %v", wantExcluded, got)
	}

	wantKept := []string{
		"AATau", "CYTau", "DETau", "DGTau", "DITau",
		"DLTau", "DNTau", "IPTau", "V1070Tau", "V1115Tau",
	}
	if got := model.Names(kept); !slices.Equal(got, wantKept) {
		t.Errorf("expected kept %v, got %v", wantKept, got)
	}

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		kept, excluded := WithPeriod(nil)
		if len(kept) != 0 || len(excluded) != 0 {
			t.Errorf("expected empty results, got %d kept and %d excluded", len(kept), len(excluded))
		}
	})
}

// TestFromColumns verifies building records from parallel columns.
func TestFromColumns(t *testing.T) {
	t.Parallel()

	t.Run("round trips the reference catalog", func(t *testing.T) {
		t.Parallel()

		ref := Reference()
		records, err := FromColumns(ToColumns(ref))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != len(ref) {
			t.Fatalf("expected %d records, got %d", len(ref), len(records))
		}
		for i := range ref {
			if records[i].Name != ref[i].Name || records[i].Distance != ref[i].Distance {
				t.Errorf("record %d: got %s/%v, want %s/%v",
					i, records[i].Name, records[i].Distance, ref[i].Name, ref[i].Distance)
			}
			if records[i].HasPeriod() != ref[i].HasPeriod() {
				t.Errorf("record %d (%s): period definedness changed", i, ref[i].Name)
			}
		}
	})

	t.Run("NaN period becomes undefined", func(t *testing.T) {
		t.Parallel()

		c := ToColumns(Reference()[:2])
		if !math.IsNaN(c.Periods[1]) {
			t.Fatalf("expected NaN period for CITau, got %v", c.Periods[1])
		}
		records, err := FromColumns(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[1].HasPeriod() {
			t.Error("expected CITau to have no period")
		}
	})

	t.Run("mismatched column returns DataShapeError", func(t *testing.T) {
		t.Parallel()

		c := ToColumns(Reference())
		c.Distances = c.Distances[:9]

		records, err := FromColumns(c)
		if !errors.Is(err, model.ErrDataShape) {
			t.Fatalf("expected ErrDataShape, got %v", err)
		}
		var shapeErr *model.DataShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatal("expected *model.DataShapeError")
		}
		if shapeErr.Column != "distance" || shapeErr.Got != 9 || shapeErr.Want != 13 {
			t.Errorf("unexpected error detail: %+v", shapeErr)
		}
		if records != nil {
			t.Error("expected no partial records")
		}
	})

	t.Run("empty columns produce no records", func(t *testing.T) {
		t.Parallel()

		records, err := FromColumns(Columns{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})
}

// TestLookup verifies case and whitespace insensitive name lookup.
func TestLookup(t *testing.T) {
	t.Parallel()

	records := Reference()

	testCases := []struct {
		query string
		want  string
		found bool
	}{
		{"AATau", "AATau", true},
		{"aatau", "AATau", true},
		{"cx tau", "CX Tau", true},
		{"CXTau", "CX Tau", true},
		{"  V1115 Tau ", "V1115Tau", true},
		{"HLTau", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			t.Parallel()
			r, ok := Lookup(records, tc.query)
			if ok != tc.found {
				t.Fatalf("Lookup(%q) found=%v, expected %v", tc.query, ok, tc.found)
			}
			if ok && r.Name != tc.want {
				t.Errorf("Lookup(%q) = %q, expected %q", tc.query, r.Name, tc.want)
			}
		})
	}
}
