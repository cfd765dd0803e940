package catalog

import (
	"math"

	"github.com/nao1215/distdist/internal/model"
)

// Columns holds star attributes as parallel sequences.
// Element i of every column describes the same star. A NaN period marks a
// star without a measured rotation period.
type Columns struct {
	Names          []string
	SpectralTypes  []string
	Radii          []float64
	Periods        []float64
	RAs            []float64
	Decs           []float64
	Parallaxes     []float64
	Distances      []float64
	ProperMotionRA []float64
}

// ToColumns returns the parallel-column view of records.
// Undefined periods become NaN.
func ToColumns(records []model.StarRecord) Columns {
	n := len(records)
	c := Columns{
		Names:          make([]string, n),
		SpectralTypes:  make([]string, n),
		Radii:          make([]float64, n),
		Periods:        make([]float64, n),
		RAs:            make([]float64, n),
		Decs:           make([]float64, n),
		Parallaxes:     make([]float64, n),
		Distances:      make([]float64, n),
		ProperMotionRA: make([]float64, n),
	}
	for i, r := range records {
		c.Names[i] = r.Name
		c.SpectralTypes[i] = r.SpectralType
		c.Radii[i] = r.Radius
		c.Periods[i] = math.NaN()
		if p, ok := r.PeriodDays(); ok {
			c.Periods[i] = p
		}
		c.RAs[i] = r.RightAscension
		c.Decs[i] = r.Declination
		c.Parallaxes[i] = r.Parallax
		c.Distances[i] = r.Distance
		c.ProperMotionRA[i] = r.ProperMotionRA
	}
	return c
}

// FromColumns builds records from parallel columns.
// Every column must have the same length as Names; otherwise a
// *model.DataShapeError naming the first offending column is returned and no
// records are produced.
func FromColumns(c Columns) ([]model.StarRecord, error) {
	want := len(c.Names)
	lengths := []struct {
		column string
		n      int
	}{
		{"spectral_type", len(c.SpectralTypes)},
		{"radius", len(c.Radii)},
		{"period", len(c.Periods)},
		{"ra", len(c.RAs)},
		{"dec", len(c.Decs)},
		{"parallax", len(c.Parallaxes)},
		{"distance", len(c.Distances)},
		{"pmra", len(c.ProperMotionRA)},
	}
	for _, l := range lengths {
		if l.n != want {
			return nil, &model.DataShapeError{Column: l.column, Got: l.n, Want: want}
		}
	}

	records := make([]model.StarRecord, want)
	for i := range records {
		records[i] = model.StarRecord{
			Name:           c.Names[i],
			SpectralType:   c.SpectralTypes[i],
			Radius:         c.Radii[i],
			RightAscension: c.RAs[i],
			Declination:    c.Decs[i],
			Parallax:       c.Parallaxes[i],
			Distance:       c.Distances[i],
			ProperMotionRA: c.ProperMotionRA[i],
		}
		if !math.IsNaN(c.Periods[i]) {
			records[i].Period = model.Days(c.Periods[i])
		}
	}
	return records, nil
}
