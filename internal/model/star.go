package model

// StarRecord is a single catalogued star.
// Distances and astrometry come from Fleming et al. (2019); rotation periods
// come from Rebull et al. (2004).
type StarRecord struct {
	// Name is the star identifier, unique within a catalog (e.g. "AATau").
	Name string `json:"name"`

	// SpectralType is the spectral classification code (e.g. "K7", "M0").
	SpectralType string `json:"spectral_type"`

	// Radius is the stellar radius in solar radii.
	Radius float64 `json:"radius"`

	// VSinI is the projected rotational velocity in km/s.
	VSinI float64 `json:"vsini"`

	// Period is the rotation period in days.
	// Nil when no rotation period could be measured.
	Period *float64 `json:"period,omitempty"`

	// RightAscension is the right ascension in degrees.
	RightAscension float64 `json:"ra"`

	// Declination is the declination in degrees.
	Declination float64 `json:"dec"`

	// Parallax is the Gaia DR2 parallax in milliarcseconds.
	Parallax float64 `json:"parallax"`

	// Distance is the distance in parsecs.
	Distance float64 `json:"distance"`

	// ProperMotionRA is the proper motion in right ascension (mas/yr).
	ProperMotionRA float64 `json:"pmra"`

	// ProperMotionDec is the proper motion in declination (mas/yr).
	ProperMotionDec float64 `json:"pmdec"`

	// GaiaDR2 is the Gaia DR2 source identifier.
	GaiaDR2 string `json:"gaia_dr2,omitempty"`
}

// Days returns a pointer to a period value.
// It exists so record literals can set Period inline.
func Days(v float64) *float64 {
	return &v
}

// HasPeriod reports whether the star has a measured rotation period.
func (s StarRecord) HasPeriod() bool {
	return s.Period != nil
}

// PeriodDays returns the rotation period and whether it is defined.
func (s StarRecord) PeriodDays() (float64, bool) {
	if s.Period == nil {
		return 0, false
	}
	return *s.Period, true
}

// Names returns the names of the given records in order.
func Names(records []StarRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

// Distances returns the distances of the given records in order.
func Distances(records []StarRecord) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Distance
	}
	return values
}

// Periods returns the defined rotation periods of the given records in order.
// Records without a period are skipped.
func Periods(records []StarRecord) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if p, ok := r.PeriodDays(); ok {
			values = append(values, p)
		}
	}
	return values
}
