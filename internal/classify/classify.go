package classify

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/distdist/internal/catalog"
	"github.com/nao1215/distdist/internal/model"
	"gonum.org/v1/gonum/stat"
)

// DefaultThreshold is the distance in parsecs separating the two candidate
// Taurus associations, centred at 130.6 pc and 160.2 pc.
const DefaultThreshold = 150.0

// Observer is notified of every record as it is classified.
// Records at the threshold are reported with model.BucketNone.
type Observer interface {
	Observe(bucket model.Bucket, record model.StarRecord)
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(bucket model.Bucket, record model.StarRecord)

// Observe calls f(bucket, record).
func (f ObserverFunc) Observe(bucket model.Bucket, record model.StarRecord) {
	f(bucket, record)
}

// LogObserver returns an Observer that logs each record at debug level.
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return ObserverFunc(func(bucket model.Bucket, r model.StarRecord) {
		period, _ := r.PeriodDays()
		logger.Debug("star classified",
			"bucket", bucket.String(),
			"name", r.Name,
			"spectral_type", r.SpectralType,
			"radius", r.Radius,
			"period", period,
			"ra", r.RightAscension,
			"dec", r.Declination,
			"parallax", r.Parallax,
			"distance", r.Distance,
		)
	})
}

// Classify splits records into stars closer than threshold and stars farther
// than threshold. Input order is preserved within each group and records at
// exactly the threshold are dropped. Empty input yields two empty groups.
func Classify(records []model.StarRecord, threshold float64, observers ...Observer) (near, far []model.StarRecord) {
	near = make([]model.StarRecord, 0, len(records))
	far = make([]model.StarRecord, 0, len(records))

	for _, r := range records {
		bucket := model.BucketFor(r.Distance, threshold)
		switch bucket {
		case model.BucketNear:
			near = append(near, r)
		case model.BucketFar:
			far = append(far, r)
		}
		for _, o := range observers {
			o.Observe(bucket, r)
		}
	}

	return near, far
}

// ClassifyColumns builds records from parallel columns and classifies them.
// A column length mismatch returns a *model.DataShapeError and no groups.
func ClassifyColumns(c catalog.Columns, threshold float64, observers ...Observer) (near, far []model.StarRecord, err error) {
	records, err := catalog.FromColumns(c)
	if err != nil {
		return nil, nil, err
	}
	near, far = Classify(records, threshold, observers...)
	return near, far, nil
}

// Colors returns the marker color of each record, classified by the record's
// own distance. Records at the threshold get model.ColorUnclassified so the
// result stays index-aligned with records.
func Colors(records []model.StarRecord, threshold float64) []model.Color {
	colors := make([]model.Color, len(records))
	for i, r := range records {
		colors[i] = model.ColorFor(model.BucketFor(r.Distance, threshold))
	}
	return colors
}

// periods collects the rotation periods of records, failing on the first
// record without one.
func periods(records []model.StarRecord) ([]float64, error) {
	if len(records) == 0 {
		return nil, model.ErrEmptyBucket
	}
	values := make([]float64, len(records))
	for i, r := range records {
		p, ok := r.PeriodDays()
		if !ok {
			return nil, fmt.Errorf("%s: %w", r.Name, model.ErrUndefinedPeriod)
		}
		values[i] = p
	}
	return values, nil
}

// MeanPeriod returns the arithmetic mean rotation period of near, in days.
// It returns model.ErrEmptyBucket when near is empty and
// model.ErrUndefinedPeriod when a record has no period.
func MeanPeriod(near []model.StarRecord) (float64, error) {
	values, err := periods(near)
	if err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// PeriodStdDev returns the sample standard deviation of the rotation periods
// of records. It is zero for a single record.
func PeriodStdDev(records []model.StarRecord) (float64, error) {
	values, err := periods(records)
	if err != nil {
		return 0, err
	}
	if len(values) < 2 {
		return 0, nil
	}
	return stat.StdDev(values, nil), nil
}
