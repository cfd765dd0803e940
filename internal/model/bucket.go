package model

// Bucket identifies which distance group a star was classified into.
type Bucket int

const (
	// BucketNone is used for stars lying exactly on the threshold.
	// Classification uses open intervals on both sides, so such stars
	// belong to neither group.
	BucketNone Bucket = iota

	// BucketNear holds stars closer than the threshold.
	BucketNear

	// BucketFar holds stars farther than the threshold.
	BucketFar
)

// String returns a human-readable representation of the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketNear:
		return "near"
	case BucketFar:
		return "far"
	default:
		return "none"
	}
}

// BucketFor classifies a single distance against threshold.
func BucketFor(distance, threshold float64) Bucket {
	switch {
	case distance < threshold:
		return BucketNear
	case distance > threshold:
		return BucketFar
	default:
		return BucketNone
	}
}

// Color is a marker color name understood by the figure renderer.
type Color string

// Default marker colors for each bucket.
const (
	ColorNear         Color = "red"
	ColorFar          Color = "blue"
	ColorUnclassified Color = "gray"
)

// ColorFor returns the default marker color for a bucket.
func ColorFor(b Bucket) Color {
	switch b {
	case BucketNear:
		return ColorNear
	case BucketFar:
		return ColorFar
	default:
		return ColorUnclassified
	}
}
