// Package classify partitions stars into near and far groups by distance and
// aggregates rotation periods over the near group.
//
// Classification uses open intervals on both sides of the threshold: a star
// at exactly the threshold distance is in neither group. Observers can be
// attached to follow each classified star, which is how the CLI produces its
// per-group listing and debug log without the classifier writing anywhere.
package classify
