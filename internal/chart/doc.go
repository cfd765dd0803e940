// Package chart renders the period and distance histograms of an analysis
// into a two-panel raster figure.
//
// The panels share their y axis. Each bin is drawn as a stacked bar: the
// total count in the far color with the near count on top of it in the near
// color, so the far group shows as the exposed upper part of a bar.
//
// JPEG output additionally carries EXIF ImageDescription and Software tags
// describing the run, written with go-exif.
package chart
