// Package database provides SQLite-based storage for distdist.
//
// This package implements the RunDB, which stores:
//   - One row per analysis run with its threshold, bucket sizes and mean period
//   - The bucket each star was assigned to in that run
//   - The full analysis as JSON for later re-rendering
//
// SQLite (via modernc.org/sqlite) keeps the history in a single CGO-free file
// under the XDG data directory.
package database
