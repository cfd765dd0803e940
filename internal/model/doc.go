// Package model defines the core data structures used throughout distdist.
//
// This package contains the following main types:
//   - StarRecord: One catalogued star with its measured attributes
//   - Bucket: The near/far classification of a star by distance
//   - Analysis: The result of a single classification and aggregation run
//
// Multiple packages (catalog, classify, report, database) share these types,
// so keeping them here avoids import cycles. All types serialize to JSON for
// report output and run history storage.
package model
