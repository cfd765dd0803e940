// Package catalog provides the embedded Taurus-Auriga reference dataset and
// the helpers that prepare it for classification.
//
// The reference catalog is the overlap between Fleming et al. (2019), which
// supplies Gaia DR2 astrometry and distances, and Rebull et al. (2004), which
// supplies rotation periods. Three members (CITau, CX Tau and DOTau) have no
// measured rotation period; they stay in the catalog and are removed by
// WithPeriod so the exclusion shows up in reports.
package catalog
