package catalog

import (
	"strings"

	"github.com/nao1215/distdist/internal/model"
	"golang.org/x/text/cases"
)

// normalizeName case-folds a star name and drops whitespace, so "cx tau",
// "CX Tau" and "CXTau" compare equal.
func normalizeName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), ""))
}

// Lookup returns the first record whose name matches name, ignoring case and
// whitespace.
func Lookup(records []model.StarRecord, name string) (model.StarRecord, bool) {
	want := normalizeName(name)
	if want == "" {
		return model.StarRecord{}, false
	}
	for _, r := range records {
		if normalizeName(r.Name) == want {
			return r, true
		}
	}
	return model.StarRecord{}, false
}
