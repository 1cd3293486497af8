// Package rules implements the four validation checks the engine runs over a
// loaded dataset and codebook: identifier uniqueness, answer-domain
// membership, frequency reconciliation, and null absence. Each check is a
// pure reduction over the table that returns violations as data; no check
// aborts or short-circuits another.
package rules

import (
	"github.com/jonathan/survey-validator/internal/codebook"
	"github.com/jonathan/survey-validator/internal/dataset"
	"github.com/jonathan/survey-validator/internal/types"
)

// DefaultWeightTolerance is the absolute tolerance, in population units, for
// comparing a weighted sum against the codebook's published weighted
// frequency. The codebook rounds its published figures, so exact equality is
// not achievable; 0.5 absorbs that rounding plus float summation drift.
const DefaultWeightTolerance = 0.5

// RunAll runs every check in a fixed order and merges their findings into
// one report. All checks always run over the whole dataset: the goal is a
// complete diagnostic picture in a single pass, not fail-fast.
func RunAll(tbl *dataset.Table, cb *codebook.Codebook, tolerance float64) *types.Report {
	var rep types.Report
	rep.Add(CheckUniqueness(tbl)...)
	rep.Add(CheckDomain(tbl, cb)...)
	rep.Add(CheckFrequencies(tbl, cb, tolerance)...)
	rep.Add(CheckNulls(tbl)...)
	return &rep
}

func intPtr(i int) *int {
	return &i
}
