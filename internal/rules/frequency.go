package rules

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jonathan/survey-validator/internal/codebook"
	"github.com/jonathan/survey-validator/internal/dataset"
	"github.com/jonathan/survey-validator/internal/types"
)

// CheckFrequencies reconciles the dataset against the codebook's published
// counts: for every variable and every code in its domain, the unweighted
// record count must equal the codebook frequency exactly, and the weighted
// sum must match the codebook weighted frequency within an absolute
// tolerance. Each mismatch is its own violation so that one bad code never
// masks another.
func CheckFrequencies(tbl *dataset.Table, cb *codebook.Codebook, tolerance float64) []types.Violation {
	var violations []types.Violation
	for vi, name := range tbl.Variables {
		entry, ok := cb.Entry(name)
		if !ok {
			continue
		}

		counts := make(map[int]int, len(entry.Codes))
		weights := make(map[int]float64, len(entry.Codes))
		for _, rec := range tbl.Records {
			cell := rec.Values[vi]
			if cell.Null || !entry.HasCode(cell.Code) {
				continue
			}
			counts[cell.Code]++
			if !rec.WeightNull {
				weights[cell.Code] += rec.Weight
			}
		}

		for _, code := range entry.Codes {
			label := entry.Answer(code)

			expected := entry.Frequency[code]
			observed := counts[code]
			if observed != expected {
				violations = append(violations, types.Violation{
					Rule:     types.RuleFrequency,
					Subject:  name,
					Code:     intPtr(code),
					Expected: strconv.Itoa(expected),
					Observed: strconv.Itoa(observed),
					Count:    observed,
					Message: fmt.Sprintf("variable %s code %d (%s): unweighted count is %d, codebook says %d",
						name, code, label, observed, expected),
				})
			}

			expectedW := entry.WeightedFrequency[code]
			observedW := weights[code]
			if math.Abs(observedW-expectedW) > tolerance {
				violations = append(violations, types.Violation{
					Rule:     types.RuleFrequency,
					Subject:  name,
					Code:     intPtr(code),
					Expected: formatWeight(expectedW),
					Observed: formatWeight(observedW),
					Count:    observed,
					Message: fmt.Sprintf("variable %s code %d (%s): weighted sum is %s, codebook says %s (tolerance %g)",
						name, code, label, formatWeight(observedW), formatWeight(expectedW), tolerance),
				})
			}
		}
	}
	return violations
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
