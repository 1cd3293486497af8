package rules

import (
	"fmt"
	"sort"

	"github.com/jonathan/survey-validator/internal/codebook"
	"github.com/jonathan/survey-validator/internal/dataset"
	"github.com/jonathan/survey-validator/internal/types"
)

// CheckDomain verifies that every observed value in every survey-variable
// column belongs to that variable's declared answer domain. One violation is
// emitted per (variable, offending value) pair, with the number of records
// exhibiting it. Skip codes declared in the codebook are part of the domain,
// so they pass. Variables absent from the codebook cannot be checked and are
// left to the run summary's coverage listing.
func CheckDomain(tbl *dataset.Table, cb *codebook.Codebook) []types.Violation {
	var violations []types.Violation
	for vi, name := range tbl.Variables {
		entry, ok := cb.Entry(name)
		if !ok {
			continue
		}

		offending := make(map[int][]int) // value -> rows
		for _, rec := range tbl.Records {
			cell := rec.Values[vi]
			if cell.Null {
				continue
			}
			if !entry.HasCode(cell.Code) {
				offending[cell.Code] = append(offending[cell.Code], rec.Row)
			}
		}

		values := make([]int, 0, len(offending))
		for v := range offending {
			values = append(values, v)
		}
		sort.Ints(values)

		for _, v := range values {
			rows := offending[v]
			violations = append(violations, types.Violation{
				Rule:     types.RuleDomain,
				Subject:  name,
				Code:     intPtr(v),
				Expected: fmt.Sprintf("one of %v", entry.Codes),
				Observed: fmt.Sprintf("%d", v),
				Rows:     rows,
				Count:    len(rows),
				Message: fmt.Sprintf("variable %s: value %d is outside the answer domain %v (%d records)",
					name, v, entry.Codes, len(rows)),
			})
		}
	}
	return violations
}
