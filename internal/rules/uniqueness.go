package rules

import (
	"fmt"
	"sort"

	"github.com/jonathan/survey-validator/internal/dataset"
	"github.com/jonathan/survey-validator/internal/types"
)

// CheckUniqueness verifies that the identifier column contains no duplicate
// values. One violation is emitted per duplicate value, carrying every row
// number sharing it — every duplicate group is reported, not just the first.
// Null identifiers are the null-absence check's concern and are skipped here.
func CheckUniqueness(tbl *dataset.Table) []types.Violation {
	rowsByID := make(map[string][]int)
	for _, rec := range tbl.Records {
		if rec.IDNull {
			continue
		}
		rowsByID[rec.ID] = append(rowsByID[rec.ID], rec.Row)
	}

	var dups []string
	for id, rows := range rowsByID {
		if len(rows) > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)

	var violations []types.Violation
	for _, id := range dups {
		rows := rowsByID[id]
		violations = append(violations, types.Violation{
			Rule:     types.RuleUniqueness,
			Subject:  id,
			Expected: "1 occurrence",
			Observed: fmt.Sprintf("%d occurrences", len(rows)),
			Rows:     rows,
			Count:    len(rows),
			Message: fmt.Sprintf("identifier %q in column %s appears %d times (rows %v)",
				id, tbl.IDColumn, len(rows), rows),
		})
	}
	return violations
}
