package rules

import (
	"fmt"

	"github.com/jonathan/survey-validator/internal/dataset"
	"github.com/jonathan/survey-validator/internal/types"
)

// CheckNulls verifies that no declared column — identifier, weight, or any
// survey variable — contains a null in any record. Findings are aggregated
// per column: one violation carrying the count and the row numbers, so every
// offending column is surfaced without drowning the report in per-cell noise.
func CheckNulls(tbl *dataset.Table) []types.Violation {
	nullRows := func(isNull func(dataset.Record) bool) []int {
		var rows []int
		for _, rec := range tbl.Records {
			if isNull(rec) {
				rows = append(rows, rec.Row)
			}
		}
		return rows
	}

	type column struct {
		name   string
		isNull func(dataset.Record) bool
	}
	columns := []column{
		{tbl.IDColumn, func(r dataset.Record) bool { return r.IDNull }},
		{tbl.WeightColumn, func(r dataset.Record) bool { return r.WeightNull }},
	}
	for vi, name := range tbl.Variables {
		vi := vi // pre-Go-1.22 loop semantics: copy so each closure sees its own index
		columns = append(columns, column{name, func(r dataset.Record) bool { return r.Values[vi].Null }})
	}

	var violations []types.Violation
	for _, col := range columns {
		rows := nullRows(col.isNull)
		if len(rows) == 0 {
			continue
		}
		violations = append(violations, types.Violation{
			Rule:     types.RuleNullAbsence,
			Subject:  col.name,
			Expected: "no nulls",
			Observed: fmt.Sprintf("%d null cells", len(rows)),
			Rows:     rows,
			Count:    len(rows),
			Message: fmt.Sprintf("column %s has %d null cells (rows %v)",
				col.name, len(rows), rows),
		})
	}
	return violations
}
