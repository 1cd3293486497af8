// Package types provides type definitions for structured data used throughout the survey-validator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// RuleKind identifies which validation rule produced a violation.
type RuleKind string

// The four rule kinds the engine runs on every pass.
const (
	RuleUniqueness  RuleKind = "uniqueness"
	RuleDomain      RuleKind = "domain"
	RuleFrequency   RuleKind = "frequency"
	RuleNullAbsence RuleKind = "null_absence"
)

// Violation represents a single validation finding. Violations are facts
// about the inputs, not errors: the engine keeps running after any number
// of them.
type Violation struct {
	Rule     RuleKind `json:"rule"`
	Subject  string   `json:"subject"`            // variable/column name or record identifier
	Code     *int     `json:"code,omitempty"`     // answer code the finding is about, where applicable
	Expected string   `json:"expected,omitempty"` // expected value, rendered
	Observed string   `json:"observed,omitempty"` // observed value, rendered
	Rows     []int    `json:"rows,omitempty"`     // 1-based data row numbers, where known
	Count    int      `json:"count,omitempty"`    // number of records exhibiting the finding
	Message  string   `json:"message"`
}

// Report is the ordered collection of all violations produced by one
// validation run.
type Report struct {
	Violations []Violation `json:"violations"`
}

// Add appends violations to the report, preserving order.
func (r *Report) Add(vs ...Violation) {
	r.Violations = append(r.Violations, vs...)
}

// Passed reports whether the run found no violations.
func (r *Report) Passed() bool {
	return len(r.Violations) == 0
}

// CountByRule returns how many violations the given rule produced.
func (r *Report) CountByRule(kind RuleKind) int {
	n := 0
	for _, v := range r.Violations {
		if v.Rule == kind {
			n++
		}
	}
	return n
}

// String renders a one-line verdict, e.g. "fail (3 violations)".
func (r *Report) String() string {
	if r.Passed() {
		return "pass"
	}
	return fmt.Sprintf("fail (%d violations)", len(r.Violations))
}
