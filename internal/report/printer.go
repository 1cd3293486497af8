// Package report renders a validation report for humans: one diagnostic line
// per violation on the diagnostics stream, and a run summary on the output
// stream, so the two can be redirected independently.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/survey-validator/internal/types"
)

// ruleOrder fixes the summary ordering regardless of what the report holds.
var ruleOrder = []types.RuleKind{
	types.RuleUniqueness,
	types.RuleDomain,
	types.RuleFrequency,
	types.RuleNullAbsence,
}

// Printer writes validation results. Summary and progress go to out;
// per-violation diagnostics go to diag.
type Printer struct {
	out  io.Writer
	diag io.Writer
}

// NewPrinter creates a Printer writing summaries to out and diagnostics to diag.
func NewPrinter(out, diag io.Writer) *Printer {
	return &Printer{out: out, diag: diag}
}

// PrintViolations writes one diagnostic line per violation, in report order.
//
//nolint:errcheck // writing to the diagnostics stream; errors are not recoverable
func (p *Printer) PrintViolations(rep *types.Report) {
	for _, v := range rep.Violations {
		fmt.Fprintf(p.diag, "violation [%s] %s\n", v.Rule, v.Message)
	}
}

// PrintSummary writes per-rule counts and the overall verdict.
//
//nolint:errcheck // writing to the output stream; errors are not recoverable
func (p *Printer) PrintSummary(rep *types.Report) {
	for _, kind := range ruleOrder {
		fmt.Fprintf(p.out, "  %-12s %d\n", kind, rep.CountByRule(kind))
	}
	fmt.Fprintf(p.out, "result: %s\n", rep)
}

// PrintCoverage lists columns present on only one side of the inputs. These
// are not violations, but a clean run should still surface them.
//
//nolint:errcheck // writing to the output stream; errors are not recoverable
func (p *Printer) PrintCoverage(datasetOnly, codebookOnly []string) {
	if len(datasetOnly) > 0 {
		fmt.Fprintf(p.out, "note: dataset columns not in codebook: %s\n", strings.Join(datasetOnly, ", "))
	}
	if len(codebookOnly) > 0 {
		fmt.Fprintf(p.out, "note: codebook variables not in dataset: %s\n", strings.Join(codebookOnly, ", "))
	}
}

// Coverage computes which dataset variables the codebook does not declare
// and which codebook variables the dataset does not carry, preserving each
// side's own ordering.
func Coverage(datasetVars, codebookVars []string) (datasetOnly, codebookOnly []string) {
	inCodebook := make(map[string]bool, len(codebookVars))
	for _, v := range codebookVars {
		inCodebook[v] = true
	}
	inDataset := make(map[string]bool, len(datasetVars))
	for _, v := range datasetVars {
		inDataset[v] = true
	}

	for _, v := range datasetVars {
		if !inCodebook[v] {
			datasetOnly = append(datasetOnly, v)
		}
	}
	for _, v := range codebookVars {
		if !inDataset[v] {
			codebookOnly = append(codebookOnly, v)
		}
	}
	return datasetOnly, codebookOnly
}
