// Package codebook parses and holds the per-variable metadata extracted from
// the survey codebook: each variable's valid answer codes and the published
// unweighted and weighted frequency of every code.
package codebook

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/survey-validator/internal/schemas"
	schemadocs "github.com/jonathan/survey-validator/schemas"
)

// Entry holds the metadata for one survey variable. Entries are built once
// at load time and never mutated afterward.
type Entry struct {
	VariableName      string
	Codes             []int    // strictly increasing answer domain
	AnswerCategories  []string // parallel to Codes
	Frequency         map[int]int
	WeightedFrequency map[int]float64
}

// HasCode reports whether c belongs to the variable's answer domain.
// Codebook-declared skip codes are ordinary members of the domain.
func (e *Entry) HasCode(c int) bool {
	for _, code := range e.Codes {
		if code == c {
			return true
		}
	}
	return false
}

// Answer returns the answer category text for a code, or "" if the code is
// not in the domain.
func (e *Entry) Answer(c int) string {
	for i, code := range e.Codes {
		if code == c {
			return e.AnswerCategories[i]
		}
	}
	return ""
}

// Codebook maps variable names to their entries, preserving the order the
// codebook file declares them in.
type Codebook struct {
	entries map[string]*Entry
	names   []string
}

// Entry looks up a variable by name.
func (cb *Codebook) Entry(name string) (*Entry, bool) {
	e, ok := cb.entries[name]
	return e, ok
}

// Variables returns variable names in codebook order.
func (cb *Codebook) Variables() []string {
	return cb.names
}

// Len returns the number of variables in the codebook.
func (cb *Codebook) Len() int {
	return len(cb.names)
}

// rawEntry mirrors the codebook JSON: parallel arrays of strings, with
// numbers formatted the way the codebook publisher prints them (thousands
// separators included).
type rawEntry struct {
	VariableName      string   `json:"variable_name"`
	Code              []string `json:"code"`
	AnswerCategories  []string `json:"answer_categories"`
	Frequency         []string `json:"frequency"`
	WeightedFrequency []string `json:"weighted_frequency"`
}

// Load reads and parses the codebook JSON file at path.
func Load(path string) (*Codebook, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &SchemaError{Message: fmt.Sprintf("codebook file not found: %s", path)}
	}
	if err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("cannot stat codebook file: %s", path), Cause: err}
	}
	if info.IsDir() {
		return nil, &SchemaError{Message: fmt.Sprintf("not a file: %s", path)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("cannot read codebook file: %s", path), Cause: err}
	}
	return Parse(data)
}

// Parse builds a Codebook from raw codebook JSON. The document is first
// checked against the bundled JSON Schema, then each entry's numbers are
// parsed and cross-checked.
func Parse(data []byte) (*Codebook, error) {
	if err := schemas.ValidateJSONString(schemadocs.SurveyVars(), string(data)); err != nil {
		return nil, &SchemaError{Message: "codebook does not match the survey_vars schema", Cause: err}
	}

	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Message: "cannot parse codebook JSON", Cause: err}
	}

	cb := &Codebook{entries: make(map[string]*Entry, len(raw))}
	for _, r := range raw {
		if _, dup := cb.entries[r.VariableName]; dup {
			return nil, &SchemaError{Message: fmt.Sprintf("duplicate variable %q in codebook", r.VariableName)}
		}
		e, err := buildEntry(r)
		if err != nil {
			return nil, err
		}
		cb.entries[r.VariableName] = e
		cb.names = append(cb.names, r.VariableName)
	}
	return cb, nil
}

func buildEntry(r rawEntry) (*Entry, error) {
	name := r.VariableName
	n := len(r.Code)
	if len(r.AnswerCategories) != n || len(r.Frequency) != n || len(r.WeightedFrequency) != n {
		return nil, &SchemaError{Message: fmt.Sprintf(
			"variable %q: answer arrays must be parallel (codes=%d, categories=%d, frequency=%d, weighted_frequency=%d)",
			name, n, len(r.AnswerCategories), len(r.Frequency), len(r.WeightedFrequency))}
	}

	e := &Entry{
		VariableName:      name,
		Codes:             make([]int, 0, n),
		AnswerCategories:  r.AnswerCategories,
		Frequency:         make(map[int]int, n),
		WeightedFrequency: make(map[int]float64, n),
	}

	prev := 0
	for i, raw := range r.Code {
		code, err := parseCode(raw)
		if err != nil {
			return nil, &SchemaError{Message: fmt.Sprintf("variable %q: bad answer code %q", name, raw), Cause: err}
		}
		if i > 0 && code <= prev {
			return nil, &SchemaError{Message: fmt.Sprintf(
				"variable %q: answer codes must be strictly increasing (%d after %d)", name, code, prev)}
		}
		prev = code

		freq, err := parseCount(r.Frequency[i])
		if err != nil {
			return nil, &SchemaError{Message: fmt.Sprintf(
				"variable %q code %d: bad frequency %q", name, code, r.Frequency[i]), Cause: err}
		}
		wfreq, err := parseWeighted(r.WeightedFrequency[i])
		if err != nil {
			return nil, &SchemaError{Message: fmt.Sprintf(
				"variable %q code %d: bad weighted frequency %q", name, code, r.WeightedFrequency[i]), Cause: err}
		}

		e.Codes = append(e.Codes, code)
		e.Frequency[code] = freq
		e.WeightedFrequency[code] = wfreq
	}
	return e, nil
}

// parseCode parses a single answer code. Range aggregates ("01 - 16") are
// rejected: the codebook extractor emits one row per code.
func parseCode(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(stripSeparators(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("count is negative: %d", n)
	}
	return n, nil
}

func parseWeighted(s string) (float64, error) {
	f, err := strconv.ParseFloat(stripSeparators(s), 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("weighted count is negative: %g", f)
	}
	return f, nil
}

func stripSeparators(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
