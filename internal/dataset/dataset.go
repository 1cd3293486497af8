// Package dataset loads the survey CSV into an in-memory table: one
// identifier column, one weight column, and N survey-variable columns.
// The loader guarantees a well-typed table; whether the values are valid
// against the codebook is the rules' job.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// nullMarkers are the cell texts that load as a null value rather than a code.
var nullMarkers = map[string]bool{
	"":   true,
	"NA": true,
}

// Cell is one survey-variable value: an integer answer code, or a null.
type Cell struct {
	Code int
	Null bool
}

// Record is one survey respondent row.
type Record struct {
	Row        int    // 1-based data row number, header excluded
	ID         string // raw identifier text; meaningless when IDNull
	IDNull     bool
	Weight     float64
	WeightNull bool
	Values     []Cell // aligned with Table.Variables
}

// Table is the loaded dataset. It is read-only after Load returns.
type Table struct {
	IDColumn     string
	WeightColumn string
	Variables    []string // survey-variable columns in file order
	Records      []Record
}

// Columns returns every declared column name: identifier, weight, then the
// survey variables in file order.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(t.Variables)+2)
	cols = append(cols, t.IDColumn, t.WeightColumn)
	return append(cols, t.Variables...)
}

// Load reads the CSV file at path into a Table. idColumn and weightColumn
// name the identifier and weight columns; both must be present in the header.
func Load(path, idColumn, weightColumn string) (*Table, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Message: fmt.Sprintf("data file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("cannot stat data file: %s", path), Cause: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Message: fmt.Sprintf("not a file: %s", path)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("cannot open data file: %s", path), Cause: err}
	}
	defer func() { _ = f.Close() }()

	return Read(f, idColumn, weightColumn)
}

// Read parses CSV content from r. Split out from Load so tests and other
// callers can feed in-memory data.
func Read(r io.Reader, idColumn, weightColumn string) (*Table, error) {
	cr := csv.NewReader(r)
	// FieldsPerRecord defaults to enforcing a rectangular table; a ragged
	// row surfaces as a csv.ErrFieldCount parse error below.

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Message: "data file is empty"}
	}
	if err != nil {
		return nil, &LoadError{Message: "cannot read data header", Cause: err}
	}

	idIdx, weightIdx := -1, -1
	var variables []string
	var varIdx []int
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch name {
		case idColumn:
			idIdx = i
		case weightColumn:
			weightIdx = i
		default:
			variables = append(variables, name)
			varIdx = append(varIdx, i)
		}
	}
	if idIdx < 0 {
		return nil, &LoadError{Message: fmt.Sprintf("identifier column %q not found in header", idColumn)}
	}
	if weightIdx < 0 {
		return nil, &LoadError{Message: fmt.Sprintf("weight column %q not found in header", weightColumn)}
	}

	tbl := &Table{
		IDColumn:     idColumn,
		WeightColumn: weightColumn,
		Variables:    variables,
	}

	row := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("malformed data row %d", row+1), Cause: err}
		}
		row++

		rec := Record{Row: row, Values: make([]Cell, len(varIdx))}

		id := strings.TrimSpace(fields[idIdx])
		if nullMarkers[id] {
			rec.IDNull = true
		} else {
			rec.ID = id
		}

		w := strings.TrimSpace(fields[weightIdx])
		if nullMarkers[w] {
			rec.WeightNull = true
		} else {
			weight, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, &LoadError{Message: fmt.Sprintf(
					"row %d: weight %q is not a number", row, w), Cause: err}
			}
			rec.Weight = weight
		}

		for vi, fi := range varIdx {
			cell := strings.TrimSpace(fields[fi])
			if nullMarkers[cell] {
				rec.Values[vi] = Cell{Null: true}
				continue
			}
			code, err := strconv.Atoi(cell)
			if err != nil {
				return nil, &LoadError{Message: fmt.Sprintf(
					"row %d: column %q value %q is not an integer code", row, variables[vi], cell), Cause: err}
			}
			rec.Values[vi] = Cell{Code: code}
		}

		tbl.Records = append(tbl.Records, rec)
	}

	return tbl, nil
}
