package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `PUMFID,WTPP,Q1,REGION
10001,125.5,1,1
10002,98.25,2,2
10003,110.0,1,1
`

func TestRead_BuildsTable(t *testing.T) {
	tbl, err := Read(strings.NewReader(sampleCSV), "PUMFID", "WTPP")
	require.NoError(t, err)

	assert.Equal(t, "PUMFID", tbl.IDColumn)
	assert.Equal(t, "WTPP", tbl.WeightColumn)
	assert.Equal(t, []string{"Q1", "REGION"}, tbl.Variables)
	require.Len(t, tbl.Records, 3)

	first := tbl.Records[0]
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, "10001", first.ID)
	assert.InDelta(t, 125.5, first.Weight, 1e-9)
	assert.Equal(t, Cell{Code: 1}, first.Values[0])
	assert.Equal(t, Cell{Code: 1}, first.Values[1])
}

func TestRead_ColumnsOrder(t *testing.T) {
	tbl, err := Read(strings.NewReader(sampleCSV), "PUMFID", "WTPP")
	require.NoError(t, err)
	assert.Equal(t, []string{"PUMFID", "WTPP", "Q1", "REGION"}, tbl.Columns())
}

func TestRead_NullCellsLoadAsNulls(t *testing.T) {
	csv := "PUMFID,WTPP,Q1\n10001,,1\n,50.0,NA\n"
	tbl, err := Read(strings.NewReader(csv), "PUMFID", "WTPP")
	require.NoError(t, err, "nulls are rule findings, not load errors")

	assert.True(t, tbl.Records[0].WeightNull)
	assert.False(t, tbl.Records[0].IDNull)
	assert.True(t, tbl.Records[1].IDNull)
	assert.True(t, tbl.Records[1].Values[0].Null)
}

func TestRead_MissingIdentifierColumn(t *testing.T) {
	csv := "WTPP,Q1\n1.0,1\n"
	_, err := Read(strings.NewReader(csv), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "PUMFID")
}

func TestRead_MissingWeightColumn(t *testing.T) {
	csv := "PUMFID,Q1\n10001,1\n"
	_, err := Read(strings.NewReader(csv), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "WTPP")
}

func TestRead_RaggedRow(t *testing.T) {
	csv := "PUMFID,WTPP,Q1\n10001,1.0,1\n10002,2.0\n"
	_, err := Read(strings.NewReader(csv), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestRead_NonNumericWeight(t *testing.T) {
	csv := "PUMFID,WTPP,Q1\n10001,heavy,1\n"
	_, err := Read(strings.NewReader(csv), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "weight")
}

func TestRead_NonIntegerCode(t *testing.T) {
	csv := "PUMFID,WTPP,Q1\n10001,1.0,maybe\n"
	_, err := Read(strings.NewReader(csv), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "Q1")
}

func TestRead_EmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "empty")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "not found")
}

func TestLoad_NotAFile(t *testing.T) {
	_, err := Load(t.TempDir(), "PUMFID", "WTPP")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "not a file")
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clps.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	tbl, err := Load(path, "PUMFID", "WTPP")
	require.NoError(t, err)
	assert.Len(t, tbl.Records, 3)
}
