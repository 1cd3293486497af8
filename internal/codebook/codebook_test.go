package codebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCodebook = `[
	{
		"variable_name": "Q1",
		"code": ["1", "2", "6"],
		"answer_categories": ["Yes", "No", "Valid skip"],
		"frequency": ["50", "30", "1,020"],
		"weighted_frequency": ["1,250,000", "600,000", "12,500,000"]
	},
	{
		"variable_name": "REGION",
		"code": ["1", "2"],
		"answer_categories": ["East", "West"],
		"frequency": ["40", "60"],
		"weighted_frequency": ["900000", "1100000.5"]
	}
]`

func TestParse_BuildsEntries(t *testing.T) {
	cb, err := Parse([]byte(sampleCodebook))
	require.NoError(t, err)

	assert.Equal(t, 2, cb.Len())
	assert.Equal(t, []string{"Q1", "REGION"}, cb.Variables())

	q1, ok := cb.Entry("Q1")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 6}, q1.Codes)
	assert.Equal(t, 50, q1.Frequency[1])
	assert.Equal(t, 1020, q1.Frequency[6], "thousands separators should be stripped")
	assert.InDelta(t, 1250000.0, q1.WeightedFrequency[1], 1e-9)

	region, ok := cb.Entry("REGION")
	require.True(t, ok)
	assert.InDelta(t, 1100000.5, region.WeightedFrequency[2], 1e-9)
}

func TestEntry_HasCodeAndAnswer(t *testing.T) {
	cb, err := Parse([]byte(sampleCodebook))
	require.NoError(t, err)

	q1, _ := cb.Entry("Q1")
	assert.True(t, q1.HasCode(6), "declared skip code belongs to the domain")
	assert.False(t, q1.HasCode(3))
	assert.Equal(t, "Valid skip", q1.Answer(6))
	assert.Equal(t, "", q1.Answer(99))
}

func TestParse_DuplicateVariable(t *testing.T) {
	doc := `[
		{"variable_name": "Q1", "code": ["1"], "answer_categories": ["Yes"], "frequency": ["1"], "weighted_frequency": ["1"]},
		{"variable_name": "Q1", "code": ["1"], "answer_categories": ["Yes"], "frequency": ["1"], "weighted_frequency": ["1"]}
	]`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "duplicate variable")
}

func TestParse_CodesNotStrictlyIncreasing(t *testing.T) {
	doc := `[{"variable_name": "Q1", "code": ["2", "2"], "answer_categories": ["A", "B"], "frequency": ["1", "1"], "weighted_frequency": ["1", "1"]}]`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "strictly increasing")
}

func TestParse_RangeAggregateCodeRejected(t *testing.T) {
	doc := `[{"variable_name": "PROBCNTP", "code": ["01 - 16"], "answer_categories": ["Count"], "frequency": ["10"], "weighted_frequency": ["10"]}]`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "bad answer code")
}

func TestParse_ParallelArrayMismatch(t *testing.T) {
	doc := `[{"variable_name": "Q1", "code": ["1", "2"], "answer_categories": ["Yes"], "frequency": ["1", "2"], "weighted_frequency": ["1", "2"]}]`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "parallel")
}

func TestParse_NegativeFrequency(t *testing.T) {
	doc := `[{"variable_name": "Q1", "code": ["1"], "answer_categories": ["Yes"], "frequency": ["-5"], "weighted_frequency": ["1"]}]`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var se *SchemaError
	assert.ErrorAs(t, err, &se)
}

func TestParse_SchemaRejection(t *testing.T) {
	// Entry missing the required frequency arrays.
	doc := `[{"variable_name": "Q1", "code": ["1"]}]`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "survey_vars schema")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "not found")
}

func TestLoad_NotAFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "not a file")
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey_vars.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCodebook), 0644))

	cb, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cb.Len())
}
