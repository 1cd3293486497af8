// Package schemas bundles the JSON Schema documents the validator checks
// its inputs against.
package schemas

import _ "embed"

//go:embed survey_vars.schema.json
var surveyVars string

// SurveyVars returns the JSON Schema that the codebook source file must satisfy.
func SurveyVars() string {
	return surveyVars
}
