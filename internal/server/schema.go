// internal/server/schema.go
package server

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// applicantSchema validates the shape of the scoring payload before it
// reaches the pipeline. It is deliberately permissive about the numeric
// fields — the codec coerces those, defaulting on garbage — and strict only
// about structure: the payload must be an object and must name a userType.
const applicantSchema = `{
	"type": "object",
	"required": ["userType"],
	"properties": {
		"userType":        {"type": "string"},
		"age":             {},
		"gender":          {"type": "string"},
		"educationLevel":  {"type": "string"},
		"occupation":      {"type": "string"},
		"monthlyIncome":   {"type": "array"},
		"rentPayment":     {"type": "string"},
		"utility1Payment": {"type": "string"},
		"utility2Payment": {"type": "string"},
		"gpa":             {},
		"collegeScore":    {},
		"cosignerIncome":  {},
		"scholarship":     {}
	}
}`

var compiledApplicantSchema = gojsonschema.NewStringLoader(applicantSchema)

// validateApplicantPayload checks the raw request body against the applicant
// schema and returns a readable description of every violation.
func validateApplicantPayload(body []byte) error {
	result, err := gojsonschema.Validate(compiledApplicantSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
