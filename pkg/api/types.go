// pkg/api/types.go
package api

import "encoding/json"

// UserType identifies the applicant profile variant.
type UserType string

const (
	UserTypeWorking UserType = "working"
	UserTypeStudent UserType = "student"
)

// KnownUserType reports whether t is one of the supported profile variants.
func KnownUserType(t string) bool {
	switch UserType(t) {
	case UserTypeWorking, UserTypeStudent:
		return true
	}
	return false
}

// ApplicantRecord is the raw, untrusted scoring request payload. Fields that
// callers routinely send malformed (numbers as strings, booleans as "yes")
// are kept as json.RawMessage and coerced by the feature codec, which never
// fails on bad values.
type ApplicantRecord struct {
	UserType       string            `json:"userType"`
	Age            json.RawMessage   `json:"age,omitempty"`
	Gender         string            `json:"gender,omitempty"`
	EducationLevel string            `json:"educationLevel,omitempty"`
	MonthlyIncome  []json.RawMessage `json:"monthlyIncome,omitempty"`
	RentPayment    string            `json:"rentPayment,omitempty"`
	Utility1Pay    string            `json:"utility1Payment,omitempty"`
	Utility2Pay    string            `json:"utility2Payment,omitempty"`

	// Working profile only.
	Occupation string `json:"occupation,omitempty"`

	// Student profile only.
	GPA            json.RawMessage `json:"gpa,omitempty"`
	CollegeScore   json.RawMessage `json:"collegeScore,omitempty"`
	CosignerIncome json.RawMessage `json:"cosignerIncome,omitempty"`
	Scholarship    json.RawMessage `json:"scholarship,omitempty"`
}

// RiskBand is the coarse three-level bucketing of the numeric score.
type RiskBand string

const (
	RiskBandLow    RiskBand = "Low"
	RiskBandMedium RiskBand = "Medium"
	RiskBandHigh   RiskBand = "High"
)

// Impact marks the direction a factor pushed the score.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNeutral  Impact = "neutral"
	ImpactNegative Impact = "negative"
)

// Factor is one named, weighted contributor in the score rationale.
type Factor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      Impact `json:"impact"`
	Weight      int    `json:"weight"`
}

// ScoreResult is the terminal response of the scoring pipeline. TopFactors
// ordering is significant: factors appear in the engine's fixed evaluation
// order, not sorted by weight.
type ScoreResult struct {
	Score       int      `json:"score"`
	RiskBand    RiskBand `json:"riskBand"`
	Explanation string   `json:"explanation"`
	TopFactors  []Factor `json:"topFactors"`
}

// ErrorBody is the failure payload returned by the HTTP layer.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
