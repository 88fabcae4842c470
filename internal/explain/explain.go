// Package explain converts a clamped score plus the derived features into a
// risk band, a canned summary sentence and the ranked factor ledger. It is
// pure and total: the same inputs always produce the same rationale.
package explain

import (
	"credit-scoring-service/internal/codec"
	"credit-scoring-service/pkg/api"
)

// Risk band thresholds.
const (
	lowRiskFloor    = 70
	mediumRiskFloor = 40
)

const (
	explanationLow    = "You have an excellent credit profile."
	explanationMedium = "Your credit profile shows moderate risk."
	explanationHigh   = "Your credit profile indicates higher risk."
)

// Config carries the versioned factor weights. Deployed variants of this
// engine disagreed on the exact numbers and on whether the education factor
// exists at all, so they are configuration rather than constants.
type Config struct {
	PaymentHistoryWeight int
	AcademicWeight       int
	IncomeSupportWeight  int
	EducationWeight      int
	IncludeEducation     bool
}

// DefaultConfig matches the primary deployed variant: no education factor.
func DefaultConfig() Config {
	return Config{
		PaymentHistoryWeight: 30,
		AcademicWeight:       30,
		IncomeSupportWeight:  20,
		EducationWeight:      15,
		IncludeEducation:     false,
	}
}

// Income/Support thresholds.
const (
	highAvgIncome      = 5000.0
	highCosignerIncome = 20000.0
)

// Band buckets a clamped score into the three-level risk band.
func Band(score int) api.RiskBand {
	switch {
	case score >= lowRiskFloor:
		return api.RiskBandLow
	case score >= mediumRiskFloor:
		return api.RiskBandMedium
	default:
		return api.RiskBandHigh
	}
}

// Explain produces the band, the canned summary and the factor ledger for a
// clamped score. Factors are appended in fixed evaluation order — payment
// history, academic, income/support, education — never sorted by weight.
func Explain(score int, vec codec.FeatureVector, cfg Config) (api.RiskBand, string, []api.Factor) {
	band := Band(score)

	var explanation string
	switch band {
	case api.RiskBandLow:
		explanation = explanationLow
	case api.RiskBandMedium:
		explanation = explanationMedium
	default:
		explanation = explanationHigh
	}

	factors := make([]api.Factor, 0, 4)
	factors = append(factors, paymentFactor(vec, cfg))

	// The academic factor only exists for records that carry a GPA, which in
	// practice means student profiles.
	if vec[codec.IdxGPA] > 0 {
		factors = append(factors, academicFactor(vec, cfg))
	}

	factors = append(factors, incomeSupportFactor(vec, cfg))

	if cfg.IncludeEducation {
		factors = append(factors, educationFactor(vec, cfg))
	}

	return band, explanation, factors
}

func paymentFactor(vec codec.FeatureVector, cfg Config) api.Factor {
	paymentScore := (vec[codec.IdxRentPayment] +
		vec[codec.IdxUtility1Payment] +
		vec[codec.IdxUtility2Payment]) / 3

	f := api.Factor{Name: "Payment History", Weight: cfg.PaymentHistoryWeight}
	switch {
	case paymentScore > 0.8:
		f.Impact = api.ImpactPositive
		f.Description = "Excellent payment consistency"
	case paymentScore < 0.5:
		f.Impact = api.ImpactNegative
		f.Description = "Inconsistent payments"
	default:
		f.Impact = api.ImpactNeutral
		f.Description = "Moderate payment behavior"
	}
	return f
}

func academicFactor(vec codec.FeatureVector, cfg Config) api.Factor {
	gpa := vec[codec.IdxGPA]

	f := api.Factor{Name: "GPA", Weight: cfg.AcademicWeight}
	switch {
	case gpa >= 8.5:
		f.Impact = api.ImpactPositive
		f.Description = "Strong academic record"
	case gpa < 6:
		f.Impact = api.ImpactNegative
		f.Description = "Low GPA; academic risk"
	default:
		f.Impact = api.ImpactNeutral
		f.Description = "Moderate academic performance"
	}
	return f
}

func incomeSupportFactor(vec codec.FeatureVector, cfg Config) api.Factor {
	f := api.Factor{Name: "Support / Income", Weight: cfg.IncomeSupportWeight}
	if vec[codec.IdxAvgIncome] > highAvgIncome || vec[codec.IdxCosignerIncome] > highCosignerIncome {
		f.Impact = api.ImpactPositive
		f.Description = "Stable income or cosigner support"
	} else {
		f.Impact = api.ImpactNegative
		f.Description = "Low income or no co-signer"
	}
	return f
}

func educationFactor(vec codec.FeatureVector, cfg Config) api.Factor {
	f := api.Factor{Name: "Education Level", Weight: cfg.EducationWeight}
	// masters (3) and above
	if vec[codec.IdxEducation] >= 3 {
		f.Impact = api.ImpactPositive
		f.Description = "Advanced educational background"
	} else {
		f.Impact = api.ImpactNeutral
		f.Description = "Educational background"
	}
	return f
}
