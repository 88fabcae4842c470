// internal/codec/schema.go
package codec

// SchemaVersion pins the feature-derivation contract. It covers the feature
// order below plus the documented coercion defaults: income stability is 0
// when average income is 0, and an unrecognized payment value falls back to
// on-time (1.0) for working profiles and na (0.5) for student profiles.
// Training-time dataset construction and serving-time inference must carry
// the same version or the server refuses to start.
const SchemaVersion = "v1"

// Feature slot indices. Order is the canonical wire order of the feature
// vector and must never change within a schema version.
const (
	IdxAge = iota
	IdxGender
	IdxEducation
	IdxOccupation
	IdxAvgIncome
	IdxIncomeStability
	IdxIncomeMonth1
	IdxIncomeMonth2
	IdxIncomeMonth3
	IdxIncomeMonth4
	IdxIncomeMonth5
	IdxIncomeMonth6
	IdxRentPayment
	IdxUtility1Payment
	IdxUtility2Payment
	IdxGPA
	IdxCollegeScore
	IdxCosignerIncome
	IdxScholarship

	NumFeatures
)

var featureNames = [NumFeatures]string{
	IdxAge:             "age",
	IdxGender:          "gender_enc",
	IdxEducation:       "edu_enc",
	IdxOccupation:      "occ_enc",
	IdxAvgIncome:       "avg_income",
	IdxIncomeStability: "income_stability",
	IdxIncomeMonth1:    "income_month_1",
	IdxIncomeMonth2:    "income_month_2",
	IdxIncomeMonth3:    "income_month_3",
	IdxIncomeMonth4:    "income_month_4",
	IdxIncomeMonth5:    "income_month_5",
	IdxIncomeMonth6:    "income_month_6",
	IdxRentPayment:     "rentPayment",
	IdxUtility1Payment: "utility1Payment",
	IdxUtility2Payment: "utility2Payment",
	IdxGPA:             "gpa",
	IdxCollegeScore:    "collegeScore",
	IdxCosignerIncome:  "cosignerIncome",
	IdxScholarship:     "scholarship",
}

// FeatureNames returns the canonical feature names in vector order. The
// returned slice is a copy; callers may not mutate the schema.
func FeatureNames() []string {
	out := make([]string, NumFeatures)
	copy(out[:], featureNames[:])
	return out
}

// FeatureVector is a fixed-length, fixed-order numeric encoding of an
// applicant record. Always NumFeatures long.
type FeatureVector []float64
