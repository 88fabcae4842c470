// Package codec derives the fixed-order numeric feature vector from a raw
// applicant record. Encode is total: every malformed or missing input
// degrades to a documented default instead of failing the request. The same
// derivation runs at training time (dataset construction) and serving time;
// any divergence between the two silently corrupts predictions, so all
// encoding tables and defaults live here and nowhere else.
package codec

import (
	"encoding/json"
	"math"
	"strings"

	"credit-scoring-service/pkg/api"
)

const (
	defaultAgeWorking   = 30.0
	defaultAgeStudent   = 25.0
	defaultGPA          = 6.5
	defaultCollegeScore = 60.0

	incomeMonths = 6
)

// Occupation categories, most to least favorable in training data.
const (
	OccProfessional = "professional"
	OccSkilled      = "skilled"
	OccSemiSkilled  = "semi-skilled"
	OccEntryLevel   = "entry-level"
)

// occupationRules map free-text occupation keywords to a category, evaluated
// in priority order. No match means entry-level.
var occupationRules = []struct {
	keywords []string
	category string
}{
	{[]string{"engineer", "doctor", "lawyer", "manager", "software"}, OccProfessional},
	{[]string{"analyst", "technician", "nurse"}, OccSkilled},
	{[]string{"clerk", "sales"}, OccSemiSkilled},
}

// educationLevels is a fixed ordinal map; unseen values encode as 0.
var educationLevels = map[string]float64{
	"other":       0,
	"high-school": 1,
	"bachelors":   2,
	"masters":     3,
	"phd":         4,
}

var paymentValues = map[string]float64{
	"on-time": 1.0,
	"na":      0.5,
	"late":    0.0,
}

// CategorizeOccupation lower-cases free text and matches it against the
// keyword rules in priority order.
func CategorizeOccupation(occupation string) string {
	occ := strings.ToLower(occupation)
	for _, rule := range occupationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(occ, kw) {
				return rule.category
			}
		}
	}
	return OccEntryLevel
}

// Encode maps a raw applicant record onto the canonical feature vector. It
// never fails; the second return value lists the fields that were replaced
// by their documented default, for data-quality observability. Callers must
// reject unknown userType values before reaching here — the codec itself
// treats any non-student profile as working.
func Encode(rec *api.ApplicantRecord, tables EncodingTables) (FeatureVector, []string) {
	student := strings.ToLower(rec.UserType) == string(api.UserTypeStudent)

	vec := make(FeatureVector, NumFeatures)
	var defaulted []string

	ageDefault := defaultAgeWorking
	if student {
		ageDefault = defaultAgeStudent
	}
	age, wasDefault := coerceFloat(rec.Age, ageDefault)
	if wasDefault {
		defaulted = append(defaulted, "age")
	}
	vec[IdxAge] = age

	vec[IdxGender] = float64(tables.GenderCode(rec.Gender))
	vec[IdxEducation] = educationLevels[rec.EducationLevel]

	// Students always carry the neutral occupation code; their free text is
	// never interpreted.
	if !student {
		vec[IdxOccupation] = float64(tables.OccupationCode(CategorizeOccupation(rec.Occupation)))
	}

	months, monthDefaults := normalizeIncome(rec.MonthlyIncome)
	defaulted = append(defaulted, monthDefaults...)
	for i, m := range months {
		vec[IdxIncomeMonth1+i] = m
	}

	avg := mean(months)
	vec[IdxAvgIncome] = avg
	vec[IdxIncomeStability] = incomeStability(months, avg)

	vec[IdxRentPayment] = encodePayment(rec.RentPayment, student, "rentPayment", &defaulted)
	vec[IdxUtility1Payment] = encodePayment(rec.Utility1Pay, student, "utility1Payment", &defaulted)
	vec[IdxUtility2Payment] = encodePayment(rec.Utility2Pay, student, "utility2Payment", &defaulted)

	// Working profiles fill the student-only slots with the neutral 0.0 so
	// the schema is always fully populated.
	if student {
		gpa, wasDefault := coerceFloat(rec.GPA, defaultGPA)
		if wasDefault {
			defaulted = append(defaulted, "gpa")
		}
		vec[IdxGPA] = gpa

		college, wasDefault := coerceFloat(rec.CollegeScore, defaultCollegeScore)
		if wasDefault {
			defaulted = append(defaulted, "collegeScore")
		}
		vec[IdxCollegeScore] = college

		cosigner, wasDefault := coerceFloat(rec.CosignerIncome, 0)
		if wasDefault {
			defaulted = append(defaulted, "cosignerIncome")
		}
		vec[IdxCosignerIncome] = cosigner

		vec[IdxScholarship] = coerceBool(rec.Scholarship)
	}

	return vec, defaulted
}

// normalizeIncome coerces monthlyIncome into exactly six slots, zero-filling
// missing or unparseable entries.
func normalizeIncome(raw []json.RawMessage) ([]float64, []string) {
	months := make([]float64, incomeMonths)
	var defaulted []string

	for i := 0; i < incomeMonths; i++ {
		if i >= len(raw) {
			defaulted = append(defaulted, featureNames[IdxIncomeMonth1+i])
			continue
		}
		val, wasDefault := coerceFloat(raw[i], 0)
		if wasDefault {
			defaulted = append(defaulted, featureNames[IdxIncomeMonth1+i])
		}
		months[i] = val
	}

	return months, defaulted
}

func encodePayment(value string, student bool, field string, defaulted *[]string) float64 {
	if v, ok := paymentValues[value]; ok {
		return v
	}
	*defaulted = append(*defaulted, field)
	if student {
		return paymentValues["na"]
	}
	return paymentValues["on-time"]
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// incomeStability is 1 - stddev/mean over the six monthly slots, with the
// schema-v1 fallback of 0 when the mean is not positive. Deviation is the
// population deviation (divisor N).
func incomeStability(months []float64, avg float64) float64 {
	if avg <= 0 {
		return 0
	}

	variance := 0.0
	for _, m := range months {
		d := m - avg
		variance += d * d
	}
	variance /= float64(len(months))

	return 1 - math.Sqrt(variance)/avg
}
