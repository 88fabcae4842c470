// Package dataset produces the bulk synthetic training data the encoding
// tables are fit from. Row generation is randomized but seedable; the label
// heuristic and the CSV schema are the deterministic contract the rest of
// the system depends on.
package dataset

import (
	"math"
	"math/rand"
)

// Generator samples synthetic applicant rows. Not safe for concurrent use;
// each goroutine should own its own Generator.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Build generates a shuffled dataset with the given student ratio, labeling
// every row with the heuristic score.
func (g *Generator) Build(total int, studentRatio float64) []Row {
	students := int(float64(total) * studentRatio)
	workers := total - students

	rows := make([]Row, 0, total)
	for i := 0; i < workers; i++ {
		rows = append(rows, g.WorkingRow())
	}
	for i := 0; i < students; i++ {
		rows = append(rows, g.StudentRow())
	}

	g.rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})

	for i := range rows {
		rows[i].CreditScore = g.synthesizeScore(&rows[i])
	}
	return rows
}

var (
	genders            = []string{"male", "female", "other"}
	workingEducations  = []string{"high-school", "bachelors", "masters", "phd", "other"}
	workingEduWeights  = []float64{0.05, 0.6, 0.25, 0.05, 0.05}
	studentEducations  = []string{"high-school", "bachelors", "masters", "other"}
	studentEduWeights  = []float64{0.1, 0.7, 0.05, 0.15}
	workingOccupations = []string{
		"software engineer", "teacher", "analyst", "manager",
		"sales", "technician", "clerk",
	}
	paymentStatuses = []string{"on-time", "late", "na"}
)

// WorkingRow samples a salaried applicant: six months of income in the
// 10k-120k range, with on-time payment probability rising with income.
func (g *Generator) WorkingRow() Row {
	row := Row{
		UserType:       "working",
		Age:            g.intBetween(22, 60),
		Gender:         genders[g.rng.Intn(len(genders))],
		EducationLevel: g.weightedChoice(workingEducations, workingEduWeights),
		Occupation:     workingOccupations[g.rng.Intn(len(workingOccupations))],
	}

	sum := 0.0
	for i := range row.MonthlyIncome {
		v := round2(g.floatBetween(10000, 120000))
		row.MonthlyIncome[i] = v
		sum += v
	}
	avgIncome := sum / 6

	payProb := math.Min(0.95, 0.3+avgIncome/120000)
	pay := func() string {
		r := g.rng.Float64()
		if r < payProb {
			return "on-time"
		}
		if r < payProb+0.15 {
			return "late"
		}
		return "na"
	}
	row.RentPayment = pay()
	row.Utility1Pay = pay()
	row.Utility2Pay = pay()

	return row
}

// StudentRow samples a student applicant: optional part-time income, GPA on
// the 0-10 scale, occasional cosigner and scholarship.
func (g *Generator) StudentRow() Row {
	row := Row{
		UserType:       "student",
		Age:            g.intBetween(17, 30),
		Gender:         genders[g.rng.Intn(len(genders))],
		EducationLevel: g.weightedChoice(studentEducations, studentEduWeights),
		Occupation:     "student",
		RentPayment:    paymentStatuses[g.rng.Intn(len(paymentStatuses))],
		Utility1Pay:    paymentStatuses[g.rng.Intn(len(paymentStatuses))],
		Utility2Pay:    paymentStatuses[g.rng.Intn(len(paymentStatuses))],
	}

	for i := range row.MonthlyIncome {
		if g.rng.Float64() < 0.4 {
			row.MonthlyIncome[i] = round2(g.floatBetween(0, 5000))
		}
	}

	gpa := round2(g.floatBetween(5.0, 10.0))
	college := float64(g.intBetween(40, 95))
	row.GPA = &gpa
	row.CollegeScore = &college

	cosigner := 0.0
	if g.rng.Float64() < 0.3 {
		cosigner = round2(g.floatBetween(0, 150000))
	}
	row.CosignerIncome = &cosigner

	scholarship := 0.0
	if g.rng.Float64() < 0.25 && g.rng.Intn(2) == 1 {
		scholarship = 1
	}
	row.Scholarship = &scholarship

	return row
}

// synthesizeScore labels a row with a heuristic creditworthiness score. It
// exists only to give the synthetic dataset a learnable signal; it is not
// the serving-time scoring function.
func (g *Generator) synthesizeScore(row *Row) int {
	base := 50.0

	eduAdjust := map[string]float64{
		"other": -3, "high-school": -1, "bachelors": 3, "masters": 6, "phd": 8,
	}
	base += eduAdjust[row.EducationLevel]

	paymentValue := map[string]float64{"on-time": 1, "na": 0.5, "late": 0}

	sum := 0.0
	for _, m := range row.MonthlyIncome {
		sum += m
	}
	avgIncome := sum / 6

	if row.UserType == "working" {
		stability := 0.0
		if avgIncome > 0 {
			variance := 0.0
			for _, m := range row.MonthlyIncome {
				d := m - avgIncome
				variance += d * d
			}
			stability = 1 - math.Sqrt(variance/6)/avgIncome
		}

		pscore := (paymentValue[row.RentPayment] +
			paymentValue[row.Utility1Pay] +
			paymentValue[row.Utility2Pay]) / 3

		base += clip(avgIncome/20000, 0, 30) * 0.6
		base += stability * 10
		base += (pscore - 0.5) * 40 // payment is the strongest signal
	} else {
		gpa := optionalOr(row.GPA, 6.0)
		college := optionalOr(row.CollegeScore, 50)
		cosigner := optionalOr(row.CosignerIncome, 0)
		scholarship := optionalOr(row.Scholarship, 0)

		base += (gpa - 5.0) * 5
		base += (college - 50) * 0.2
		base += clip(cosigner/30000, 0, 10)
		base += scholarship * 5
		base += clip(avgIncome/2000, 0, 5)
	}

	score := base + g.rng.NormFloat64()*5
	return int(math.Max(0, math.Min(100, math.Round(score))))
}

func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) floatBetween(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) weightedChoice(options []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := g.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return options[i]
		}
		r -= w
	}
	return options[len(options)-1]
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func optionalOr(f *float64, def float64) float64 {
	if f == nil {
		return def
	}
	return *f
}
