// internal/dataset/dataset_test.go
package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CountsAndLabels(t *testing.T) {
	gen := NewGenerator(42)

	rows := gen.Build(200, 0.5)

	require.Len(t, rows, 200)

	students := 0
	for _, r := range rows {
		switch r.UserType {
		case "student":
			students++
			require.NotNil(t, r.GPA)
			assert.GreaterOrEqual(t, *r.GPA, 5.0)
			assert.LessOrEqual(t, *r.GPA, 10.0)
			require.NotNil(t, r.CollegeScore)
		case "working":
			assert.Nil(t, r.GPA)
			assert.NotEmpty(t, r.Occupation)
		default:
			t.Fatalf("unexpected userType %q", r.UserType)
		}

		assert.GreaterOrEqual(t, r.CreditScore, 0)
		assert.LessOrEqual(t, r.CreditScore, 100)
	}
	assert.Equal(t, 100, students)
}

func TestBuild_SeedIsDeterministic(t *testing.T) {
	first := NewGenerator(7).Build(50, 0.4)
	second := NewGenerator(7).Build(50, 0.4)

	assert.Equal(t, first, second)
}

func TestBuild_DifferentSeedsDiffer(t *testing.T) {
	first := NewGenerator(1).Build(50, 0.4)
	second := NewGenerator(2).Build(50, 0.4)

	assert.NotEqual(t, first, second)
}

func TestWorkingRow_Ranges(t *testing.T) {
	gen := NewGenerator(3)

	for i := 0; i < 100; i++ {
		row := gen.WorkingRow()

		assert.GreaterOrEqual(t, row.Age, 22)
		assert.LessOrEqual(t, row.Age, 60)
		for _, m := range row.MonthlyIncome {
			assert.GreaterOrEqual(t, m, 10000.0)
			assert.LessOrEqual(t, m, 120000.0)
		}
		assert.Contains(t, paymentStatuses, row.RentPayment)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	rows := NewGenerator(11).Build(25, 0.6)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	parsed, err := ReadCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, rows, parsed)
}

func TestReadCSV_RejectsWrongHeader(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"wrong column name", "userType,age,WRONG\n"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.csv))
			assert.Error(t, err)
		})
	}
}

func TestSynthesizeScore_SeparatesStrongAndWeakProfiles(t *testing.T) {
	gen := NewGenerator(99)

	strong := Row{
		UserType:       "working",
		EducationLevel: "masters",
		MonthlyIncome:  [6]float64{80000, 80000, 80000, 80000, 80000, 80000},
		RentPayment:    "on-time",
		Utility1Pay:    "on-time",
		Utility2Pay:    "on-time",
	}
	weak := Row{
		UserType:       "working",
		EducationLevel: "other",
		MonthlyIncome:  [6]float64{11000, 30000, 12000, 45000, 11000, 13000},
		RentPayment:    "late",
		Utility1Pay:    "late",
		Utility2Pay:    "late",
	}

	// The label carries gaussian noise; compare averages over repeated draws.
	strongSum, weakSum := 0, 0
	for i := 0; i < 50; i++ {
		strongSum += gen.synthesizeScore(&strong)
		weakSum += gen.synthesizeScore(&weak)
	}

	assert.Greater(t, strongSum/50, weakSum/50+20)
}
