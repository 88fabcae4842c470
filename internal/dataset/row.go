// internal/dataset/row.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Row is one training record in the bulk dataset. Student-only fields are
// pointers so working rows serialize as blanks, matching the training CSV
// contract.
type Row struct {
	UserType       string
	Age            int
	Gender         string
	EducationLevel string
	Occupation     string
	MonthlyIncome  [6]float64
	RentPayment    string
	Utility1Pay    string
	Utility2Pay    string
	GPA            *float64
	CollegeScore   *float64
	CosignerIncome *float64
	Scholarship    *float64
	CreditScore    int
}

// Columns is the exact training CSV header, in order. artifact-builder
// depends on it byte-for-byte.
var Columns = []string{
	"userType", "age", "gender", "educationLevel", "occupation",
	"income_month_1", "income_month_2", "income_month_3",
	"income_month_4", "income_month_5", "income_month_6",
	"rentPayment", "utility1Payment", "utility2Payment",
	"gpa", "collegeScore", "cosignerIncome", "scholarship",
	"creditScore",
}

// WriteCSV writes the header followed by one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.UserType,
			strconv.Itoa(r.Age),
			r.Gender,
			r.EducationLevel,
			r.Occupation,
			formatFloat(r.MonthlyIncome[0]),
			formatFloat(r.MonthlyIncome[1]),
			formatFloat(r.MonthlyIncome[2]),
			formatFloat(r.MonthlyIncome[3]),
			formatFloat(r.MonthlyIncome[4]),
			formatFloat(r.MonthlyIncome[5]),
			r.RentPayment,
			r.Utility1Pay,
			r.Utility2Pay,
			formatOptional(r.GPA),
			formatOptional(r.CollegeScore),
			formatOptional(r.CosignerIncome),
			formatOptional(r.Scholarship),
			strconv.Itoa(r.CreditScore),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a training CSV produced by WriteCSV, validating the header.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(Columns))
	}
	for i, col := range Columns {
		if header[i] != col {
			return nil, fmt.Errorf("column %d is %q, want %q", i, header[i], col)
		}
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := Row{
			UserType:       record[0],
			Gender:         record[2],
			EducationLevel: record[3],
			Occupation:     record[4],
			RentPayment:    record[11],
			Utility1Pay:    record[12],
			Utility2Pay:    record[13],
		}
		row.Age, _ = strconv.Atoi(record[1])
		for i := 0; i < 6; i++ {
			row.MonthlyIncome[i], _ = strconv.ParseFloat(record[5+i], 64)
		}
		row.GPA = parseOptional(record[14])
		row.CollegeScore = parseOptional(record[15])
		row.CosignerIncome = parseOptional(record[16])
		row.Scholarship = parseOptional(record[17])
		row.CreditScore, _ = strconv.Atoi(record[18])

		rows = append(rows, row)
	}

	return rows, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func parseOptional(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
