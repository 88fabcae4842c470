// cmd/tools/artifact-builder/main.go
//
// Fits the encoding tables and the canonical feature-name order from a
// training CSV and packages them, together with the scoring model
// parameters, into the artifact bundle the server loads at startup.
// Training-time and serving-time feature derivation both go through
// internal/codec, so the tables fit here are the tables served.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"credit-scoring-service/internal/artifacts"
	"credit-scoring-service/internal/codec"
	"credit-scoring-service/internal/dataset"
	"credit-scoring-service/internal/scoring"
)

// defaultModel carries the packaged linear scorer parameters. The regression
// fitting itself is out of scope here; these weights approximate the signal
// the synthetic label heuristic encodes and can be overridden by supplying a
// model JSON through -model.
var defaultModel = scoring.ModelSpec{
	Type:      scoring.ModelTypeLinear,
	Intercept: 10,
	Weights: map[string]float64{
		"avg_income":       0.0009,
		"income_stability": 8,
		"rentPayment":      6,
		"utility1Payment":  6,
		"utility2Payment":  6,
		"edu_enc":          2,
		"occ_enc":          1.5,
		"gpa":              2.5,
		"collegeScore":     0.08,
		"cosignerIncome":   0.0003,
		"scholarship":      4,
	},
}

func main() {
	data := flag.String("data", "credit_data.csv", "Training CSV path")
	out := flag.String("out", "artifacts/bundle.json", "Output bundle path")
	modelPath := flag.String("model", "", "Optional model spec JSON overriding the built-in linear weights")
	flag.Parse()

	f, err := os.Open(*data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open %s: %v\n", *data, err)
		os.Exit(1)
	}
	rows, err := dataset.ReadCSV(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read dataset: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "Error: dataset is empty")
		os.Exit(1)
	}

	tables := fitTables(rows)

	model := defaultModel
	if *modelPath != "" {
		loaded, err := loadModelSpec(*modelPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: load model spec: %v\n", err)
			os.Exit(1)
		}
		model = loaded
	}

	// Construct once to catch bad weights before they reach the server.
	if _, err := scoring.FromSpec(model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid model spec: %v\n", err)
		os.Exit(1)
	}

	bundle := artifacts.New(tables, model)
	if err := artifacts.Save(*out, bundle); err != nil {
		fmt.Fprintf(os.Stderr, "Error: save bundle: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fitted tables from %d rows (%d genders, %d occupation categories); wrote %s\n",
		len(rows), len(tables.Gender), len(tables.Occupation), *out)
}

// fitTables derives the gender and occupation-category tables from the
// training distribution.
func fitTables(rows []dataset.Row) codec.EncodingTables {
	genders := make([]string, 0, len(rows))
	categories := make([]string, 0, len(rows))
	for _, r := range rows {
		genders = append(genders, r.Gender)
		categories = append(categories, codec.CategorizeOccupation(r.Occupation))
	}

	return codec.EncodingTables{
		Gender:     codec.FitTable(genders),
		Occupation: codec.FitTable(categories),
	}
}

func loadModelSpec(path string) (scoring.ModelSpec, error) {
	var spec scoring.ModelSpec
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, err
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return spec, err
	}
	return spec, nil
}
