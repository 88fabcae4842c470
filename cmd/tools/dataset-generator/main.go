// cmd/tools/dataset-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"credit-scoring-service/internal/dataset"
)

func main() {
	out := flag.String("out", "credit_data.csv", "Output CSV path")
	total := flag.Int("total", 50000, "Total number of rows to generate")
	studentRatio := flag.Float64("students", 0.5, "Fraction of student rows (0-1)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	if *total <= 0 || *studentRatio < 0 || *studentRatio > 1 {
		fmt.Fprintln(os.Stderr, "Error: total must be positive and students must be in [0, 1]")
		os.Exit(1)
	}

	gen := dataset.NewGenerator(*seed)
	rows := gen.Build(*total, *studentRatio)

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := dataset.WriteCSV(f, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
}
