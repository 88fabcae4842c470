// internal/codec/tables.go
package codec

import "sort"

// EncodingTables hold the category-to-code mappings fit once from the
// training distribution and reused unchanged at serving time. They are
// immutable after construction; lookups on unseen categories degrade to code
// 0 and never fail.
type EncodingTables struct {
	Gender     map[string]int `json:"gender"`
	Occupation map[string]int `json:"occupation"`
}

// FitTable builds a category table from observed values with label-encoder
// semantics: distinct categories are sorted lexicographically and assigned
// codes by index.
func FitTable(values []string) map[string]int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	table := make(map[string]int, len(cats))
	for i, c := range cats {
		table[c] = i
	}
	return table
}

// GenderCode looks up the encoded gender, 0 for categories unseen at
// training time.
func (t EncodingTables) GenderCode(gender string) int {
	return t.Gender[gender]
}

// OccupationCode looks up the encoded occupation category, 0 for categories
// unseen at training time.
func (t EncodingTables) OccupationCode(category string) int {
	return t.Occupation[category]
}
