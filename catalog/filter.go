package catalog

import (
	"slices"
	"strconv"
	"strings"
)

// Filter narrows a product collection. Empty fields are no-op passes.
// WeightRange is encoded as "<minGrams>-<maxGrams>", bounds inclusive.
type Filter struct {
	Search      string `json:"search,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
	RoastID     string `json:"roastId,omitempty"`
	WeightRange string `json:"weightRange,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Apply runs the filter's passes in order — search, category, roast, weight —
// each pass narrowing the output of the previous one. The input slice is
// never mutated.
func Apply(products []Product, f Filter) []Product {
	out := products
	out = bySearch(out, f.Search)
	out = byCategory(out, f.CategoryID)
	out = byRoast(out, f.RoastID)
	out = byWeight(out, f.WeightRange)
	return out
}

// bySearch keeps products whose name or short description contains term,
// case-insensitively.
func bySearch(products []Product, term string) []Product {
	if term == "" {
		return products
	}
	needle := strings.ToLower(term)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.ShortDescription), needle) {
			out = append(out, p)
		}
	}
	return out
}

func byCategory(products []Product, categoryID string) []Product {
	if categoryID == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if slices.Contains(p.CategoryIDs, categoryID) {
			out = append(out, p)
		}
	}
	return out
}

func byRoast(products []Product, roastID string) []Product {
	if roastID == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if slices.Contains(p.RoastIDs, roastID) {
			out = append(out, p)
		}
	}
	return out
}

// byWeight keeps products with at least one active variant whose weight lies
// within the inclusive range. Variants without weight data never match.
// A malformed range is treated as no constraint.
func byWeight(products []Product, weightRange string) []Product {
	minGrams, maxGrams, ok := parseWeightRange(weightRange)
	if !ok {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		for _, v := range p.Variants {
			if v.IsActive && v.WeightGrams > 0 && v.WeightGrams >= minGrams && v.WeightGrams <= maxGrams {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// parseWeightRange parses "<min>-<max>". ok is false for an empty or
// malformed range.
func parseWeightRange(s string) (minGrams, maxGrams int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	minGrams, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, false
	}
	maxGrams, err = strconv.Atoi(hi)
	if err != nil || maxGrams < minGrams {
		return 0, 0, false
	}
	return minGrams, maxGrams, true
}
