package domain

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched or zero-length vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Terms lowercases text and splits it into letter and digit runs.
func Terms(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// KeywordScore returns the fraction of distinct query terms found in text.
func KeywordScore(query, text string) float64 {
	qterms := Terms(query)
	if len(qterms) == 0 {
		return 0
	}
	present := make(map[string]bool)
	for _, t := range Terms(text) {
		present[t] = true
	}

	seen := make(map[string]bool, len(qterms))
	hits := 0
	for _, t := range qterms {
		if seen[t] {
			continue
		}
		seen[t] = true
		if present[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(seen))
}

// RankResults orders results by descending score, keeping input order among
// ties, and truncates to n. A non-positive n keeps every result.
func RankResults(results []SearchResult, n int) []SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if n > 0 && len(results) > n {
		results = results[:n]
	}
	return results
}
