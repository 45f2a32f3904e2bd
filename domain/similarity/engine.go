package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Pair is one similar-text candidate. Row sets carry every 1-based row
// where the exact text occurred, so duplicate entries surface as one pair
// with multiple locations instead of one pair per occurrence.
type Pair struct {
	RowsA []int   `json:"rows_a"`
	TextA string  `json:"text_a"`
	RowsB []int   `json:"rows_b"`
	TextB string  `json:"text_b"`
	Score float64 `json:"score"`
}

// Options controls the pair search.
type Options struct {
	// Threshold classifies a pair as similar when score > Threshold.
	Threshold float64
	// Exhaustive compares every unordered pair. The default traversal
	// walks the lexicographically sorted unique values and abandons the
	// inner loop at the first pair at or below threshold; nearby strings
	// are the likeliest matches, but lexicographically distant pairs can
	// be missed. Exhaustive mode trades O(U^2) comparisons for
	// completeness.
	Exhaustive bool
	// MaxComparisons caps the number of score evaluations as a safety
	// valve for exhaustive mode. 0 means unlimited.
	MaxComparisons int
}

// DefaultThreshold is the production similarity cutoff.
const DefaultThreshold = 0.7

// FindSimilarPairs reports every pair of distinct non-empty texts whose
// cosine similarity exceeds the threshold, subject to the traversal
// policy in Options. Rows are 1-based positions in texts. The returned
// flag is true when the comparison budget was exhausted before the
// traversal finished.
func FindSimilarPairs(texts []string, opts Options) ([]Pair, bool) {
	rowsByText := make(map[string][]int)
	for i, text := range texts {
		rowsByText[text] = append(rowsByText[text], i+1)
	}

	unique := make([]string, 0, len(rowsByText))
	for text := range rowsByText {
		if text != "" {
			unique = append(unique, text)
		}
	}
	sort.Strings(unique)

	var pairs []Pair
	comparisons := 0
	for i, a := range unique {
		for _, b := range unique[i+1:] {
			if opts.MaxComparisons > 0 && comparisons >= opts.MaxComparisons {
				return pairs, true
			}
			comparisons++
			score := Cosine(a, b)
			if score > opts.Threshold {
				pairs = append(pairs, Pair{
					RowsA: rowsByText[a],
					TextA: a,
					RowsB: rowsByText[b],
					TextB: b,
					Score: score,
				})
				continue
			}
			if !opts.Exhaustive {
				break
			}
		}
	}
	return pairs, false
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Cosine computes the bag-of-words term-frequency cosine similarity of
// two strings in [0,1]. Symmetric; either side empty of words scores 0.
func Cosine(a, b string) float64 {
	tfA := termFrequencies(a)
	tfB := termFrequencies(b)
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	vocab := make(map[string]int)
	for term := range tfA {
		if _, ok := vocab[term]; !ok {
			vocab[term] = len(vocab)
		}
	}
	for term := range tfB {
		if _, ok := vocab[term]; !ok {
			vocab[term] = len(vocab)
		}
	}

	vecA := make([]float64, len(vocab))
	vecB := make([]float64, len(vocab))
	for term, idx := range vocab {
		vecA[idx] = float64(tfA[term])
		vecB[idx] = float64(tfB[term])
	}

	dot := floats.Dot(vecA, vecB)
	normA := math.Sqrt(floats.Dot(vecA, vecA))
	normB := math.Sqrt(floats.Dot(vecB, vecB))
	if normA == 0 || normB == 0 {
		return 0
	}
	// Float rounding can push identical bags a hair past 1
	return math.Min(dot/(normA*normB), 1)
}

func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		tf[word]++
	}
	return tf
}
