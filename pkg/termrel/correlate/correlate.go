package correlate

import (
	"sort"

	"github.com/lexkit/termrel/pkg/termrel/tfidf"
)

// Policy selects which vocabulary two categories are aligned over
// before computing their correlation.
type Policy int

const (
	// ZeroFill aligns vectors over the union of both categories'
	// vocabularies, treating absent words as tf-idf 0.
	ZeroFill Policy = iota

	// PairwiseComplete aligns vectors over the intersection only,
	// dropping words missing from either category.
	PairwiseComplete
)

// Correlation is the Pearson correlation between two categories'
// tf-idf vectors. Defined is false when either vector has zero
// variance, in which case R is meaningless and must be ignored.
type Correlation struct {
	A       string
	B       string
	R       float64
	Defined bool
}

// Vectors builds one sparse tf-idf vector per category, indexed by word.
func Vectors(weights []tfidf.Weight) map[string]map[string]float64 {
	vecs := make(map[string]map[string]float64)
	for _, w := range weights {
		if vecs[w.Category] == nil {
			vecs[w.Category] = make(map[string]float64)
		}
		vecs[w.Category][w.Word] = w.TFIDF
	}
	return vecs
}

// Correlate computes the Pearson correlation for every pair of distinct
// categories. Both orderings of each pair are emitted, matching the long
// edge-list shape graph consumers expect; self-pairs are excluded.
// Output is sorted by (A, B).
func Correlate(weights []tfidf.Weight, policy Policy) []Correlation {
	vecs := Vectors(weights)

	cats := make([]string, 0, len(vecs))
	for cat := range vecs {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var out []Correlation
	for i := 0; i < len(cats); i++ {
		for j := i + 1; j < len(cats); j++ {
			x, y := align(vecs[cats[i]], vecs[cats[j]], policy)
			r, ok := pearson(x, y)
			out = append(out,
				Correlation{A: cats[i], B: cats[j], R: r, Defined: ok},
				Correlation{A: cats[j], B: cats[i], R: r, Defined: ok},
			)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].A == out[j].A {
			return out[i].B < out[j].B
		}
		return out[i].A < out[j].A
	})

	return out
}

// align produces two equal-length slices of tf-idf values for the
// vocabulary selected by the policy.
func align(a, b map[string]float64, policy Policy) ([]float64, []float64) {
	words := make(map[string]struct{}, len(a)+len(b))
	switch policy {
	case PairwiseComplete:
		for w := range a {
			if _, ok := b[w]; ok {
				words[w] = struct{}{}
			}
		}
	default:
		for w := range a {
			words[w] = struct{}{}
		}
		for w := range b {
			words[w] = struct{}{}
		}
	}

	x := make([]float64, 0, len(words))
	y := make([]float64, 0, len(words))
	for w := range words {
		x = append(x, a[w]) // missing entries read as 0
		y = append(y, b[w])
	}
	return x, y
}
