package tfidf

import (
	"math"
	"sort"

	"github.com/lexkit/termrel/pkg/termrel/freq"
)

// Weight is the tf-idf weight of one word within one category.
type Weight struct {
	Category string
	Word     string
	N        int64   // occurrences of Word within Category
	Total    int64   // total word occurrences within Category
	TF       float64 // N / Total
	IDF      float64 // ln(categories / categories containing Word)
	TFIDF    float64 // TF * IDF
}

// Score computes tf-idf weights for every (category, word) pair in the
// aggregated counts. Each category is treated as one "document" for IDF:
// a word present in every category scores idf 0 and carries no
// discriminating power. Output is sorted by category, then word.
func Score(c freq.Counts) []Weight {
	if len(c.Counts) == 0 {
		return nil
	}

	nCats := float64(len(c.Totals))
	catDF := c.CategoryDF()

	weights := make([]Weight, 0, len(c.Counts))
	for k, n := range c.Counts {
		total := c.Totals[k.Category]
		tf := float64(n) / float64(total)
		// catDF >= 1 by construction, so the log argument is >= 1
		// and idf is never negative.
		idf := math.Log(nCats / float64(catDF[k.Word]))
		weights = append(weights, Weight{
			Category: k.Category,
			Word:     k.Word,
			N:        n,
			Total:    total,
			TF:       tf,
			IDF:      idf,
			TFIDF:    tf * idf,
		})
	}

	sort.Slice(weights, func(i, j int) bool {
		if weights[i].Category == weights[j].Category {
			return weights[i].Word < weights[j].Word
		}
		return weights[i].Category < weights[j].Category
	})

	return weights
}
