package report

import (
	"sort"
	"time"

	"github.com/lexkit/termrel/pkg/termrel"
)

// Options controls the presentation layer.
type Options struct {
	TopTerms       int     // terms per category, ranked by tf-idf
	MinCorrelation float64 // graph edge threshold
}

// TermEntry is one ranked word within a category.
type TermEntry struct {
	Word  string  `json:"word"`
	N     int64   `json:"n"`
	TF    float64 `json:"tf"`
	IDF   float64 `json:"idf"`
	TFIDF float64 `json:"tf_idf"`
}

// CategoryTerms holds the top-ranked words of one category.
type CategoryTerms struct {
	Category string      `json:"category"`
	Total    int64       `json:"total"`
	Terms    []TermEntry `json:"terms"`
}

// Edge is one weighted connection between two category nodes.
// Both orderings of each pair are present, matching the long
// edge-list form graph construction expects.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Graph is the category correlation network.
type Graph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// Report is the JSON-ready output of one analysis run.
type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Occurrences int64           `json:"occurrences"`
	Categories  int64           `json:"categories"`
	TopTerms    []CategoryTerms `json:"top_terms"`
	Graph       Graph           `json:"graph"`
}

// Build renders an analysis result for downstream visualization.
// The minimum-correlation filter is applied here, not in the
// correlation engine: thresholding is a presentation concern.
func Build(res termrel.Result, opts Options) Report {
	if opts.TopTerms <= 0 {
		opts.TopTerms = 15
	}

	rep := Report{
		RunID:       res.RunID,
		GeneratedAt: time.Now().UTC(),
		Categories:  int64(len(res.Counts.Totals)),
	}
	for _, total := range res.Counts.Totals {
		rep.Occurrences += total
	}

	// Top terms per category, ranked by tf-idf.
	byCat := make(map[string][]TermEntry)
	for _, w := range res.Frequencies {
		byCat[w.Category] = append(byCat[w.Category], TermEntry{
			Word:  w.Word,
			N:     w.N,
			TF:    w.TF,
			IDF:   w.IDF,
			TFIDF: w.TFIDF,
		})
	}

	cats := res.Counts.Categories()
	for _, cat := range cats {
		terms := byCat[cat]
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].TFIDF == terms[j].TFIDF {
				return terms[i].Word < terms[j].Word
			}
			return terms[i].TFIDF > terms[j].TFIDF
		})
		if len(terms) > opts.TopTerms {
			terms = terms[:opts.TopTerms]
		}
		rep.TopTerms = append(rep.TopTerms, CategoryTerms{
			Category: cat,
			Total:    res.Counts.Total(cat),
			Terms:    terms,
		})
	}

	// Correlation graph: categories as nodes, thresholded correlations
	// as edge weights. Undefined correlations never become edges.
	rep.Graph.Nodes = cats
	for _, c := range res.Correlations {
		if !c.Defined || c.R < opts.MinCorrelation {
			continue
		}
		rep.Graph.Edges = append(rep.Graph.Edges, Edge{
			From:   c.A,
			To:     c.B,
			Weight: c.R,
		})
	}

	return rep
}
