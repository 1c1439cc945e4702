package termrel

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"

	"github.com/lexkit/termrel/pkg/termrel/correlate"
	"github.com/lexkit/termrel/pkg/termrel/corpus"
	"github.com/lexkit/termrel/pkg/termrel/freq"
	"github.com/lexkit/termrel/pkg/termrel/tfidf"
)

// Engine is the main analysis facade: it runs the frequency,
// tf-idf, and correlation stages over an occurrence table.
type Engine struct {
	entropy *ulid.MonotonicEntropy
	opts    Options
}

// Options configures an Engine
type Options struct {
	// Policy selects the correlation vocabulary alignment.
	// The zero value is correlate.ZeroFill.
	Policy correlate.Policy
}

// New creates an Engine with the given options
func New(opts Options) *Engine {
	return &Engine{
		entropy: ulid.Monotonic(rand.Reader, 0),
		opts:    opts,
	}
}

// Result holds the output of one analysis run.
type Result struct {
	RunID        string
	Counts       freq.Counts
	Frequencies  []tfidf.Weight
	Correlations []correlate.Correlation
}

// Analyze validates the occurrence table and runs it through the full
// pipeline. The input is never mutated; each stage consumes the previous
// stage's output as an immutable value. An empty table yields an empty
// result, not an error.
func (e *Engine) Analyze(occs []corpus.Occurrence) (Result, error) {
	if err := corpus.ValidateAll(occs); err != nil {
		return Result{}, err
	}

	agg := freq.NewAggregator()
	for _, o := range occs {
		agg.Add(o.Category, o.Word)
	}
	counts := agg.Snapshot()

	weights := tfidf.Score(counts)
	correlations := correlate.Correlate(weights, e.opts.Policy)

	return Result{
		RunID:        ulid.MustNew(ulid.Now(), e.entropy).String(),
		Counts:       counts,
		Frequencies:  weights,
		Correlations: correlations,
	}, nil
}
