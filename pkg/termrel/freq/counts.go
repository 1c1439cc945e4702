package freq

import "sort"

// CategoryWord keys an occurrence count by (category, word).
type CategoryWord struct {
	Category, Word string
}

// Aggregator accumulates per-(category, word) occurrence counts and
// per-category totals from a stream of word occurrences.
type Aggregator struct {
	counts map[CategoryWord]int64
	totals map[string]int64
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		counts: make(map[CategoryWord]int64),
		totals: make(map[string]int64),
	}
}

// Add records one occurrence of word within category.
// Empty keys are the caller's responsibility to reject beforehand.
func (a *Aggregator) Add(category, word string) {
	a.counts[CategoryWord{Category: category, Word: word}]++
	a.totals[category]++
}

// Snapshot returns a copy of the accumulated counts.
func (a *Aggregator) Snapshot() Counts {
	copyCounts := make(map[CategoryWord]int64, len(a.counts))
	for k, n := range a.counts {
		copyCounts[k] = n
	}
	copyTotals := make(map[string]int64, len(a.totals))
	for cat, n := range a.totals {
		copyTotals[cat] = n
	}
	return Counts{Counts: copyCounts, Totals: copyTotals}
}

// Counts exposes the aggregated frequencies.
// A category is present iff at least one occurrence was added for it,
// and its total always equals the sum of its per-word counts.
type Counts struct {
	Counts map[CategoryWord]int64
	Totals map[string]int64
}

// Count returns the occurrence count for (category, word).
func (c Counts) Count(category, word string) int64 {
	return c.Counts[CategoryWord{Category: category, Word: word}]
}

// Total returns the total word count for a category.
func (c Counts) Total(category string) int64 {
	return c.Totals[category]
}

// Categories returns all categories in sorted order.
func (c Counts) Categories() []string {
	cats := make([]string, 0, len(c.Totals))
	for cat := range c.Totals {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// CategoryDF returns, per word, the number of distinct categories
// containing that word at least once.
func (c Counts) CategoryDF() map[string]int64 {
	df := make(map[string]int64)
	for k := range c.Counts {
		df[k.Word]++
	}
	return df
}
