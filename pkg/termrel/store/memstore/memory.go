package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/lexkit/termrel/pkg/termrel/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu           sync.RWMutex
	runs         map[string]store.Run
	frequencies  map[string][]store.Frequency
	correlations map[string][]store.Correlation
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:         make(map[string]store.Run),
		frequencies:  make(map[string][]store.Frequency),
		correlations: make(map[string][]store.Correlation),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a run record keyed by ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		return nil
	}
	s.runs[r.ID] = r
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok, nil
}

// ListRuns returns the most recent runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// SaveFrequencies replaces the frequency rows for a run.
func (s *Store) SaveFrequencies(ctx context.Context, runID string, rows []store.Frequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frequencies[runID] = append([]store.Frequency(nil), rows...)
	return nil
}

// GetFrequencies returns frequency rows for a run ordered by descending
// tf-idf, optionally filtered by category.
func (s *Store) GetFrequencies(ctx context.Context, runID, category string, limit int) ([]store.Frequency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	var result []store.Frequency
	for _, f := range s.frequencies[runID] {
		if category != "" && f.Category != category {
			continue
		}
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TFIDF == result[j].TFIDF {
			return result[i].Word < result[j].Word
		}
		return result[i].TFIDF > result[j].TFIDF
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// SaveCorrelations replaces the correlation rows for a run.
func (s *Store) SaveCorrelations(ctx context.Context, runID string, rows []store.Correlation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.correlations[runID] = append([]store.Correlation(nil), rows...)
	return nil
}

// GetCorrelations returns the defined correlations for a run with
// R >= min, ordered by (A, B).
func (s *Store) GetCorrelations(ctx context.Context, runID string, min float64) ([]store.Correlation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []store.Correlation
	for _, c := range s.correlations[runID] {
		if !c.Defined || c.R < min {
			continue
		}
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].A == result[j].A {
			return result[i].B < result[j].B
		}
		return result[i].A < result[j].A
	})
	return result, nil
}
