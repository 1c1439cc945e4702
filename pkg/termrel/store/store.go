package store

import (
	"context"
	"time"
)

// Store persists analysis runs and their derived tables
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Derived tables
	SaveFrequencies(ctx context.Context, runID string, rows []Frequency) error
	GetFrequencies(ctx context.Context, runID, category string, limit int) ([]Frequency, error)
	SaveCorrelations(ctx context.Context, runID string, rows []Correlation) error
	GetCorrelations(ctx context.Context, runID string, min float64) ([]Correlation, error)
}

// Run records one analysis run
type Run struct {
	ID          string
	CreatedAt   time.Time
	Occurrences int64
	Categories  int64
}

// Frequency is a stored (category, word) tf-idf row
type Frequency struct {
	Category string
	Word     string
	N        int64
	Total    int64
	TF       float64
	IDF      float64
	TFIDF    float64
}

// Correlation is a stored category-pair correlation.
// Undefined correlations (zero-variance vectors) keep Defined false.
type Correlation struct {
	A       string
	B       string
	R       float64
	Defined bool
}
