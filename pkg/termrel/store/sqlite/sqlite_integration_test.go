package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lexkit/termrel/pkg/termrel/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termrel.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	run := store.Run{
		ID:          "01TESTRUN",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Occurrences: 5,
		Categories:  2,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, ok, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Run should exist")
	}
	if got.Occurrences != 5 || got.Categories != 2 {
		t.Errorf("Unexpected run data: %+v", got)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt mismatch: %v vs %v", got.CreatedAt, run.CreatedAt)
	}

	if _, ok, _ := s.GetRun(ctx, "missing"); ok {
		t.Error("Missing run should report ok=false")
	}
}

func TestSaveRunUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	run := store.Run{ID: "r1", CreatedAt: time.Now().UTC(), Occurrences: 1}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}
	run.Occurrences = 9
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.GetRun(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Occurrences != 9 {
		t.Errorf("Upsert should update occurrences, got %d", got.Occurrences)
	}
}

func TestFrequencyRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SaveRun(ctx, store.Run{ID: "r1", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatal(err)
	}

	rows := []store.Frequency{
		{Category: "fiction", Word: "the", N: 2, Total: 3, TF: 2.0 / 3, IDF: 0, TFIDF: 0},
		{Category: "fiction", Word: "ghost", N: 1, Total: 3, TF: 1.0 / 3, IDF: 0.693, TFIDF: 0.231},
		{Category: "news", Word: "economy", N: 1, Total: 2, TF: 0.5, IDF: 0.693, TFIDF: 0.347},
	}
	if err := s.SaveFrequencies(ctx, "r1", rows); err != nil {
		t.Fatalf("SaveFrequencies failed: %v", err)
	}

	got, err := s.GetFrequencies(ctx, "r1", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(got))
	}
	if got[0].Word != "economy" {
		t.Errorf("Rows should be ordered by descending tf-idf, got %s first", got[0].Word)
	}

	fiction, err := s.GetFrequencies(ctx, "r1", "fiction", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(fiction) != 2 {
		t.Errorf("Category filter: expected 2 rows, got %d", len(fiction))
	}
}

func TestCorrelationRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SaveRun(ctx, store.Run{ID: "r1", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatal(err)
	}

	rows := []store.Correlation{
		{A: "fiction", B: "news", R: -0.5, Defined: true},
		{A: "news", B: "fiction", R: -0.5, Defined: true},
		{A: "fiction", B: "poetry", R: 0.8, Defined: true},
		{A: "news", B: "poetry", Defined: false}, // stored as NULL
	}
	if err := s.SaveCorrelations(ctx, "r1", rows); err != nil {
		t.Fatalf("SaveCorrelations failed: %v", err)
	}

	got, err := s.GetCorrelations(ctx, "r1", 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("Threshold 0.05: expected 1 row, got %d", len(got))
	}
	if got[0].A != "fiction" || got[0].B != "poetry" || !got[0].Defined {
		t.Errorf("Unexpected row: %+v", got[0])
	}

	all, err := s.GetCorrelations(ctx, "r1", -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("Undefined rows must not be returned, expected 3 got %d", len(all))
	}
}

func TestSaveReplacesPreviousRows(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SaveRun(ctx, store.Run{ID: "r1", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatal(err)
	}

	if err := s.SaveFrequencies(ctx, "r1", []store.Frequency{{Category: "a", Word: "x", N: 1, Total: 1, TF: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveFrequencies(ctx, "r1", []store.Frequency{{Category: "b", Word: "y", N: 1, Total: 1, TF: 1}}); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetFrequencies(ctx, "r1", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Category != "b" {
		t.Errorf("Second save should replace the first, got %+v", got)
	}
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Now().UTC()
	for i, id := range []string{"older", "newer", "newest"} {
		run := store.Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "newest" {
		t.Errorf("Expected newest run first, got %s", runs[0].ID)
	}
}
