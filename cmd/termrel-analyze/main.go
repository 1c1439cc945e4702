package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/lexkit/termrel/pkg/termrel"
	"github.com/lexkit/termrel/pkg/termrel/config"
	"github.com/lexkit/termrel/pkg/termrel/corpus"
	"github.com/lexkit/termrel/pkg/termrel/report"
	"github.com/lexkit/termrel/pkg/termrel/store"
	"github.com/lexkit/termrel/pkg/termrel/store/sqlite"
)

func main() {
	var (
		corpusPath = flag.String("corpus", "", "Path to JSONL corpus file (required)")
		configPath = flag.String("config", "", "Optional: analysis config YAML")
		dbPath     = flag.String("db", "", "Optional: SQLite database to persist results")
		topTerms   = flag.Int("top", 0, "Override: terms per category in the report")
		minCorr    = flag.Float64("min-correlation", -2, "Override: minimum correlation for graph edges")
	)
	flag.Parse()

	if *corpusPath == "" {
		log.Fatal("--corpus required")
	}

	ctx := context.Background()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *topTerms > 0 {
		cfg.TopTerms = *topTerms
	}
	if *minCorr >= -1 {
		cfg.MinCorrelation = *minCorr
	}

	policy, err := cfg.Policy()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	docs, err := corpus.LoadJSONL(*corpusPath)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	occs, err := corpus.Extract(docs, cfg.Tokenizer())
	if err != nil {
		log.Fatalf("extract occurrences: %v", err)
	}

	engine := termrel.New(termrel.Options{Policy: policy})
	result, err := engine.Analyze(occs)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	rep := report.Build(result, report.Options{
		TopTerms:       cfg.TopTerms,
		MinCorrelation: cfg.MinCorrelation,
	})

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))

	if *dbPath != "" {
		if err := persist(ctx, *dbPath, result, rep); err != nil {
			log.Fatalf("persist results: %v", err)
		}
		log.Printf("saved run %s to %s", result.RunID, *dbPath)
	}
}

func persist(ctx context.Context, path string, result termrel.Result, rep report.Report) error {
	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	run := store.Run{
		ID:          result.RunID,
		CreatedAt:   time.Now().UTC(),
		Occurrences: rep.Occurrences,
		Categories:  rep.Categories,
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}

	freqs := make([]store.Frequency, len(result.Frequencies))
	for i, w := range result.Frequencies {
		freqs[i] = store.Frequency{
			Category: w.Category,
			Word:     w.Word,
			N:        w.N,
			Total:    w.Total,
			TF:       w.TF,
			IDF:      w.IDF,
			TFIDF:    w.TFIDF,
		}
	}
	if err := st.SaveFrequencies(ctx, result.RunID, freqs); err != nil {
		return err
	}

	corrs := make([]store.Correlation, len(result.Correlations))
	for i, c := range result.Correlations {
		corrs[i] = store.Correlation{A: c.A, B: c.B, R: c.R, Defined: c.Defined}
	}
	return st.SaveCorrelations(ctx, result.RunID, corrs)
}
