package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lexkit/termrel/pkg/termrel/correlate"
	"github.com/lexkit/termrel/pkg/termrel/corpus"
	"github.com/lexkit/termrel/pkg/termrel/internalerr"
)

// Analysis represents an analysis configuration file
type Analysis struct {
	Stopwords      []string `yaml:"stopwords"`
	Stemming       bool     `yaml:"stemming"`
	Vocabulary     string   `yaml:"vocabulary"`      // "union" (default) or "intersection"
	TopTerms       int      `yaml:"top_terms"`       // terms per category in the report
	MinCorrelation float64  `yaml:"min_correlation"` // report edge threshold
}

// Default returns the configuration used when no file is given.
func Default() *Analysis {
	return &Analysis{
		Vocabulary:     "union",
		TopTerms:       15,
		MinCorrelation: 0.05,
	}
}

// Load reads an analysis configuration from a YAML file.
// Omitted fields fall back to Default values.
func Load(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TopTerms <= 0 {
		cfg.TopTerms = Default().TopTerms
	}
	if cfg.Vocabulary == "" {
		cfg.Vocabulary = "union"
	}

	return cfg, nil
}

// Policy maps the vocabulary setting onto a correlation policy.
func (a *Analysis) Policy() (correlate.Policy, error) {
	switch a.Vocabulary {
	case "union":
		return correlate.ZeroFill, nil
	case "intersection":
		return correlate.PairwiseComplete, nil
	default:
		return 0, fmt.Errorf("%w: unknown vocabulary %q", internalerr.ErrInvalidConfig, a.Vocabulary)
	}
}

// Tokenizer constructs the corpus tokenizer described by the config.
func (a *Analysis) Tokenizer() *corpus.Tokenizer {
	tok := corpus.NewTokenizer(a.Stopwords)
	tok.SetStemming(a.Stemming)
	return tok
}
