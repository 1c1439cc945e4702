package corpus

import (
	"fmt"
	"strings"

	"github.com/lexkit/termrel/pkg/termrel/internalerr"
)

// Document is a categorized text before tokenization.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Validate checks if the document has required fields
func (d *Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: document id is required", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Category) == "" {
		return fmt.Errorf("%w: document category is required", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Text) == "" {
		return fmt.Errorf("%w: document text is required", internalerr.ErrInvalidInput)
	}
	return nil
}

// Extract tokenizes each document and emits one occurrence row per
// word token, preserving token multiplicity.
func Extract(docs []Document, tok *Tokenizer) ([]Occurrence, error) {
	var occs []Occurrence
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		for _, word := range tok.Tokenize(docs[i].Text) {
			occs = append(occs, Occurrence{
				DocID:    docs[i].ID,
				Category: docs[i].Category,
				Word:     word,
			})
		}
	}
	return occs, nil
}
