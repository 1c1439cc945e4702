package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexkit/termrel/pkg/termrel/internalerr"
)

func TestExtractBasic(t *testing.T) {
	docs := []Document{
		{ID: "d1", Title: "A Haunting", Category: "fiction", Text: "the the ghost"},
		{ID: "d2", Title: "Markets", Category: "news", Text: "the economy"},
	}
	tok := NewTokenizer([]string{})

	occs, err := Extract(docs, tok)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// 3 tokens from d1 + 2 from d2, multiplicity preserved.
	if len(occs) != 5 {
		t.Fatalf("Expected 5 occurrences, got %d", len(occs))
	}

	theCount := 0
	for _, o := range occs {
		if o.Category == "fiction" && o.Word == "the" {
			theCount++
			if o.DocID != "d1" {
				t.Errorf("Expected DocID d1, got %s", o.DocID)
			}
		}
	}
	if theCount != 2 {
		t.Errorf("Expected 2 fiction/the occurrences, got %d", theCount)
	}
}

func TestExtractInvalidDocument(t *testing.T) {
	docs := []Document{
		{ID: "d1", Category: "fiction", Text: "ghost"},
		{ID: "d2", Category: "", Text: "economy"},
	}

	_, err := Extract(docs, NewTokenizer(nil))
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestExtractEmptyCorpus(t *testing.T) {
	occs, err := Extract(nil, NewTokenizer(nil))
	if err != nil {
		t.Fatalf("Empty corpus should not error: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("Empty corpus should yield no occurrences, got %d", len(occs))
	}
}

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	content := `{"id":"d1","title":"A Haunting","category":"fiction","text":"the ghost"}

{"id":"d2","title":"Markets","category":"news","text":"the economy"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}
	if docs[0].Category != "fiction" || docs[1].Category != "news" {
		t.Errorf("Unexpected categories: %s, %s", docs[0].Category, docs[1].Category)
	}
}

func TestLoadJSONLMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	content := `{"id":"d1","category":"fiction","text":"ghost"}
{not json}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadJSONL(path); err == nil {
		t.Fatal("Malformed line should be an error")
	}
}

func TestLoadJSONLMissingFile(t *testing.T) {
	if _, err := LoadJSONL(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Fatal("Missing file should be an error")
	}
}
