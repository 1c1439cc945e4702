package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadJSONL loads documents from a JSONL file, one document per line.
// Blank lines are skipped; a malformed line aborts the load.
func LoadJSONL(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []Document
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("malformed JSON at line %d in %s: %w", i+1, path, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
