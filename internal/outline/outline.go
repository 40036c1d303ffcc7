// Package outline reads the lesson outline that drives generation.
package outline

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry describes one lesson to generate. One entry produces exactly one
// output file; entries are processed in source-array order.
type Entry struct {
	Order       int      `json:"order"`
	Title       string   `json:"title"`
	Unit        string   `json:"unit,omitempty"`
	SummaryHint string   `json:"summaryHint,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Load reads and parses the outline JSON at path. Any read or parse
// failure is fatal to the run; there is no partial recovery.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outline %s: %w", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing outline %s: %w", path, err)
	}
	return entries, nil
}
