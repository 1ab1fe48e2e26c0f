package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Export is the normalized content of a Takeout watch-history file.
type Export struct {
	// Records are the usable entries in file order.
	Records []Record
	// Skipped counts entries dropped as malformed.
	Skipped int
}

// ExportError wraps failures to open or decode an export file.
type ExportError struct {
	Path string
	Err  error
}

// Error returns a string representation of the export error.
func (e *ExportError) Error() string {
	return "history: load " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ExportError) Unwrap() error { return e.Err }

// LoadExport reads and normalizes the Takeout file at path.
func LoadExport(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}
	defer f.Close()

	export, err := DecodeExport(f)
	if err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}
	return export, nil
}

// DecodeExport normalizes a JSON array of history entries read from r.
// Elements that are not objects, or that fail normalization, are counted in
// Skipped.
func DecodeExport(r io.Reader) (*Export, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	export := &Export{Records: make([]Record, 0, len(entries))}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			export.Skipped++
			continue
		}
		record, ok := NormalizeEntry(entry)
		if !ok {
			export.Skipped++
			continue
		}
		export.Records = append(export.Records, record)
	}
	return export, nil
}
