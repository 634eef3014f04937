package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/steven-jacovitch/506-Final/internal/record"
)

// FileSink persists the cache store as a single JSON document keyed by
// fingerprint.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Load reads the persisted store. A missing file is not an error; it yields
// an empty store.
func (s *FileSink) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}

		return nil, fmt.Errorf("%w: %v", ErrCacheLoad, err)
	}

	value, err := record.DecodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheLoad, err)
	}

	doc, ok := value.(*record.Record)
	if !ok {
		return nil, fmt.Errorf("%w: store document is %T, not an object", ErrCacheLoad, value)
	}

	entries := make(map[string]any, doc.Len())
	for key, entry := range doc.All() {
		entries[key] = entry
	}

	return entries, nil
}

// Save writes the whole store to disk, replacing the previous document.
func (s *FileSink) Save(entries map[string]any) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCachePersist, err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrCachePersist, err)
	}

	return nil
}

// Close is a no-op for file-backed sinks.
func (s *FileSink) Close() error {
	return nil
}
