package cache

import (
	"path/filepath"
	"testing"

	"github.com/steven-jacovitch/506-Final/internal/record"
)

func TestSQLiteSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	sink, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("NewSQLiteSink() error = %v", err)
	}
	defer sink.Close()

	entry := record.New()
	entry.Set("url", "https://swapi.py4e.com/api/starships/10/")
	entry.Set("name", "Millennium Falcon")

	if err := sink.Save(map[string]any{"fp-1": entry}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := sink.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rec, ok := loaded["fp-1"].(*record.Record)
	if !ok {
		t.Fatalf("loaded entry is %T, want *record.Record", loaded["fp-1"])
	}

	name, _ := rec.Get("name")
	if name != "Millennium Falcon" {
		t.Errorf("name = %v, want Millennium Falcon", name)
	}
}

func TestSQLiteSinkUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	sink, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("NewSQLiteSink() error = %v", err)
	}
	defer sink.Close()

	first := record.New()
	first.Set("name", "Tatooine")

	if err := sink.Save(map[string]any{"fp-1": first}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := record.New()
	second.Set("name", "Naboo")

	if err := sink.Save(map[string]any{"fp-1": second}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := sink.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(loaded) != 1 {
		t.Fatalf("Load() returned %d entries, want 1 after upsert", len(loaded))
	}

	name, _ := loaded["fp-1"].(*record.Record).Get("name")
	if name != "Naboo" {
		t.Errorf("name = %v, want Naboo after upsert", name)
	}
}

func TestSQLiteSinkEmptyDatabase(t *testing.T) {
	sink, err := NewSQLiteSink(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteSink() error = %v", err)
	}
	defer sink.Close()

	entries, err := sink.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Load() returned %d entries, want 0", len(entries))
	}
}

func TestSQLiteSinkPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	sink, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("NewSQLiteSink() error = %v", err)
	}

	entry := record.New()
	entry.Set("name", "Dagobah")

	if err := sink.Save(map[string]any{"fp-9": entry}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteSink(path)
	if err != nil {
		t.Fatalf("NewSQLiteSink() reopen error = %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	name, _ := loaded["fp-9"].(*record.Record).Get("name")
	if name != "Dagobah" {
		t.Errorf("name = %v, want Dagobah across reopen", name)
	}
}
