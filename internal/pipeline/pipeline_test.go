package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/steven-jacovitch/506-Final/internal/config"
	"github.com/steven-jacovitch/506-Final/internal/dataset"
	"github.com/steven-jacovitch/506-Final/internal/logger"
	"github.com/steven-jacovitch/506-Final/internal/record"
	"github.com/steven-jacovitch/506-Final/internal/report"
)

const episodesCSV = `series_season_num,series_episode_num,season_episode_num,episode_prod_code,episode_us_viewers_mm,episode_director,episode_writers,episode_title
1,1,1,1.01,3.92,Dave Filoni,Steven Melching,Ambush
1,2,2,1.02,4.92,Brian O'Connell,"Steven Melching, George Krstic",Rising Malevolence
2,1,23,2.01,4.92,Dave Filoni,George Krstic,Holocron Heist
3,1,45,3.01,,Steward Lee,Drew Z. Greenberg,Clone Cadets
`

const articlesJSON = `[
  {"abstract": "Gallery", "web_url": "https://example.com/arts-a", "headline": {"main": "Droid Art"}, "news_desk": "Arts", "byline": {"original": "By Rey"}, "document_type": "article", "type_of_material": "News", "word_count": 1000, "pub_date": "2017-12-01T00:00:00Z"},
  {"abstract": "Second", "web_url": "https://example.com/arts-b", "headline": {"main": "More Art"}, "news_desk": "Arts", "byline": {"original": "By Finn"}, "document_type": "article", "type_of_material": "News", "word_count": 501, "pub_date": "2017-12-02T00:00:00Z"},
  {"abstract": "Screening", "web_url": "https://example.com/movies", "headline": {"main": "Premiere"}, "news_desk": "Movies", "byline": {"original": "By Poe"}, "document_type": "review", "type_of_material": "Review", "word_count": 800, "pub_date": "2017-12-03T00:00:00Z"},
  {"abstract": "Empty", "web_url": "https://example.com/none", "headline": {"main": "No Desk"}, "news_desk": "None", "byline": {"original": null}, "document_type": "article", "type_of_material": "News", "word_count": 0, "pub_date": "2017-12-04T00:00:00Z"}
]`

// newTestPipeline builds a pipeline over temp data and output directories.
func newTestPipeline(t *testing.T, files map[string]string) *Pipeline {
	t.Helper()
	tmp := t.TempDir()

	dataDir := filepath.Join(tmp, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", name, err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Data.Dir = dataDir
	cfg.Output.Dir = filepath.Join(tmp, "output")
	cfg.Cache.Path = filepath.Join(tmp, "CACHE.json")

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}

	p, err := NewPipeline(cfg, logger.NewLogger("error"))
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	p.summary = &report.Summary{}

	return p
}

func TestProcessEpisodes(t *testing.T) {
	p := newTestPipeline(t, map[string]string{EpisodesFile: episodesCSV})

	if err := p.processEpisodes(); err != nil {
		t.Fatalf("processEpisodes failed: %v", err)
	}

	converted, err := dataset.ReadJSONValue(filepath.Join(p.cfg.Output.Dir, "clone_wars-episodes_converted.json"))
	if err != nil {
		t.Fatalf("Failed to read converted episodes: %v", err)
	}

	episodes, ok := converted.([]any)
	if !ok {
		t.Fatalf("Expected list of episodes, got %T", converted)
	}

	if len(episodes) != 4 {
		t.Fatalf("Expected 4 episodes, got %d", len(episodes))
	}

	first, ok := episodes[0].(*record.Record)
	if !ok {
		t.Fatalf("Expected record element, got %T", episodes[0])
	}

	if viewers, _ := first.Get("episode_us_viewers_mm"); viewers != 3.92 {
		t.Errorf("episode_us_viewers_mm = %v, want 3.92", viewers)
	}

	counts, err := dataset.ReadJSONValue(filepath.Join(p.cfg.Output.Dir, "clone_wars-director_episode_counts.json"))
	if err != nil {
		t.Fatalf("Failed to read director counts: %v", err)
	}

	directors, ok := counts.(*record.Record)
	if !ok {
		t.Fatalf("Expected record of counts, got %T", counts)
	}

	wantOrder := []string{"Dave Filoni", "Steward Lee", "Brian O'Connell"}
	gotOrder := directors.Keys()

	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("Expected %d directors, got %d", len(wantOrder), len(gotOrder))
	}

	for i, want := range wantOrder {
		if gotOrder[i] != want {
			t.Errorf("Director %d = %v, want %v", i, gotOrder[i], want)
		}
	}

	if count, _ := directors.Get("Dave Filoni"); count != 2.0 {
		t.Errorf("Dave Filoni count = %v, want 2", count)
	}

	if len(p.summary.Artifacts) != 2 {
		t.Errorf("Expected 2 artifacts recorded, got %d", len(p.summary.Artifacts))
	}
}

func TestProcessEpisodesMissingDataset(t *testing.T) {
	p := newTestPipeline(t, nil)

	if err := p.processEpisodes(); !errors.Is(err, dataset.ErrReadFile) {
		t.Errorf("Expected ErrReadFile, got %v", err)
	}
}

func TestProcessArticles(t *testing.T) {
	p := newTestPipeline(t, map[string]string{ArticlesFile: articlesJSON})

	if err := p.processArticles(); err != nil {
		t.Fatalf("processArticles failed: %v", err)
	}

	desks, err := dataset.ReadJSONValue(filepath.Join(p.cfg.Output.Dir, "nyt_news_desks.json"))
	if err != nil {
		t.Fatalf("Failed to read news desks: %v", err)
	}

	deskList, ok := desks.([]any)
	if !ok || len(deskList) != 2 {
		t.Fatalf("Expected 2 news desks, got %v", desks)
	}

	if deskList[0] != "Arts" || deskList[1] != "Movies" {
		t.Errorf("News desks = %v, want [Arts Movies]", deskList)
	}

	means, err := dataset.ReadJSONValue(filepath.Join(p.cfg.Output.Dir, "nyt_news_desk_mean_word_counts.json"))
	if err != nil {
		t.Fatalf("Failed to read mean word counts: %v", err)
	}

	meansRecord, ok := means.(*record.Record)
	if !ok {
		t.Fatalf("Expected record of means, got %T", means)
	}

	// Movies is on the ignore list, so only Arts remains.
	if meansRecord.Len() != 1 {
		t.Errorf("Expected 1 desk with a mean, got %d", meansRecord.Len())
	}

	if mean, _ := meansRecord.Get("Arts"); mean != 750.5 {
		t.Errorf("Arts mean = %v, want 750.5", mean)
	}
}

func TestAppendInstruction(t *testing.T) {
	droid := record.New()

	appendInstruction(droid, "Power up the engines")
	appendInstruction(droid, "Release the docking clamp")

	value, _ := droid.Get("instructions")

	instructions, ok := value.([]any)
	if !ok {
		t.Fatalf("Expected instruction list, got %T", value)
	}

	if len(instructions) != 2 || instructions[1] != "Release the docking clamp" {
		t.Errorf("Unexpected instructions: %v", instructions)
	}
}

func TestAppendInstructionReplacesNonList(t *testing.T) {
	droid := record.New()
	droid.Set("instructions", "none")

	appendInstruction(droid, "Power up the engines")

	value, _ := droid.Get("instructions")

	instructions, ok := value.([]any)
	if !ok || len(instructions) != 1 {
		t.Fatalf("Expected single instruction list, got %v", value)
	}
}

func TestFieldHelpers(t *testing.T) {
	rec := record.New()
	rec.Set("name", "Twilight")
	rec.Set("crew_size", int64(2))
	rec.Set("max_passengers", 6.0)

	if got := stringField(rec, "name"); got != "Twilight" {
		t.Errorf("stringField = %v, want Twilight", got)
	}

	if got := stringField(rec, "missing"); got != "" {
		t.Errorf("stringField(missing) = %q, want empty", got)
	}

	if got := stringField(nil, "name"); got != "" {
		t.Errorf("stringField(nil) = %q, want empty", got)
	}

	if got := intField(rec, "crew_size"); got != 2 {
		t.Errorf("intField = %v, want 2", got)
	}

	if got := intField(rec, "max_passengers"); got != 6 {
		t.Errorf("intField(float) = %v, want 6", got)
	}

	if got := intField(rec, "missing"); got != 0 {
		t.Errorf("intField(missing) = %v, want 0", got)
	}
}

func TestDiameterKey(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{"Known diameter", int64(12120), -12120},
		{"Float diameter", 10465.0, -10465},
		{"Zero diameter", int64(0), 0},
		{"Missing diameter", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record.New()
			if tt.value != nil {
				rec.Set("diameter_km", tt.value)
			}

			if got := diameterKey(rec); got != tt.expected {
				t.Errorf("diameterKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewPipelineBadMappingsPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.Dir = t.TempDir()
	cfg.Output.Dir = t.TempDir()
	cfg.Cache.Path = filepath.Join(t.TempDir(), "CACHE.json")
	cfg.Mappings.Path = filepath.Join(t.TempDir(), "missing_mappings.json")

	if _, err := NewPipeline(cfg, logger.NewLogger("error")); err == nil {
		t.Fatal("Expected error for missing mappings file, got nil")
	}
}
