// Package pipeline orchestrates the full resolution and analytics run: local
// dataset analytics, remote catalog lookups through the cache, and the final
// voyage assembly artifacts.
package pipeline

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/steven-jacovitch/506-Final/internal/analytics"
	"github.com/steven-jacovitch/506-Final/internal/cache"
	"github.com/steven-jacovitch/506-Final/internal/config"
	"github.com/steven-jacovitch/506-Final/internal/dataset"
	"github.com/steven-jacovitch/506-Final/internal/logger"
	"github.com/steven-jacovitch/506-Final/internal/record"
	"github.com/steven-jacovitch/506-Final/internal/report"
	"github.com/steven-jacovitch/506-Final/internal/schema"
	"github.com/steven-jacovitch/506-Final/internal/swapi"
	"github.com/steven-jacovitch/506-Final/internal/transform"
	"github.com/steven-jacovitch/506-Final/pkg/manifest"
)

// Input dataset files expected under the configured data directory.
const (
	EpisodesFile  = "clone_wars_episodes.csv"
	ArticlesFile  = "nyt_star_wars_articles.json"
	PlanetsFile   = "wookieepedia_planets.csv"
	DroidsFile    = "wookieepedia_droids.json"
	PeopleFile    = "wookieepedia_people.json"
	StarshipsFile = "wookieepedia_starships.csv"
	JediFile      = "jedi.json"
)

// Artifacts written alongside the JSON outputs.
const (
	ManifestFile = "manifest.json"
	ReportFile   = "run_report.md"
)

// ignoredNewsDesks are excluded from the mean word count artifact.
var ignoredNewsDesks = []string{"Business Day", "Movies"}

// Pipeline executes the run end to end and records what it produced.
type Pipeline struct {
	cfg      *config.Config
	log      *logger.Logger
	client   *swapi.Client
	cache    *cache.Cache
	sink     cache.Sink
	tf       *transform.Transformer
	manifest *manifest.Manifest
	summary  *report.Summary
}

// NewPipeline wires a pipeline from configuration: catalog client, cache
// store, and field mapping tables.
func NewPipeline(cfg *config.Config, log *logger.Logger) (*Pipeline, error) {
	client := swapi.NewClient(cfg.Catalog.Endpoint, cfg.Catalog.UserAgent, cfg.Catalog.GetTimeout())

	var sink cache.Sink

	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		sqliteSink, err := cache.NewSQLiteSink(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache store: %w", err)
		}

		sink = sqliteSink
	default:
		sink = cache.NewFileSink(cfg.Cache.Path)
	}

	store, err := cache.NewCache(client, sink, log)
	if err != nil {
		return nil, fmt.Errorf("failed to prime cache: %w", err)
	}

	mappings := schema.Default()
	if cfg.Mappings.Path != "" {
		mappings, err = schema.Load(cfg.Mappings.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load field mappings: %w", err)
		}
	}

	return &Pipeline{
		cfg:      cfg,
		log:      log,
		client:   client,
		cache:    store,
		sink:     sink,
		tf:       transform.NewTransformer(mappings, store),
		manifest: manifest.New(),
	}, nil
}

// RunID identifies this run in the manifest.
func (p *Pipeline) RunID() string {
	return p.manifest.RunID
}

// Close releases the cache store.
func (p *Pipeline) Close() error {
	return p.sink.Close()
}

// Run executes every phase in order and returns the run summary.
func (p *Pipeline) Run() (*report.Summary, error) {
	start := time.Now()
	p.summary = &report.Summary{Title: "Resource Pipeline Run"}

	if err := os.MkdirAll(p.cfg.Output.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	p.log.Info("Phase 1: Episode analytics")

	if err := p.processEpisodes(); err != nil {
		return nil, fmt.Errorf("episode analytics failed: %w", err)
	}

	p.log.Info("Phase 2: Article analytics")

	if err := p.processArticles(); err != nil {
		return nil, fmt.Errorf("article analytics failed: %w", err)
	}

	p.log.Info("Phase 3: Planet lookups")

	planets, err := p.processWookieePlanets()
	if err != nil {
		return nil, fmt.Errorf("planet lookups failed: %w", err)
	}

	p.log.Info("Phase 4: Catalog resolution")

	results, err := p.processCatalog(planets)
	if err != nil {
		return nil, fmt.Errorf("catalog resolution failed: %w", err)
	}

	p.log.Info("Phase 5: Voyage assembly")

	if err := p.processVoyage(planets, results); err != nil {
		return nil, fmt.Errorf("voyage assembly failed: %w", err)
	}

	hits, misses := p.cache.Stats()
	p.summary.CacheHits = hits
	p.summary.CacheMisses = misses
	p.summary.Duration = time.Since(start)

	if p.cfg.Output.WriteManifest {
		if err := p.manifest.Write(filepath.Join(p.cfg.Output.Dir, ManifestFile)); err != nil {
			return nil, err
		}
	}

	if p.cfg.Output.WriteReport {
		reportPath := filepath.Join(p.cfg.Output.Dir, ReportFile)
		if err := os.WriteFile(reportPath, []byte(p.summary.Render()), 0644); err != nil {
			return nil, fmt.Errorf("failed to write run report: %w", err)
		}
	}

	return p.summary, nil
}

// processEpisodes converts the episode dataset and derives viewer and
// director statistics from it.
func (p *Pipeline) processEpisodes() error {
	episodes, err := dataset.ReadCSV(p.dataPath(EpisodesFile))
	if err != nil {
		return err
	}

	withViewers := 0
	for _, episode := range episodes {
		if analytics.HasViewerData(episode) {
			withViewers++
		}
	}

	p.log.Info("Loaded episodes", "count", len(episodes), "with_viewer_data", withViewers)

	episodes = analytics.ConvertEpisodeValues(episodes)
	if err := p.writeArtifact("clone_wars-episodes_converted.json", episodes, len(episodes)); err != nil {
		return err
	}

	mostViewed := analytics.MostViewedEpisode(episodes)
	if len(mostViewed) > 0 {
		viewers, _ := mostViewed[0].Get("episode_us_viewers_mm")
		p.log.Info("Most viewed episode", "episodes", len(mostViewed), "viewers_mm", viewers)
	}

	counts := analytics.SortDirectorCounts(analytics.CountEpisodesByDirector(episodes))

	return p.writeArtifact("clone_wars-director_episode_counts.json", counts, counts.Len())
}

// processArticles groups the article dataset by news desk and computes mean
// word counts for the desks that are not ignored.
func (p *Pipeline) processArticles() error {
	var articles []analytics.Article
	if err := dataset.ReadJSONInto(p.dataPath(ArticlesFile), &articles); err != nil {
		return err
	}

	p.log.Info("Loaded articles", "count", len(articles))

	newsDesks := analytics.NewsDesks(articles)
	if err := p.writeArtifact("nyt_news_desks.json", newsDesks, len(newsDesks)); err != nil {
		return err
	}

	grouped := analytics.GroupArticlesByNewsDesk(newsDesks, articles)
	if err := p.writeArtifact("nyt_news_desk_articles.json", grouped, grouped.Len()); err != nil {
		return err
	}

	means := record.New()

	for _, desk := range grouped.Keys() {
		if slices.Contains(ignoredNewsDesks, desk) {
			continue
		}

		value, _ := grouped.Get(desk)

		thinned, ok := value.([]analytics.ThinnedArticle)
		if !ok {
			return fmt.Errorf("unexpected group type %T for desk %q", value, desk)
		}

		mean, err := analytics.MeanWordCount(thinned)
		if err != nil {
			return fmt.Errorf("news desk %q: %w", desk, err)
		}

		means.Set(desk, mean)
	}

	return p.writeArtifact("nyt_news_desk_mean_word_counts.json", means, means.Len())
}

// processWookieePlanets extracts two reference planets from the planet
// dataset and returns the full list for later phases.
func (p *Pipeline) processWookieePlanets() ([]*record.Record, error) {
	planets, err := dataset.ReadCSV(p.dataPath(PlanetsFile))
	if err != nil {
		return nil, err
	}

	p.log.Info("Loaded planets", "count", len(planets))

	dagobah := record.FindByField(planets, "name", "Dagobah")
	if err := p.writeArtifact("wookiee_dagobah.json", dagobah, 1); err != nil {
		return nil, err
	}

	haruunKal := record.FindByField(planets, "system", "Al'Har system")
	if err := p.writeArtifact("wookiee_haruun_kal.json", haruunKal, 1); err != nil {
		return nil, err
	}

	return planets, nil
}

// catalogResults carries the resolved entities the voyage phase assembles.
type catalogResults struct {
	r2d2     *record.Record
	anakin   *record.Record
	obiWan   *record.Record
	twilight *record.Record
	padme    *record.Record
	c3po     *record.Record
}

// processCatalog resolves the featured entities against the remote catalog,
// merges in local supplements, and normalizes each one.
func (p *Pipeline) processCatalog(planets []*record.Record) (*catalogResults, error) {
	rawTatooine, err := p.searchFirst(swapi.PlanetsPath, "tatooine")
	if err != nil {
		return nil, err
	}

	rawTatooine.Merge(record.FindByField(planets, "name", stringField(rawTatooine, "name")))

	tatooine, err := p.tf.Planet(rawTatooine)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("tatooine.json", tatooine, 1); err != nil {
		return nil, err
	}

	droids, err := dataset.ReadJSONRecords(p.dataPath(DroidsFile))
	if err != nil {
		return nil, err
	}

	rawR2, err := p.searchFirst(swapi.PeoplePath, "R2-D2")
	if err != nil {
		return nil, err
	}

	rawR2.Merge(record.FindByField(droids, "name", stringField(rawR2, "name")))

	r2d2, err := p.tf.Droid(rawR2)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("r2_d2.json", r2d2, 1); err != nil {
		return nil, err
	}

	rawHuman, err := p.searchFirst(swapi.SpeciesPath, "human")
	if err != nil {
		return nil, err
	}

	humanSpecies, err := p.tf.Species(rawHuman)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("human_species.json", humanSpecies, 1); err != nil {
		return nil, err
	}

	people, err := dataset.ReadJSONRecords(p.dataPath(PeopleFile))
	if err != nil {
		return nil, err
	}

	anakin, err := p.resolvePerson("Anakin", people, planets)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("anakin_skywalker.json", anakin, 1); err != nil {
		return nil, err
	}

	obiWan, err := p.resolvePerson("Obi-Wan", people, planets)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("obi_wan_kenobi.json", obiWan, 1); err != nil {
		return nil, err
	}

	starships, err := dataset.ReadCSV(p.dataPath(StarshipsFile))
	if err != nil {
		return nil, err
	}

	rawTwilight := record.FindByField(starships, "name", "Twilight")
	if rawTwilight == nil {
		return nil, fmt.Errorf("starship %q not found in %s", "Twilight", StarshipsFile)
	}

	twilight, err := p.tf.Starship(rawTwilight)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("twilight.json", twilight, 1); err != nil {
		return nil, err
	}

	padme, err := p.resolvePerson("Padmé", people, planets)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("padme_amidala.json", padme, 1); err != nil {
		return nil, err
	}

	rawC3PO, err := p.searchFirst(swapi.PeoplePath, "C-3PO")
	if err != nil {
		return nil, err
	}

	rawC3PO.Merge(record.FindByField(droids, "name", stringField(rawC3PO, "name")))

	c3po, err := p.tf.Droid(rawC3PO)
	if err != nil {
		return nil, err
	}

	if err := p.writeArtifact("c_3po.json", c3po, 1); err != nil {
		return nil, err
	}

	return &catalogResults{
		r2d2:     r2d2,
		anakin:   anakin,
		obiWan:   obiWan,
		twilight: twilight,
		padme:    padme,
		c3po:     c3po,
	}, nil
}

// processVoyage boards passengers and crew onto the starship, issues droid
// instructions, and writes the sorted planet artifacts. Instruction updates
// stay visible through the starship because the passenger list shares the
// droid record.
func (p *Pipeline) processVoyage(planets []*record.Record, results *catalogResults) error {
	jedi, err := dataset.ReadJSONRecords(p.dataPath(JediFile))
	if err != nil {
		return err
	}

	if len(jedi) < 4 {
		return fmt.Errorf("expected 4 jedi in %s, got %d", JediFile, len(jedi))
	}

	passengerManifest := []*record.Record{
		results.padme, results.c3po, results.r2d2,
		jedi[0], jedi[1], jedi[2], jedi[3],
	}

	maxPassengers := intField(results.twilight, "max_passengers")
	results.twilight.Set("passengers_on_board", transform.BoardPassengers(maxPassengers, passengerManifest[:3]))

	crewSize := intField(results.twilight, "crew_size")
	crew := transform.AssignCrewMembers(crewSize, []string{"pilot", "copilot"}, []*record.Record{results.anakin, results.obiWan})
	results.twilight.Set("crew_members", crew)

	results.r2d2.Set("instructions", []any{"Power up the engines"})

	transformed := make([]*record.Record, 0, len(planets))

	for _, planet := range planets {
		out, err := p.tf.Planet(planet)
		if err != nil {
			return err
		}

		transformed = append(transformed, out)
	}

	slices.SortFunc(transformed, func(a, b *record.Record) int {
		return cmp.Compare(stringField(b, "name"), stringField(a, "name"))
	})

	if err := p.writeArtifact("planets_sorted_name.json", transformed, len(transformed)); err != nil {
		return err
	}

	naboo := record.FindByField(transformed, "diameter_km", int64(12120))
	if naboo == nil {
		return fmt.Errorf("no planet with a 12120 km diameter found")
	}

	course := fmt.Sprintf("Plot course for Naboo, %s, %s", stringField(naboo, "region"), stringField(naboo, "sector"))
	appendInstruction(results.r2d2, course)
	p.log.Info("Course plotted", "instruction", course)

	byDiameter := slices.Clone(transformed)
	slices.SortFunc(byDiameter, func(a, b *record.Record) int {
		if c := cmp.Compare(diameterKey(a), diameterKey(b)); c != 0 {
			return c
		}

		return cmp.Compare(stringField(a, "name"), stringField(b, "name"))
	})

	if err := p.writeArtifact("planets_sorted_diameter.json", byDiameter, len(byDiameter)); err != nil {
		return err
	}

	appendInstruction(results.r2d2, "Release the docking clamp")

	return p.writeArtifact("twilight_departs.json", results.twilight, 1)
}

// searchFirst resolves a catalog search through the cache and returns the
// first result.
func (p *Pipeline) searchFirst(resource, query string) (*record.Record, error) {
	response, err := p.cache.Resolve(p.client.ResourceURL(resource), map[string]string{"search": query})
	if err != nil {
		return nil, err
	}

	return swapi.FirstResult(response)
}

// resolvePerson fetches a person from the catalog, merges the local
// supplement matched by name, and normalizes the result.
func (p *Pipeline) resolvePerson(query string, people, planets []*record.Record) (*record.Record, error) {
	raw, err := p.searchFirst(swapi.PeoplePath, query)
	if err != nil {
		return nil, err
	}

	raw.Merge(record.FindByField(people, "name", stringField(raw, "name")))

	return p.tf.Person(raw, planets)
}

// writeArtifact stores a value as indented JSON in the output directory and
// records it in the manifest and summary.
func (p *Pipeline) writeArtifact(name string, value any, records int) error {
	data, err := dataset.Marshal(value)
	if err != nil {
		return err
	}

	path := filepath.Join(p.cfg.Output.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}

	artifactName := strings.TrimSuffix(name, filepath.Ext(name))
	p.manifest.Add(artifactName, name, data)
	p.summary.Artifacts = append(p.summary.Artifacts, report.Artifact{
		Name:    artifactName,
		Path:    path,
		Records: records,
	})

	p.log.Info("Wrote artifact", "name", name, "records", records)

	return nil
}

func (p *Pipeline) dataPath(name string) string {
	return filepath.Join(p.cfg.Data.Dir, name)
}

// appendInstruction extends the droid's instruction list in place.
func appendInstruction(droid *record.Record, instruction string) {
	if current, ok := droid.Get("instructions"); ok {
		if list, ok := current.([]any); ok {
			droid.Set("instructions", append(list, instruction))

			return
		}
	}

	droid.Set("instructions", []any{instruction})
}

// stringField returns the string value of a field, or "" when absent.
func stringField(r *record.Record, key string) string {
	if r == nil {
		return ""
	}

	if value, ok := r.Get(key); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}

	return ""
}

// intField returns the integer value of a field, or 0 when absent.
func intField(r *record.Record, key string) int {
	if r == nil {
		return 0
	}

	value, _ := r.Get(key)

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}

	return 0
}

// diameterKey orders planets by descending diameter, with unknown or zero
// diameters collapsing to 0.
func diameterKey(r *record.Record) float64 {
	value, _ := r.Get("diameter_km")

	switch v := value.(type) {
	case int64:
		if v != 0 {
			return float64(-v)
		}
	case float64:
		if v != 0 {
			return -v
		}
	}

	return 0
}
