// Package main provides the resource lookup tool. It resolves a single
// catalog resource through the persistent cache, optionally normalizes it,
// and prints or saves the result as JSON.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/steven-jacovitch/506-Final/internal/cache"
	"github.com/steven-jacovitch/506-Final/internal/config"
	"github.com/steven-jacovitch/506-Final/internal/dataset"
	"github.com/steven-jacovitch/506-Final/internal/logger"
	"github.com/steven-jacovitch/506-Final/internal/record"
	"github.com/steven-jacovitch/506-Final/internal/schema"
	"github.com/steven-jacovitch/506-Final/internal/swapi"
	"github.com/steven-jacovitch/506-Final/internal/transform"
)

func main() {
	// ----------------------------------------
	// 1. Define Command-Line Flags
	// ----------------------------------------
	var (
		configFile   = flag.String("config", "", "Path to YAML configuration file")
		endpoint     = flag.String("endpoint", "", "Catalog endpoint (overrides config)")
		cachePath    = flag.String("cache", "", "Cache store path (overrides config)")
		cacheBackend = flag.String("cache-backend", "", "Cache backend: file or sqlite (overrides config)")
		resource     = flag.String("resource", "people", "Catalog resource: people, planets, species, starships, films, vehicles")
		search       = flag.String("search", "", "Search query; the first match is returned")
		rawURL       = flag.String("url", "", "Resolve this exact URL instead of -resource")
		kind         = flag.String("normalize", "", "Normalize the result as: planet, species, droid, person, starship")
		outputFile   = flag.String("output", "", "Write the result to this file instead of stdout")
		noCache      = flag.Bool("no-cache", false, "Skip the persistent cache store for this lookup")
		logLevel     = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
		showHelp     = flag.Bool("help", false, "Show usage information")
	)

	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	if *search == "" && *rawURL == "" {
		fmt.Fprintln(os.Stderr, "❌ Provide -search or -url to identify a resource")
		fmt.Fprintln(os.Stderr, "Run with -help for usage information")
		os.Exit(1)
	}

	// ----------------------------------------
	// 2. Load Configuration
	// ----------------------------------------
	cfg := config.DefaultConfig()

	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *endpoint != "" {
		cfg.Catalog.Endpoint = *endpoint
	}
	if *cachePath != "" {
		cfg.Cache.Path = *cachePath
	}
	if *cacheBackend != "" {
		cfg.Cache.Backend = *cacheBackend
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	// ----------------------------------------
	// 3. Build Client and Cache
	// ----------------------------------------
	client := swapi.NewClient(cfg.Catalog.Endpoint, cfg.Catalog.UserAgent, cfg.Catalog.GetTimeout())

	var sink cache.Sink

	if !*noCache {
		switch cfg.Cache.Backend {
		case config.BackendSQLite:
			s, err := cache.NewSQLiteSink(cfg.Cache.Path)
			if err != nil {
				log.Error("❌ Failed to open cache store", "error", err)
				os.Exit(1)
			}
			defer s.Close()

			sink = s
		default:
			sink = cache.NewFileSink(cfg.Cache.Path)
		}
	}

	store, err := cache.NewCache(client, sink, log)
	if err != nil {
		log.Error("❌ Failed to prime cache", "error", err)
		os.Exit(1)
	}

	// ----------------------------------------
	// 4. Resolve the Resource
	// ----------------------------------------
	target := *rawURL
	if target == "" {
		target = client.ResourceURL(*resource)
	}

	params := map[string]string{}
	if *search != "" {
		params["search"] = *search
	}

	fmt.Printf("⏳ Resolving: %s\n", target)

	response, err := store.Resolve(target, params)
	if err != nil {
		log.Error("❌ Lookup failed", "url", target, "error", err)
		os.Exit(1)
	}

	result := response

	if *search != "" {
		first, err := swapi.FirstResult(response)
		if err != nil {
			log.Error("❌ No match for search", "query", *search, "error", err)
			os.Exit(1)
		}

		result = first
	}

	// ----------------------------------------
	// 5. Normalize (Optional)
	// ----------------------------------------
	if *kind != "" {
		rec, ok := result.(*record.Record)
		if !ok {
			log.Error("❌ Result is not an object and cannot be normalized", "kind", *kind)
			os.Exit(1)
		}

		mappings := schema.Default()
		if cfg.Mappings.Path != "" {
			mappings, err = schema.Load(cfg.Mappings.Path)
			if err != nil {
				log.Error("❌ Failed to load key mappings", "error", err)
				os.Exit(1)
			}
		}

		tf := transform.NewTransformer(mappings, store)

		normalized, err := normalize(tf, *kind, rec)
		if err != nil {
			log.Error("❌ Normalization failed", "kind", *kind, "error", err)
			os.Exit(1)
		}

		result = normalized
	}

	// ----------------------------------------
	// 6. Emit the Result
	// ----------------------------------------
	if *outputFile != "" {
		if err := dataset.WriteJSON(*outputFile, result); err != nil {
			log.Error("❌ Failed to write output", "path", *outputFile, "error", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Saved result to: %s\n", *outputFile)
	} else {
		data, err := dataset.Marshal(result)
		if err != nil {
			log.Error("❌ Failed to encode result", "error", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	}

	hits, misses := store.Stats()
	fmt.Printf("\n📈 Cache: %d hit(s), %d miss(es)\n", hits, misses)
}

// normalize runs the mapping table for the given resource kind.
func normalize(tf *transform.Transformer, kind string, rec *record.Record) (*record.Record, error) {
	switch kind {
	case schema.KindPlanet:
		return tf.Planet(rec)
	case schema.KindSpecies:
		return tf.Species(rec)
	case schema.KindDroid:
		return tf.Droid(rec)
	case schema.KindPerson:
		return tf.Person(rec, nil)
	case schema.KindStarship:
		return tf.Starship(rec)
	default:
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownKind, kind)
	}
}

func printUsage() {
	fmt.Println("Resource Lookup Tool")
	fmt.Println()
	fmt.Println("Resolves a single catalog resource through the persistent cache.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  resource -search <query> [options]")
	fmt.Println("  resource -url <url> [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Search the people resource and print the first match")
	fmt.Println("  resource -search \"R2-D2\"")
	fmt.Println()
	fmt.Println("  # Search planets and normalize the result")
	fmt.Println("  resource -resource planets -search Tatooine -normalize planet")
	fmt.Println()
	fmt.Println("  # Resolve an exact URL and save it")
	fmt.Println("  resource -url https://swapi.py4e.com/api/starships/9/ -output deathstar.json")
	fmt.Println()
	fmt.Println("  # One-off lookup without touching the cache store")
	fmt.Println("  resource -search Yoda -no-cache")
}
