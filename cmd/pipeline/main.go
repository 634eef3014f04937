// Package main provides the pipeline command that runs dataset analytics,
// catalog resolution, and voyage assembly in one pass.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/steven-jacovitch/506-Final/internal/config"
	"github.com/steven-jacovitch/506-Final/internal/logger"
	"github.com/steven-jacovitch/506-Final/internal/pipeline"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	dataDir := flag.String("data-dir", "", "Directory holding the input datasets")
	outputDir := flag.String("output-dir", "", "Directory for generated artifacts")
	cachePath := flag.String("cache", "", "Cache location (JSON file or SQLite database)")
	cacheBackend := flag.String("cache-backend", "", "Cache backend: file or sqlite")
	endpoint := flag.String("endpoint", "", "Catalog API endpoint")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	flag.Parse()

	// 2. Load Configuration
	// ---------------------
	cfg := config.DefaultConfig()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	// Flag overrides
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	if *cachePath != "" {
		cfg.Cache.Path = *cachePath
	}

	if *cacheBackend != "" {
		cfg.Cache.Backend = *cacheBackend
	}

	if *endpoint != "" {
		cfg.Catalog.Endpoint = *endpoint
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Initialize Logger
	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting Resource Pipeline")
	log.Info(fmt.Sprintf("📍 Catalog: %s", cfg.Catalog.Endpoint))
	log.Info(fmt.Sprintf("ℹ️  Cache: %s (%s)", cfg.Cache.Path, cfg.Cache.Backend))
	log.Info(fmt.Sprintf("🎯 Output: %s", cfg.Output.Dir))

	// 3. Build and Run
	// ----------------
	startTime := time.Now()

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Pipeline setup failed: %v", err))
		os.Exit(1)
	}

	summary, err := p.Run()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Pipeline failed: %v", err))
		p.Close()
		os.Exit(1)
	}

	if err := p.Close(); err != nil {
		log.Warn(fmt.Sprintf("⚠️  Failed to close cache store: %v", err))
	}

	log.Info("✨ Pipeline Complete!")

	// 4. Final Report
	// ---------------
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Run ID: %s\n", p.RunID())
	fmt.Printf("Artifacts Written: %d\n", len(summary.Artifacts))
	fmt.Printf("Cache Hits: %d\n", summary.CacheHits)
	fmt.Printf("Cache Misses: %d\n", summary.CacheMisses)
	fmt.Printf("Total Duration: %v\n", time.Since(startTime))
	fmt.Println("------------------------------------------------")
}
