// Package main provides the verify command-line tool for checking pipeline
// output artifacts against their run manifest.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/steven-jacovitch/506-Final/pkg/manifest"
)

func main() {
	dir := flag.String("dir", "output", "Directory holding pipeline artifacts and their manifest")
	name := flag.String("manifest", "manifest.json", "Manifest file name inside the directory")
	flag.Parse()

	path := filepath.Join(*dir, *name)

	fmt.Printf("📂 Reading manifest: %s\n", path)

	m, err := manifest.Load(path)
	if err != nil {
		log.Fatalf("❌ Failed to load manifest: %v\n", err)
	}

	fmt.Printf("🔍 Run %s: %d artifact(s), recorded %s\n",
		m.RunID, len(m.Artifacts), m.CreatedAt.Format(time.RFC3339))

	if err := m.Verify(*dir); err != nil {
		switch {
		case errors.Is(err, manifest.ErrArtifactMissing):
			fmt.Printf("❌ Missing artifact: %v\n", err)
		case errors.Is(err, manifest.ErrDigestMismatch):
			fmt.Printf("❌ Corrupt artifact: %v\n", err)
		default:
			fmt.Printf("❌ Verification failed: %v\n", err)
		}

		os.Exit(1)
	}

	for _, artifact := range m.Artifacts {
		fmt.Printf("  ✅ %s (%d bytes)\n", artifact.Path, artifact.Size)
	}

	fmt.Println("✨ All artifacts verified.")
}
