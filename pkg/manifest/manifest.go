// Package manifest records the artifacts a pipeline run produced and
// verifies them against their recorded digests.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest verification errors.
var (
	ErrManifestRead    = errors.New("failed to read manifest")
	ErrManifestParse   = errors.New("failed to parse manifest")
	ErrArtifactMissing = errors.New("artifact missing")
	ErrDigestMismatch  = errors.New("digest mismatch")
)

// Entry describes one artifact file.
type Entry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Digest string `json:"digest"`
	Size   int64  `json:"size"`
}

// Manifest lists the artifacts of one pipeline run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Artifacts []Entry   `json:"artifacts"`
}

// New creates an empty manifest with a fresh run ID.
func New() *Manifest {
	return &Manifest{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
}

// Digest computes the SHA-256 hex digest of data.
func Digest(data []byte) string {
	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}

// Add records an artifact under its path relative to the output directory.
func (m *Manifest) Add(name, path string, data []byte) {
	m.Artifacts = append(m.Artifacts, Entry{
		Name:   name,
		Path:   path,
		Digest: Digest(data),
		Size:   int64(len(data)),
	})
}

// Write stores the manifest as indented JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// Load reads a manifest from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestRead, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}

	return &m, nil
}

// Verify recomputes the digest of every artifact under dir and compares it
// against the recorded one.
func (m *Manifest) Verify(dir string) error {
	for _, entry := range m.Artifacts {
		data, err := os.ReadFile(filepath.Join(dir, entry.Path))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, entry.Path)
		}

		if calculated := Digest(data); calculated != entry.Digest {
			return fmt.Errorf("%w: %s expected %s, got %s", ErrDigestMismatch, entry.Path, entry.Digest, calculated)
		}
	}

	return nil
}
