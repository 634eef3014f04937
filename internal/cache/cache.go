// Package cache memoizes catalog fetches under content-addressed
// fingerprints so repeated lookups never touch the network twice. The live
// store sits in memory and writes through to a pluggable sink after every
// miss.
package cache

import (
	"errors"
	"net/url"
	"strings"

	"github.com/steven-jacovitch/506-Final/internal/logger"
	"github.com/steven-jacovitch/506-Final/internal/record"
)

// DefaultFilePath is where the file-backed sink persists the store.
const DefaultFilePath = "CACHE.json"

// ErrCacheLoad indicates the persisted store could not be read.
var ErrCacheLoad = errors.New("failed to load cache store")

// ErrCachePersist indicates the store could not be written through.
var ErrCachePersist = errors.New("failed to persist cache store")

// Fetcher retrieves a resource when the cache has no entry for it.
type Fetcher interface {
	Fetch(url string, params map[string]string) (any, error)
}

// Sink persists the cache store between runs.
type Sink interface {
	Load() (map[string]any, error)
	Save(entries map[string]any) error
	Close() error
}

// Key builds the fingerprint for a resource request. The URL lowercases and
// params, when present, append as a sorted query string so equivalent
// requests always land on the same entry.
func Key(rawURL string, params map[string]string) string {
	fingerprint := strings.ToLower(rawURL)

	if len(params) == 0 {
		return fingerprint
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	return strings.ToLower(fingerprint + "?" + values.Encode())
}

// Cache resolves resource requests against a memoized store, falling back to
// the fetcher on a miss. The store assumes a single logical writer; callers
// running concurrent resolutions must add their own locking discipline.
type Cache struct {
	fetcher Fetcher
	sink    Sink
	store   map[string]any
	hits    int
	misses  int
	log     *logger.Logger
}

// NewCache creates a cache primed from the sink's persisted store. A nil
// sink keeps the cache purely in memory.
func NewCache(fetcher Fetcher, sink Sink, log *logger.Logger) (*Cache, error) {
	store := map[string]any{}

	if sink != nil {
		loaded, err := sink.Load()
		if err != nil {
			return nil, err
		}

		store = loaded
	}

	return &Cache{
		fetcher: fetcher,
		sink:    sink,
		store:   store,
		log:     log,
	}, nil
}

// Resolve returns the resource for the given URL and params. A hit returns a
// deep copy of the stored entry so callers can mutate results freely. A miss
// fetches the resource, stores its own copy, writes the store through to the
// sink, and returns the fetched value. A failed fetch leaves the store
// untouched.
func (c *Cache) Resolve(rawURL string, params map[string]string) (any, error) {
	key := Key(rawURL, params)

	if stored, ok := c.store[key]; ok {
		c.hits++
		c.log.Debug("Cache hit", "key", key)

		return record.Clone(stored), nil
	}

	c.misses++
	c.log.Debug("Cache miss", "key", key)

	value, err := c.fetcher.Fetch(rawURL, params)
	if err != nil {
		return nil, err
	}

	c.store[key] = record.Clone(value)

	if c.sink != nil {
		if err := c.sink.Save(c.store); err != nil {
			return nil, err
		}
	}

	return value, nil
}

// Len returns the number of entries in the store.
func (c *Cache) Len() int {
	return len(c.store)
}

// Stats returns how many resolutions hit and missed the store.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
