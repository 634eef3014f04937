// Package swapi fetches catalog resources from a SWAPI-compatible JSON API.
package swapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/steven-jacovitch/506-Final/internal/record"
)

// DefaultEndpoint is the public catalog API served by swapi.py4e.com.
const DefaultEndpoint = "https://swapi.py4e.com/api"

// Resource collections available under the API endpoint.
const (
	PeoplePath    = "people"
	PlanetsPath   = "planets"
	SpeciesPath   = "species"
	StarshipsPath = "starships"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// ErrDecodeResponse indicates a response body that is not valid JSON.
var ErrDecodeResponse = errors.New("failed to decode response body")

// ErrMalformedResponse indicates a search response without the expected shape.
var ErrMalformedResponse = errors.New("malformed search response")

// ErrNoResults indicates a search response with an empty results list.
var ErrNoResults = errors.New("no results in search response")

// Client fetches JSON resources from the catalog API.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a new catalog client for the given endpoint. Requests
// that exceed the timeout are abandoned; a failed request is not retried.
func NewClient(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the API base URL the client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ResourceURL builds the canonical URL for a resource collection, with the
// trailing slash the API expects.
func (c *Client) ResourceURL(resource string) string {
	return fmt.Sprintf("%s/%s/", c.endpoint, strings.Trim(resource, "/"))
}

// Fetch performs a GET against the given URL, merging params into the query
// string, and decodes the JSON response with object key order preserved.
func (c *Client) Fetch(rawURL string, params map[string]string) (any, error) {
	target, err := buildURL(rawURL, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", target, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed for %s: %w", target, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatusCode, resp.StatusCode, target)
	}

	value, err := record.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}

	return value, nil
}

// FirstResult returns the first record of a search response's results list.
func FirstResult(response any) (*record.Record, error) {
	rec, ok := response.(*record.Record)
	if !ok {
		return nil, fmt.Errorf("%w: response is %T", ErrMalformedResponse, response)
	}

	value, _ := rec.Get("results")

	results, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: results is %T", ErrMalformedResponse, value)
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}

	first, ok := results[0].(*record.Record)
	if !ok {
		return nil, fmt.Errorf("%w: first result is %T", ErrMalformedResponse, results[0])
	}

	return first, nil
}

func buildURL(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid resource URL %s: %w", rawURL, err)
	}

	query := parsed.Query()
	for key, value := range params {
		query.Set(key, value)
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
