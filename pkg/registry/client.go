// Package registry implements the npm registry lookup used to resolve the
// latest published version of a package. A single Client owns one HTTP
// connection pool and is safe for use by many concurrent lookups; it never
// retries and never logs, leaving both concerns to its callers.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public npm registry endpoint.
const DefaultBaseURL = "https://registry.npmjs.org"

// DefaultTimeout bounds each individual lookup request.
const DefaultTimeout = 2 * time.Second

// latestResponse is the subset of the registry's "latest" document we read.
type latestResponse struct {
	Version string `json:"version"`
}

// Client performs latest-version lookups against an npm-compatible registry.
//
// A Client wraps a single http.Client (and therefore a single connection
// pool) configured with a per-request timeout. Construct one per process and
// share it across all concurrent lookups.
//
// Fields:
//   - baseURL: Registry base URL without trailing slash
//   - http: The underlying HTTP client carrying the timeout
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a registry client for the given base URL and timeout.
//
// Parameters:
//   - baseURL: Registry base URL (e.g., "https://registry.npmjs.org"); empty
//     selects DefaultBaseURL. A trailing slash is trimmed.
//   - timeout: Per-request timeout; non-positive selects DefaultTimeout
//
// Returns:
//   - *Client: A client safe for concurrent use
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the registry base URL this client queries.
//
// Returns:
//   - string: The base URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LatestVersion fetches the latest published version of a package.
//
// It performs the following operations:
//   - Step 1: Issues GET {baseURL}/{name}/latest with the client's timeout
//   - Step 2: Classifies transport failures, timeouts, and non-2xx statuses
//   - Step 3: Decodes the {"version": "..."} body
//
// Exactly one outbound request is made per call; failures are never retried
// here. Cancellation of ctx is classified as a timeout, matching the
// treatment of a request that ran out of time.
//
// Parameters:
//   - ctx: Context for cancellation; deadline handling is per-request
//   - name: Registry-unique package name (e.g., "left-pad")
//
// Returns:
//   - string: The latest published version (e.g., "1.3.0")
//   - error: A *FetchError classifying the failure; nil on success
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/%s/latest", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Package: name, Kind: FetchTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{Package: name, Kind: classifyTransportError(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused by the pool.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &FetchError{
			Package: name,
			Kind:    FetchNotFound,
			Err:     fmt.Errorf("registry returned status %d", resp.StatusCode),
		}
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &FetchError{Package: name, Kind: FetchMalformed, Err: err}
	}
	if body.Version == "" {
		return "", &FetchError{
			Package: name,
			Kind:    FetchMalformed,
			Err:     errors.New("response body has no version field"),
		}
	}

	return body.Version, nil
}

// classifyTransportError maps an http.Client error to a fetch error kind.
//
// Timeouts (client timeout, context deadline) and caller cancellation all
// classify as FetchTimeout; everything else is a transport failure.
//
// Parameters:
//   - err: The error returned by http.Client.Do
//
// Returns:
//   - FetchErrorKind: FetchTimeout or FetchTransport
func classifyTransportError(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FetchTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}
	return FetchTransport
}
