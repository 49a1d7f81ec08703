// Package client is the site's data-fetching layer. It wraps the public
// API with a TTL cache keyed by canonical (entity, filter) tuples,
// stale-while-revalidate reads, bounded retries with backoff, and an
// infinite-scroll pager that de-duplicates by entity id.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	defaultTTL     = 5 * time.Minute
	defaultRetries = 3
	defaultBackoff = 500 * time.Millisecond

	// DebounceDelay is how long a search input must settle before it
	// becomes part of a filter tuple.
	DebounceDelay = 500 * time.Millisecond
)

// Params is one filter tuple. Identical tuples share a cache entry.
type Params map[string]string

// canonical renders params with sorted keys so that equal tuples
// produce equal cache keys regardless of construction order.
func (p Params) canonical() string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
	}
	return b.String()
}

// APIError is a non-2xx response decoded from the standard envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 envelope, which callers treat
// as a normal "no such page" outcome rather than a failure.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// ListData is the payload shape of every list endpoint.
type ListData[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type Option func(*Client)

func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache.ttl = ttl }
}

func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache
	retries int
	backoff time.Duration
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   newCache(defaultTTL),
		retries: defaultRetries,
		backoff: defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate drops every cached entry for an entity type. Admin tooling
// calls this after a successful mutation instead of waiting for TTLs.
func (c *Client) Invalidate(entity string) {
	c.cache.invalidate(entity)
}

// get issues one GET with bounded retries. Transport errors and 5xx
// responses are retried with increasing backoff; 4xx responses are
// returned immediately since retrying cannot fix them.
func (c *Client) get(ctx context.Context, path string, params Params) ([]byte, error) {
	reqURL := c.baseURL + path
	if q := paramsToQuery(params); q != "" {
		reqURL += "?" + q
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff * time.Duration(attempt)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, retryable, err := c.doOnce(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, reqURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode >= 500 {
		return nil, true, &APIError{Status: resp.StatusCode, Message: envelopeMessage(raw)}
	}
	if resp.StatusCode >= 400 {
		return nil, false, &APIError{Status: resp.StatusCode, Message: envelopeMessage(raw)}
	}
	return raw, false, nil
}

func envelopeMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return "request failed"
}

func decodeData[T any](raw []byte) (T, error) {
	var out T
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return out, err
	}
	if !env.Success {
		return out, fmt.Errorf("api: %s", env.Message)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, err
	}
	return out, nil
}

func paramsToQuery(params Params) string {
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	return values.Encode()
}
