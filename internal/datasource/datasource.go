// Package datasource provides the external data inputs of the pipeline:
// daily price bars from Yahoo Finance, Alpaca or local CSV files, and live
// headlines from RSS feeds. It defines the common BarProvider interface and
// the shared HTTP, caching and rate-limiting plumbing the remote sources
// use.
package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

// BarProvider fetches daily OHLCV bars for one ticker. Implementations must
// return bars ascending by date with unique dates.
type BarProvider interface {
	// Name returns the human-readable name of this provider.
	Name() string

	// GetDailyBars returns daily bars for ticker in [from, to].
	GetDailyBars(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error)
}

// --- Sentinel errors ---

// ErrTickerNotFound is returned when a ticker cannot be resolved.
var ErrTickerNotFound = fmt.Errorf("ticker not found")

// ErrNoBars is returned when the provider resolves the ticker but has no
// bars for the requested range.
var ErrNoBars = fmt.Errorf("no bars in requested range")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// --- Shared HTTP client helpers ---

// DefaultUserAgent is the user agent string used for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// HTTPClient is a pre-configured HTTP client with reasonable timeouts.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// doGet performs a GET request with the given URL and headers, returning the
// response body. The caller is responsible for closing the returned
// ReadCloser.
func doGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, resp.StatusCode, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return resp.Body, resp.StatusCode, nil
}

// --- Bar cache ---

type barEntry struct {
	bars      []models.PriceBar
	expiresAt time.Time
}

// BarCache is a thread-safe TTL cache of fetched bar ranges, keyed by
// provider, ticker and range. Remote providers use it so repeated pipeline
// runs within one process do not refetch identical ranges.
type BarCache struct {
	mu      sync.RWMutex
	entries map[string]barEntry
	ttl     time.Duration
}

// NewBarCache creates a bar cache with the given TTL.
func NewBarCache(ttl time.Duration) *BarCache {
	return &BarCache{
		entries: make(map[string]barEntry),
		ttl:     ttl,
	}
}

// Get returns the cached bars for key, or nil, false when absent or expired.
func (c *BarCache) Get(key string) ([]models.PriceBar, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.bars, true
}

// Set stores bars for key with the cache TTL.
func (c *BarCache) Set(key string, bars []models.PriceBar) {
	c.mu.Lock()
	c.entries[key] = barEntry{
		bars:      bars,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// --- Rate limiter ---

// RateLimiter allows at most burst requests per window, token-bucket style.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	burst      int
	window     time.Duration
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing burst requests per window.
func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     burst,
		burst:      burst,
		window:     window,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// take consumes a token when one is available, refilling the bucket once a
// full window has elapsed since the last refill.
func (rl *RateLimiter) take() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now := time.Now(); now.Sub(rl.lastRefill) >= rl.window {
		rl.tokens = rl.burst
		rl.lastRefill = now
	}
	if rl.tokens == 0 {
		return false
	}
	rl.tokens--
	return true
}
