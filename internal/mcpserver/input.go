package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/erraggy/speclint"
	"github.com/erraggy/speclint/parser"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an API document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"http(s) URL to fetch an API document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline API document content (JSON or YAML)"`
}

// cacheEntry holds fetched document text with LRU ordering and TTL expiry.
type cacheEntry struct {
	text      string
	touchedAt time.Time
	expiresAt time.Time
}

// urlCacheStore caches fetched documents by URL so that a client asking for
// analyze, then fix, then diff of one URL fetches it once.
type urlCacheStore struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
}

var urlCache = &urlCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached text. Expired entries are lazily removed.
func (c *urlCacheStore) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	e.touchedAt = time.Now()
	return e.text, true
}

// put stores text, evicting the least recently used entry if at capacity.
func (c *urlCacheStore) put(key, text string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{text: text, touchedAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.touchedAt.Before(oldest) {
				oldestKey, oldest = k, e.touchedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// reset clears all cached entries. Used in tests.
func (c *urlCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *urlCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fetchLimiter bounds how fast tools may fetch URLs on behalf of clients.
var fetchLimiter = rate.NewLimiter(rate.Limit(cfg.FetchRate), cfg.FetchBurst)

// httpClient is replaced in tests that serve documents from loopback.
var httpClient = func() *http.Client {
	if cfg.AllowPrivateIPs {
		return &http.Client{Timeout: cfg.FetchTimeout}
	}
	return newSafeHTTPClient()
}

// resolve returns the document text and a display name for it.
func (s specInput) resolve(ctx context.Context) (text, source string, err error) {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return "", "", fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	switch {
	case s.File != "":
		data, err := parser.ReadFileLimited(s.File, cfg.MaxInputSize)
		if err != nil {
			return "", "", err
		}
		return string(data), s.File, nil
	case s.URL != "":
		text, err := fetch(ctx, s.URL)
		if err != nil {
			return "", "", err
		}
		return text, s.URL, nil
	default:
		if int64(len(s.Content)) > cfg.MaxInputSize {
			return "", "", fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SPECLINT_MCP_MAX_INPUT_SIZE to increase",
				len(s.Content), cfg.MaxInputSize)
		}
		return s.Content, "", nil
	}
}

// fetch downloads an http(s) document, honoring the rate limit, the size
// limit and the URL cache.
func fetch(ctx context.Context, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q: only http and https are allowed", u.Scheme)
	}

	if cfg.CacheEnabled {
		if text, ok := urlCache.get(raw); ok {
			return text, nil
		}
	}

	if err := fetchLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("fetch rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", speclint.UserAgent())
	resp, err := httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", u.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", u.Redacted(), resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInputSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", u.Redacted(), err)
	}
	if int64(len(data)) > cfg.MaxInputSize {
		return "", fmt.Errorf("document at %s exceeds maximum %d bytes", u.Redacted(), cfg.MaxInputSize)
	}

	text := string(data)
	if cfg.CacheEnabled {
		urlCache.put(raw, text, cfg.CacheURLTTL)
	}
	return text, nil
}
