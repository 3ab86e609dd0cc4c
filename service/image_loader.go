package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadState is the lifecycle of one image reference in the loader
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateErrored LoadState = "errored"
)

// The image host selects resolution with a single letter appended to the
// file ID before the extension: l (large), m (medium), s (small). The
// suffixless form is the original upload.
var sizeSuffixLadder = map[byte][]string{
	'l': {"m", "s", ""},
	'm': {"s", ""},
	's': {""},
}

// defaultMaxAttempts bounds the fallback ladder, including the caller
// fallback
const defaultMaxAttempts = 5

// LoadResult is what the loader hands back for one reference
type LoadResult struct {
	// SourceURL is the candidate that actually loaded
	SourceURL   string
	Data        []byte
	ContentType string
	State       LoadState
	Attempts    int
}

// LoadCache stores references known to have loaded successfully. It is
// injected rather than being a package-level singleton so eviction is
// testable and tests cannot contaminate each other.
type LoadCache interface {
	Get(ref string) (LoadResult, bool)
	Set(ref string, result LoadResult)
	Delete(ref string)
	Clear()
}

// MemoryLoadCache is the default in-process LoadCache
type MemoryLoadCache struct {
	mu      sync.RWMutex
	entries map[string]LoadResult
}

// NewMemoryLoadCache creates an empty MemoryLoadCache
func NewMemoryLoadCache() *MemoryLoadCache {
	return &MemoryLoadCache{entries: map[string]LoadResult{}}
}

var _ LoadCache = (*MemoryLoadCache)(nil)

func (c *MemoryLoadCache) Get(ref string) (LoadResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[ref]
	return r, ok
}

func (c *MemoryLoadCache) Set(ref string, result LoadResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ref] = result
}

func (c *MemoryLoadCache) Delete(ref string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ref)
}

func (c *MemoryLoadCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]LoadResult{}
}

// Fetcher fetches one candidate URL. Injected so the ladder is testable
// without network access.
type Fetcher func(ctx context.Context, url string) ([]byte, string, error)

// httpFetcher is the default Fetcher
func httpFetcher(client *http.Client) Fetcher {
	return func(ctx context.Context, u string) ([]byte, string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("image returned status %d", resp.StatusCode)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), resp.Header.Get("Content-Type"), nil
	}
}

// CandidateURLs builds the ordered fallback ladder for a reference: the
// reference itself, then each smaller size-suffix form, then the bare
// form, then the caller-supplied fallback. Pure, no network.
func CandidateURLs(ref, callerFallback string) []string {
	candidates := []string{ref}

	ext := path.Ext(ref)
	base := strings.TrimSuffix(ref, ext)
	if ext != "" && base != "" {
		if ladder, ok := sizeSuffixLadder[base[len(base)-1]]; ok {
			stem := base[:len(base)-1]
			for _, suffix := range ladder {
				candidates = append(candidates, stem+suffix+ext)
			}
		}
	}

	if callerFallback != "" && callerFallback != ref {
		candidates = append(candidates, callerFallback)
	}
	return candidates
}

// withCacheBuster appends the daily-rotating cache-busting parameter, or
// the current timestamp when a hard refresh was requested
func withCacheBuster(rawURL string, force bool, now time.Time) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if force {
		q.Set("d", fmt.Sprintf("%d", now.Unix()))
	} else {
		q.Set("d", now.Format("20060102"))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ImageLoader loads image references with a bounded fallback ladder and a
// shared cache of successful loads. Concurrent requests for the same
// reference share one in-flight load.
type ImageLoader struct {
	cache       LoadCache
	fetch       Fetcher
	maxAttempts int
	now         func() time.Time

	group singleflight.Group

	mu     sync.Mutex
	states map[string]LoadState
}

// NewImageLoader creates an ImageLoader with the given cache. A nil cache
// gets a fresh MemoryLoadCache.
func NewImageLoader(cache LoadCache) *ImageLoader {
	if cache == nil {
		cache = NewMemoryLoadCache()
	}
	return &ImageLoader{
		cache:       cache,
		fetch:       httpFetcher(&http.Client{Timeout: 15 * time.Second}),
		maxAttempts: defaultMaxAttempts,
		now:         time.Now,
		states:      map[string]LoadState{},
	}
}

// WithFetcher replaces the network fetcher. Test hook.
func (l *ImageLoader) WithFetcher(f Fetcher) *ImageLoader {
	l.fetch = f
	return l
}

// WithMaxAttempts bounds the total attempts per load
func (l *ImageLoader) WithMaxAttempts(n int) *ImageLoader {
	l.maxAttempts = n
	return l
}

// WithClock replaces the clock used for cache busters. Test hook.
func (l *ImageLoader) WithClock(now func() time.Time) *ImageLoader {
	l.now = now
	return l
}

// State returns the current lifecycle state for a reference
func (l *ImageLoader) State(ref string) LoadState {
	if _, ok := l.cache.Get(ref); ok {
		return StateLoaded
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.states[ref]; ok {
		return s
	}
	return StateIdle
}

func (l *ImageLoader) setState(ref string, s LoadState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states[ref] = s
}

// Load resolves a reference through the fallback ladder. Cached successes
// return immediately; otherwise one load runs per reference no matter how
// many callers ask concurrently. forceRefresh swaps the daily cache-buster
// for the current timestamp.
func (l *ImageLoader) Load(ctx context.Context, ref, callerFallback string, forceRefresh bool) LoadResult {
	if cached, ok := l.cache.Get(ref); ok && !forceRefresh {
		return cached
	}

	v, _, _ := l.group.Do(ref, func() (interface{}, error) {
		l.setState(ref, StateLoading)

		result := LoadResult{State: StateErrored}
		for _, candidate := range CandidateURLs(ref, callerFallback) {
			if result.Attempts >= l.maxAttempts {
				break
			}
			result.Attempts++

			busted := withCacheBuster(candidate, forceRefresh, l.now())
			data, contentType, err := l.fetch(ctx, busted)
			if err != nil {
				log.Printf("⚠️  Image load attempt %d failed for %s: %v", result.Attempts, candidate, err)
				continue
			}

			result.SourceURL = candidate
			result.Data = data
			result.ContentType = contentType
			result.State = StateLoaded
			break
		}

		if result.State == StateLoaded {
			l.setState(ref, StateLoaded)
			l.cache.Set(ref, result)
		} else {
			l.setState(ref, StateErrored)
		}
		return result, nil
	})

	return v.(LoadResult)
}

// Refresh evicts a reference from the cache and re-triggers loading with a
// fresh cache-busting value
func (l *ImageLoader) Refresh(ctx context.Context, ref, callerFallback string) LoadResult {
	l.cache.Delete(ref)
	l.mu.Lock()
	delete(l.states, ref)
	l.mu.Unlock()
	return l.Load(ctx, ref, callerFallback, true)
}
