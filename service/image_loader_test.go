package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher records attempted URLs (cache-buster stripped) and succeeds
// only for URLs in the ok set
type fakeFetcher struct {
	mu        sync.Mutex
	attempts  []string
	ok        map[string]bool
	callCount atomic.Int32
}

func (f *fakeFetcher) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	f.callCount.Add(1)

	u, _ := url.Parse(rawURL)
	u.RawQuery = ""
	bare := u.String()

	f.mu.Lock()
	f.attempts = append(f.attempts, bare)
	f.mu.Unlock()

	if f.ok[bare] {
		return []byte("image-bytes"), "image/jpeg", nil
	}
	return nil, "", fmt.Errorf("load failed")
}

func TestCandidateURLs(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		fallback string
		want     []string
	}{
		{
			name: "large suffix steps down the ladder",
			ref:  "https://img.test/abc1234l.jpg",
			want: []string{
				"https://img.test/abc1234l.jpg",
				"https://img.test/abc1234m.jpg",
				"https://img.test/abc1234s.jpg",
				"https://img.test/abc1234.jpg",
			},
		},
		{
			name: "medium suffix skips large",
			ref:  "https://img.test/abc1234m.jpg",
			want: []string{
				"https://img.test/abc1234m.jpg",
				"https://img.test/abc1234s.jpg",
				"https://img.test/abc1234.jpg",
			},
		},
		{
			name: "no recognized suffix",
			ref:  "https://img.test/photo.png",
			want: []string{"https://img.test/photo.png"},
		},
		{
			name:     "caller fallback comes last",
			ref:      "https://img.test/abc1234s.jpg",
			fallback: "https://cdn.test/placeholder.jpg",
			want: []string{
				"https://img.test/abc1234s.jpg",
				"https://img.test/abc1234.jpg",
				"https://cdn.test/placeholder.jpg",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CandidateURLs(tc.ref, tc.fallback))
		})
	}
}

// A failing large reference must try medium, then small, then the bare
// form, incrementing the attempt counter once per try, before settling
// into errored when no caller fallback exists.
func TestLoadWalksFallbackLadder(t *testing.T) {
	fetcher := &fakeFetcher{ok: map[string]bool{}}
	loader := NewImageLoader(NewMemoryLoadCache()).WithFetcher(fetcher.fetch)

	ref := "https://img.test/abc1234l.jpg"
	result := loader.Load(context.Background(), ref, "", false)

	assert.Equal(t, StateErrored, result.State)
	assert.Equal(t, 4, result.Attempts)
	assert.Equal(t, []string{
		"https://img.test/abc1234l.jpg",
		"https://img.test/abc1234m.jpg",
		"https://img.test/abc1234s.jpg",
		"https://img.test/abc1234.jpg",
	}, fetcher.attempts)
	assert.Equal(t, StateErrored, loader.State(ref))
}

func TestLoadStopsAtFirstSuccess(t *testing.T) {
	ref := "https://img.test/abc1234l.jpg"
	fetcher := &fakeFetcher{ok: map[string]bool{
		"https://img.test/abc1234m.jpg": true,
	}}
	loader := NewImageLoader(NewMemoryLoadCache()).WithFetcher(fetcher.fetch)

	result := loader.Load(context.Background(), ref, "", false)

	assert.Equal(t, StateLoaded, result.State)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, "https://img.test/abc1234m.jpg", result.SourceURL)
	assert.Equal(t, []byte("image-bytes"), result.Data)
	assert.Equal(t, StateLoaded, loader.State(ref))
}

func TestLoadUsesCallerFallback(t *testing.T) {
	ref := "https://img.test/abc1234l.jpg"
	fallback := "https://cdn.test/placeholder.jpg"
	fetcher := &fakeFetcher{ok: map[string]bool{fallback: true}}
	loader := NewImageLoader(NewMemoryLoadCache()).WithFetcher(fetcher.fetch)

	result := loader.Load(context.Background(), ref, fallback, false)

	assert.Equal(t, StateLoaded, result.State)
	assert.Equal(t, 5, result.Attempts)
	assert.Equal(t, fallback, result.SourceURL)
}

func TestLoadRespectsMaxAttempts(t *testing.T) {
	fetcher := &fakeFetcher{ok: map[string]bool{}}
	loader := NewImageLoader(NewMemoryLoadCache()).
		WithFetcher(fetcher.fetch).
		WithMaxAttempts(2)

	result := loader.Load(context.Background(), "https://img.test/abc1234l.jpg", "https://cdn.test/p.jpg", false)

	assert.Equal(t, StateErrored, result.State)
	assert.Equal(t, 2, result.Attempts)
	assert.Len(t, fetcher.attempts, 2)
}

func TestLoadCachesSuccesses(t *testing.T) {
	ref := "https://img.test/abc1234.jpg"
	fetcher := &fakeFetcher{ok: map[string]bool{ref: true}}
	loader := NewImageLoader(NewMemoryLoadCache()).WithFetcher(fetcher.fetch)

	first := loader.Load(context.Background(), ref, "", false)
	second := loader.Load(context.Background(), ref, "", false)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fetcher.callCount.Load(), "second load must come from cache")
}

func TestConcurrentLoadsShareOneFetch(t *testing.T) {
	ref := "https://img.test/abc1234.jpg"
	release := make(chan struct{})
	var calls atomic.Int32

	loader := NewImageLoader(NewMemoryLoadCache()).WithFetcher(
		func(ctx context.Context, u string) ([]byte, string, error) {
			calls.Add(1)
			<-release
			return []byte("x"), "image/jpeg", nil
		})

	var wg sync.WaitGroup
	results := make([]LoadResult, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = loader.Load(context.Background(), ref, "", false)
		}()
	}

	// Give the goroutines time to pile up on the singleflight, then let
	// the single fetch finish
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, StateLoaded, r.State)
	}
}

func TestCacheBuster(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	daily := withCacheBuster("https://img.test/a.jpg", false, now)
	assert.Equal(t, "https://img.test/a.jpg?d=20260901", daily)

	forced := withCacheBuster("https://img.test/a.jpg", true, now)
	assert.Equal(t, fmt.Sprintf("https://img.test/a.jpg?d=%d", now.Unix()), forced)

	// Existing query parameters are preserved
	withQuery := withCacheBuster("https://img.test/a.jpg?w=400", false, now)
	assert.Contains(t, withQuery, "w=400")
	assert.Contains(t, withQuery, "d=20260901")
}

func TestRefreshEvictsAndReloads(t *testing.T) {
	ref := "https://img.test/abc1234.jpg"
	fetcher := &fakeFetcher{ok: map[string]bool{ref: true}}

	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	var busters []string
	recording := func(ctx context.Context, rawURL string) ([]byte, string, error) {
		u, _ := url.Parse(rawURL)
		busters = append(busters, u.Query().Get("d"))
		return fetcher.fetch(ctx, rawURL)
	}

	cache := NewMemoryLoadCache()
	loader := NewImageLoader(cache).WithFetcher(recording).WithClock(func() time.Time { return now })

	loader.Load(context.Background(), ref, "", false)
	require.Equal(t, StateLoaded, loader.State(ref))

	result := loader.Refresh(context.Background(), ref, "")
	assert.Equal(t, StateLoaded, result.State)

	// Two network loads happened: daily buster first, timestamp on refresh
	require.Len(t, busters, 2)
	assert.Equal(t, "20260901", busters[0])
	assert.Equal(t, fmt.Sprintf("%d", now.Unix()), busters[1])
}

func TestMemoryLoadCacheClear(t *testing.T) {
	cache := NewMemoryLoadCache()
	cache.Set("a", LoadResult{State: StateLoaded})
	cache.Set("b", LoadResult{State: StateLoaded})

	cache.Delete("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)

	cache.Clear()
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestStateIdleForUnknownRef(t *testing.T) {
	loader := NewImageLoader(NewMemoryLoadCache())
	assert.Equal(t, StateIdle, loader.State("https://img.test/never-seen.jpg"))
}
