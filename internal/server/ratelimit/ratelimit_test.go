package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l, clock
}

func TestBucket_TakeAndRefill(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newBucket(3, 1.0, start)

	for i := 0; i < 3; i++ {
		assert.True(t, b.take(start), "request %d should be allowed", i+1)
	}
	assert.False(t, b.take(start), "bucket should be empty")

	assert.True(t, b.take(start.Add(1100*time.Millisecond)), "one token should have refilled")
	assert.False(t, b.take(start.Add(1100*time.Millisecond)))
}

func TestBucket_ResetAt(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newBucket(10, 1.0, start)
	assert.Equal(t, start, b.resetAt(start))

	for i := 0; i < 5; i++ {
		b.take(start)
	}
	assert.Equal(t, start.Add(5*time.Second), b.resetAt(start))
}

func TestLimiter_Allow(t *testing.T) {
	l, clock := newTestLimiter(&Config{
		Enabled:         true,
		EndpointConfigs: []EndpointConfig{{Path: "/api/generate", Method: "POST", Limit: 2, Window: time.Minute}},
	})
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("10.0.0.1", "/api/generate", "POST")
		require.True(t, allowed)
		assert.Equal(t, 2, info.Limit)
	}

	allowed, info := l.Allow("10.0.0.1", "/api/generate", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 30*time.Second, info.RetryAfter)

	allowed, _ = l.Allow("10.0.0.2", "/api/generate", "POST")
	assert.True(t, allowed, "clients have separate buckets")

	clock.Advance(31 * time.Second)
	allowed, _ = l.Allow("10.0.0.1", "/api/generate", "POST")
	assert.True(t, allowed, "token refilled after half the window")
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer l.Stop()

	allowed, _ := l.Allow("c", "/api/options", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/api/options", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("c", "/api/generate", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"trusted": true},
		Blacklist:     map[string]bool{"banned": true},
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("trusted", "/api/generate", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("banned", "/api/generate", "POST")
	assert.False(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	l.Allow("old", "/x", "GET")
	clock.Advance(2 * time.Hour)
	l.Allow("new", "/x", "GET")

	l.evictIdle(time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	_, ok := l.buckets["new:/x:GET"]
	assert.True(t, ok)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("shared", "/x", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, CleanupInterval: time.Millisecond})
	l.Stop()
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 1},
		{Path: "/api/", Method: "GET", Limit: 2},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{path: "/api/generate", method: "POST", wantLimit: 1},
		{path: "/api/options", method: "GET", wantLimit: 2},
		{path: "/health", method: "GET", wantLimit: 0},
		{path: "/api/generate", method: "DELETE", wantNil: true},
		{path: "/", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	env := map[string]string{
		"RATE_LIMIT_DEFAULT_LIMIT":  "42",
		"RATE_LIMIT_GENERATE_LIMIT": "3",
		"RATE_LIMIT_WHITELIST":      "127.0.0.1, 10.0.0.1,",
	}
	cfg := loadConfig(func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "10.0.0.1": true}, cfg.Whitelist)
	require.NotEmpty(t, cfg.EndpointConfigs)
	assert.Equal(t, 3, cfg.EndpointConfigs[0].Limit)
}

func TestLoadConfig_Disabled(t *testing.T) {
	cfg := loadConfig(func(k string) string {
		if k == "RATE_LIMIT_ENABLED" {
			return "false"
		}
		return ""
	})
	assert.False(t, cfg.Enabled)
}
