package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	bucket := newTokenBucket(10, 1.0) // 10 tokens, 1 token per second

	for i := 0; i < 10; i++ {
		assert.True(t, bucket.allow(), "request %d should pass the burst", i+1)
	}
	assert.False(t, bucket.allow(), "11th request should be denied")
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 10; i++ {
		bucket.allow()
	}

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, bucket.allow(), "one token should have refilled")
	assert.False(t, bucket.allow(), "refilled token is spent")
}

func TestTokenBucket_GetStatus(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.getStatus()
	assert.Equal(t, 5, remaining)
	assert.True(t, resetTime.After(time.Now()), "reset time should be in the future")
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/documents", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/documents", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/documents", "POST")
		require.True(t, allowed, "whitelisted client is never limited")
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/documents", "GET")
	assert.False(t, allowed, "blacklisted client is always denied")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/validate", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_EndpointSpecificLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/documents", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	// The upload endpoint carries its own tight budget.
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/documents", "POST")
		require.True(t, allowed, "upload %d", i+1)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, info := limiter.Allow("127.0.0.1", "/documents", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 5, info.Limit)

	// Unconfigured endpoints fall back to the global default.
	allowed, info = limiter.Allow("127.0.0.1", "/knowledge/stats", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/documents", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount, "exactly the budget passes under contention")
}

func TestLimiter_CleanupKeepsActiveBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 100 * time.Millisecond,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/documents", "GET")
		require.True(t, allowed)
	}

	time.Sleep(150 * time.Millisecond)

	// Recently accessed buckets survive the sweep and keep serving.
	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/documents", "GET")
		require.True(t, allowed)
	}

	time.Sleep(150 * time.Millisecond)

	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/documents", "GET")
		assert.True(t, allowed, "client %s after cleanup", clientID)
	}
}

func TestLimiter_BurstBelowLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/validate", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/validate", "POST")
		require.True(t, allowed, "burst request %d", i+1)
	}

	allowed, _ := limiter.Allow("127.0.0.1", "/validate", "POST")
	assert.False(t, allowed, "burst exhausted, nothing refilled yet")
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	require.NotNil(t, limiter)

	allowed, info := limiter.Allow("127.0.0.1", "/documents", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}
