package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/urlnorm/internal/ratelimit"
	"github.com/serroba/urlnorm/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter(t *testing.T) {
	t.Run("allows requests under limit", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		limiter := ratelimit.NewSlidingWindowLimiter(memStore, 5, time.Minute)

		for range 5 {
			allowed, err := limiter.Allow(context.Background(), "client1")

			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})

	t.Run("denies requests over limit", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		limiter := ratelimit.NewSlidingWindowLimiter(memStore, 3, time.Minute)

		for range 3 {
			allowed, err := limiter.Allow(context.Background(), "client1")

			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.Allow(context.Background(), "client1")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		limiter := ratelimit.NewSlidingWindowLimiter(memStore, 2, time.Minute)

		for range 2 {
			allowed, _ := limiter.Allow(context.Background(), "client1")
			assert.True(t, allowed)
		}

		allowed, _ := limiter.Allow(context.Background(), "client1")
		assert.False(t, allowed, "client1 should be rate limited")

		allowed, err := limiter.Allow(context.Background(), "client2")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestPolicyLimiter_Allow(t *testing.T) {
	t.Run("allows when all scope limits hold", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		policy := ratelimit.NewPolicyBuilder().
			WithLimit(ratelimit.ScopeGlobal, time.Minute, 10).
			WithLimit(ratelimit.ScopeWrite, time.Minute, 5).
			Build()
		limiter := ratelimit.NewPolicyLimiter(memStore, policy)

		allowed, exceeded, err := limiter.Allow(
			context.Background(),
			"client1",
			[]ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite},
		)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Nil(t, exceeded)
	})

	t.Run("denies and reports the exceeded limit", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		policy := ratelimit.NewPolicyBuilder().
			WithLimit(ratelimit.ScopeWrite, time.Minute, 2).
			Build()
		limiter := ratelimit.NewPolicyLimiter(memStore, policy)
		scopes := []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}

		for range 2 {
			allowed, _, err := limiter.Allow(context.Background(), "client1", scopes)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, exceeded, err := limiter.Allow(context.Background(), "client1", scopes)

		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Equal(t, ratelimit.ScopeWrite, exceeded.Scope)
		assert.Equal(t, int64(3), exceeded.Count)
	})

	t.Run("scopes without limits are skipped", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		limiter := ratelimit.NewPolicyLimiter(memStore, ratelimit.NewPolicyBuilder().Build())

		allowed, exceeded, err := limiter.Allow(
			context.Background(),
			"client1",
			[]ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead},
		)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Nil(t, exceeded)
	})
}

func TestPolicyLimiter_AllowCustom(t *testing.T) {
	t.Run("enforces explicit limits per endpoint", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		limiter := ratelimit.NewPolicyLimiter(memStore, ratelimit.DefaultPolicy())
		limits := []ratelimit.LimitConfig{{Window: time.Minute, Max: 1}}

		allowed, _, err := limiter.AllowCustom(context.Background(), "client1", "/dedupe", limits)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, exceeded, err := limiter.AllowCustom(context.Background(), "client1", "/dedupe", limits)
		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Equal(t, int64(2), exceeded.Count)
	})

	t.Run("endpoints are tracked independently", func(t *testing.T) {
		memStore := store.NewRateLimitMemoryStore()
		limiter := ratelimit.NewPolicyLimiter(memStore, ratelimit.DefaultPolicy())
		limits := []ratelimit.LimitConfig{{Window: time.Minute, Max: 1}}

		allowed, _, _ := limiter.AllowCustom(context.Background(), "client1", "/dedupe", limits)
		assert.True(t, allowed)

		allowed, _, err := limiter.AllowCustom(context.Background(), "client1", "/normalize", limits)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
