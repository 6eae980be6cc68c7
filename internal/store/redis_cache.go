package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/urlnorm/internal/registry"
)

// RedisCacheRepository wraps a registry.Repository with Redis caching for
// hash lookups. Writes go through to the underlying store and update the
// cache on success.
type RedisCacheRepository struct {
	store  registry.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store registry.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "canonical_cache:",
		ttl:    ttl,
	}
}

func (r *RedisCacheRepository) Save(ctx context.Context, entry *registry.Entry) error {
	if err := r.store.Save(ctx, entry); err != nil {
		return err
	}

	r.cacheEntry(ctx, entry)

	return nil
}

func (r *RedisCacheRepository) GetByHash(ctx context.Context, hash registry.Hash) (*registry.Entry, error) {
	if entry, err := r.getFromCache(ctx, hash); err == nil {
		return entry, nil
	}

	entry, err := r.store.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	r.cacheEntry(ctx, entry)

	return entry, nil
}

// IncrementHits bypasses the cache; hit counts are only read from the
// underlying store, so a stale cached count is tolerable until TTL expiry.
func (r *RedisCacheRepository) IncrementHits(ctx context.Context, hash registry.Hash) error {
	return r.store.IncrementHits(ctx, hash)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, hash registry.Hash) (*registry.Entry, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(hash)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, registry.ErrNotFound
	}

	entry := &registry.Entry{
		Hash:         registry.Hash(result["hash"]),
		CanonicalURL: result["canonical_url"],
		FirstSeenURL: result["first_seen_url"],
	}

	if ts, ok := result["first_seen_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			entry.FirstSeenAt = time.Unix(0, nanos)
		}
	}

	if hits, ok := result["hits"]; ok {
		entry.Hits, _ = strconv.ParseInt(hits, 10, 64)
	}

	return entry, nil
}

func (r *RedisCacheRepository) cacheEntry(ctx context.Context, entry *registry.Entry) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(entry.Hash)

	pipe.HSet(ctx, key, map[string]interface{}{
		"hash":           string(entry.Hash),
		"canonical_url":  entry.CanonicalURL,
		"first_seen_url": entry.FirstSeenURL,
		"first_seen_at":  entry.FirstSeenAt.UnixNano(),
		"hits":           entry.Hits,
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ registry.Repository = (*RedisCacheRepository)(nil)
