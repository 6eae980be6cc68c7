package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/urlnorm/internal/registry"
)

// RedisStore is a Redis implementation of registry.Repository. Each entry is
// a hash-map keyed by "canonical:<hash>".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed canonical URL store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "canonical:",
	}
}

func (r *RedisStore) Save(ctx context.Context, entry *registry.Entry) error {
	key := r.prefix + string(entry.Hash)

	// HSETNX on the hash field keeps the first writer's entry; the
	// remaining fields are only written when the entry is new.
	created, err := r.client.HSetNX(ctx, key, "hash", string(entry.Hash)).Result()
	if err != nil {
		return err
	}

	if !created {
		return nil
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"canonical_url":  entry.CanonicalURL,
		"first_seen_url": entry.FirstSeenURL,
		"first_seen_at":  entry.FirstSeenAt.UnixNano(),
		"hits":           entry.Hits,
	})
	_, err = pipe.Exec(ctx)

	return err
}

func (r *RedisStore) GetByHash(ctx context.Context, hash registry.Hash) (*registry.Entry, error) {
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

func (r *RedisStore) IncrementHits(ctx context.Context, hash registry.Hash) error {
	key := r.prefix + string(hash)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return err
	}

	return r.client.HIncrBy(ctx, key, "hits", 1).Err()
}
