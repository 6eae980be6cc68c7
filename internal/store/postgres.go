package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/urlnorm/internal/registry"
)

// PostgresStore is a PostgreSQL implementation of registry.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed canonical URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, entry *registry.Entry) error {
	query := `
		INSERT INTO canonical_urls (hash, canonical_url, first_seen_url, first_seen_at, hits)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (hash) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		string(entry.Hash),
		entry.CanonicalURL,
		entry.FirstSeenURL,
		entry.FirstSeenAt,
		entry.Hits,
	)

	return err
}

func (p *PostgresStore) GetByHash(ctx context.Context, hash registry.Hash) (*registry.Entry, error) {
	query := `
		SELECT hash, canonical_url, first_seen_url, first_seen_at, hits
		FROM canonical_urls
		WHERE hash = $1
	`

	var entry registry.Entry

	err := p.pool.QueryRow(ctx, query, string(hash)).Scan(
		&entry.Hash,
		&entry.CanonicalURL,
		&entry.FirstSeenURL,
		&entry.FirstSeenAt,
		&entry.Hits,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registry.ErrNotFound
		}

		return nil, err
	}

	return &entry, nil
}

func (p *PostgresStore) IncrementHits(ctx context.Context, hash registry.Hash) error {
	query := `
		UPDATE canonical_urls
		SET hits = hits + 1
		WHERE hash = $1
	`

	_, err := p.pool.Exec(ctx, query, string(hash))

	return err
}
