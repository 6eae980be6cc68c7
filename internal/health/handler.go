// Package health exposes a liveness endpoint that reports the state of each
// backing dependency by name.
package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether a single dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// Check pairs a dependency name with its checker.
type Check struct {
	Name    string
	Checker Checker
}

// RedisChecker adapts redis.Client to Checker.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts a pgx pool to Checker.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a new PostgreSQL health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Handler runs the configured dependency checks.
type Handler struct {
	checks []Check
}

// NewHandler creates a health handler for the given checks.
func NewHandler(checks ...Check) *Handler {
	return &Handler{checks: checks}
}

// Response reports overall status plus the state of each dependency.
type Response struct {
	Body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies,omitempty"`
	}
}

// Check pings every dependency. Overall status is "ok" only when all
// dependencies are healthy; any failure degrades it.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if len(h.checks) > 0 {
		resp.Body.Dependencies = make(map[string]string, len(h.checks))
	}

	for _, check := range h.checks {
		if err := check.Checker.Ping(ctx); err != nil {
			resp.Body.Dependencies[check.Name] = "unhealthy"
			resp.Body.Status = "degraded"
		} else {
			resp.Body.Dependencies[check.Name] = "healthy"
		}
	}

	return resp, nil
}

// RegisterRoutes registers the health check route.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
