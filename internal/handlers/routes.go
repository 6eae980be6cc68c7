package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/urlnorm/internal/ratelimit"
)

// RegisterRoutes registers all normalization routes with per-endpoint rate
// limit configuration.
func RegisterRoutes(api huma.API, h *NormalizeHandler) {
	// POST /normalize - single URL
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/normalize",
		Summary:     "Normalize a URL",
		Description: "Rewrites a URL to canonical form. Unparseable input is returned unchanged.",
		Tags:        []string{"Normalization"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 600}, // 600 per minute
				},
			},
		},
	}, h.Normalize)

	// POST /dedupe - batch, unique URLs only
	// Batches are heavier than single calls, so the write limits are stricter.
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/dedupe",
		Summary:     "Deduplicate URLs",
		Description: "Normalizes a batch of URLs and returns the unique canonical forms in first-seen order.",
		Tags:        []string{"Normalization"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 60},      // 60 per minute
					{Window: time.Hour, Max: 1000},      // 1000 per hour
					{Window: 24 * time.Hour, Max: 5000}, // 5000 per day
				},
			},
		},
	}, h.Dedupe)

	// POST /dedupe/stats - batch with counts
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/dedupe/stats",
		Summary:     "Deduplicate URLs with statistics",
		Description: "Like /dedupe, additionally reporting original, unique, and duplicate counts.",
		Tags:        []string{"Normalization"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 60},
					{Window: time.Hour, Max: 1000},
				},
			},
		},
	}, h.DedupeStats)

	// GET /canonical/{hash} - registry lookup
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/canonical/{hash}",
		Summary:     "Look up a canonical URL",
		Description: "Returns the registry entry for a canonical URL hash.",
		Tags:        []string{"Registry"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeRead,
			},
		},
	}, h.Lookup)
}
