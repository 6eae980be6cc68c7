package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/urlnorm/internal/analytics"
	"github.com/serroba/urlnorm/internal/messaging"
	"github.com/serroba/urlnorm/internal/normalizer"
	"github.com/serroba/urlnorm/internal/registry"
	"go.uber.org/zap"
)

// BatchIDGenerator mints identifiers for batches and single requests.
type BatchIDGenerator func() string

// NormalizeHandler serves URL normalization and deduplication operations.
type NormalizeHandler struct {
	norm              *normalizer.Normalizer
	store             registry.Repository
	newBatchID        BatchIDGenerator
	publishNormalized messaging.Publish[analytics.URLNormalizedEvent]
	publishDeduped    messaging.Publish[analytics.BatchDedupedEvent]
	logger            *zap.Logger
}

// NewNormalizeHandler creates a new normalization handler.
func NewNormalizeHandler(
	norm *normalizer.Normalizer,
	store registry.Repository,
	newBatchID BatchIDGenerator,
	publishNormalized messaging.Publish[analytics.URLNormalizedEvent],
	publishDeduped messaging.Publish[analytics.BatchDedupedEvent],
	logger *zap.Logger,
) *NormalizeHandler {
	return &NormalizeHandler{
		norm:              norm,
		store:             store,
		newBatchID:        newBatchID,
		publishNormalized: publishNormalized,
		publishDeduped:    publishDeduped,
		logger:            logger,
	}
}

// Normalize canonicalizes a single URL. It never rejects input: URLs that do
// not parse come back unchanged.
func (h *NormalizeHandler) Normalize(ctx context.Context, req *NormalizeRequest) (*NormalizeResponse, error) {
	normalized := h.norm.Normalize(req.Body.URL)

	h.recordCanonical(ctx, normalized, req.Body.URL)

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLNormalizedEvent{
		BatchID:      h.newBatchID(),
		OriginalURL:  req.Body.URL,
		Normalized:   normalized,
		Changed:      normalized != req.Body.URL,
		ClientIP:     meta.ClientIP,
		UserAgent:    meta.UserAgent,
		NormalizedAt: time.Now(),
	}

	if err := h.publishNormalized(event); err != nil {
		h.logger.Error("failed to publish url normalized event",
			zap.String("batchId", event.BatchID),
			zap.Error(err),
		)
	}

	resp := &NormalizeResponse{}
	resp.Body.URL = req.Body.URL
	resp.Body.Normalized = normalized
	resp.Body.Changed = normalized != req.Body.URL

	return resp, nil
}

// Dedupe normalizes a batch and returns unique canonical URLs in first-seen
// order. Non-string entries are silently dropped.
func (h *NormalizeHandler) Dedupe(ctx context.Context, req *DedupeRequest) (*DedupeResponse, error) {
	result := h.norm.DedupeWithStats(req.Body.URLs)
	batchID := h.newBatchID()

	h.recordBatch(ctx, result.URLs)
	h.publishBatchEvent(ctx, batchID, result)

	resp := &DedupeResponse{}
	resp.Body.BatchID = batchID
	resp.Body.URLs = result.URLs

	return resp, nil
}

// DedupeStats is Dedupe plus counts. Original counts every submitted entry,
// including non-strings, so duplicates can reflect skipped entries too.
func (h *NormalizeHandler) DedupeStats(ctx context.Context, req *DedupeRequest) (*DedupeStatsResponse, error) {
	result := h.norm.DedupeWithStats(req.Body.URLs)
	batchID := h.newBatchID()

	h.recordBatch(ctx, result.URLs)
	h.publishBatchEvent(ctx, batchID, result)

	resp := &DedupeStatsResponse{}
	resp.Body.BatchID = batchID
	resp.Body.URLs = result.URLs
	resp.Body.Original = result.Original
	resp.Body.Unique = result.Unique
	resp.Body.Duplicates = result.Duplicates

	return resp, nil
}

// Lookup returns the registry entry for a canonical URL hash.
func (h *NormalizeHandler) Lookup(ctx context.Context, req *LookupRequest) (*LookupResponse, error) {
	entry, err := h.store.GetByHash(ctx, registry.Hash(req.Hash))
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, huma.Error404NotFound("canonical url not found")
		}

		return nil, huma.Error500InternalServerError("failed to look up canonical url")
	}

	resp := &LookupResponse{}
	resp.Body.Hash = string(entry.Hash)
	resp.Body.CanonicalURL = entry.CanonicalURL
	resp.Body.FirstSeenURL = entry.FirstSeenURL
	resp.Body.FirstSeenAt = entry.FirstSeenAt
	resp.Body.Hits = entry.Hits

	return resp, nil
}

// recordCanonical upserts one canonical URL into the registry. Registry
// failures never fail the request; normalization results do not depend on
// storage.
func (h *NormalizeHandler) recordCanonical(ctx context.Context, canonical, firstSeen string) {
	hash := registry.Hash(normalizer.Hash(canonical))

	_, err := h.store.GetByHash(ctx, hash)
	if err == nil {
		if err := h.store.IncrementHits(ctx, hash); err != nil {
			h.logger.Warn("failed to increment canonical url hits",
				zap.String("hash", string(hash)),
				zap.Error(err),
			)
		}

		return
	}

	if !errors.Is(err, registry.ErrNotFound) {
		h.logger.Warn("failed to check canonical url registry",
			zap.String("hash", string(hash)),
			zap.Error(err),
		)

		return
	}

	entry := &registry.Entry{
		Hash:         hash,
		CanonicalURL: canonical,
		FirstSeenURL: firstSeen,
		FirstSeenAt:  time.Now(),
		Hits:         1,
	}

	if err := h.store.Save(ctx, entry); err != nil {
		h.logger.Warn("failed to save canonical url",
			zap.String("hash", string(hash)),
			zap.Error(err),
		)
	}
}

func (h *NormalizeHandler) recordBatch(ctx context.Context, canonicals []string) {
	for _, canonical := range canonicals {
		h.recordCanonical(ctx, canonical, canonical)
	}
}

func (h *NormalizeHandler) publishBatchEvent(ctx context.Context, batchID string, result normalizer.BatchResult) {
	meta := RequestMetaFromContext(ctx)
	event := &analytics.BatchDedupedEvent{
		BatchID:     batchID,
		Original:    result.Original,
		Unique:      result.Unique,
		Duplicates:  result.Duplicates,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		Referrer:    meta.Referrer,
		ProcessedAt: time.Now(),
	}

	if err := h.publishDeduped(event); err != nil {
		h.logger.Error("failed to publish batch deduped event",
			zap.String("batchId", batchID),
			zap.Error(err),
		)
	}
}
