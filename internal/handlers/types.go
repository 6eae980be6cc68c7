package handlers

import "time"

// NormalizeRequest is the request body for normalizing a single URL.
type NormalizeRequest struct {
	Body struct {
		URL string `doc:"The URL to normalize" example:"http://www.twitter.com/a?utm_source=feed" json:"url"`
	}
}

// NormalizeResponse is the response for a single normalization.
type NormalizeResponse struct {
	Body struct {
		URL        string `doc:"The URL as submitted"    example:"http://www.twitter.com/a?utm_source=feed" json:"url"`
		Normalized string `doc:"The canonical form"      example:"https://x.com/a"                          json:"normalized"`
		Changed    bool   `doc:"Whether any rule fired"  example:"true"                                     json:"changed"`
	}
}

// DedupeRequest is the request body for batch deduplication. Entries may be
// heterogeneous; non-string values are skipped (but still counted in the
// stats variant).
type DedupeRequest struct {
	Body struct {
		URLs []any `doc:"URLs to normalize and deduplicate" json:"urls"`
	}
}

// DedupeResponse is the response for batch deduplication.
type DedupeResponse struct {
	Body struct {
		BatchID string   `doc:"Identifier assigned to this batch"                 json:"batchId"`
		URLs    []string `doc:"Unique canonical URLs in first-seen order"         json:"urls"`
	}
}

// DedupeStatsResponse is the response for batch deduplication with counts.
type DedupeStatsResponse struct {
	Body struct {
		BatchID    string   `doc:"Identifier assigned to this batch"         json:"batchId"`
		URLs       []string `doc:"Unique canonical URLs in first-seen order" json:"urls"`
		Original   int      `doc:"Number of submitted entries"               json:"original"`
		Unique     int      `doc:"Number of unique canonical URLs"           json:"unique"`
		Duplicates int      `doc:"Original minus unique"                     json:"duplicates"`
	}
}

// LookupRequest is the request for looking up a canonical URL by hash.
type LookupRequest struct {
	Hash string `doc:"Hex SHA256 of the canonical URL" path:"hash"`
}

// LookupResponse is the response for a canonical URL lookup.
type LookupResponse struct {
	Body struct {
		Hash         string    `doc:"Hex SHA256 of the canonical URL"     json:"hash"`
		CanonicalURL string    `doc:"The canonical form"                  json:"canonicalUrl"`
		FirstSeenURL string    `doc:"The raw URL that first produced it"  json:"firstSeenUrl"`
		FirstSeenAt  time.Time `doc:"When it was first observed"          json:"firstSeenAt"`
		Hits         int64     `doc:"How many times it has been observed" json:"hits"`
	}
}
