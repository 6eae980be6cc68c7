package ratelimit

import "time"

// LimitConfig is a single rate limit: at most Max requests per Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for them.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the standard limits: a generous global ceiling,
// relaxed reads, stricter writes.
func DefaultPolicy() *Policy {
	return NewPolicyBuilder().
		WithLimit(ScopeGlobal, time.Minute, 2000).
		WithLimit(ScopeRead, time.Minute, 1000).
		WithLimit(ScopeWrite, time.Minute, 100).
		WithLimit(ScopeWrite, time.Hour, 2000).
		Build()
}

// PolicyBuilder assembles a Policy incrementally.
type PolicyBuilder struct {
	limits map[Scope][]LimitConfig
}

// NewPolicyBuilder creates an empty policy builder.
func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{
		limits: make(map[Scope][]LimitConfig),
	}
}

// WithLimit adds a limit for a scope. Multiple limits per scope are all
// enforced.
func (b *PolicyBuilder) WithLimit(scope Scope, window time.Duration, max int64) *PolicyBuilder {
	b.limits[scope] = append(b.limits[scope], LimitConfig{Window: window, Max: max})
	return b
}

// Build returns the assembled policy.
func (b *PolicyBuilder) Build() *Policy {
	return &Policy{Limits: b.limits}
}
