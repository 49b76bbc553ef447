// Package reasoning provides concrete reasoning providers and resilience
// wrappers around the collaborator boundary.
package reasoning

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	domain "github.com/felixgeelhaar/planwright/pkg/domain/reasoning"
)

// ResilientProvider wraps a provider with retry and timeout. Decomposition
// calls go to a remote model and occasionally flake; two attempts with
// exponential backoff cover the transient cases without masking real
// failures from the caller.
type ResilientProvider struct {
	inner       Provider
	maxAttempts int
	callTimeout time.Duration
}

// Provider aliases the domain boundary for convenience.
type Provider = domain.Provider

// NewResilientProvider wraps the given provider with default resilience:
// two attempts, five minute call timeout.
func NewResilientProvider(inner Provider) *ResilientProvider {
	return &ResilientProvider{
		inner:       inner,
		maxAttempts: 2,
		callTimeout: 300 * time.Second,
	}
}

// WithAttempts overrides the retry attempt count.
func (p *ResilientProvider) WithAttempts(n int) *ResilientProvider {
	if n > 0 {
		p.maxAttempts = n
	}
	return p
}

// WithTimeout overrides the per-call timeout.
func (p *ResilientProvider) WithTimeout(d time.Duration) *ResilientProvider {
	if d > 0 {
		p.callTimeout = d
	}
	return p
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

func (p *ResilientProvider) Decompose(ctx context.Context, req domain.DecompositionRequest) (*domain.DecompositionResponse, error) {
	r := retry.New[*domain.DecompositionResponse](retry.Config{
		MaxAttempts:   p.maxAttempts,
		InitialDelay:  time.Second,
		BackoffPolicy: retry.BackoffExponential,
	})

	t := timeout.New[*domain.DecompositionResponse](timeout.Config{
		DefaultTimeout: p.callTimeout,
	})

	return t.Execute(ctx, p.callTimeout, func(ctx context.Context) (*domain.DecompositionResponse, error) {
		return r.Do(ctx, func(ctx context.Context) (*domain.DecompositionResponse, error) {
			return p.inner.Decompose(ctx, req)
		})
	})
}
