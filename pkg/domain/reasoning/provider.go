// Package reasoning defines the boundary to the external reasoning
// collaborator that decomposes goals into raw task plans.
package reasoning

import (
	"context"
)

// DecompositionRequest asks the collaborator to break a goal down.
type DecompositionRequest struct {
	GoalText            string
	ContextCapabilities []string
}

// DecompositionResponse carries the raw decomposition payload. The payload
// is untrusted JSON and must go through plan validation before any
// scheduling work.
type DecompositionResponse struct {
	Payload []byte
	Model   string
}

// Provider is the interface for reasoning backends. A failed call is fatal
// to decomposition and is surfaced to the caller, never retried here;
// resilience wrappers live in pkg/reasoning.
type Provider interface {
	ID() string
	Decompose(ctx context.Context, req DecompositionRequest) (*DecompositionResponse, error)
}
