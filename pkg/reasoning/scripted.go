package reasoning

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/planwright/pkg/domain/plan"
	domain "github.com/felixgeelhaar/planwright/pkg/domain/reasoning"
)

// ScriptedProvider returns a canned decomposition payload. It backs the
// offline CLI path (decompose from a file) and tests.
type ScriptedProvider struct {
	id      string
	payload []byte
	err     error
}

// NewScriptedProvider creates a provider that always returns the given
// payload.
func NewScriptedProvider(payload []byte) *ScriptedProvider {
	return &ScriptedProvider{id: "scripted", payload: payload}
}

// NewFailingProvider creates a provider that always fails with err.
func NewFailingProvider(err error) *ScriptedProvider {
	return &ScriptedProvider{id: "scripted", err: err}
}

// NewFileProvider reads the decomposition payload from a JSON or YAML file.
// YAML documents are converted to the canonical JSON payload; their estimate
// fields may use the "30m"/"4h"/"2d" shorthand.
func NewFileProvider(path string) (*ScriptedProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read decomposition file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = plan.YAMLToPayload(data)
		if err != nil {
			return nil, err
		}
	}
	return &ScriptedProvider{id: "file:" + path, payload: data}, nil
}

func (p *ScriptedProvider) ID() string {
	return p.id
}

func (p *ScriptedProvider) Decompose(ctx context.Context, req domain.DecompositionRequest) (*domain.DecompositionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return &domain.DecompositionResponse{Payload: p.payload, Model: p.id}, nil
}
