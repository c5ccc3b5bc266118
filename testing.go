package scribe

import (
	"context"
	"log/slog"
)

// stubGenerator is a scripted backend for gateway and pipeline tests.
type stubGenerator struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// NewPipelineForTesting creates a Pipeline over a gateway with no configured
// backends. Pair it with WithMockResponse() so no network is ever touched.
func NewPipelineForTesting() *Pipeline {
	return NewPipelineWithLogger(NewGateway(nil, nil, 0, slog.Default()), slog.Default())
}
