package scribe

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Generation parameters shared by every backend: low temperature for
// deterministic extraction, generous ceiling for long consultations.
const (
	systemRole            = "You are a medical AI scribe assistant."
	extractionTemperature = 0.1
	extractionMaxTokens   = 4000
)

// Generator is a single text-generation backend.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gateway selects a text-generation backend for an extraction call. The
// policy is a fixed attempt sequence: mock short-circuit, then the primary
// backend with exactly one fallback hop to the secondary, then the secondary
// alone. There are no retries within a single backend.
type Gateway struct {
	primary   Generator // nil when not configured
	secondary Generator // nil when not configured
	timeout   time.Duration
	log       *slog.Logger
}

// NewGateway wires a gateway over the configured backends. Either backend may
// be nil. A timeout of zero disables the per-call deadline.
func NewGateway(primary, secondary Generator, timeout time.Duration, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{primary: primary, secondary: secondary, timeout: timeout, log: log}
}

// Extract sends the prompt to a backend and returns the raw model reply.
// With Options.MockResponse set it returns the canned reply without any
// network call. When the primary backend fails and the secondary also fails
// (or is absent), the primary's failure is the one propagated.
func (g *Gateway) Extract(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.MockResponse {
		g.log.Debug("mock mode: returning canned extraction")
		return mockExtractionResponse, nil
	}

	if g.primary != nil {
		text, err := g.call(ctx, g.primary, prompt)
		if err == nil {
			return text, nil
		}
		g.log.Warn("extraction failed", "provider", g.primary.Name(), "error", err)
		if g.secondary != nil {
			g.log.Info("falling back", "provider", g.secondary.Name())
			text, fbErr := g.call(ctx, g.secondary, prompt)
			if fbErr == nil {
				return text, nil
			}
			g.log.Warn("fallback extraction failed", "provider", g.secondary.Name(), "error", fbErr)
		}
		return "", err
	}

	if g.secondary != nil {
		text, err := g.call(ctx, g.secondary, prompt)
		if err != nil {
			g.log.Warn("extraction failed", "provider", g.secondary.Name(), "error", err)
			return "", err
		}
		return text, nil
	}

	return "", fmt.Errorf("extract: %w", ErrNoProvider)
}

func (g *Gateway) call(ctx context.Context, gen Generator, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	start := time.Now()
	text, err := gen.Generate(ctx, prompt)
	if err == nil {
		g.log.Debug("received model reply", "provider", gen.Name(), "length", len(text), "elapsed", time.Since(start))
	}
	return text, err
}

// mockExtractionResponse is the canned reply used by mock mode for tests and
// offline operation. Its four sections drive the documented mock behaviour.
const mockExtractionResponse = `=== CLINICAL DATA EXTRACTION ===

1. Chief Complaint/Reason for Visit:
   - Patient presents with chest pain for 2 days
   - Describes pain as "sharp and stabbing"

2. History of Present Illness (HPI):
   - Onset: 2 days ago, sudden onset
   - Character: Sharp, stabbing pain
   - Location: Left side of chest
   - Severity: 7/10 on pain scale
   - Aggravating factors: Deep breathing, movement
   - Associated symptoms: Shortness of breath

3. Current Medications:
   - Lisinopril 10mg daily for hypertension
   - Metformin 500mg twice daily for diabetes

4. Past Medical History:
   - Hypertension diagnosed 5 years ago
   - Type 2 diabetes diagnosed 3 years ago

=== END OF EXTRACTION ===
`
