package scribe

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"
)

// Pipeline sequences normalization, prompt construction, the provider call,
// parsing and validation for one transcript. Every entity it creates lives
// only for the duration of a single Process call.
type Pipeline struct {
	gateway *Gateway
	builder *PromptBuilder
	log     *slog.Logger
}

// NewPipeline wires a pipeline over the given gateway, logging with
// slog.Default().
func NewPipeline(gateway *Gateway) *Pipeline {
	return NewPipelineWithLogger(gateway, slog.Default())
}

// NewPipelineWithLogger lets the caller supply their own logger.
func NewPipelineWithLogger(gateway *Gateway, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		gateway: gateway,
		builder: NewPromptBuilder(Categories()),
		log:     log,
	}
}

// Process runs the full extraction pipeline. Any failure inside the chain is
// converted into a failure Outcome rather than propagated; callers always
// receive a well-formed envelope with ProcessedAt set.
func (p *Pipeline) Process(ctx context.Context, transcript string, optFns ...func(*Options)) Outcome {
	opts := Options{Method: "default"}
	for _, fn := range optFns {
		fn(&opts)
	}

	cleaned, err := NormalizeTranscript(transcript)
	if err != nil {
		return p.failure(err)
	}

	prompt, err := p.builder.Build(cleaned)
	if err != nil {
		return p.failure(err)
	}

	raw, err := p.gateway.Extract(ctx, prompt, opts)
	if err != nil {
		return p.failure(err)
	}

	result := buildResult(ParseExtraction(raw))
	report := Validate(result)

	p.log.Info("extraction completed",
		"data_points", result.Summary.TotalDataPoints,
		"valid", report.IsValid,
		"transcript_length", len(cleaned))

	return Outcome{
		Success:    true,
		Data:       &result,
		Validation: &report,
		Metadata: Metadata{
			ProcessedAt:      time.Now().UTC(),
			TranscriptLength: utf8.RuneCountInString(cleaned),
			ExtractionMethod: opts.Method,
		},
	}
}

func (p *Pipeline) failure(err error) Outcome {
	p.log.Warn("extraction failed", "error", err)
	return Outcome{
		Success:  false,
		Error:    err.Error(),
		Metadata: Metadata{ProcessedAt: time.Now().UTC()},
	}
}

// buildResult assembles the result envelope from parsed records. A category
// counts as found only when it carries at least one detail.
func buildResult(records []Record) Result {
	found := []string{}
	for _, rec := range records {
		if len(rec.Details) > 0 {
			found = append(found, rec.Category)
		}
	}
	return Result{
		Categories: records,
		Summary: Summary{
			TotalDataPoints: len(records),
			CategoriesFound: found,
			ConfidenceScore: nil,
		},
	}
}
