package scribe

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicGenerator is the fallback extraction backend. The Messages API has
// no separate system role for this call shape, so the whole prompt goes into
// a single user turn. Whether that framing difference affects extraction
// quality is unverified; the two backends are deliberately not unified.
type AnthropicGenerator struct {
	client anthropic.Client
	model  anthropic.Model
	log    *slog.Logger
}

// NewAnthropicGenerator builds the backend. An empty model defaults to
// claude-3-5-sonnet-20241022.
func NewAnthropicGenerator(apiKey, model string, log *slog.Logger) *AnthropicGenerator {
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	if log == nil {
		log = slog.Default()
	}
	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
		log:    log,
	}
}

func (g *AnthropicGenerator) Name() string { return "anthropic" }

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.log.Debug("sending extraction request", "provider", g.Name(), "model", string(g.model), "prompt_length", len(prompt))

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       g.model,
		MaxTokens:   extractionMaxTokens,
		Temperature: anthropic.Float(extractionTemperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", &ProviderError{Provider: g.Name(), StatusCode: status, Err: err}
	}
	if len(msg.Content) == 0 {
		return "", &ProviderError{Provider: g.Name(), Err: errors.New("message has no content blocks")}
	}
	return msg.Content[0].Text, nil
}
