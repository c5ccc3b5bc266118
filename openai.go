package scribe

import (
	"context"
	"errors"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator is the primary extraction backend. It sends the prompt as a
// chat completion with a separate system role.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAIGenerator builds the backend. An empty model defaults to GPT-4o.
func NewOpenAIGenerator(apiKey, model string, log *slog.Logger) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	if log == nil {
		log = slog.Default()
	}
	return &OpenAIGenerator{client: openai.NewClient(apiKey), model: model, log: log}
}

func (g *OpenAIGenerator) Name() string { return "openai" }

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.log.Debug("sending extraction request", "provider", g.Name(), "model", g.model, "prompt_length", len(prompt))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemRole},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.HTTPStatusCode
		}
		return "", &ProviderError{Provider: g.Name(), StatusCode: status, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: g.Name(), Err: errors.New("completion has no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}
