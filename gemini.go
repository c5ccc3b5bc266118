package scribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

const transcribeInstruction = "Transcribe this medical consultation recording verbatim. Output only the spoken words, with speaker labels (Doctor:, Patient:) where they can be distinguished."

// GeminiTranscriber transcribes audio by sending the raw bytes to a Gemini
// model as an inline blob. Gemini reports no duration or segment timing for
// this call shape, so those fields stay zero.
type GeminiTranscriber struct {
	client     *genai.Client
	model      string
	maxRetries uint64
	log        *slog.Logger
}

// NewGeminiTranscriber builds the backend. An empty model defaults to
// gemini-1.5-pro.
func NewGeminiTranscriber(client *genai.Client, model string, log *slog.Logger) *GeminiTranscriber {
	if model == "" {
		model = "gemini-1.5-pro"
	}
	if log == nil {
		log = slog.Default()
	}
	return &GeminiTranscriber{client: client, model: model, maxRetries: 2, log: log}
}

func (t *GeminiTranscriber) Name() string { return "gemini" }

func (t *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, opts TranscribeOptions) (*Transcription, error) {
	if t.client == nil {
		return nil, &ProviderError{Provider: t.Name(), Err: errors.New("client not initialized")}
	}

	mime, err := ValidateAudio(audio)
	if err != nil {
		return nil, err
	}

	instruction := transcribeInstruction
	if opts.Language != "" {
		instruction += fmt.Sprintf(" The recording is in %q.", opts.Language)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(audio, mime),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	t.log.Debug("sending transcription request", "provider", t.Name(), "model", t.model, "bytes", len(audio), "mime", mime)

	var text string
	err = withTranscribeRetry(ctx, t.maxRetries, func() error {
		resp, callErr := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
		if callErr != nil {
			return callErr
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return errors.New("no candidates in response")
		}
		text = resp.Candidates[0].Content.Parts[0].Text
		return nil
	})
	if err != nil {
		return nil, &ProviderError{Provider: t.Name(), Err: err}
	}

	lang := opts.Language
	if lang == "" {
		lang = "auto"
	}
	return &Transcription{
		Transcript: text,
		Language:   lang,
		Metadata: TranscriptionMetadata{
			Provider:    t.Name(),
			ProcessedAt: time.Now().UTC(),
			AudioBytes:  len(audio),
		},
	}, nil
}
