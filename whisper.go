package scribe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperTranscriber transcribes audio through the OpenAI audio API with
// verbose-JSON output, so callers get duration, language and timed segments.
type WhisperTranscriber struct {
	client     *openai.Client
	maxRetries uint64
	log        *slog.Logger
}

// NewWhisperTranscriber builds the backend.
func NewWhisperTranscriber(apiKey string, log *slog.Logger) *WhisperTranscriber {
	if log == nil {
		log = slog.Default()
	}
	return &WhisperTranscriber{client: openai.NewClient(apiKey), maxRetries: 2, log: log}
}

func (t *WhisperTranscriber) Name() string { return "whisper" }

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, opts TranscribeOptions) (*Transcription, error) {
	filename := opts.Filename
	if filename == "" {
		filename = "audio.webm"
	}
	t.log.Debug("sending transcription request", "provider", t.Name(), "bytes", len(audio), "filename", filename)

	var resp openai.AudioResponse
	err := withTranscribeRetry(ctx, t.maxRetries, func() error {
		var callErr error
		resp, callErr = t.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    openai.Whisper1,
			Reader:   bytes.NewReader(audio),
			FilePath: filename,
			Language: opts.Language,
			Format:   openai.AudioResponseFormatVerboseJSON,
		})
		return callErr
	})
	if err != nil {
		var apiErr *openai.APIError
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.HTTPStatusCode
		}
		return nil, &ProviderError{Provider: t.Name(), StatusCode: status, Err: err}
	}

	segments := make([]Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, Segment{ID: s.ID, Start: s.Start, End: s.End, Text: s.Text})
	}

	return &Transcription{
		Transcript: resp.Text,
		Duration:   resp.Duration,
		Language:   resp.Language,
		Segments:   segments,
		Metadata: TranscriptionMetadata{
			Provider:    t.Name(),
			ProcessedAt: time.Now().UTC(),
			AudioBytes:  len(audio),
		},
	}, nil
}
