package scribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadBytes caps audio uploads. Enforced before any external
// transcription provider is invoked.
const MaxUploadBytes = 25 << 20 // 25 MB

// Segment is a timed slice of a transcription, when the backend provides one.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionMetadata describes one transcription call.
type TranscriptionMetadata struct {
	Provider    string    `json:"provider"`
	ProcessedAt time.Time `json:"processedAt"`
	AudioBytes  int       `json:"audioBytes"`
}

// Transcription is the near-verbatim output of a speech-to-text backend.
type Transcription struct {
	Transcript string                `json:"transcript"`
	Duration   float64               `json:"duration,omitempty"`
	Language   string                `json:"language"`
	Segments   []Segment             `json:"segments,omitempty"`
	Metadata   TranscriptionMetadata `json:"metadata"`
}

// TranscribeOptions tune a single transcription call.
type TranscribeOptions struct {
	Language string `json:"language,omitempty"`
	// DeleteAfterTranscription drops the stored audio payload once the job
	// completes. Defaults to keeping it.
	DeleteAfterTranscription bool   `json:"deleteAfterTranscription,omitempty"`
	Filename                 string `json:"filename,omitempty"`
}

// Transcriber converts audio bytes to text via an external provider.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte, opts TranscribeOptions) (*Transcription, error)
}

// ValidateAudio enforces the upload size cap and sniffs the payload, rejecting
// anything that is not an audio container. Returns the detected MIME type.
func ValidateAudio(audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio: %w", ErrInvalidInput)
	}
	if len(audio) > MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrUploadTooLarge, len(audio), MaxUploadBytes)
	}
	mt := mimetype.Detect(audio)
	kind := mt.String()
	// webm/mp4 voice recordings sniff as video containers.
	if !strings.HasPrefix(kind, "audio/") && !strings.HasPrefix(kind, "video/") {
		return "", fmt.Errorf("unsupported upload type %q: %w", kind, ErrInvalidInput)
	}
	return kind, nil
}

// withTranscribeRetry retries transient speech-to-text failures with
// exponential backoff. The extraction gateway keeps its no-retry rule; this
// applies to the audio path only.
func withTranscribeRetry(ctx context.Context, maxRetries uint64, call func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.Retry(call, policy)
}

// CannedTranscriber returns a fixed transcript without any network call. Used
// when no speech-to-text backend is configured, and in tests.
type CannedTranscriber struct{}

func (CannedTranscriber) Name() string { return "canned" }

func (CannedTranscriber) Transcribe(ctx context.Context, audio []byte, opts TranscribeOptions) (*Transcription, error) {
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	return &Transcription{
		Transcript: "Doctor: Hello, how are you today? Patient: I've had chest pain for two days...",
		Language:   lang,
		Metadata: TranscriptionMetadata{
			Provider:    "canned",
			ProcessedAt: time.Now().UTC(),
			AudioBytes:  len(audio),
		},
	}, nil
}
