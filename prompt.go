package scribe

import (
	"fmt"
	"strings"

	"github.com/tyler-sommer/stick"
)

// extractionTemplate is the fixed prompt. The transcript is substituted as a
// template variable; the category list and the reply format are static for
// the process lifetime.
const extractionTemplate = `You are reviewing the transcript of a medical consultation between a clinician and a patient. Extract every clinical data point you can find and organize it under the following categories:

{{ categoryList }}

Respond using exactly this format:

=== CLINICAL DATA EXTRACTION ===

1. <Category Name>:
   - <extracted detail>
   - <extracted detail>

2. <Category Name>:
   - <extracted detail>

=== END OF EXTRACTION ===

Only include categories for which the transcript contains information. Quote the patient's own words where they matter clinically. Do not invent data that is not in the transcript.

Transcript:
{{ transcript }}`

// PromptBuilder renders the extraction prompt for a transcript.
type PromptBuilder struct {
	env        *stick.Env
	template   string
	categories []string
}

// NewPromptBuilder builds a PromptBuilder over the given category list.
func NewPromptBuilder(categories []string) *PromptBuilder {
	return &PromptBuilder{
		env:        stick.New(nil),
		template:   extractionTemplate,
		categories: categories,
	}
}

// Build substitutes the normalized transcript into the extraction template.
func (b *PromptBuilder) Build(transcript string) (string, error) {
	var numbered strings.Builder
	for i, c := range b.categories {
		fmt.Fprintf(&numbered, "%d. %s\n", i+1, c)
	}

	ctx := map[string]stick.Value{
		"transcript":   transcript,
		"categoryList": strings.TrimRight(numbered.String(), "\n"),
	}

	var out strings.Builder
	if err := b.env.Execute(b.template, &out, ctx); err != nil {
		return "", fmt.Errorf("render extraction prompt: %w", err)
	}
	return out.String(), nil
}
