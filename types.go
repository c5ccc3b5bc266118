package scribe

import "time"

// Record is one extracted category plus its detail lines, in the order the
// model produced them.
type Record struct {
	Category string   `json:"category"`
	Details  []string `json:"details"`
}

// Summary aggregates a set of records.
type Summary struct {
	TotalDataPoints int      `json:"totalDataPoints"`
	CategoriesFound []string `json:"categoriesFound"`
	// ConfidenceScore is reserved for future scoring and is always nil.
	ConfidenceScore *float64 `json:"confidenceScore"`
}

// Result is the structured output of one extraction.
type Result struct {
	Categories []Record `json:"categories"`
	Summary    Summary  `json:"summary"`
}

// Report carries the validation verdict for a Result. Missing required
// categories only warn; IsValid flips false only when nothing was extracted.
type Report struct {
	IsValid  bool     `json:"isValid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Metadata describes one pipeline invocation.
type Metadata struct {
	ProcessedAt      time.Time `json:"processedAt"`
	TranscriptLength int       `json:"transcriptLength,omitempty"`
	ExtractionMethod string    `json:"extractionMethod,omitempty"`
}

// Outcome is the envelope returned for every pipeline invocation. On failure
// Data and Validation are nil and Error is non-empty; Metadata.ProcessedAt is
// always set.
type Outcome struct {
	Success    bool     `json:"success"`
	Data       *Result  `json:"data,omitempty"`
	Validation *Report  `json:"validation,omitempty"`
	Error      string   `json:"error,omitempty"`
	Metadata   Metadata `json:"metadata"`
}

// Options represents per-invocation options for the pipeline.
type Options struct {
	Method       string // echoed back as metadata.extractionMethod
	MockResponse bool   // bypass all providers, return the canned reply
}

// Functional option constructors
func WithMethod(name string) func(*Options) {
	return func(o *Options) { o.Method = name }
}

func WithMockResponse() func(*Options) {
	return func(o *Options) { o.MockResponse = true }
}
