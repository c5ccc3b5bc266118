// Package scribe extracts structured clinical data points from free-text
// medical consultation transcripts. A large-language-model call performs the
// semantic extraction; everything around it is a deterministic pipeline that
// prepares the input, selects a provider with fallback, and parses and
// validates the reply.
//
// # Pipeline
//
// One Process call runs the full chain:
//
//	transcript → NormalizeTranscript → PromptBuilder → Gateway → ParseExtraction → Validate
//
// and assembles an Outcome envelope. Failures anywhere in the chain are
// caught at the pipeline boundary and returned as a failure envelope — the
// pipeline never propagates an error past Process.
//
//	cfg, _ := scribe.LoadConfig("")
//	gw := scribe.NewGateway(
//	    scribe.NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel, nil),
//	    scribe.NewAnthropicGenerator(cfg.AnthropicKey, cfg.AnthropicModel, nil),
//	    cfg.ProviderTimeout, nil)
//	p := scribe.NewPipeline(gw)
//
//	outcome := p.Process(ctx, "Doctor: hi. Patient: chest pain for two days.")
//
// # Provider selection
//
// The gateway tries the primary backend (OpenAI chat completions, separate
// system role), falls back exactly once to the secondary (Anthropic messages,
// single user turn), and otherwise propagates the primary's failure. There
// are no retries within a single backend. With neither configured the call
// fails with ErrNoProvider before any network I/O.
//
// Mock mode bypasses all of this and returns a canned four-section reply:
//
//	outcome := p.Process(ctx, transcript, scribe.WithMockResponse())
//
// # Audio
//
// Speech-to-text is delegated to an external provider (Whisper or Gemini)
// behind the Transcriber interface, with uploads capped at 25 MB and tracked
// as SQLite-backed jobs that move processing → completed (or failed) exactly
// once. The cmd/scribed binary wires the pipeline, the job worker and the
// chi HTTP routes into one service.
package scribe
