package scribe

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the read-only process configuration. It is built once at startup
// and passed by reference into the pipeline and server; nothing mutates it
// afterwards, so concurrent invocations can share it freely.
type Config struct {
	OpenAIKey      string        `yaml:"openaiKey"`
	OpenAIModel    string        `yaml:"openaiModel"`
	AnthropicKey   string        `yaml:"anthropicKey"`
	AnthropicModel string        `yaml:"anthropicModel"`
	GeminiKey      string        `yaml:"geminiKey"`
	GeminiModel    string        `yaml:"geminiModel"`

	// ProviderTimeout bounds each text-generation call. Zero disables the
	// deadline and falls back to the HTTP client default.
	ProviderTimeout time.Duration `yaml:"providerTimeout"`

	// Transcriber selects the speech-to-text backend: "whisper" or "gemini".
	Transcriber string `yaml:"transcriber"`

	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`
	JobDB    string `yaml:"jobDB"`
}

// LoadConfig reads configuration from the environment, after loading a .env
// file when one is present. An optional YAML file overlays the environment
// values for anything it sets.
func LoadConfig(yamlPath string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		AnthropicKey:    os.Getenv("CLAUDE_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		ProviderTimeout: 60 * time.Second,
		Transcriber:     env("SCRIBE_TRANSCRIBER", "whisper"),
		Port:            env("PORT", "8000"),
		LogLevel:        env("LOG_LEVEL", "info"),
		JobDB:           env("SCRIBE_DB", "data/scribe.db"),
	}
	if raw := os.Getenv("PROVIDER_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
		}
		cfg.ProviderTimeout = d
	}

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", yamlPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", yamlPath, err)
		}
	}
	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
