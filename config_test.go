package scribe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("PROVIDER_TIMEOUT", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "whisper", cfg.Transcriber)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
	assert.Empty(t, cfg.OpenAIKey)
}

func TestLoadConfig_EnvAndTimeout(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("PROVIDER_TIMEOUT", "15s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	t.Setenv("PORT", "8000")
	path := filepath.Join(t.TempDir(), "scribed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\ntranscriber: gemini\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gemini", cfg.Transcriber)
	// Untouched fields keep their environment/default values.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")

	_, err := LoadConfig("")
	assert.Error(t, err)
}
