package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaamtranscribe/internal/adapters/vaam"
	"vaamtranscribe/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		APIKeyEnv,
		"VAAM_TRANSCRIBE_MODEL",
		"VAAM_TRANSCRIBE_BACKEND",
		"VAAM_TRANSCRIBE_GEMINI_BASE_URL",
		"VAAM_TRANSCRIBE_OPENAI_BASE_URL",
		"VAAM_LOOKUP_URL",
		"VAAM_LOOKUP_KEY",
		"VAAM_TRANSCRIBE_TEMP_DIR",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vaam-transcribe", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, BackendGemini, cfg.Backend)
	assert.Equal(t, vaam.DefaultLookupURL, cfg.LookupURL)
	assert.Equal(t, vaam.DefaultAccessKey, cfg.LookupKey)
	assert.Equal(t, domain.DefaultPrompt, cfg.Prompt)
	assert.Empty(t, cfg.TempDir)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeConfig(t, xdg, `
gemini_api_key = "from-file"
model = "gemini-2.5-pro"
backend = "OpenAI"
lookup_url = "https://lookup.example/api"
prompt = "Just transcribe."
`)
	t.Setenv(APIKeyEnv, "from-env")
	t.Setenv("VAAM_TRANSCRIBE_TEMP_DIR", "/tmp/vt")

	cfg := Load()
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, BackendOpenAI, cfg.Backend)
	assert.Equal(t, "https://lookup.example/api", cfg.LookupURL)
	assert.Equal(t, "Just transcribe.", cfg.Prompt)
	assert.Equal(t, "/tmp/vt", cfg.TempDir)
	assert.Equal(t, vaam.DefaultAccessKey, cfg.LookupKey)
}

func TestLoadIgnoresBrokenFile(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeConfig(t, xdg, `model = [unterminated`)

	cfg := Load()
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
}

func TestLoadFileError(t *testing.T) {
	cfg := Default()
	err := LoadFile(cfg, filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "tmp"), expandTilde("~/tmp"))
	assert.Equal(t, "/abs/path", expandTilde("/abs/path"))
}
