package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"vaamtranscribe/internal/adapters/gemini"
	"vaamtranscribe/internal/adapters/openaicompat"
	"vaamtranscribe/internal/adapters/vaam"
	"vaamtranscribe/internal/core/domain"
)

// APIKeyEnv holds the generative-AI credential.
const APIKeyEnv = "GEMINI_API_KEY"

const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

type Config struct {
	APIKey        string
	Model         string
	Backend       string // gemini or openai
	GeminiBaseURL string // empty means the SDK default
	OpenAIBaseURL string
	LookupURL     string
	LookupKey     string
	TempDir       string // empty means <os.TempDir()>/vaam-transcribe
	Prompt        string
}

type fileConfig struct {
	APIKey        string `toml:"gemini_api_key"`
	Model         string `toml:"model"`
	Backend       string `toml:"backend"`
	GeminiBaseURL string `toml:"gemini_base_url"`
	OpenAIBaseURL string `toml:"openai_base_url"`
	LookupURL     string `toml:"lookup_url"`
	LookupKey     string `toml:"lookup_key"`
	TempDir       string `toml:"temp_dir"`
	Prompt        string `toml:"prompt"`
}

// Load builds the configuration from defaults, the config file if one
// exists, and the environment, in that order.
func Load() *Config {
	cfg := Default()

	if configPath := configFilePath(); configPath != "" {
		_ = LoadFile(cfg, configPath)
	}

	applyEnvOverrides(cfg)
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:         gemini.DefaultModel,
		Backend:       BackendGemini,
		OpenAIBaseURL: openaicompat.DefaultBaseURL,
		LookupURL:     vaam.DefaultLookupURL,
		LookupKey:     vaam.DefaultAccessKey,
		Prompt:        domain.DefaultPrompt,
	}
}

// LoadFile merges the TOML file at path into cfg. Empty keys keep the
// current value.
func LoadFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return err
	}
	set(&cfg.APIKey, fc.APIKey)
	set(&cfg.Model, fc.Model)
	set(&cfg.Backend, strings.ToLower(fc.Backend))
	set(&cfg.GeminiBaseURL, fc.GeminiBaseURL)
	set(&cfg.OpenAIBaseURL, fc.OpenAIBaseURL)
	set(&cfg.LookupURL, fc.LookupURL)
	set(&cfg.LookupKey, fc.LookupKey)
	set(&cfg.TempDir, expandTilde(fc.TempDir))
	set(&cfg.Prompt, fc.Prompt)
	return nil
}

func applyEnvOverrides(cfg *Config) {
	set(&cfg.APIKey, os.Getenv(APIKeyEnv))
	set(&cfg.Model, os.Getenv("VAAM_TRANSCRIBE_MODEL"))
	set(&cfg.Backend, strings.ToLower(os.Getenv("VAAM_TRANSCRIBE_BACKEND")))
	set(&cfg.GeminiBaseURL, os.Getenv("VAAM_TRANSCRIBE_GEMINI_BASE_URL"))
	set(&cfg.OpenAIBaseURL, os.Getenv("VAAM_TRANSCRIBE_OPENAI_BASE_URL"))
	set(&cfg.LookupURL, os.Getenv("VAAM_LOOKUP_URL"))
	set(&cfg.LookupKey, os.Getenv("VAAM_LOOKUP_KEY"))
	set(&cfg.TempDir, expandTilde(os.Getenv("VAAM_TRANSCRIBE_TEMP_DIR")))
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "vaam-transcribe")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "vaam-transcribe")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
