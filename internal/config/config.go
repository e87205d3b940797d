package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for resumeiq.
type Config struct {
	AI     AIConfig
	Server ServerConfig
}

// AIConfig selects and configures the analysis provider.
type AIConfig struct {
	Provider string // "gemini" or "openai"
	Model    string // provider model identifier
	APIKey   string // may be empty; only analysis fails without it
	BaseURL  string // empty uses the provider default
}

// ServerConfig controls `resumeiq serve`.
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-3-pro-preview"
	DefaultOpenAIModel = "gpt-4o-mini"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultAddr          = ":8080"
)

// rawConfig is used for YAML unmarshaling (snake_case fields).
type rawConfig struct {
	AI     rawAIConfig     `yaml:"ai"`
	Server rawServerConfig `yaml:"server"`
}

type rawAIConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

type rawServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg, _ := build(rawConfig{})
	return cfg
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOptional behaves like Load but returns Default when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse expands environment variables in data and decodes it.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return build(raw)
}

func build(raw rawConfig) (*Config, error) {
	provider := strings.ToLower(strings.TrimSpace(raw.AI.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	model := raw.AI.Model
	if model == "" {
		switch provider {
		case ProviderOpenAI:
			model = DefaultOpenAIModel
		default:
			model = DefaultGeminiModel
		}
	}

	baseURL := raw.AI.BaseURL
	if baseURL == "" && provider == ProviderOpenAI {
		baseURL = defaultOpenAIBaseURL
	}

	addr := raw.Server.Addr
	if addr == "" {
		addr = defaultAddr
	}

	cfg := &Config{
		AI: AIConfig{
			Provider: provider,
			Model:    model,
			APIKey:   strings.TrimSpace(raw.AI.APIKey),
			BaseURL:  strings.TrimRight(baseURL, "/"),
		},
		Server: ServerConfig{
			Addr:        addr,
			CORSOrigins: raw.Server.CORSOrigins,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv fills an empty API key from the environment lookup function.
// Priority: RESUMEIQ_API_KEY > API_KEY > provider-specific variable.
func (c *Config) ApplyEnv(lookup func(string) string) {
	if c.AI.APIKey != "" {
		return
	}
	keys := []string{"RESUMEIQ_API_KEY", "API_KEY"}
	switch c.AI.Provider {
	case ProviderOpenAI:
		keys = append(keys, "OPENAI_API_KEY")
	default:
		keys = append(keys, "GEMINI_API_KEY", "GOOGLE_API_KEY")
	}
	for _, k := range keys {
		if v := strings.TrimSpace(lookup(k)); v != "" {
			c.AI.APIKey = v
			return
		}
	}
}

func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("ai.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, cfg.AI.Provider)
	}

	if cfg.AI.BaseURL != "" && !strings.HasPrefix(cfg.AI.BaseURL, "http://") && !strings.HasPrefix(cfg.AI.BaseURL, "https://") {
		return fmt.Errorf("ai.base_url must be an http(s) URL, got %q", cfg.AI.BaseURL)
	}

	for _, o := range cfg.Server.CORSOrigins {
		if o == "" {
			return fmt.Errorf("server.cors_origins must not contain empty entries")
		}
	}

	return nil
}
