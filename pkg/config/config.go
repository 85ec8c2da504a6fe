package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultModel is the chat model every request is sent to.
	DefaultModel = "gpt-3.5-turbo"
	// DefaultMaxTokens bounds the reply length.
	DefaultMaxTokens int64 = 2000
	// DefaultTemperature favors varied phrasing over deterministic replies.
	DefaultTemperature = 1.0
	// DefaultBaseURL is the OpenAI API root; chat/completions is resolved against it.
	DefaultBaseURL = "https://api.openai.com/v1/"

	// CredentialFileName is the secret file kept in the user's home directory.
	CredentialFileName = ".homemade-copilot-for-cli"
)

// Config holds all runtime configuration. None of it is read from flags or the
// environment: the request parameters are fixed and only the home directory
// is resolved at startup.
type Config struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	BaseURL     string

	CredentialPath string
	Verbose        bool
}

// DefaultConfig returns the fixed configuration, resolving the credential path
// against the current user's home directory.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Model:          DefaultModel,
		MaxTokens:      DefaultMaxTokens,
		Temperature:    DefaultTemperature,
		BaseURL:        DefaultBaseURL,
		CredentialPath: filepath.Join(home, CredentialFileName),
		Verbose:        false,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.CredentialPath = strings.TrimSpace(cfg.CredentialPath)

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	return cfg
}
