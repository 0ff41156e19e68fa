// Package config loads genedit configuration from a TOML file and
// environment variables. A missing config file is not an error; the
// defaults are usable as-is, and environment variables override whatever
// the file provides. API keys are only read from the environment so they
// never have to live in a config file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full genedit configuration.
type Config struct {
	AI      AIConfig      `toml:"ai"`
	Logging LoggingConfig `toml:"logging"`
}

// AIConfig configures the generation backend.
type AIConfig struct {
	// Provider is the backend provider ("anthropic", "openai", "gemini",
	// "exec").
	Provider string `toml:"provider"`

	// Model is the model to request from the provider.
	Model string `toml:"model"`

	// MaxTokens is the maximum number of tokens for responses.
	MaxTokens int `toml:"max_tokens"`

	// Temperature is the sampling temperature.
	Temperature float64 `toml:"temperature"`

	// Command is the executable for the exec provider, which receives the
	// prompt on stdin and writes generated text to stdout.
	Command string `toml:"command"`

	// CommandArgs are arguments passed to Command.
	CommandArgs []string `toml:"command_args"`

	// API keys are populated from the environment, never from the file.
	AnthropicAPIKey string `toml:"-"`
	OpenAIAPIKey    string `toml:"-"`
	GeminiAPIKey    string `toml:"-"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is the logging verbosity level ("debug", "info", "warn",
	// "error").
	Level string `toml:"level"`

	// File is the log file path. Empty logs to stderr.
	File string `toml:"file"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		AI: AIConfig{
			Provider:    "anthropic",
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Temperature: 0.2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given TOML file, overlays environment
// variables, and returns the result. A nonexistent file yields defaults
// plus environment overrides; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Not an error; run on defaults.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
