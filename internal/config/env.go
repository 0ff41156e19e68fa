package config

import (
	"os"
	"strconv"
)

// Environment variables recognized by genedit. Values override the
// config file.
const (
	EnvLogLevel     = "GENEDIT_LOG_LEVEL"
	EnvLogFile      = "GENEDIT_LOG_FILE"
	EnvProvider     = "GENEDIT_PROVIDER"
	EnvModel        = "GENEDIT_MODEL"
	EnvMaxTokens    = "GENEDIT_MAX_TOKENS"
	EnvCommand      = "GENEDIT_COMMAND"
	EnvAnthropicKey = "GENEDIT_ANTHROPIC_KEY"
	EnvOpenAIKey    = "GENEDIT_OPENAI_KEY"
	EnvGeminiKey    = "GENEDIT_GEMINI_KEY"
)

// applyEnv overlays environment variables onto the configuration.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv(EnvProvider); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AI.MaxTokens = n
		}
	}
	if v := os.Getenv(EnvCommand); v != "" {
		cfg.AI.Command = v
	}

	// Keys fall back to the SDKs' own conventional variables so a user
	// with ANTHROPIC_API_KEY already exported need not set anything.
	cfg.AI.AnthropicAPIKey = firstEnv(EnvAnthropicKey, "ANTHROPIC_API_KEY")
	cfg.AI.OpenAIAPIKey = firstEnv(EnvOpenAIKey, "OPENAI_API_KEY")
	cfg.AI.GeminiAPIKey = firstEnv(EnvGeminiKey, "GEMINI_API_KEY")
}

// firstEnv returns the first non-empty value among the named variables.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
