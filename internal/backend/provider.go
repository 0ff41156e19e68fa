package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/genedit/internal/config"
)

// Standard errors returned by providers.
var (
	// ErrMissingAPIKey indicates the provider has no API key configured.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrMissingCommand indicates the exec provider has no command
	// configured.
	ErrMissingCommand = errors.New("missing exec backend command")

	// ErrEmptyResponse indicates the backend returned no usable text.
	ErrEmptyResponse = errors.New("backend returned empty response")

	// ErrUnknownProvider indicates an unrecognized provider name.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Request carries one generation call's parameters.
type Request struct {
	// Prompt is the fully composed prompt text.
	Prompt string

	// Model overrides the provider's configured model when non-empty.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64
}

// Provider generates text for a prompt. Generate must honor ctx: once
// the context is cancelled it returns ctx.Err() (possibly wrapped) and
// never a success.
type Provider interface {
	// Name returns the provider's configured name.
	Name() string

	// Generate returns the generated text for the request.
	Generate(ctx context.Context, req Request) (string, error)
}

// New constructs the provider named by the configuration.
func New(cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return newAnthropic(cfg)
	case "openai":
		return newOpenAI(cfg)
	case "gemini":
		return newGemini(cfg)
	case "exec":
		return newExec(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
