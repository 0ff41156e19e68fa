package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/dshills/genedit/internal/config"
)

// geminiProvider generates text through the Google Gemini API.
// The genai client is created per call because its constructor requires
// a context; generation calls are infrequent enough that this does not
// matter.
type geminiProvider struct {
	apiKey string
	model  string
}

func newGemini(cfg config.AIConfig) (*geminiProvider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	return &geminiProvider{
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.Model,
	}, nil
}

// Name implements Provider.
func (p *geminiProvider) Name() string {
	return "gemini"
}

// Generate implements Provider.
func (p *geminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer client.Close()

	name := p.model
	if req.Model != "" {
		name = req.Model
	}

	model := client.GenerativeModel(name)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("gemini: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return sb.String(), nil
}
