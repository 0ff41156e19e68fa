package backend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/genedit/internal/config"
)

func TestExecProviderEchoesOutput(t *testing.T) {
	p, err := newExec(config.AIConfig{Command: "cat"})
	if err != nil {
		t.Fatalf("newExec failed: %v", err)
	}

	out, err := p.Generate(context.Background(), Request{Prompt: "generated code here\n"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.TrimSpace(out) != "generated code here" {
		t.Errorf("output = %q", out)
	}
}

func TestExecProviderCommandFailure(t *testing.T) {
	p, err := newExec(config.AIConfig{Command: "false"})
	if err != nil {
		t.Fatalf("newExec failed: %v", err)
	}

	if _, err := p.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Error("expected error from failing command")
	}
}

func TestExecProviderCancellation(t *testing.T) {
	p, err := newExec(config.AIConfig{Command: "sleep", CommandArgs: []string{"60"}})
	if err != nil {
		t.Fatalf("newExec failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Generate(ctx, Request{Prompt: "x"})
		done <- err
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Generate after cancel = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled generate did not return")
	}
}

func TestExecProviderEmptyOutput(t *testing.T) {
	p, err := newExec(config.AIConfig{Command: "true"})
	if err != nil {
		t.Fatalf("newExec failed: %v", err)
	}

	_, err = p.Generate(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Generate = %v, want ErrEmptyResponse", err)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.AIConfig
		wantErr error
	}{
		{"exec ok", config.AIConfig{Provider: "exec", Command: "cat"}, nil},
		{"exec missing command", config.AIConfig{Provider: "exec"}, ErrMissingCommand},
		{"anthropic missing key", config.AIConfig{Provider: "anthropic"}, ErrMissingAPIKey},
		{"openai missing key", config.AIConfig{Provider: "openai"}, ErrMissingAPIKey},
		{"gemini missing key", config.AIConfig{Provider: "gemini"}, ErrMissingAPIKey},
		{"unknown", config.AIConfig{Provider: "delphi"}, ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if p.Name() != tt.cfg.Provider {
				t.Errorf("Name = %q, want %q", p.Name(), tt.cfg.Provider)
			}
		})
	}
}

func TestProviderWithConfiguredKeys(t *testing.T) {
	cfg := config.AIConfig{Provider: "anthropic", Model: "claude-sonnet-4-20250514", AnthropicAPIKey: "sk-test"}
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("Name = %q", p.Name())
	}
}
