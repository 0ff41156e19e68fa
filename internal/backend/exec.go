package backend

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dshills/genedit/internal/config"
	"github.com/dshills/genedit/internal/process"
)

// execProvider generates text by spawning a local command, writing the
// prompt to its stdin, and collecting its stdout. Cancellation kills
// the child process.
type execProvider struct {
	command string
	args    []string
}

func newExec(cfg config.AIConfig) (*execProvider, error) {
	if cfg.Command == "" {
		return nil, ErrMissingCommand
	}
	return &execProvider{
		command: cfg.Command,
		args:    cfg.CommandArgs,
	}, nil
}

// Name implements Provider.
func (p *execProvider) Name() string {
	return "exec"
}

// Generate implements Provider.
func (p *execProvider) Generate(ctx context.Context, req Request) (string, error) {
	proc, err := process.New(p.command, exec.Command(p.command, p.args...))
	if err != nil {
		return "", fmt.Errorf("exec backend: %w", err)
	}
	if err := proc.Start(); err != nil {
		return "", fmt.Errorf("exec backend: %w", err)
	}

	// Feed the prompt and close stdin so the command sees EOF.
	go func() {
		_, _ = io.WriteString(proc.Stdin, req.Prompt)
		_ = proc.Stdin.Close()
	}()

	// Kill the child as soon as the request is cancelled.
	watchdone := make(chan struct{})
	defer close(watchdone)
	go func() {
		select {
		case <-ctx.Done():
			_ = proc.Kill()
		case <-watchdone:
		}
	}()

	// Drain stderr concurrently so a chatty command cannot block on a
	// full pipe while stdout is still open.
	stderrCh := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(proc.Stderr)
		stderrCh <- data
	}()

	// Both pipes must be fully read before Wait, which closes them.
	out, readErr := io.ReadAll(proc.Stdout)
	stderr := <-stderrCh
	waitErr := proc.Wait()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if readErr != nil {
		return "", fmt.Errorf("exec backend: reading output: %w", readErr)
	}
	if waitErr != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg != "" {
			return "", fmt.Errorf("exec backend %s: %s: %w", p.command, msg, waitErr)
		}
		return "", fmt.Errorf("exec backend %s: %w", p.command, waitErr)
	}

	text := string(out)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("exec backend: %w", ErrEmptyResponse)
	}
	return text, nil
}
