package process

import (
	"errors"
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestProcessLifecycle(t *testing.T) {
	p, err := New("cat", exec.Command("cat"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.State() != StateCreated {
		t.Errorf("initial state = %v, want created", p.State())
	}

	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !p.IsRunning() {
		t.Error("process should be running")
	}
	if err := p.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}

	if _, err := io.WriteString(p.Stdin, "hello\n"); err != nil {
		t.Fatalf("write stdin: %v", err)
	}
	if err := p.Stdin.Close(); err != nil {
		t.Fatalf("close stdin: %v", err)
	}

	// The pipes are drained before Wait collects the exit.
	out, err := io.ReadAll(p.Stdout)
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Errorf("stdout = %q, want hello", out)
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	select {
	case <-p.Done():
	default:
		t.Error("Done must be closed after Wait returns")
	}

	if p.State() != StateExited {
		t.Errorf("final state = %v, want exited", p.State())
	}
	if p.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", p.ExitCode())
	}
}

func TestProcessKill(t *testing.T) {
	p, err := New("sleep", exec.Command("sleep", "60"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := p.Kill(); err != nil {
		t.Fatalf("Kill failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Wait() }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Wait after kill should report the signal")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("killed process did not exit")
	}

	if p.State() != StateKilled {
		t.Errorf("state after kill = %v, want killed", p.State())
	}
}

func TestWaitPreservesLargeOutput(t *testing.T) {
	// A payload bigger than the pipe buffer: if Wait ran before the
	// reads finished, the read side would see a closed pipe and the
	// output would be truncated or lost.
	p, err := New("cat", exec.Command("cat"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	payload := strings.Repeat("0123456789abcdef", 16*1024) // 256 KiB
	go func() {
		_, _ = io.WriteString(p.Stdin, payload)
		_ = p.Stdin.Close()
	}()

	out, err := io.ReadAll(p.Stdout)
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	if err := p.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if len(out) != len(payload) {
		t.Errorf("read %d bytes, want %d", len(out), len(payload))
	}
}

func TestWaitOnUnstartedProcess(t *testing.T) {
	p, err := New("cat", exec.Command("cat"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Wait(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Wait on unstarted = %v, want ErrNotStarted", err)
	}
}

func TestSignalOnUnstartedProcess(t *testing.T) {
	p, err := New("cat", exec.Command("cat"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Kill(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Kill on unstarted = %v, want ErrNotStarted", err)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "created"},
		{StateRunning, "running"},
		{StateExited, "exited"},
		{StateKilled, "killed"},
		{State(99), "unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
