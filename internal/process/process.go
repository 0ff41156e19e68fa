// Package process provides managed child processes for the exec
// generation backend: lifecycle state, exit tracking, and signal
// delivery around exec.Cmd.
package process

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Standard errors returned by the process package.
var (
	// ErrNotStarted indicates the process has not been started.
	ErrNotStarted = errors.New("process not started")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("process already started")
)

// State represents the state of a process.
type State int

const (
	// StateCreated indicates the process has been created but not started.
	StateCreated State = iota
	// StateRunning indicates the process is currently running.
	StateRunning
	// StateExited indicates the process has exited normally or with an error.
	StateExited
	// StateKilled indicates the process was killed by a signal.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Process wraps an exec.Cmd with lifecycle management, exit tracking,
// and piped standard I/O. It is safe for concurrent use.
type Process struct {
	// Name is a human-readable name for the process.
	Name string

	// Cmd is the underlying exec.Cmd.
	Cmd *exec.Cmd

	// Stdin provides write access to the process's stdin.
	Stdin io.WriteCloser

	// Stdout provides read access to the process's stdout.
	Stdout io.ReadCloser

	// Stderr provides read access to the process's stderr.
	Stderr io.ReadCloser

	// Started is the time the process was started.
	Started time.Time

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error

	waitOnce sync.Once
}

// New creates a Process wrapping the given command and pipes its
// standard streams. The command must not have been started.
func New(name string, cmd *exec.Cmd) (*Process, error) {
	p := &Process{
		Name: name,
		Cmd:  cmd,
		done: make(chan struct{}),
	}
	p.state.Store(int32(StateCreated))
	p.exitCode.Store(-1) // -1 indicates not exited

	var err error
	if p.Stdin, err = cmd.StdinPipe(); err != nil {
		return nil, fmt.Errorf("pipe stdin: %w", err)
	}
	if p.Stdout, err = cmd.StdoutPipe(); err != nil {
		return nil, fmt.Errorf("pipe stdout: %w", err)
	}
	if p.Stderr, err = cmd.StderrPipe(); err != nil {
		return nil, fmt.Errorf("pipe stderr: %w", err)
	}

	return p, nil
}

// Start launches the process. The caller collects the exit with Wait
// once it has finished reading the output pipes.
func (p *Process) Start() error {
	if p.State() != StateCreated {
		return ErrAlreadyStarted
	}

	if err := p.Cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}

	p.Started = time.Now()
	p.state.Store(int32(StateRunning))
	return nil
}

// State returns the current process state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ExitCode returns the process exit code, or -1 if it has not exited.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns any error from waiting on the process.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Done returns a channel that is closed once Wait has recorded the
// process exit.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// IsRunning returns true if the process is currently running.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// Signal sends a signal to the process.
func (p *Process) Signal(sig os.Signal) error {
	if !p.IsRunning() || p.Cmd.Process == nil {
		return ErrNotStarted
	}
	return p.Cmd.Process.Signal(sig)
}

// Kill sends SIGKILL to the process.
func (p *Process) Kill() error {
	return p.Signal(syscall.SIGKILL)
}

// Wait blocks until the process exits and records the outcome. Per the
// os/exec pipe contract it must not run before all reads from Stdout
// and Stderr have completed, since Cmd.Wait closes the pipes. Wait is
// safe to call from multiple goroutines; every caller observes the same
// recorded outcome. The returned error is the exit error, if any.
func (p *Process) Wait() error {
	if p.State() == StateCreated {
		return ErrNotStarted
	}

	p.waitOnce.Do(func() {
		err := p.Cmd.Wait()

		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()

		exitCode := 0
		state := StateExited

		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
				if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
					state = StateKilled
				}
			} else {
				exitCode = -1
			}
		}

		p.exitCode.Store(int32(exitCode))
		p.state.Store(int32(state))
		close(p.done)
	})

	<-p.done
	return p.ExitError()
}
