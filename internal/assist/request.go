package assist

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/genedit/internal/textdoc"
)

// State represents a request's position in its lifecycle.
type State int

const (
	// StateCreated indicates the request exists but has captured nothing.
	StateCreated State = iota
	// StateContextCaptured indicates the target region and code are known.
	StateContextCaptured
	// StateTracked indicates the region is registered with the tracker.
	StateTracked
	// StateAwaitingBackend indicates the backend call is outstanding.
	StateAwaitingBackend
	// StateApplied indicates the generated text was written to the document.
	StateApplied
	// StateEmptyResult indicates the backend returned nothing usable.
	StateEmptyResult
	// StateBackendError indicates the backend call failed.
	StateBackendError
	// StateApplyFailed indicates the write failed, typically because the
	// document or view disappeared during the round trip.
	StateApplyFailed
	// StateCancelled indicates the request was cancelled before applying.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateContextCaptured:
		return "context-captured"
	case StateTracked:
		return "tracked"
	case StateAwaitingBackend:
		return "awaiting-backend"
	case StateApplied:
		return "applied"
	case StateEmptyResult:
		return "empty-result"
	case StateBackendError:
		return "backend-error"
	case StateApplyFailed:
		return "apply-failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Terminal returns true for states that end a request. Terminal states
// always imply the tracker entry has been removed.
func (s State) Terminal() bool {
	switch s {
	case StateApplied, StateEmptyResult, StateBackendError, StateApplyFailed, StateCancelled:
		return true
	}
	return false
}

// request is the coordinator's in-flight bookkeeping for one generation.
type request struct {
	id    string
	docID textdoc.DocumentID

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

func (r *request) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}
