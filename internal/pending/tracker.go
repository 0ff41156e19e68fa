package pending

import (
	"context"
	"sync"

	"github.com/dshills/genedit/internal/textdoc"
)

// DocumentWriter applies replacements to the host's documents.
// Replace reports false when the target document or editor view is no
// longer available; that is an outcome, not a panic-worthy failure.
type DocumentWriter interface {
	Replace(ctx context.Context, docID textdoc.DocumentID, r textdoc.Range, text string) (bool, error)
}

// Edit is a snapshot of one pending edit's current state.
type Edit struct {
	ID    string
	DocID textdoc.DocumentID
	Range textdoc.Range
}

// Tracker owns the id → (document, range) mapping for in-flight
// generation requests. It consumes the host's mutation feed and rebases
// every affected range, so a write issued after an arbitrary round-trip
// delay still lands on the region the request originally targeted.
// All operations are safe for concurrent use.
type Tracker struct {
	mu    sync.RWMutex
	edits map[string]*trackedEdit

	// onCountChange, if set, is invoked with the new active count after
	// every registration or removal. Used for liveness indicators.
	onCountChange func(int)
}

// trackedEdit is the mutable tracker entry. The Range field is replaced
// wholesale on every rebase; Range values themselves are immutable.
type trackedEdit struct {
	id    string
	docID textdoc.DocumentID
	rng   textdoc.Range
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithCountListener registers a callback invoked with the number of
// pending edits after every change to that number.
func WithCountListener(fn func(int)) TrackerOption {
	return func(t *Tracker) {
		t.onCountChange = fn
	}
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		edits: make(map[string]*trackedEdit),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track registers a new pending edit for the given document region.
// Returns ErrDuplicateID if the id is already tracked and ErrInvalidRange
// if the range's start is after its end. Ids must be fresh for every
// request and are never reused while their edit is active.
func (t *Tracker) Track(id string, docID textdoc.DocumentID, r textdoc.Range) error {
	if !r.IsValid() {
		return ErrInvalidRange
	}

	t.mu.Lock()
	if _, exists := t.edits[id]; exists {
		t.mu.Unlock()
		return ErrDuplicateID
	}
	t.edits[id] = &trackedEdit{id: id, docID: docID, rng: r}
	count := len(t.edits)
	t.mu.Unlock()

	t.notifyCount(count)
	return nil
}

// Remove untracks an edit without side effects. Removing an unknown id
// is a no-op, which keeps cancellation idempotent against races with
// completion paths.
func (t *Tracker) Remove(id string) {
	t.mu.Lock()
	_, existed := t.edits[id]
	delete(t.edits, id)
	count := len(t.edits)
	t.mu.Unlock()

	if existed {
		t.notifyCount(count)
	}
}

// Get returns a snapshot of the pending edit for id.
func (t *Tracker) Get(id string) (Edit, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.edits[id]
	if !ok {
		return Edit{}, false
	}
	return Edit{ID: e.id, DocID: e.docID, Range: e.rng}, true
}

// ActiveCount returns the current number of pending edits.
func (t *Tracker) ActiveCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.edits)
}

// OnMutation rebases every pending edit on the event's document through
// each content change in the order given. A single host edit operation
// may batch several changes; each composes with the result of the
// previous one, not with the original range. Events for documents with
// no pending edits are ignored. Rebasing never fails.
func (t *Tracker) OnMutation(event textdoc.MutationEvent) {
	if len(event.Changes) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.edits {
		if e.docID != event.DocID {
			continue
		}
		e.rng = RebaseAll(e.rng, event.Changes)
	}
}

// ApplyAndRemove materializes a pending edit: it asks the writer to
// replace the edit's current, rebased range with newText. The entry is
// removed on every outcome, including write failure and writer error,
// so a vanished document cannot leak a stale tracked range. The returned
// range is the one handed to the writer, consumed atomically with the
// removal, so callers can report exactly where the edit landed. The
// boolean reports whether the write succeeded; ErrNotTracked is returned
// when the id is unknown.
func (t *Tracker) ApplyAndRemove(ctx context.Context, id string, newText string, writer DocumentWriter) (textdoc.Range, bool, error) {
	t.mu.Lock()
	e, ok := t.edits[id]
	if !ok {
		t.mu.Unlock()
		return textdoc.Range{}, false, ErrNotTracked
	}
	delete(t.edits, id)
	count := len(t.edits)
	docID, rng := e.docID, e.rng
	t.mu.Unlock()

	t.notifyCount(count)

	applied, err := writer.Replace(ctx, docID, rng, newText)
	return rng, applied, err
}

func (t *Tracker) notifyCount(count int) {
	if t.onCountChange != nil {
		t.onCountChange(count)
	}
}
