package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/genedit/internal/backend"
	"github.com/dshills/genedit/internal/block"
	"github.com/dshills/genedit/internal/event"
	"github.com/dshills/genedit/internal/logging"
	"github.com/dshills/genedit/internal/pending"
	"github.com/dshills/genedit/internal/textdoc"
)

// Event topics published by the coordinator.
const (
	// TopicRequestStarted is published when a region has been tracked and
	// the backend call is about to begin.
	TopicRequestStarted event.Topic = "assist.request.started"

	// TopicRequestApplied is published when generated text was written.
	TopicRequestApplied event.Topic = "assist.request.applied"

	// TopicRequestFailed is published on backend or apply failure.
	TopicRequestFailed event.Topic = "assist.request.failed"

	// TopicRequestCancelled is published when a request is cancelled.
	TopicRequestCancelled event.Topic = "assist.request.cancelled"

	// TopicRequestEmpty is published when the backend returned nothing.
	TopicRequestEmpty event.Topic = "assist.request.empty"

	// TopicActiveChanged is published when the number of pending edits
	// changes; the payload is the new count. Drives liveness indicators.
	TopicActiveChanged event.Topic = "assist.active.changed"
)

// Params describes one generation request.
type Params struct {
	// DocID identifies the target document.
	DocID textdoc.DocumentID

	// Text is the document's current content.
	Text string

	// LanguageID is the host's language identifier for the document.
	LanguageID string

	// Selection, when non-nil and non-empty, is the explicit region to
	// replace. When nil or empty, the enclosing block around Cursor is
	// used instead.
	Selection *textdoc.Range

	// Cursor is the cursor position used for block location.
	Cursor textdoc.Position

	// Instruction is what the user asked for.
	Instruction string
}

// Outcome reports how a request ended.
type Outcome struct {
	// ID is the request id.
	ID string

	// State is the terminal state the request reached.
	State State

	// Range is the region the result was applied to, valid only when
	// State is StateApplied. These are the rebased coordinates at write
	// time, not the coordinates captured at request start.
	Range textdoc.Range

	// Err carries failure detail for BackendError and ApplyFailed.
	Err error
}

// Coordinator runs generation requests end to end. All collaborators are
// injected at construction; the coordinator holds no ambient host state
// and is safe for concurrent use.
type Coordinator struct {
	tracker  *pending.Tracker
	provider backend.Provider
	writer   pending.DocumentWriter
	bus      *event.Bus
	log      *logging.Logger

	// Generation defaults, overridable per request in future surface.
	model       string
	maxTokens   int
	temperature float64

	nextID atomic.Uint64

	mu     sync.Mutex
	active map[string]*request
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithGenerationDefaults sets the model, token limit, and temperature
// passed to the backend.
func WithGenerationDefaults(model string, maxTokens int, temperature float64) Option {
	return func(c *Coordinator) {
		c.model = model
		c.maxTokens = maxTokens
		c.temperature = temperature
	}
}

// WithLogger sets the coordinator's logger. Defaults to the null logger.
func WithLogger(log *logging.Logger) Option {
	return func(c *Coordinator) {
		c.log = log.WithComponent("assist")
	}
}

// NewCoordinator creates a coordinator wired to its collaborators.
// The bus may be nil when no one listens for lifecycle events.
func NewCoordinator(tracker *pending.Tracker, provider backend.Provider, writer pending.DocumentWriter, bus *event.Bus, opts ...Option) *Coordinator {
	c := &Coordinator{
		tracker:  tracker,
		provider: provider,
		writer:   writer,
		bus:      bus,
		log:      logging.Null,
		active:   make(map[string]*request),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ActiveCount returns the number of pending edits currently tracked.
func (c *Coordinator) ActiveCount() int {
	return c.tracker.ActiveCount()
}

// OnMutation forwards a host mutation event to the tracker.
func (c *Coordinator) OnMutation(ev textdoc.MutationEvent) {
	c.tracker.OnMutation(ev)
}

// Cancel cancels an active request. The request resolves as Cancelled
// and its tracker entry is removed; cancelling an unknown or already
// finished id returns ErrUnknownRequest.
func (c *Coordinator) Cancel(id string) error {
	c.mu.Lock()
	req, ok := c.active[id]
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRequest, id)
	}
	req.cancel()
	return nil
}

// Job is an accepted generation request. Begin has captured its target
// region and registered it with the tracker; Run drives it through the
// backend round trip to a terminal state.
type Job struct {
	c      *Coordinator
	req    *request
	ctx    context.Context
	cancel context.CancelFunc
	prompt string
}

// ID returns the request id, usable with Cancel while the job runs.
func (j *Job) ID() string { return j.req.id }

// Begin validates a request, captures its target region, and registers
// it with the tracker. The capture and the Track call happen before
// Begin returns, so a caller that invokes Begin in the same ordering
// domain as its mutation feed is guaranteed every later mutation rebases
// the tracked range. The returned error is non-nil only for requests
// that never reached tracking (no instruction, no enclosing block).
// On success the caller must call Run exactly once.
func (c *Coordinator) Begin(ctx context.Context, p Params) (*Job, error) {
	if strings.TrimSpace(p.Instruction) == "" {
		return nil, ErrMissingInstruction
	}

	id := fmt.Sprintf("req-%d", c.nextID.Add(1))
	ctx, cancel := context.WithCancel(ctx)

	req := &request{id: id, docID: p.DocID, state: StateCreated, cancel: cancel}

	// Capture the target region: explicit selection, else enclosing block.
	rng, code, err := c.captureContext(p)
	if err != nil {
		cancel()
		return nil, err
	}
	req.setState(StateContextCaptured)

	if err := c.tracker.Track(id, p.DocID, rng); err != nil {
		// Ids are generated from a process-wide counter; a collision is a
		// programmer error and is surfaced, not retried.
		cancel()
		return nil, err
	}
	req.setState(StateTracked)
	c.register(req)
	c.publish(TopicRequestStarted, id)
	c.log.Debug("request %s tracking %s %v", id, p.DocID, rng)

	return &Job{
		c:      c,
		req:    req,
		ctx:    ctx,
		cancel: cancel,
		prompt: ComposePrompt(p.Instruction, code, p.LanguageID),
	}, nil
}

// Run blocks for the backend round trip and the document write and
// returns the terminal outcome. Backend and apply failures are reported
// in the Outcome, not as errors.
func (j *Job) Run() Outcome {
	c, req, id := j.c, j.req, j.req.id
	defer j.cancel()
	defer c.unregister(id)

	req.setState(StateAwaitingBackend)

	text, err := c.provider.Generate(j.ctx, backend.Request{
		Prompt:      j.prompt,
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || j.ctx.Err() != nil {
			return c.finish(req, Outcome{ID: id, State: StateCancelled}, TopicRequestCancelled)
		}
		c.log.Warn("request %s backend failure: %v", id, err)
		return c.finish(req, Outcome{ID: id, State: StateBackendError, Err: err}, TopicRequestFailed)
	}

	generated := backend.StripFences(text)
	if generated == "" {
		return c.finish(req, Outcome{ID: id, State: StateEmptyResult}, TopicRequestEmpty)
	}

	// Cancellation asserted after the backend completed: skip the write.
	if j.ctx.Err() != nil {
		return c.finish(req, Outcome{ID: id, State: StateCancelled}, TopicRequestCancelled)
	}

	applied, ok, err := c.tracker.ApplyAndRemove(j.ctx, id, generated, c.writer)
	if err != nil || !ok {
		if err == nil {
			err = ErrApplyTargetMissing
		}
		c.log.Warn("request %s apply failure: %v", id, err)
		req.setState(StateApplyFailed)
		c.publish(TopicRequestFailed, id)
		return Outcome{ID: id, State: StateApplyFailed, Err: err}
	}

	req.setState(StateApplied)
	c.publish(TopicRequestApplied, id)
	c.log.Info("request %s applied at %v", id, applied)
	return Outcome{ID: id, State: StateApplied, Range: applied}
}

// Generate runs one request to a terminal state: Begin followed by Run.
// It blocks; callers that need the tracking phase ordered against a
// mutation feed call Begin themselves and run the job on a goroutine.
func (c *Coordinator) Generate(ctx context.Context, p Params) (Outcome, error) {
	job, err := c.Begin(ctx, p)
	if err != nil {
		return Outcome{State: StateCreated}, err
	}
	return job.Run(), nil
}

// captureContext resolves the target range and its current text.
func (c *Coordinator) captureContext(p Params) (textdoc.Range, string, error) {
	idx := textdoc.NewIndex(p.Text)

	if p.Selection != nil && !p.Selection.IsEmpty() {
		return *p.Selection, idx.Slice(*p.Selection), nil
	}

	cursor := p.Cursor
	if p.Selection != nil {
		// An empty selection is just a cursor.
		cursor = p.Selection.Start
	}

	b, ok := block.Locate(p.Text, idx.OffsetFor(cursor))
	if !ok {
		return textdoc.Range{}, "", ErrNoEnclosingBlock
	}

	rng := textdoc.Range{
		Start: idx.PositionFor(b.Start),
		End:   idx.PositionFor(b.End),
	}
	return rng, b.Text, nil
}

// finish records a terminal state that must still drop the tracker entry.
func (c *Coordinator) finish(req *request, out Outcome, topic event.Topic) Outcome {
	c.tracker.Remove(req.id)
	req.setState(out.State)
	c.publish(topic, req.id)
	return out
}

func (c *Coordinator) register(req *request) {
	c.mu.Lock()
	c.active[req.id] = req
	c.mu.Unlock()
}

func (c *Coordinator) unregister(id string) {
	c.mu.Lock()
	delete(c.active, id)
	c.mu.Unlock()
}

func (c *Coordinator) publish(topic event.Topic, requestID string) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(event.New(topic, requestID, "assist"))
}
