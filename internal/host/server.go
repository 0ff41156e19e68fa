package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/genedit/internal/assist"
	"github.com/dshills/genedit/internal/logging"
	"github.com/dshills/genedit/internal/textdoc"
)

// Job is one accepted generation request; Run blocks to its terminal
// outcome.
type Job interface {
	ID() string
	Run() assist.Outcome
}

// Engine is the surface the server drives. Begin must do its context
// capture and tracking before returning, so that calling it in dispatch
// order keeps tracked ranges consistent with the mutation feed.
type Engine interface {
	Begin(ctx context.Context, p assist.Params) (Job, error)
	Cancel(id string) error
	OnMutation(ev textdoc.MutationEvent)
}

// NewEngine adapts a coordinator to the Engine interface.
func NewEngine(c *assist.Coordinator) Engine {
	return coordEngine{c: c}
}

type coordEngine struct {
	c *assist.Coordinator
}

func (e coordEngine) Begin(ctx context.Context, p assist.Params) (Job, error) {
	job, err := e.c.Begin(ctx, p)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (e coordEngine) Cancel(id string) error { return e.c.Cancel(id) }

func (e coordEngine) OnMutation(ev textdoc.MutationEvent) { e.c.OnMutation(ev) }

// Server dispatches host messages to the engine. It owns the document
// mirror; generation requests read their text from it so the engine
// works from the same bytes the host last sent.
type Server struct {
	conn   *Conn
	store  *Store
	engine Engine
	log    *logging.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the server's logger. Defaults to the null logger.
func WithServerLogger(log *logging.Logger) ServerOption {
	return func(s *Server) {
		s.log = log.WithComponent("host")
	}
}

// NewServer creates a server over an established connection.
func NewServer(conn *Conn, store *Store, engine Engine, opts ...ServerOption) *Server {
	s := &Server{conn: conn, store: store, engine: engine, log: logging.Null}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves the connection until the context is cancelled or the host
// closes its end.
func (s *Server) Run(ctx context.Context) error {
	return s.conn.Serve(ctx, s)
}

// Handle implements Handler. It runs on the connection's read loop, so
// every branch here is ordered with the mutation feed; only the backend
// round trip of a generation request leaves this goroutine.
func (s *Server) Handle(ctx context.Context, conn *Conn, in *Incoming) {
	switch in.Method {
	case MethodDidOpen:
		s.didOpen(in)
	case MethodDidChange:
		s.didChange(in)
	case MethodDidClose:
		s.didClose(in)
	case MethodGenerate:
		s.generate(ctx, in)
	case MethodCancel:
		s.cancel(in)
	case MethodShutdown:
		s.reply(in, nil)
		_ = conn.Close()
	default:
		s.log.Warn("unknown method %q", in.Method)
		if !in.IsNotification() {
			_ = conn.ReplyError(in.ID, CodeMethodNotFound, fmt.Sprintf("unknown method %q", in.Method))
		}
	}
}

func (s *Server) didOpen(in *Incoming) {
	var p DidOpenParams
	if err := json.Unmarshal(in.Params, &p); err != nil {
		s.invalidParams(in, err)
		return
	}
	if err := s.store.Open(p.URI, p.LanguageID, p.Version, p.Text); err != nil {
		s.log.Warn("didOpen %s: %v", p.URI, err)
		return
	}
	s.log.Debug("opened %s (%s, v%d)", p.URI, p.LanguageID, p.Version)
}

func (s *Server) didChange(in *Incoming) {
	var p DidChangeParams
	if err := json.Unmarshal(in.Params, &p); err != nil {
		s.invalidParams(in, err)
		return
	}
	if err := s.store.Apply(p.URI, p.Version, p.Changes); err != nil {
		s.log.Warn("didChange %s: %v", p.URI, err)
		return
	}
	// Pending ranges rebase against the same batch the mirror applied.
	s.engine.OnMutation(textdoc.MutationEvent{
		DocID:   textdoc.DocumentID(p.URI),
		Changes: p.Changes,
	})
}

func (s *Server) didClose(in *Incoming) {
	var p DidCloseParams
	if err := json.Unmarshal(in.Params, &p); err != nil {
		s.invalidParams(in, err)
		return
	}
	if err := s.store.Close(p.URI); err != nil {
		s.log.Warn("didClose %s: %v", p.URI, err)
	}
}

func (s *Server) generate(ctx context.Context, in *Incoming) {
	var p GenerateParams
	if err := json.Unmarshal(in.Params, &p); err != nil {
		s.invalidParams(in, err)
		return
	}

	doc, ok := s.store.Get(p.URI)
	if !ok {
		s.replyError(in, CodeInvalidParams, fmt.Sprintf("document not open: %s", p.URI))
		return
	}

	// Begin runs here, on the read loop: the snapshot, the capture, and
	// the Track all land before any later didChange is dispatched, so
	// the tracked range sees every subsequent mutation.
	job, err := s.engine.Begin(ctx, assist.Params{
		DocID:       textdoc.DocumentID(p.URI),
		Text:        doc.Text,
		LanguageID:  doc.LanguageID,
		Selection:   p.Selection,
		Cursor:      p.Cursor,
		Instruction: p.Instruction,
	})
	if err != nil {
		s.replyError(in, CodeInvalidParams, err.Error())
		return
	}

	// Only the blocking round trip leaves the read loop.
	go func() {
		out := job.Run()

		res := GenerateResult{RequestID: out.ID, State: out.State.String()}
		if out.State == assist.StateApplied {
			r := out.Range
			res.Range = &r
		}
		if out.Err != nil {
			res.Error = out.Err.Error()
		}
		s.reply(in, res)
	}()
}

func (s *Server) cancel(in *Incoming) {
	var p CancelParams
	if err := json.Unmarshal(in.Params, &p); err != nil {
		s.invalidParams(in, err)
		return
	}
	if err := s.engine.Cancel(p.RequestID); err != nil {
		if errors.Is(err, assist.ErrUnknownRequest) {
			s.replyError(in, CodeRequestCancelled, err.Error())
		} else {
			s.replyError(in, CodeInternalError, err.Error())
		}
		return
	}
	s.reply(in, nil)
}

func (s *Server) reply(in *Incoming, result any) {
	if in.IsNotification() {
		return
	}
	if err := s.conn.Reply(in.ID, result); err != nil {
		s.log.Error("reply to %s: %v", in.Method, err)
	}
}

func (s *Server) replyError(in *Incoming, code int, message string) {
	if in.IsNotification() {
		return
	}
	if err := s.conn.ReplyError(in.ID, code, message); err != nil {
		s.log.Error("error reply to %s: %v", in.Method, err)
	}
}

func (s *Server) invalidParams(in *Incoming, err error) {
	s.log.Warn("%s: bad params: %v", in.Method, err)
	s.replyError(in, CodeInvalidParams, err.Error())
}
