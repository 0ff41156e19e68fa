package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Incoming is one request or notification read from the host. ID is the
// raw JSON id token, nil for notifications.
type Incoming struct {
	ID     json.RawMessage
	Method string
	Params json.RawMessage
}

// IsNotification reports whether the message carries no id and so
// expects no reply.
func (in *Incoming) IsNotification() bool { return in.ID == nil }

// Handler processes messages read from the host. Handle is called on
// the read-loop goroutine, one message at a time, in the exact order
// the host sent them; that ordering is what keeps document mutation
// batches and request tracking consistent. Implementations hand
// long-running work (backend round trips) to their own goroutines and
// return promptly.
type Handler interface {
	Handle(ctx context.Context, conn *Conn, in *Incoming)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, conn *Conn, in *Incoming)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, conn *Conn, in *Incoming) { f(ctx, conn, in) }

// Conn is a bidirectional JSON-RPC 2.0 connection with Content-Length
// framing. Inbound requests go to the Handler passed to Serve; outbound
// requests are issued with Call and matched to responses by id.
type Conn struct {
	reader *bufio.Reader
	writer io.Writer
	closer io.Closer

	writeMu sync.Mutex

	nextID  atomic.Int64
	mu      sync.Mutex
	pending map[int64]chan []byte

	closed atomic.Bool
	done   chan struct{}
}

// NewConn creates a connection over the given streams. closer may be nil.
func NewConn(r io.Reader, w io.Writer, closer io.Closer) *Conn {
	return &Conn{
		reader:  bufio.NewReaderSize(r, 64*1024),
		writer:  w,
		closer:  closer,
		pending: make(map[int64]chan []byte),
		done:    make(chan struct{}),
	}
}

// Close shuts the connection down. Pending Call invocations resolve
// with ErrShutdown.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	close(c.done)

	c.mu.Lock()
	c.pending = make(map[int64]chan []byte)
	c.mu.Unlock()

	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// Serve reads messages until the context is cancelled, the connection
// is closed, or the stream ends. Inbound requests and notifications are
// delivered to h synchronously in arrival order; responses to outbound
// calls are routed to their waiting callers.
func (c *Conn) Serve(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return ErrShutdown
		default:
		}

		data, err := c.readMessage()
		if err != nil {
			if c.closed.Load() || err == io.EOF || err == io.ErrClosedPipe {
				return nil
			}
			return err
		}

		c.dispatch(ctx, h, data)
	}
}

// Call sends a request to the host and decodes the result into result,
// which may be nil when the caller ignores it.
func (c *Conn) Call(ctx context.Context, method string, params any, result any) error {
	if c.closed.Load() {
		return ErrShutdown
	}

	id := c.nextID.Add(1)
	ch := make(chan []byte, 1)

	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	msg := []byte(`{"jsonrpc":"2.0"}`)
	msg, _ = sjson.SetBytes(msg, "id", id)
	msg, _ = sjson.SetBytes(msg, "method", method)
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
		msg, _ = sjson.SetRawBytes(msg, "params", raw)
	}
	if err := c.send(msg); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrShutdown
	case data := <-ch:
		if errField := gjson.GetBytes(data, "error"); errField.Exists() {
			rpcErr := &RPCError{}
			if err := json.Unmarshal([]byte(errField.Raw), rpcErr); err != nil {
				return fmt.Errorf("malformed error object: %w", err)
			}
			return rpcErr
		}
		if result != nil {
			if res := gjson.GetBytes(data, "result"); res.Exists() {
				if err := json.Unmarshal([]byte(res.Raw), result); err != nil {
					return fmt.Errorf("unmarshal result: %w", err)
				}
			}
		}
		return nil
	}
}

// Notify sends a notification, expecting no response.
func (c *Conn) Notify(method string, params any) error {
	if c.closed.Load() {
		return ErrShutdown
	}

	msg := []byte(`{"jsonrpc":"2.0"}`)
	msg, _ = sjson.SetBytes(msg, "method", method)
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
		msg, _ = sjson.SetRawBytes(msg, "params", raw)
	}
	return c.send(msg)
}

// Reply answers an inbound request with a result.
func (c *Conn) Reply(id json.RawMessage, result any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	msg := []byte(`{"jsonrpc":"2.0"}`)
	msg, _ = sjson.SetRawBytes(msg, "id", id)
	msg, _ = sjson.SetRawBytes(msg, "result", raw)
	return c.send(msg)
}

// ReplyError answers an inbound request with a JSON-RPC error.
func (c *Conn) ReplyError(id json.RawMessage, code int, message string) error {
	msg := []byte(`{"jsonrpc":"2.0"}`)
	msg, _ = sjson.SetRawBytes(msg, "id", id)
	msg, _ = sjson.SetBytes(msg, "error.code", code)
	msg, _ = sjson.SetBytes(msg, "error.message", message)
	return c.send(msg)
}

// send writes one framed message.
func (c *Conn) send(body []byte) error {
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := io.WriteString(c.writer, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := c.writer.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// readMessage reads one framed message body.
func (c *Conn) readMessage() ([]byte, error) {
	var contentLength int
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(strings.ToLower(line), "content-length:"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("bad Content-Length: %w", err)
			}
			contentLength = n
		}
		// Other headers are ignored.
	}

	if contentLength <= 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(c.reader, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// dispatch routes one message: a response to an outbound call goes to
// its waiter, anything with a method goes to the handler on this
// goroutine so delivery order is the wire order.
func (c *Conn) dispatch(ctx context.Context, h Handler, data []byte) {
	id := gjson.GetBytes(data, "id")
	method := gjson.GetBytes(data, "method")

	if id.Exists() && !method.Exists() {
		c.handleResponse(id.Int(), data)
		return
	}

	if !method.Exists() {
		return
	}

	in := &Incoming{Method: method.String()}
	if id.Exists() {
		in.ID = json.RawMessage(id.Raw)
	}
	if params := gjson.GetBytes(data, "params"); params.Exists() {
		in.Params = json.RawMessage(params.Raw)
	}

	h.Handle(ctx, c, in)
}

func (c *Conn) handleResponse(id int64, data []byte) {
	if c.closed.Load() {
		return
	}

	c.mu.Lock()
	ch, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if ok {
		select {
		case ch <- data:
		default:
		}
	}
}
