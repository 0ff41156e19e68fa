package host

import (
	"errors"
	"fmt"
)

var (
	// ErrShutdown indicates the connection has been closed.
	ErrShutdown = errors.New("host connection shut down")

	// ErrDocumentNotOpen indicates the document is not in the mirror.
	ErrDocumentNotOpen = errors.New("document not open")

	// ErrDocumentAlreadyOpen indicates a duplicate didOpen.
	ErrDocumentAlreadyOpen = errors.New("document already open")

	// ErrStaleVersion indicates a change carried a version at or below
	// the one already applied.
	ErrStaleVersion = errors.New("stale document version")
)

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeRequestCancelled = -32800
)
