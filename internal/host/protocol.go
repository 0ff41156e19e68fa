package host

import "github.com/dshills/genedit/internal/textdoc"

// Methods the host sends to the engine.
const (
	MethodDidOpen   = "document/didOpen"
	MethodDidChange = "document/didChange"
	MethodDidClose  = "document/didClose"
	MethodGenerate  = "generate"
	MethodCancel    = "cancel"
	MethodShutdown  = "shutdown"
)

// MethodApplyEdit is the call the engine makes back to the host to
// write generated text into a document.
const MethodApplyEdit = "workspace/applyEdit"

// DidOpenParams announces a document the host has opened.
type DidOpenParams struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// DidChangeParams carries one batch of content changes. Changes are
// expressed against the document state produced by the previous batch
// and are applied in array order.
type DidChangeParams struct {
	URI     string                  `json:"uri"`
	Version int                     `json:"version"`
	Changes []textdoc.ContentChange `json:"changes"`
}

// DidCloseParams announces a closed document.
type DidCloseParams struct {
	URI string `json:"uri"`
}

// GenerateParams asks for code generation in an open document.
type GenerateParams struct {
	URI         string           `json:"uri"`
	Instruction string           `json:"instruction"`
	Selection   *textdoc.Range   `json:"selection,omitempty"`
	Cursor      textdoc.Position `json:"cursor"`
}

// GenerateResult reports the terminal state of a generation request.
// The response is sent when the request finishes, not when it starts;
// the host learns the id earlier from the assist.request.started event
// if it subscribes, or can cancel by id after reading it here.
type GenerateResult struct {
	RequestID string         `json:"requestId"`
	State     string         `json:"state"`
	Range     *textdoc.Range `json:"range,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// CancelParams cancels an in-flight generation request.
type CancelParams struct {
	RequestID string `json:"requestId"`
}

// ApplyEditParams is the payload of a workspace/applyEdit call.
type ApplyEditParams struct {
	URI   string        `json:"uri"`
	Range textdoc.Range `json:"range"`
	Text  string        `json:"text"`
}

// ApplyEditResult is the host's answer to workspace/applyEdit.
type ApplyEditResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}
