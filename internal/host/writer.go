package host

import (
	"context"
	"fmt"

	"github.com/dshills/genedit/internal/textdoc"
)

// EditWriter sends generated text to the host as workspace/applyEdit
// calls. It satisfies pending.DocumentWriter, so tracked ranges are
// rebased right up to the moment the call is issued.
type EditWriter struct {
	conn *Conn
}

// NewEditWriter creates a writer over an established connection.
func NewEditWriter(conn *Conn) *EditWriter {
	return &EditWriter{conn: conn}
}

// Replace asks the host to replace the range with text. The host
// answers applied=false when the document was closed or the edit could
// not land; that is a rejection, not a transport error.
func (w *EditWriter) Replace(ctx context.Context, docID textdoc.DocumentID, r textdoc.Range, text string) (bool, error) {
	params := ApplyEditParams{URI: string(docID), Range: r, Text: text}

	var res ApplyEditResult
	if err := w.conn.Call(ctx, MethodApplyEdit, params, &res); err != nil {
		return false, fmt.Errorf("apply edit: %w", err)
	}
	return res.Applied, nil
}
