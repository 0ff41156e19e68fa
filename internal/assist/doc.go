// Package assist orchestrates one generation request from context
// capture to applied edit.
//
// A request flows through these states:
//
//	Created → ContextCaptured → Tracked → AwaitingBackend →
//	    {Applied | EmptyResult | BackendError | ApplyFailed | Cancelled}
//
// Context capture uses the caller's explicit selection when one exists,
// and otherwise locates the enclosing block around the cursor. The
// captured region is registered with the pending-edit tracker before the
// backend is invoked, so however long the backend takes, and however much
// the document changes meanwhile, the returned text is applied at the
// region's current, rebased coordinates.
//
// Every terminal state removes the request's entry from the tracker.
// Cancellation is cooperative per request: cancelling races freely with
// the mutation feed and with backend completion, and is safe on both
// sides because tracker removal is idempotent. A request cancelled after
// its backend call succeeded but before the write skips the write.
package assist
