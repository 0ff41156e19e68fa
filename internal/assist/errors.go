package assist

import "errors"

// Standard errors returned by the coordinator.
var (
	// ErrNoEnclosingBlock indicates no selection was given and no
	// brace-delimited block encloses the cursor. A valid negative
	// result, not a crash: the caller surfaces it to the user.
	ErrNoEnclosingBlock = errors.New("no enclosing block at cursor")

	// ErrMissingInstruction indicates the request carried no instruction
	// text.
	ErrMissingInstruction = errors.New("missing instruction")

	// ErrApplyTargetMissing indicates the target document or editor view
	// was gone by the time the generated text was ready to apply.
	ErrApplyTargetMissing = errors.New("apply target no longer available")

	// ErrUnknownRequest indicates a cancel for an id that is not active.
	ErrUnknownRequest = errors.New("unknown request id")
)
