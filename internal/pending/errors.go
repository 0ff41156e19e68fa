package pending

import "errors"

// Standard errors returned by the tracker.
var (
	// ErrDuplicateID indicates an id is already tracked. Callers must
	// generate fresh ids for every request.
	ErrDuplicateID = errors.New("pending edit id already tracked")

	// ErrNotTracked indicates no pending edit exists for the id.
	ErrNotTracked = errors.New("pending edit not tracked")

	// ErrInvalidRange indicates a range whose start is after its end.
	ErrInvalidRange = errors.New("invalid range: start after end")
)
