package block

import "errors"

// Sentinel errors returned by this package. Following the teacher's
// per-package convention (see jpeg/common/errors.go, jpeg2000/htj2k/errors.go
// in the reference corpus), each is a plain errors.New value rather than a
// shared generic error type, so callers can errors.Is against the exact
// failure they care about.
var (
	// ErrMalformedBlock is returned by DecodeOne when the tag is unknown,
	// a length or payload read is short, or (for a length-bounded reader)
	// a declared length overflows the bytes remaining.
	ErrMalformedBlock = errors.New("block: malformed block")

	// ErrUnknownAction is returned when the 2-byte tag does not match any
	// of the five defined actions. Wrapped by ErrMalformedBlock.
	ErrUnknownAction = errors.New("block: unknown action tag")
)
