package algebra

import "errors"

// Sentinel errors for the diff algebra, following the same one-error-per-
// failure-mode convention as the block package.
var (
	// ErrLengthOverflow is returned when an algebra operation would need
	// to produce a length field of 2^32 or greater to stay correct and
	// cannot avoid doing so. In practice neither Sum nor Combine ever
	// needs to raise this: both degrade gracefully by leaving two blocks
	// unfused rather than overflowing a length field (see fuse.go and the
	// Open Question decision in DESIGN.md). It is still exported so a
	// caller of the algebra has something to errors.Is against if that
	// invariant is ever tightened.
	ErrLengthOverflow = errors.New("algebra: length overflow")

	// ErrUnmatchedDiffLength is returned by Combine when D1 and D2
	// disagree on the length of the intermediate stream B: either D1 was
	// exhausted while D2 still needed B-bytes it never produced, or D1
	// still had B-producing content after D2 was exhausted.
	ErrUnmatchedDiffLength = errors.New("algebra: unmatched diff length")
)
