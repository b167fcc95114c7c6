package container

import "errors"

// Sentinel errors for the bpk archive format, following the same
// one-error-per-failure-mode convention as the block package.
var (
	ErrMalformedManifest = errors.New("container: malformed manifest")
	ErrUnknownMagic      = errors.New("container: unrecognized archive magic")
	ErrChecksumMismatch  = errors.New("container: entry checksum mismatch")
)
