package container

import "github.com/google/uuid"

// digestSize is the BLAKE2b output length used for entry integrity checks.
// A full 64-byte digest is unnecessary for this purpose; 32 bytes matches
// common BLAKE2b-256 usage while keeping the manifest compact.
const digestSize = 32

// Entry describes one diff stored in a bpk archive: its identity, its name
// (typically the format-specific wrapper's own label — a PSD layer name, a
// ZIP member path — per SPEC_FULL.md's container motivation), and enough
// bookkeeping to locate, decompress, and verify it.
type Entry struct {
	ID               uuid.UUID
	Name             string
	UncompressedSize uint32
	CompressedSize   uint32
	Checksum         [digestSize]byte
}
