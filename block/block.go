// Package block implements the wire codec for a single diff instruction.
//
// A diff is a headerless, finite sequence of blocks; this package decodes
// and encodes exactly one block at a time and has no opinion about what
// comes before or after it on the wire.
package block

// Action identifies what a Block does to the source cursor and the output
// stream when applied. It is a closed set of five variants; there is no
// open hierarchy and no virtual dispatch, just a tag switch.
type Action uint16

const (
	// Skip advances the source cursor by Length and copies those bytes
	// to the output.
	Skip Action = 0
	// Add emits Data to the output without advancing the source cursor.
	Add Action = 1
	// Remove advances the source cursor by Length and emits nothing.
	Remove Action = 2
	// Replace advances the source cursor by RemoveLength and emits Data.
	Replace Action = 3
	// ReplaceSame advances the source cursor by Length and emits Data.
	// Semantically identical to a Replace whose RemoveLength equals
	// Length, but a distinct on-wire tag that round-trips preserving
	// whichever form the producer chose.
	ReplaceSame Action = 4
)

// String returns the name of the action, for diagnostics and log lines.
func (a Action) String() string {
	switch a {
	case Skip:
		return "Skip"
	case Add:
		return "Add"
	case Remove:
		return "Remove"
	case Replace:
		return "Replace"
	case ReplaceSame:
		return "ReplaceSame"
	default:
		return "Unknown"
	}
}

// Block is one decoded diff instruction. Not every field is meaningful for
// every Action:
//
//	Skip:        Length
//	Add:         Length, Data
//	Remove:      Length
//	Replace:     RemoveLength, Length, Data
//	ReplaceSame: Length, Data
//
// RemoveLength is only populated for Replace; Combine and Sum never read
// it for any other action.
type Block struct {
	Action       Action
	Length       uint32
	RemoveLength uint32
	Data         []byte
}

// SkipBlock returns a Skip block of the given length.
func SkipBlock(length uint32) Block {
	return Block{Action: Skip, Length: length}
}

// AddBlock returns an Add block carrying data. data is not copied; callers
// that mutate it afterward must clone it first.
func AddBlock(data []byte) Block {
	return Block{Action: Add, Length: uint32(len(data)), Data: data}
}

// RemoveBlock returns a Remove block of the given length.
func RemoveBlock(length uint32) Block {
	return Block{Action: Remove, Length: length}
}

// ReplaceBlock returns a Replace block removing removeLength source bytes
// and emitting data in their place.
func ReplaceBlock(removeLength uint32, data []byte) Block {
	return Block{Action: Replace, RemoveLength: removeLength, Length: uint32(len(data)), Data: data}
}

// ReplaceSameBlock returns a ReplaceSame block: removeLength implicitly
// equals len(data).
func ReplaceSameBlock(data []byte) Block {
	return Block{Action: ReplaceSame, Length: uint32(len(data)), Data: data}
}

// IsNoop reports whether the block has zero effect on both source and
// output: a zero-length Skip, Add, or Remove. The algebra may elide these
// but is never required to.
func (b Block) IsNoop() bool {
	switch b.Action {
	case Skip, Remove:
		return b.Length == 0
	case Add:
		return len(b.Data) == 0
	default:
		return false
	}
}

// SourceAdvance returns how many source bytes this block consumes when
// applied, per §3's "meaning when applied" table.
func (b Block) SourceAdvance() uint32 {
	switch b.Action {
	case Skip, Remove:
		return b.Length
	case Replace:
		return b.RemoveLength
	case ReplaceSame:
		return b.Length
	default: // Add
		return 0
	}
}

// OutputLength returns how many bytes this block contributes to the
// output when applied (the "B-length" of §4.4's glossary).
func (b Block) OutputLength() uint32 {
	switch b.Action {
	case Skip:
		return b.Length
	case Add, Replace, ReplaceSame:
		return uint32(len(b.Data))
	default: // Remove
		return 0
	}
}

// Equal reports whether two blocks are byte-identical wire values,
// including the Replace/ReplaceSame distinction. Use this, not
// reflect.DeepEqual, when testing round-trip preservation: it treats two
// nil/empty Data slices as equal regardless of nilness.
func (b Block) Equal(other Block) bool {
	if b.Action != other.Action || b.Length != other.Length || b.RemoveLength != other.RemoveLength {
		return false
	}
	if len(b.Data) != len(other.Data) {
		return false
	}
	for i := range b.Data {
		if b.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}
