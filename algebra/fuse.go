package algebra

import "github.com/cocosip/bindiff/block"

// addLen adds two block lengths, reporting whether the sum still fits in a
// uint32 wire length field.
func addLen(a, b uint32) (uint32, bool) {
	sum := uint64(a) + uint64(b)
	if sum > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(sum), true
}

// concatLen reports whether two payloads can be concatenated without their
// combined length overflowing a uint32 length field.
func concatLen(a, b []byte) bool {
	return uint64(len(a))+uint64(len(b)) <= 0xFFFFFFFF
}

// isReplaceLike reports whether a is Replace or ReplaceSame: the two forms
// that the algebra treats as interchangeable for computation, reading the
// removed length through SourceAdvance rather than switching on the exact
// action.
func isReplaceLike(a block.Action) bool {
	return a == block.Replace || a == block.ReplaceSame
}

// fuse attempts to merge last immediately followed by first into a single
// block, per the seam-fusion table. It reports ok=false when the pair isn't
// adjacent-fusible (the caller must emit last, then consider first on its
// own) or when fusing would overflow a uint32 length field.
//
// On either side of the seam, Replace-like blocks fuse the same way
// regardless of whether they arrived as Replace or ReplaceSame, and a
// replace-shaped result is always produced in Replace form, never
// ReplaceSame — matching the fusion table, which never reconstructs a
// same-length replace.
func fuse(last, first block.Block) (block.Block, bool) {
	switch {
	case last.Action == block.Skip && first.Action == block.Skip:
		n, ok := addLen(last.Length, first.Length)
		if !ok {
			return block.Block{}, false
		}
		return block.SkipBlock(n), true

	case last.Action == block.Remove && first.Action == block.Remove:
		n, ok := addLen(last.Length, first.Length)
		if !ok {
			return block.Block{}, false
		}
		return block.RemoveBlock(n), true

	case last.Action == block.Add && first.Action == block.Add:
		if !concatLen(last.Data, first.Data) {
			return block.Block{}, false
		}
		return block.AddBlock(concatBytes(last.Data, first.Data)), true

	case last.Action == block.Remove && first.Action == block.Add:
		return block.ReplaceBlock(last.Length, first.Data), true

	case last.Action == block.Remove && isReplaceLike(first.Action):
		n, ok := addLen(last.Length, first.SourceAdvance())
		if !ok {
			return block.Block{}, false
		}
		return block.ReplaceBlock(n, first.Data), true

	case isReplaceLike(last.Action) && first.Action == block.Add:
		if !concatLen(last.Data, first.Data) {
			return block.Block{}, false
		}
		return block.ReplaceBlock(last.SourceAdvance(), concatBytes(last.Data, first.Data)), true

	default:
		return block.Block{}, false
	}
}

func concatBytes(a, b []byte) []byte {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
