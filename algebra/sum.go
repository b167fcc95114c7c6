package algebra

import (
	"io"

	"github.com/cocosip/bindiff/block"
	"github.com/cocosip/bindiff/stream"
)

// Sum concatenates D1 and D2 — read from d1 and d2 in full — into a single
// diff written to w: D1 + D2 applied to a source S is equivalent to
// applying D1 to the first len(D1) bytes of S and D2 to the rest.
//
// Only the seam between D1's last block and D2's first block is a fusion
// candidate; Sum assumes each input diff is already canonical (no adjacent
// blocks that the §4.3 table would itself have fused) and does not scan
// either diff's interior looking for more. A non-canonical interior is not
// rejected — it is simply carried through unfused, same as Combine carries
// through blocks it has no rule to merge.
func Sum(w io.Writer, d1, d2 *stream.Reader) error {
	var prev *block.Block
	for {
		b, err := d1.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if prev != nil {
			if err := block.EncodeOne(w, *prev); err != nil {
				return err
			}
		}
		cp := b
		prev = &cp
	}

	first, err := d2.Peek()
	if err == io.EOF {
		if prev != nil {
			return block.EncodeOne(w, *prev)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if prev != nil {
		if fused, ok := fuse(*prev, first); ok {
			if _, err := d2.Next(); err != nil { // consume the peeked block
				return err
			}
			if err := block.EncodeOne(w, fused); err != nil {
				return err
			}
		} else if err := block.EncodeOne(w, *prev); err != nil {
			return err
		}
	}

	for {
		b, err := d2.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := block.EncodeOne(w, b); err != nil {
			return err
		}
	}
}
