package algebra

import (
	"io"

	"github.com/cocosip/bindiff/block"
	"github.com/cocosip/bindiff/stream"
)

// side walks one input diff for Combine, presenting it one primitive head
// at a time: Skip, Add, or Remove only. A Replace or ReplaceSame block is
// never handed to the combine loop directly — it is decomposed into a
// synthetic Remove(SourceAdvance) head followed by a synthetic Add(Data)
// head, queued so the Add only surfaces once the Remove side has been fully
// consumed. This lets the two-cursor walk below work against a 3x3 table
// instead of the full 5x5 action matrix, and reproduces the "emit the
// trailing Add exactly once" sequencing for free: the queued Add simply
// isn't a head yet until the Remove head empties.
type side struct {
	r          *stream.Reader
	head       block.Block
	hasHead    bool
	queuedAdd  []byte
	hasQueued  bool
}

func newSide(r *stream.Reader) *side { return &side{r: r} }

// next returns the current head, fetching and decomposing as needed. ok is
// false when the underlying diff (and any queued residue) is exhausted.
func (s *side) next() (block.Block, bool, error) {
	for {
		if s.hasHead {
			return s.head, true, nil
		}
		if s.hasQueued {
			data := s.queuedAdd
			s.queuedAdd = nil
			s.hasQueued = false
			if len(data) == 0 {
				continue
			}
			s.head = block.AddBlock(data)
			s.hasHead = true
			continue
		}
		b, err := s.r.Next()
		if err == io.EOF {
			return block.Block{}, false, nil
		}
		if err != nil {
			return block.Block{}, false, err
		}

		switch {
		case isReplaceLike(b.Action):
			removeLen := b.SourceAdvance()
			if len(b.Data) > 0 {
				s.queuedAdd = b.Data
				s.hasQueued = true
			}
			if removeLen == 0 {
				continue // nothing to remove; the queued Add (if any) surfaces next pass
			}
			s.head = block.RemoveBlock(removeLen)
			s.hasHead = true

		case b.Action == block.Add:
			if len(b.Data) == 0 {
				continue
			}
			s.head = b
			s.hasHead = true

		default: // Skip, Remove
			if b.Length == 0 {
				continue
			}
			s.head = b
			s.hasHead = true
		}
	}
}

// clear discards the current head entirely (it was consumed in full).
func (s *side) clear() { s.hasHead = false }

// setResidual replaces the current head with what remains of it after m
// bytes of its B-contribution (or, for Remove, its source bytes) were
// consumed from the front.
func (s *side) setResidual(m uint32) {
	switch s.head.Action {
	case block.Skip:
		s.head = block.SkipBlock(s.head.Length - m)
	case block.Remove:
		s.head = block.RemoveBlock(s.head.Length - m)
	case block.Add:
		s.head = block.AddBlock(s.head.Data[m:])
	}
}

func headLen(b block.Block) uint32 {
	if b.Action == block.Add {
		return uint32(len(b.Data))
	}
	return b.Length
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// accumulator buffers the last emitted block so an immediately-following
// block can still fuse into it — needed because decomposing a Replace into
// Remove+Add (on either side) routinely produces exactly the adjacent
// Remove/Add pair that §4.3 already knows how to fuse back into one
// Replace block (see the concrete scenario in SPEC_FULL.md §8 composing two
// Replace diffs). Unlike Sum, which only ever considers a single seam,
// Combine's output has no "interior" to assume canonical — every emission
// boundary is a fresh seam — so it fuses continuously.
type accumulator struct {
	w       io.Writer
	pending *block.Block
}

func (a *accumulator) emit(b block.Block) error {
	if b.IsNoop() {
		return nil
	}
	if a.pending == nil {
		cp := b
		a.pending = &cp
		return nil
	}
	if fused, ok := fuse(*a.pending, b); ok {
		a.pending = &fused
		return nil
	}
	if err := block.EncodeOne(a.w, *a.pending); err != nil {
		return err
	}
	cp := b
	a.pending = &cp
	return nil
}

func (a *accumulator) flush() error {
	if a.pending == nil {
		return nil
	}
	err := block.EncodeOne(a.w, *a.pending)
	a.pending = nil
	return err
}

// Combine composes D1 (A→B) with D2 (B→C) into D3 (A→C), written to w,
// without ever materializing B. It walks both diffs with a single forward
// pass, per §4.4's case table:
//
//   - D1 = Remove(x) always wins outright: emit Remove(x), advance only D1.
//     D2's head (whatever it is) is left untouched for the next step.
//   - Otherwise, if D2's head is Add(z): emit Add(z) in full, advance only
//     D2. D1's head (Skip or Add) is untouched.
//   - Otherwise both heads are B-producing (D1: Skip or Add; D2: Skip or
//     Remove): consume min(x, y) from each, emitting Skip/Remove/Add/nothing
//     per the table, and push back whichever side has leftover.
//
// Replace and ReplaceSame on either side are never matched directly; side
// decomposes them first (see its doc comment), so this loop only ever sees
// the three primitive actions.
//
// Combine returns ErrUnmatchedDiffLength if one diff is exhausted while the
// other still has B-producing content it never got to consume or supply —
// except a trailing Add in D2 after D1 is exhausted, which §4.4 calls valid
// and which Combine appends verbatim.
func Combine(w io.Writer, d1, d2 *stream.Reader) error {
	s1 := newSide(d1)
	s2 := newSide(d2)
	acc := &accumulator{w: w}

	for {
		h1, ok1, err := s1.next()
		if err != nil {
			return err
		}
		if !ok1 {
			h2, ok2, err := s2.next()
			if err != nil {
				return err
			}
			if !ok2 {
				return acc.flush()
			}
			if h2.Action != block.Add {
				return ErrUnmatchedDiffLength
			}
			if err := acc.emit(h2); err != nil {
				return err
			}
			s2.clear()
			continue
		}

		if h1.Action == block.Remove {
			if err := acc.emit(h1); err != nil {
				return err
			}
			s1.clear()
			continue
		}

		// h1 is Skip or Add.
		h2, ok2, err := s2.next()
		if err != nil {
			return err
		}
		if !ok2 {
			return ErrUnmatchedDiffLength
		}

		if h2.Action == block.Add {
			if err := acc.emit(h2); err != nil {
				return err
			}
			s2.clear()
			continue
		}

		// h2 is Skip or Remove: both heads consume B-length, pair off min(x, y).
		x, y := headLen(h1), headLen(h2)
		m := min32(x, y)

		var out block.Block
		var haveOut bool
		switch {
		case h1.Action == block.Skip && h2.Action == block.Skip:
			out, haveOut = block.SkipBlock(m), true
		case h1.Action == block.Skip && h2.Action == block.Remove:
			out, haveOut = block.RemoveBlock(m), true
		case h1.Action == block.Add && h2.Action == block.Skip:
			out, haveOut = block.AddBlock(h1.Data[:m]), true
		case h1.Action == block.Add && h2.Action == block.Remove:
			// annihilate: Add's bytes are consumed by Remove, nothing emitted
		}
		if haveOut {
			if err := acc.emit(out); err != nil {
				return err
			}
		}

		if x == m {
			s1.clear()
		} else {
			s1.setResidual(m)
		}
		if y == m {
			s2.clear()
		} else {
			s2.setResidual(m)
		}
	}
}
