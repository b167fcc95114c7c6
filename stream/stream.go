// Package stream provides a forward-only cursor over the blocks of a diff.
//
// A Reader has no random access, no rewind, and no size query: it is built
// to let the algebra package consume one diff's worth of blocks lazily,
// exactly as its underlying byte source allows, mirroring the way the
// reference corpus's JPEG decoders walk a marker stream one unit at a time
// (see jpeg/baseline.Decode's marker loop) rather than parsing a whole file
// into memory up front.
package stream

import (
	"io"

	"github.com/cocosip/bindiff/block"
)

// Reader is a single-use forward cursor over the blocks encoded in an
// underlying io.Reader.
type Reader struct {
	r        io.Reader
	pending  *block.Block // pushed back by PutBack, returned by Peek, consumed by Next
	peeked   *block.Block // cached result of the last Peek, consumed by Next
	peekErr  error
	atEOF    bool
}

// New returns a Reader over r.
func New(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next consumes and returns the next block. It returns io.EOF once the
// underlying source is exhausted; any decode failure is reported as
// described by block.DecodeOne.
func (s *Reader) Next() (block.Block, error) {
	if s.pending != nil {
		b := *s.pending
		s.pending = nil
		return b, nil
	}
	if s.peeked != nil {
		b := *s.peeked
		err := s.peekErr
		s.peeked = nil
		s.peekErr = nil
		return b, err
	}
	if s.atEOF {
		return block.Block{}, io.EOF
	}
	b, err := block.DecodeOne(s.r)
	if err == io.EOF {
		s.atEOF = true
	}
	return b, err
}

// Peek returns the next block without consuming it. Calling Peek again
// before a Next returns the same block. Peek after io.EOF keeps returning
// io.EOF.
func (s *Reader) Peek() (block.Block, error) {
	if s.pending != nil {
		return *s.pending, nil
	}
	if s.peeked != nil {
		return *s.peeked, s.peekErr
	}
	if s.atEOF {
		return block.Block{}, io.EOF
	}
	b, err := block.DecodeOne(s.r)
	if err == io.EOF {
		s.atEOF = true
		return block.Block{}, io.EOF
	}
	s.peeked = &b
	s.peekErr = err
	return b, err
}

// PutBack returns a block to the front of the stream, to be the next
// result of Next or Peek. It is a single slot: calling PutBack twice
// without an intervening Next overwrites the first pushback, which would
// lose a block, so callers must never do this. A block already cached by
// Peek is kept and follows the pushed-back one.
func (s *Reader) PutBack(b block.Block) {
	s.atEOF = false
	cp := b
	s.pending = &cp
}
