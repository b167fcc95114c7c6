// Package apply materializes a diff stream against a source reader,
// producing the target bytes it describes.
//
// Apply walks the diff one block at a time the same way the reference
// corpus's JPEG decoders walk a marker stream (compare
// jpeg/baseline.Decode's segment loop): fetch the next unit, dispatch on its
// tag, act, repeat until exhausted.
package apply

import (
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/bindiff/block"
	"github.com/cocosip/bindiff/stream"
)

// ErrSourceExhausted is returned when a block's source advance overruns
// what src still has to offer.
var ErrSourceExhausted = errors.New("apply: source exhausted before diff")

// ErrSourceNotExhausted is returned when the diff ends but src has bytes
// left that no block ever accounted for.
var ErrSourceNotExhausted = errors.New("apply: source has unread bytes after diff")

// Apply reads every block of d, applying each to src and writing the result
// to dst, until d is exhausted. It returns ErrSourceExhausted if a block
// needs more source bytes than src has left, and ErrSourceNotExhausted if
// src still has unread bytes once d runs out — a diff is only valid against
// the exact source it was produced from.
func Apply(dst io.Writer, src io.Reader, d *stream.Reader) error {
	for {
		b, err := d.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("apply: reading block: %w", err)
		}
		if err := applyOne(dst, src, b); err != nil {
			return err
		}
	}

	var probe [1]byte
	if _, err := io.ReadFull(src, probe[:]); err == nil {
		return ErrSourceNotExhausted
	} else if !errors.Is(err, io.EOF) {
		return fmt.Errorf("apply: checking for trailing source bytes: %w", err)
	}
	return nil
}

func applyOne(dst io.Writer, src io.Reader, b block.Block) error {
	switch b.Action {
	case block.Skip:
		if err := copySource(dst, src, b.Length); err != nil {
			return err
		}
	case block.Add:
		if _, err := dst.Write(b.Data); err != nil {
			return fmt.Errorf("apply: writing Add block: %w", err)
		}
	case block.Remove:
		if err := discardSource(src, b.Length); err != nil {
			return err
		}
	case block.Replace, block.ReplaceSame:
		if err := discardSource(src, b.SourceAdvance()); err != nil {
			return err
		}
		if _, err := dst.Write(b.Data); err != nil {
			return fmt.Errorf("apply: writing %s block: %w", b.Action, err)
		}
	default:
		return fmt.Errorf("apply: unsupported action %v", b.Action)
	}
	return nil
}

func copySource(dst io.Writer, src io.Reader, n uint32) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(dst, src, int64(n)); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrSourceExhausted
		}
		return fmt.Errorf("apply: copying Skip block: %w", err)
	}
	return nil
}

func discardSource(src io.Reader, n uint32) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, src, int64(n)); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrSourceExhausted
		}
		return fmt.Errorf("apply: discarding removed source bytes: %w", err)
	}
	return nil
}
