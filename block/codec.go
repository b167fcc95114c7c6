package block

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// wireReader wraps an io.Reader with the small fixed-size scratch buffer
// idiom used throughout the reference corpus (compare jpeg/standard.Reader):
// a handful of helpers built on io.ReadFull, reusing one backing array for
// the two- and four-byte fields so decoding a block never allocates beyond
// its payload.
type wireReader struct {
	r   io.Reader
	buf [4]byte
}

func (w *wireReader) readUint16() (uint16, error) {
	if _, err := io.ReadFull(w.r, w.buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(w.buf[:2]), nil
}

func (w *wireReader) readUint32() (uint32, error) {
	if _, err := io.ReadFull(w.r, w.buf[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(w.buf[:4]), nil
}

func (w *wireReader) readPayload(n uint32) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(w.r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// DecodeOne reads one block from r.
//
// It returns io.EOF (with a zero Block) when r is exhausted before any byte
// of a new block is read — a reader returning exactly zero bytes on its
// first read is a well-formed empty diff, not an error. Any other short
// read (a tag, a length field, or a payload truncated partway through)
// is reported as ErrMalformedBlock. An unknown action tag is also reported
// as ErrMalformedBlock, wrapping ErrUnknownAction. Any other I/O failure
// from r is propagated wrapped in context, unmodified in identity, so
// callers can still errors.Is/As against it.
func DecodeOne(r io.Reader) (Block, error) {
	w := &wireReader{r: r}

	tag, err := w.readUint16()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Block{}, io.EOF
		}
		return Block{}, malformed(err)
	}

	switch Action(tag) {
	case Skip:
		length, err := w.readUint32()
		if err != nil {
			return Block{}, malformed(err)
		}
		return SkipBlock(length), nil

	case Add:
		length, err := w.readUint32()
		if err != nil {
			return Block{}, malformed(err)
		}
		data, err := w.readPayload(length)
		if err != nil {
			return Block{}, malformed(err)
		}
		return Block{Action: Add, Length: length, Data: data}, nil

	case Remove:
		length, err := w.readUint32()
		if err != nil {
			return Block{}, malformed(err)
		}
		return RemoveBlock(length), nil

	case Replace:
		removeLength, err := w.readUint32()
		if err != nil {
			return Block{}, malformed(err)
		}
		length, err := w.readUint32()
		if err != nil {
			return Block{}, malformed(err)
		}
		data, err := w.readPayload(length)
		if err != nil {
			return Block{}, malformed(err)
		}
		return Block{Action: Replace, RemoveLength: removeLength, Length: length, Data: data}, nil

	case ReplaceSame:
		length, err := w.readUint32()
		if err != nil {
			return Block{}, malformed(err)
		}
		data, err := w.readPayload(length)
		if err != nil {
			return Block{}, malformed(err)
		}
		return Block{Action: ReplaceSame, Length: length, Data: data}, nil

	default:
		return Block{}, fmt.Errorf("block: decode: %w: tag %d: %w", ErrMalformedBlock, tag, ErrUnknownAction)
	}
}

// malformed reports a short read (io.EOF or io.ErrUnexpectedEOF) partway
// through a block as ErrMalformedBlock; a clean EOF on the very first read
// of the tag is handled by DecodeOne directly. Any other error from the
// reader is wrapped with %w so its identity survives.
func malformed(err error) error {
	if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("block: decode: %w", err)
	}
	return fmt.Errorf("block: decode: %w: %v", ErrMalformedBlock, err)
}

// EncodeOne writes one block to w in wire format: tag, then length
// field(s), then payload. For the five defined actions it is infallible
// given a writer with sufficient capacity, and any error returned is w's own
// write error, propagated verbatim; a block with an undefined Action is
// rejected with ErrUnknownAction.
func EncodeOne(w io.Writer, b Block) error {
	var hdr [10]byte
	switch b.Action {
	case Skip, Remove:
		binary.BigEndian.PutUint16(hdr[0:2], uint16(b.Action))
		binary.BigEndian.PutUint32(hdr[2:6], b.Length)
		_, err := w.Write(hdr[:6])
		return err

	case Add, ReplaceSame:
		binary.BigEndian.PutUint16(hdr[0:2], uint16(b.Action))
		binary.BigEndian.PutUint32(hdr[2:6], uint32(len(b.Data)))
		if _, err := w.Write(hdr[:6]); err != nil {
			return err
		}
		if len(b.Data) == 0 {
			return nil
		}
		_, err := w.Write(b.Data)
		return err

	case Replace:
		binary.BigEndian.PutUint16(hdr[0:2], uint16(b.Action))
		binary.BigEndian.PutUint32(hdr[2:6], b.RemoveLength)
		binary.BigEndian.PutUint32(hdr[6:10], uint32(len(b.Data)))
		if _, err := w.Write(hdr[:10]); err != nil {
			return err
		}
		if len(b.Data) == 0 {
			return nil
		}
		_, err := w.Write(b.Data)
		return err

	default:
		return fmt.Errorf("block: encode: tag %d: %w", b.Action, ErrUnknownAction)
	}
}
