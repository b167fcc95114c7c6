package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
)

var magic = [4]byte{'B', 'P', 'K', '1'}

// manifestReader wraps an io.Reader with the same small fixed-size scratch
// buffer idiom block.wireReader uses: a handful of io.ReadFull helpers
// sharing one backing array for the two- and four-byte fields, so reading a
// manifest allocates only for each entry's id, name, and checksum bytes.
type manifestReader struct {
	r   io.Reader
	buf [4]byte
}

func (m *manifestReader) readUint16() (uint16, error) {
	if _, err := io.ReadFull(m.r, m.buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(m.buf[:2]), nil
}

func (m *manifestReader) readUint32() (uint32, error) {
	if _, err := io.ReadFull(m.r, m.buf[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(m.buf[:4]), nil
}

func (m *manifestReader) readN(n int) ([]byte, error) {
	data := make([]byte, n)
	if _, err := io.ReadFull(m.r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// readManifest reads the magic, entry count, and every Entry header from r.
// It leaves r positioned at the start of the first entry's compressed
// bytes.
func readManifest(r io.Reader) ([]Entry, error) {
	m := &manifestReader{r: r}

	var gotMagic [4]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, fmt.Errorf("container: reading magic: %w", malformed(err))
	}
	if gotMagic != magic {
		return nil, fmt.Errorf("container: magic %q: %w", gotMagic, ErrUnknownMagic)
	}

	count, err := m.readUint32()
	if err != nil {
		return nil, malformed(err)
	}

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		idBytes, err := m.readN(16)
		if err != nil {
			return nil, malformed(err)
		}
		id, err := uuid.FromBytes(idBytes)
		if err != nil {
			return nil, fmt.Errorf("container: entry %d: %w: %v", i, ErrMalformedManifest, err)
		}

		nameLen, err := m.readUint16()
		if err != nil {
			return nil, malformed(err)
		}
		nameBytes, err := m.readN(int(nameLen))
		if err != nil {
			return nil, malformed(err)
		}

		uncompressed, err := m.readUint32()
		if err != nil {
			return nil, malformed(err)
		}
		compressed, err := m.readUint32()
		if err != nil {
			return nil, malformed(err)
		}
		checksumBytes, err := m.readN(digestSize)
		if err != nil {
			return nil, malformed(err)
		}

		e := Entry{
			ID:               id,
			Name:             string(nameBytes),
			UncompressedSize: uncompressed,
			CompressedSize:   compressed,
		}
		copy(e.Checksum[:], checksumBytes)
		entries = append(entries, e)
	}
	return entries, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedManifest, err)
}

// writeManifest writes the magic, entry count, and every Entry header to w.
func writeManifest(w io.Writer, entries []Entry) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(entries)))
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}

	for _, e := range entries {
		idBytes, err := e.ID.MarshalBinary()
		if err != nil {
			return fmt.Errorf("container: marshaling entry id: %w", err)
		}
		if _, err := w.Write(idBytes); err != nil {
			return err
		}

		nameBytes := []byte(e.Name)
		var u16 [2]byte
		binary.BigEndian.PutUint16(u16[:], uint16(len(nameBytes)))
		if _, err := w.Write(u16[:]); err != nil {
			return err
		}
		if _, err := w.Write(nameBytes); err != nil {
			return err
		}

		binary.BigEndian.PutUint32(u32[:], e.UncompressedSize)
		if _, err := w.Write(u32[:]); err != nil {
			return err
		}
		binary.BigEndian.PutUint32(u32[:], e.CompressedSize)
		if _, err := w.Write(u32[:]); err != nil {
			return err
		}
		if _, err := w.Write(e.Checksum[:]); err != nil {
			return err
		}
	}
	return nil
}
