// Package container implements "bpk", a small archive format for bundling
// several diffs into one file: a manifest of UUID-identified entries
// followed by their DEFLATE-compressed, BLAKE2b-checksummed payloads in
// order. It exists for exactly the case SPEC_FULL.md calls out: a
// format-specific wrapper around the core diff metaformat, the way a real
// PSD-diff or ZIP-diff tool would bundle many per-member diffs together.
package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/gtank/blake2/blake2b"
	"github.com/klauspost/compress/flate"
)

// PackEntry is one diff to add to an archive being built by Pack.
type PackEntry struct {
	Name string
	Diff io.Reader
}

// Pack reads each entry's diff fully, compresses and checksums it, and
// writes the resulting bpk archive to w: the manifest first, then every
// entry's compressed bytes in the same order. Each entry's diff is fully
// buffered in memory to compute its checksum and compressed size before the
// manifest (which precedes the data) can be written.
func Pack(w io.Writer, entries []PackEntry) error {
	type packed struct {
		entry      Entry
		compressed []byte
	}

	built := make([]packed, 0, len(entries))
	for _, pe := range entries {
		raw, err := io.ReadAll(pe.Diff)
		if err != nil {
			return fmt.Errorf("container: reading entry %q: %w", pe.Name, err)
		}

		digest, err := blake2b.NewDigest(nil, nil, nil, digestSize)
		if err != nil {
			return fmt.Errorf("container: initializing checksum: %w", err)
		}
		if _, err := digest.Write(raw); err != nil {
			return fmt.Errorf("container: checksumming entry %q: %w", pe.Name, err)
		}

		var compressed bytes.Buffer
		fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
		if err != nil {
			return fmt.Errorf("container: initializing compressor: %w", err)
		}
		if _, err := fw.Write(raw); err != nil {
			return fmt.Errorf("container: compressing entry %q: %w", pe.Name, err)
		}
		if err := fw.Close(); err != nil {
			return fmt.Errorf("container: flushing compressor for entry %q: %w", pe.Name, err)
		}

		e := Entry{
			ID:               uuid.New(),
			Name:             pe.Name,
			UncompressedSize: uint32(len(raw)),
			CompressedSize:   uint32(compressed.Len()),
		}
		copy(e.Checksum[:], digest.Sum(nil))
		built = append(built, packed{entry: e, compressed: compressed.Bytes()})
	}

	manifestEntries := make([]Entry, len(built))
	for i, p := range built {
		manifestEntries[i] = p.entry
	}
	if err := writeManifest(w, manifestEntries); err != nil {
		return fmt.Errorf("container: writing manifest: %w", err)
	}
	for _, p := range built {
		if _, err := w.Write(p.compressed); err != nil {
			return fmt.Errorf("container: writing entry %q: %w", p.entry.Name, err)
		}
	}
	return nil
}

// Reader reads the entries of a bpk archive one at a time, in the order
// they were packed, the same forward-only way stream.Reader walks a diff.
type Reader struct {
	r       io.Reader
	entries []Entry
	idx     int
}

// NewReader reads the manifest from r and returns a Reader positioned at
// the first entry's compressed bytes.
func NewReader(r io.Reader) (*Reader, error) {
	entries, err := readManifest(r)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, entries: entries}, nil
}

// Entries returns every entry's header, in archive order, without reading
// any entry's data. Useful for a "list" operation that never touches the
// compressed payloads.
func (rd *Reader) Entries() []Entry {
	return rd.entries
}

// Next reads, decompresses, and verifies the next entry's diff bytes. It
// returns io.EOF once every entry has been read.
func (rd *Reader) Next() (Entry, []byte, error) {
	if rd.idx >= len(rd.entries) {
		return Entry{}, nil, io.EOF
	}
	e := rd.entries[rd.idx]
	rd.idx++

	compressed := make([]byte, e.CompressedSize)
	if _, err := io.ReadFull(rd.r, compressed); err != nil {
		return Entry{}, nil, fmt.Errorf("container: reading entry %q: %w", e.Name, err)
	}

	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()
	raw, err := io.ReadAll(fr)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("container: decompressing entry %q: %w", e.Name, err)
	}
	if uint32(len(raw)) != e.UncompressedSize {
		return Entry{}, nil, fmt.Errorf("container: entry %q: decompressed to %d bytes, manifest says %d: %w", e.Name, len(raw), e.UncompressedSize, ErrMalformedManifest)
	}

	digest, err := blake2b.NewDigest(nil, nil, nil, digestSize)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("container: initializing checksum: %w", err)
	}
	if _, err := digest.Write(raw); err != nil {
		return Entry{}, nil, fmt.Errorf("container: checksumming entry %q: %w", e.Name, err)
	}
	if !bytes.Equal(digest.Sum(nil), e.Checksum[:]) {
		return Entry{}, nil, fmt.Errorf("container: entry %q: %w", e.Name, ErrChecksumMismatch)
	}

	return e, raw, nil
}
