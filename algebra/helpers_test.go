package algebra_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/cocosip/bindiff/block"
	"github.com/cocosip/bindiff/stream"
)

func diff(t *testing.T, blocks ...block.Block) *stream.Reader {
	t.Helper()
	var buf bytes.Buffer
	for _, b := range blocks {
		if err := block.EncodeOne(&buf, b); err != nil {
			t.Fatalf("EncodeOne: %v", err)
		}
	}
	return stream.New(&buf)
}

func decodeAll(t *testing.T, r io.Reader) []block.Block {
	t.Helper()
	var out []block.Block
	for {
		b, err := block.DecodeOne(r)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("DecodeOne: %v", err)
		}
		out = append(out, b)
	}
}

// applyBlocks applies a decoded diff to src and returns the result. It is a
// minimal, test-only simulator so algebra's tests can check an end-to-end
// transform without importing the apply package.
func applyBlocks(t *testing.T, src []byte, blocks []block.Block) []byte {
	t.Helper()
	var out []byte
	var pos uint32
	for _, b := range blocks {
		switch b.Action {
		case block.Skip:
			out = append(out, src[pos:pos+b.Length]...)
			pos += b.Length
		case block.Add:
			out = append(out, b.Data...)
		case block.Remove:
			pos += b.Length
		case block.Replace, block.ReplaceSame:
			pos += b.SourceAdvance()
			out = append(out, b.Data...)
		default:
			t.Fatalf("applyBlocks: unknown action %v", b.Action)
		}
	}
	if int(pos) != len(src) {
		t.Fatalf("applyBlocks: consumed %d of %d source bytes", pos, len(src))
	}
	return out
}

func assertBlocks(t *testing.T, got []block.Block, want ...block.Block) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d blocks %+v, want %d blocks %+v", len(got), got, len(want), want)
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Fatalf("block %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
