package stream_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/cocosip/bindiff/block"
	"github.com/cocosip/bindiff/stream"
)

func encode(t *testing.T, blocks ...block.Block) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, b := range blocks {
		if err := block.EncodeOne(&buf, b); err != nil {
			t.Fatalf("EncodeOne: %v", err)
		}
	}
	return &buf
}

func TestReader_NextInOrder(t *testing.T) {
	buf := encode(t, block.SkipBlock(3), block.AddBlock([]byte("hi")), block.RemoveBlock(1))
	s := stream.New(buf)

	want := []block.Action{block.Skip, block.Add, block.Remove}
	for _, action := range want {
		b, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if b.Action != action {
			t.Fatalf("Next action = %v, want %v", b.Action, action)
		}
	}
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("final Next = %v, want io.EOF", err)
	}
}

func TestReader_PeekDoesNotConsume(t *testing.T) {
	buf := encode(t, block.SkipBlock(5), block.RemoveBlock(2))
	s := stream.New(buf)

	peeked, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if peeked.Action != block.Skip || peeked.Length != 5 {
		t.Fatalf("Peek = %+v, want Skip(5)", peeked)
	}

	// Peek again: same result.
	peeked2, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek (again): %v", err)
	}
	if !peeked.Equal(peeked2) {
		t.Fatalf("second Peek = %+v, want %+v", peeked2, peeked)
	}

	next, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !next.Equal(peeked) {
		t.Fatalf("Next after Peek = %+v, want %+v", next, peeked)
	}

	next2, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next2.Action != block.Remove {
		t.Fatalf("Next action = %v, want Remove", next2.Action)
	}
}

func TestReader_PutBackReturnsResidual(t *testing.T) {
	buf := encode(t, block.SkipBlock(10))
	s := stream.New(buf)

	b, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}

	residual := block.SkipBlock(b.Length - 3)
	s.PutBack(residual)

	got, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek after PutBack: %v", err)
	}
	if got.Length != 7 {
		t.Fatalf("Peek after PutBack = %+v, want Skip(7)", got)
	}

	got2, err := s.Next()
	if err != nil {
		t.Fatalf("Next after PutBack: %v", err)
	}
	if got2.Length != 7 {
		t.Fatalf("Next after PutBack = %+v, want Skip(7)", got2)
	}

	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("final Next = %v, want io.EOF", err)
	}
}

func TestReader_PeekThenEOFStaysEOF(t *testing.T) {
	s := stream.New(bytes.NewReader(nil))
	if _, err := s.Peek(); err != io.EOF {
		t.Fatalf("Peek(empty) = %v, want io.EOF", err)
	}
	if _, err := s.Peek(); err != io.EOF {
		t.Fatalf("second Peek(empty) = %v, want io.EOF", err)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("Next(empty) = %v, want io.EOF", err)
	}
}
