package simlog

import (
	"bytes"
	"testing"
)

func TestTeeForwardsToAllStreams(t *testing.T) {
	var a, b bytes.Buffer
	tee := NewTee(&a, &b)

	if _, err := tee.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if a.String() != "hello" || b.String() != "hello" {
		t.Fatalf("a=%q b=%q, want both to read %q", a.String(), b.String(), "hello")
	}
}

func TestPrefixWriterInsertsPrefixAtLineStarts(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter(&out, func() string { return "[T] " })

	pw.Write([]byte("first\nsecond\n"))

	want := "[T] first\n[T] second\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestPrefixWriterDoesNotDoublePrefixMidLine(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter(&out, func() string { return ">> " })

	pw.Write([]byte("abc"))
	pw.Write([]byte("def\n"))

	want := ">> abcdef\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestPrefixWriterHandlesEmptyWrite(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter(&out, func() string { return ">> " })

	if n, err := pw.Write(nil); n != 0 || err != nil {
		t.Fatalf("Write(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestPrefixWriterNoPrefixFuncPassesThrough(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter(&out, nil)

	pw.Write([]byte("raw\n"))
	if out.String() != "raw\n" {
		t.Fatalf("got %q, want %q", out.String(), "raw\n")
	}
}
