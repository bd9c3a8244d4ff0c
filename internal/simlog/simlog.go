// Package simlog implements the standard-stream teeing used for per-match
// log files (spec.md §4.6, §9).
//
// The original implementation monkey-patches sys.stdout/sys.stderr with a
// mutable global prefix callback. spec.md's design note calls for an
// explicit stream wrapper composed at setup time instead: Tee and
// PrefixWriter below are plain io.Writer wrappers (in the spirit of the
// teacher's redWriter in main.go), built once and handed to whichever
// caller wants the prefixed/teed stream — no global state to read.
package simlog

import "io"

// Tee forwards every Write to each of its streams in order, matching
// Python's original_source Tee semantics.
type Tee struct {
	streams []io.Writer
}

func NewTee(streams ...io.Writer) *Tee {
	return &Tee{streams: streams}
}

func (t *Tee) Write(p []byte) (int, error) {
	for _, s := range t.streams {
		if _, err := s.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// PrefixFunc produces the prefix to insert at the start of each line
// (e.g. the current simulated time).
type PrefixFunc func() string

// PrefixWriter inserts prefix() at the start of every line written to it,
// without buffering lines across Write calls beyond tracking whether the
// stream is currently positioned at a line start.
type PrefixWriter struct {
	w         io.Writer
	prefix    PrefixFunc
	lineStart bool
}

func NewPrefixWriter(w io.Writer, prefix PrefixFunc) *PrefixWriter {
	return &PrefixWriter{w: w, prefix: prefix, lineStart: true}
}

func (p *PrefixWriter) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if p.prefix == nil {
		return p.w.Write(data)
	}

	prefix := p.prefix()
	if prefix == "" {
		return p.w.Write(data)
	}

	out := make([]byte, 0, len(data)+len(prefix))
	if p.lineStart {
		out = append(out, prefix...)
	}
	for i, b := range data {
		out = append(out, b)
		if b == '\n' && i != len(data)-1 {
			out = append(out, prefix...)
		}
	}
	p.lineStart = data[len(data)-1] == '\n'

	n, err := p.w.Write(out)
	if err != nil {
		return 0, err
	}
	_ = n
	return len(data), nil
}
