// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ctab decodes the fixed-width header lines of Chemical Table File
// blocks. A compact format string such as "IIPPPPPPPPMMDDYY" describes the
// line layout: each letter, repeated N times, denotes an N-byte field at
// that position.
package ctab

// Header format strings for the supported block layouts, per the CTfile
// specification (http://c4.cabrillo.edu/404/ctfile.pdf).
const (
	MolHeaderFormat     = "IIPPPPPPPPMMDDYYHHmmddSSssssssssssEEEEEEEEEEEERRRRRR"
	RxnHeaderFormat     = "IIIIIIPPPPPPPPPMMDDYYYYHHmmRRRRRRR"
	SpresiHeaderFormat  = "IIIIIIPPPPPPPPPPMMDDYYHHmmRRRRRRR"
	ComponentCountsLine = "rrrppp"
)

// Span is a half-open [Start, End) byte range within a fixed-width line.
type Span struct {
	Start int
	End   int
}

// Format is a compiled format string: an ordered set of letter spans that
// partition [0, len(format string)) with no gaps or overlaps.
type Format struct {
	letters []byte
	spans   map[byte]Span
}

// CompileFormat scans a format string left to right, closing the current run
// whenever the letter changes, and returns the compiled spans in first-
// appearance order. The empty string is a precondition violation; callers
// must never pass it.
func CompileFormat(s string) Format {
	f := Format{spans: make(map[byte]Span)}
	last := s[0]
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] != last {
			f.letters = append(f.letters, last)
			f.spans[last] = Span{Start: start, End: i}
			last = s[i]
			start = i
		}
	}
	f.letters = append(f.letters, last)
	f.spans[last] = Span{Start: start, End: len(s)}
	return f
}

// Span returns the byte range for letter and whether the letter appears in
// the format.
func (f Format) Span(letter byte) (Span, bool) {
	s, ok := f.spans[letter]
	return s, ok
}

// Letters returns the format letters in first-appearance order.
func (f Format) Letters() []byte {
	out := make([]byte, len(f.letters))
	copy(out, f.letters)
	return out
}
