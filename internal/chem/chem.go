// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chem is the boundary to the chemistry-structure collaborator.
// The parsing core treats structure blocks as opaque text; interpreting one
// into a structure handle and rendering a canonical string are delegated to
// a Parser implementation. The built-in TableParser validates the block's
// atom/bond table shape and derives a Hill-order molecular formula; callers
// wanting real cheminformatics plug in their own Parser.
package chem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwalton/rdfkit/internal/ctab"
)

// Structure is an opaque handle produced by a Parser.
type Structure interface{}

// Parser interprets structure blocks.
type Parser interface {
	// ParseStructure interprets a structure block. Unparsable input fails
	// with an *InvalidStructureError.
	ParseStructure(block string) (Structure, error)

	// CanonicalString renders a canonical representation of s. The second
	// return value is false when no canonical string can be produced.
	CanonicalString(s Structure) (string, bool)
}

// InvalidStructureError reports a structure block the parser rejected.
type InvalidStructureError struct {
	Reason string
}

func (e *InvalidStructureError) Error() string {
	return "invalid structure block: " + e.Reason
}

// TableParser is the built-in Parser. It checks the block's shape — counts
// line, atom table arity, terminating end marker — and counts element
// symbols from the atom table.
type TableParser struct{}

// NewTableParser returns the built-in structure parser.
func NewTableParser() *TableParser { return &TableParser{} }

// molecule is the TableParser handle: element symbol → atom count.
type molecule struct {
	atoms map[string]int
}

const endMarker = "M  END"

// Atom symbols occupy columns 31-34 of an atom line.
const (
	symbolStart = 31
	symbolEnd   = 34
)

// ParseStructure validates the block shape and tallies its atoms.
func (p *TableParser) ParseStructure(block string) (Structure, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 4 {
		return nil, &InvalidStructureError{Reason: "block shorter than its 3-line header and counts line"}
	}

	countsLine := lines[3]
	atomCount, err := countsField(countsLine, 0, 3)
	if err != nil {
		return nil, &InvalidStructureError{Reason: fmt.Sprintf("counts line %q: %v", countsLine, err)}
	}
	bondCount, err := countsField(countsLine, 3, 6)
	if err != nil {
		return nil, &InvalidStructureError{Reason: fmt.Sprintf("counts line %q: %v", countsLine, err)}
	}
	if atomCount < 0 || bondCount < 0 {
		return nil, &InvalidStructureError{Reason: fmt.Sprintf(
			"counts line %q declares %d atoms and %d bonds", countsLine, atomCount, bondCount)}
	}

	tableEnd := 4 + atomCount + bondCount
	if tableEnd > len(lines) {
		return nil, &InvalidStructureError{Reason: fmt.Sprintf(
			"counts line declares %d atoms and %d bonds but the block has %d table lines",
			atomCount, bondCount, len(lines)-4)}
	}

	m := &molecule{atoms: make(map[string]int)}
	for _, line := range lines[4 : 4+atomCount] {
		sym := atomSymbol(line)
		if sym == "" {
			return nil, &InvalidStructureError{Reason: fmt.Sprintf("atom line %q has no element symbol", line)}
		}
		m.atoms[sym]++
	}

	if !hasEndMarker(lines[tableEnd:]) {
		return nil, &InvalidStructureError{Reason: "block has no M  END marker"}
	}
	return m, nil
}

// CanonicalString renders the handle's Hill-order molecular formula:
// carbon first, hydrogen second, remaining elements alphabetical. An empty
// structure yields no canonical string.
func (p *TableParser) CanonicalString(s Structure) (string, bool) {
	m, ok := s.(*molecule)
	if !ok || len(m.atoms) == 0 {
		return "", false
	}

	symbols := make([]string, 0, len(m.atoms))
	for sym := range m.atoms {
		if sym != "C" && sym != "H" {
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)
	if _, ok := m.atoms["H"]; ok {
		symbols = append([]string{"H"}, symbols...)
	}
	if _, ok := m.atoms["C"]; ok {
		symbols = append([]string{"C"}, symbols...)
	}

	var b strings.Builder
	for _, sym := range symbols {
		b.WriteString(sym)
		if n := m.atoms[sym]; n > 1 {
			fmt.Fprintf(&b, "%d", n)
		}
	}
	return b.String(), true
}

func countsField(line string, start, end int) (int, error) {
	span := ctab.Span{Start: start, End: end}
	v, err := ctab.DecodeField(line, &span, ctab.Int, nil, ctab.Propagate)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func atomSymbol(line string) string {
	span := ctab.Span{Start: symbolStart, End: symbolEnd}
	v, _ := ctab.DecodeField(line, &span, ctab.String, "", ctab.SubstituteDefault)
	return v.(string)
}

func hasEndMarker(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, endMarker) {
			return true
		}
	}
	return false
}
