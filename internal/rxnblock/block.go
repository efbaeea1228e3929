// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rxnblock decomposes one reaction block into header metadata,
// reactant and product structure blocks, and the trailing property stream.
package rxnblock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwalton/rdfkit/internal/ctab"
	"github.com/mwalton/rdfkit/pkg/types"
)

const (
	blockMarker = "$RXN"
	molMarker   = "$MOL\n"
	endMarker   = "M  END\n"
)

// ErrNotReactionBlock reports text that does not begin with the $RXN marker.
var ErrNotReactionBlock = errors.New("reaction block does not begin with $RXN")

// CountMismatchError reports a reaction block whose structure sub-blocks
// cannot be reconciled with its header declaration: more segments than
// declared, or a negative declared count. Declared counts are authoritative;
// a mismatch is a hard parse error, never a silent truncation.
type CountMismatchError struct {
	Got       int
	Reactants int
	Products  int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("reaction block has %d structure blocks, header declares %d reactants and %d products",
		e.Got, e.Reactants, e.Products)
}

// Validate checks that block carries the leading reaction marker.
func Validate(block string) error {
	if !strings.HasPrefix(block, blockMarker) {
		return ErrNotReactionBlock
	}
	return nil
}

// Metadata decodes the 5-line reaction header: line 1 is the whole-line
// reaction name, line 2 the fixed-width header in headerFormat, line 3 the
// whole-line comment, line 4 the reactant/product counts line.
func Metadata(block, headerFormat string, table ctab.FieldTable, strict bool) (*types.Metadata, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 5 {
		return nil, fmt.Errorf("reaction block has %d lines, need the 5-line header", len(lines))
	}

	md := types.NewMetadata()
	md.Set("reaction_name", ctab.WholeLineItem(lines[1]))
	header, err := ctab.DecodeHeaderLine(lines[2], headerFormat, table, strict)
	if err != nil {
		return nil, fmt.Errorf("decoding reaction header: %w", err)
	}
	for _, k := range header.Keys() {
		v, _ := header.Get(k)
		md.Set(k, v)
	}
	md.Set("comment", ctab.WholeLineItem(lines[3]))
	counts, err := ctab.DecodeHeaderLine(lines[4], ctab.ComponentCountsLine, table, strict)
	if err != nil {
		return nil, fmt.Errorf("decoding counts line: %w", err)
	}
	for _, k := range counts.Keys() {
		v, _ := counts.Get(k)
		md.Set(k, v)
	}
	return md, nil
}

// MolBlocks slices the reactant and product structure blocks out of a
// reaction block. The text is split on the $MOL marker and the pre-marker
// preamble discarded. A segment that does not end with the end marker has
// trailing property-stream text attached; it is truncated at the first end
// marker, which is then re-appended. The first reactantCount segments are
// reactants, the next productCount are products, in source order. A negative
// declared count is a count mismatch, never an index into the segments.
func MolBlocks(block string, reactantCount, productCount int) (reactants, products []string, err error) {
	segments := strings.Split(block, molMarker)
	segments = segments[1:]

	if reactantCount < 0 || productCount < 0 {
		return nil, nil, &CountMismatchError{
			Got:       len(segments),
			Reactants: reactantCount,
			Products:  productCount,
		}
	}
	if len(segments) > reactantCount+productCount {
		return nil, nil, &CountMismatchError{
			Got:       len(segments),
			Reactants: reactantCount,
			Products:  productCount,
		}
	}

	for i, seg := range segments {
		if !strings.HasSuffix(seg, endMarker) {
			segments[i] = strings.SplitN(seg, endMarker, 2)[0] + endMarker
		}
	}

	split := reactantCount
	if split > len(segments) {
		split = len(segments)
	}
	return segments[:split], segments[split:], nil
}
