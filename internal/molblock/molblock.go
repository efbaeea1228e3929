// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package molblock extracts header metadata from structure blocks.
package molblock

import (
	"fmt"
	"strings"

	"github.com/mwalton/rdfkit/internal/ctab"
	"github.com/mwalton/rdfkit/pkg/types"
)

// regMarker opens a long-form registry number line. Registry numbers wider
// than the header's fixed field are carried on one of these instead; the
// payload starts at the fixed offset right after the marker.
const (
	regMarker = "M  REG "
	regOffset = len(regMarker)
)

// Metadata decodes the 3-line header of a structure block using the default
// mol-block layout: line 0 is the whole-line name, line 1 the fixed-width
// header, line 2 the whole-line comment. A long-form registry number line
// anywhere in the block overrides the header's registry_number; the last
// such line wins.
func Metadata(block string) (*types.Metadata, error) {
	return parse(block, ctab.MolHeaderFormat, ctab.DefaultFieldTable(), false)
}

func parse(block, format string, table ctab.FieldTable, strict bool) (*types.Metadata, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 3 {
		return nil, fmt.Errorf("structure block has %d lines, need at least the 3-line header", len(lines))
	}

	md := types.NewMetadata()
	md.Set("molecule_name", ctab.WholeLineItem(lines[0]))
	header, err := ctab.DecodeHeaderLine(lines[1], format, table, strict)
	if err != nil {
		return nil, fmt.Errorf("decoding structure header: %w", err)
	}
	for _, k := range header.Keys() {
		v, _ := header.Get(k)
		md.Set(k, v)
	}
	md.Set("comment", ctab.WholeLineItem(lines[2]))

	if regno, ok := largeRegno(lines); ok {
		md.Set("registry_number", regno)
	}
	return md, nil
}

// largeRegno scans for long-form registry number lines and returns the last
// one's payload.
func largeRegno(lines []string) (string, bool) {
	regno, found := "", false
	for _, line := range lines {
		if strings.HasPrefix(line, regMarker) {
			span := ctab.Span{Start: regOffset, End: len(line)}
			v, _ := ctab.DecodeField(line, &span, ctab.String, nil, ctab.SubstituteDefault)
			regno, found = v.(string), true
		}
	}
	return regno, found
}
