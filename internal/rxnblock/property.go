// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rxnblock

import (
	"regexp"
	"strings"

	"github.com/mwalton/rdfkit/pkg/types"
)

const (
	dtypeMarker = "$DTYPE "
	datumMarker = "$DATUM"
	mfmtMarker  = "$MFMT"
)

// Property is one key/value pair from a reaction block's property stream.
// Structure is non-nil when the value is an embedded structure block, in
// which case Value is empty and the structure's role is already inferred.
type Property struct {
	// Key is the sanitized identifier form of the $DTYPE text. An empty key
	// means sanitization consumed the whole name; the pair is still emitted
	// and the caller decides how to file it.
	Key       string
	Value     string
	Structure *types.StructureBlock
}

// PropertyScanner walks a reaction block's property stream: each line
// beginning with "$DTYPE " opens a pair whose value is every following line
// up to the next such sentinel. A value line ending in "+" is a continuation
// and joins the next line with no newline between them. The scan is lazy and
// single-pass; to restart, build a new scanner from the source text.
type PropertyScanner struct {
	lines []string
	idx   int
	cur   Property
}

// NewPropertyScanner returns a scanner over block's property stream.
func NewPropertyScanner(block string) *PropertyScanner {
	return &PropertyScanner{lines: strings.Split(block, "\n")}
}

// Scan advances to the next property pair, returning false at end of input.
func (s *PropertyScanner) Scan() bool {
	for ; s.idx < len(s.lines); s.idx++ {
		if strings.HasPrefix(s.lines[s.idx], dtypeMarker) {
			break
		}
	}
	if s.idx >= len(s.lines) {
		return false
	}

	dtype := s.lines[s.idx]
	s.idx++

	var datum strings.Builder
	for ; s.idx < len(s.lines); s.idx++ {
		line := s.lines[s.idx]
		if strings.HasPrefix(line, dtypeMarker) {
			break
		}
		if strings.HasSuffix(line, "+") {
			datum.WriteString(line[:len(line)-1])
		} else {
			datum.WriteString(line)
			datum.WriteByte('\n')
		}
	}

	s.cur = buildProperty(dtype, datum.String())
	return true
}

// Property returns the pair produced by the last successful Scan.
func (s *PropertyScanner) Property() Property {
	return s.cur
}

// buildProperty normalizes one raw dtype/datum pair. The value has its
// leading $DATUM token stripped; a value opening with $MFMT is an embedded
// structure block whose marker line is removed and whose role comes from
// the dtype text.
func buildProperty(dtype, datum string) Property {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(dtype), dtypeMarker))
	prop := Property{Key: SanitizeKey(raw)}

	datum = stripDatumMarker(datum)
	if strings.HasPrefix(datum, mfmtMarker) {
		prop.Structure = &types.StructureBlock{
			Text: stripFirstLine(datum),
			Role: inferRole(raw),
		}
		return prop
	}
	prop.Value = strings.TrimSpace(datum)
	return prop
}

// stripDatumMarker removes a leading $DATUM token and at most one following
// whitespace character.
func stripDatumMarker(datum string) string {
	if !strings.HasPrefix(datum, datumMarker) {
		return datum
	}
	datum = datum[len(datumMarker):]
	if len(datum) > 0 {
		switch datum[0] {
		case ' ', '\t', '\n', '\r':
			datum = datum[1:]
		}
	}
	return datum
}

func stripFirstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[idx+1:]
	}
	return ""
}

// inferRole tags an embedded structure from its dtype text. Catalyst is
// checked before solvent; the first match wins, and text naming neither is
// an untagged reagent.
func inferRole(rawKey string) types.Role {
	lower := strings.ToLower(rawKey)
	switch {
	case strings.Contains(lower, "catalyst"):
		return types.RoleCatalyst
	case strings.Contains(lower, "solvent"):
		return types.RoleSolvent
	default:
		return types.RoleOtherReagent
	}
}

var nonIdentChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeKey collapses a raw property name into a lower-case identifier:
// a leading digit gains an underscore prefix, every character outside
// [A-Za-z0-9_] becomes an underscore, and trailing underscores are trimmed.
// Names that sanitize to nothing yield "".
func SanitizeKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\r\n")
	if s == "" {
		return ""
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	s = nonIdentChars.ReplaceAllString(s, "_")
	s = strings.ToLower(s)
	return strings.TrimRight(s, "_")
}
