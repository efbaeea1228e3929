// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ctab

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the target type of a fixed-width field.
type Kind int

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// CastPolicy controls what happens when a non-blank field fails to cast.
type CastPolicy int

const (
	// SubstituteDefault replaces an uncastable field with its default.
	SubstituteDefault CastPolicy = iota
	// Propagate surfaces the cast failure as a *FieldError.
	Propagate
)

// FieldError reports a fixed-width field that could not be cast to its
// target type under the Propagate policy.
type FieldError struct {
	Text string
	Kind Kind
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cannot cast %q to %s", e.Text, e.Kind)
}

// DecodeField extracts one field from a line. The line is sliced by span when
// span is non-nil, stripped of its trailing line terminator and surrounding
// whitespace, and cast to kind. A blank field yields def when supplied, else
// the type's zero value. A cast failure yields the same default resolution
// under SubstituteDefault, or a *FieldError under Propagate.
func DecodeField(line string, span *Span, kind Kind, def any, policy CastPolicy) (any, error) {
	if span != nil {
		start, end := span.Start, span.End
		if start > len(line) {
			start = len(line)
		}
		if end > len(line) {
			end = len(line)
		}
		line = line[start:end]
	}
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)

	if line == "" {
		return defaultValue(kind, def), nil
	}

	v, err := cast(line, kind)
	if err != nil {
		if policy == SubstituteDefault {
			return defaultValue(kind, def), nil
		}
		return nil, &FieldError{Text: line, Kind: kind}
	}
	return v, nil
}

// WholeLineItem decodes a free-text line: the whole line as a string with an
// empty-string default.
func WholeLineItem(line string) string {
	v, _ := DecodeField(line, nil, String, "", SubstituteDefault)
	return v.(string)
}

func cast(s string, kind Kind) (any, error) {
	switch kind {
	case String:
		return s, nil
	case Int:
		return strconv.Atoi(s)
	case Float:
		return strconv.ParseFloat(s, 64)
	}
	return nil, fmt.Errorf("unknown field kind %d", int(kind))
}

// defaultValue resolves a blank or uncastable field. Numeric and string
// kinds never resolve to nil: absent an explicit default they yield the
// type's zero value.
func defaultValue(kind Kind, def any) any {
	if def != nil {
		return def
	}
	switch kind {
	case Int:
		return 0
	case Float:
		return 0.0
	default:
		return ""
	}
}
