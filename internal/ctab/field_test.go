// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ctab

import (
	"errors"
	"testing"
)

func TestDecodeField(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		span   *Span
		kind   Kind
		def    any
		policy CastPolicy
		want   any
	}{
		{"string slice", "line      \n", &Span{0, 2}, String, nil, Propagate, "li"},
		{"string strips whitespace", "  ab  \n", nil, String, nil, Propagate, "ab"},
		{"int slice", "12      \n", &Span{0, 2}, Int, nil, Propagate, 12},
		{"float slice", "12      \n", &Span{0, 2}, Float, nil, Propagate, 12.0},
		{"empty string", "", nil, String, nil, Propagate, ""},
		{"empty string default", "", nil, String, "default", Propagate, "default"},
		{"empty int", "", nil, Int, nil, Propagate, 0},
		{"empty int default", "", nil, Int, 12, Propagate, 12},
		{"empty float", "", nil, Float, nil, Propagate, 0.0},
		{"empty float default", "", nil, Float, 12.0, Propagate, 12.0},
		{"whitespace only int", "   \t ", nil, Int, nil, Propagate, 0},
		{"newline only float", "\n", nil, Float, nil, Propagate, 0.0},
		{"cast failure substituted", "12.0", nil, Int, nil, SubstituteDefault, 0},
		{"cast failure substituted default", "12.0", nil, Int, 7, SubstituteDefault, 7},
		{"span past end of line", "ab", &Span{0, 10}, String, nil, Propagate, "ab"},
		{"span entirely past end", "ab", &Span{5, 10}, Int, nil, Propagate, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeField(tt.line, tt.span, tt.kind, tt.def, tt.policy)
			if err != nil {
				t.Fatalf("DecodeField: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeField = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeFieldPropagatesCastError(t *testing.T) {
	_, err := DecodeField("12.0", nil, Int, nil, Propagate)
	if err == nil {
		t.Fatal("expected a cast error")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *FieldError", err)
	}
	if fe.Text != "12.0" || fe.Kind != Int {
		t.Errorf("FieldError = %+v, want Text=12.0 Kind=Int", fe)
	}
}

func TestWholeLineItem(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"sample name   \n", "sample name"},
		{"", ""},
		{"   \n", ""},
	}
	for _, tt := range tests {
		if got := WholeLineItem(tt.line); got != tt.want {
			t.Errorf("WholeLineItem(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
