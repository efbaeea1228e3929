// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ctab

import (
	"fmt"
	"time"

	"github.com/mwalton/rdfkit/pkg/types"
)

// FieldSpec describes how one format letter decodes: the output field name,
// the target type, and the value substituted when the field is blank.
type FieldSpec struct {
	Name    string
	Kind    Kind
	Default any
}

// FieldTable maps a format letter to its FieldSpec.
type FieldTable map[byte]FieldSpec

// DefaultFieldTable returns the letter table shared by the mol and rxn block
// header layouts. A fresh map is built per call so callers can override
// entries without affecting each other.
func DefaultFieldTable() FieldTable {
	return FieldTable{
		'I': {Name: "user_initials", Kind: String, Default: ""},
		'P': {Name: "program_name", Kind: String, Default: ""},
		'M': {Name: "month", Kind: Int, Default: 0},
		'D': {Name: "day", Kind: Int, Default: 0},
		'Y': {Name: "year", Kind: Int, Default: 0},
		'H': {Name: "hour", Kind: Int, Default: 0},
		'm': {Name: "minute", Kind: Int, Default: 0},
		'd': {Name: "dimensional_codes", Kind: String, Default: ""},
		'S': {Name: "scaling_factor_1", Kind: Int, Default: 0},
		's': {Name: "scaling_factor_2", Kind: Float, Default: 0.0},
		'E': {Name: "energy", Kind: Float, Default: 0.0},
		'R': {Name: "registry_number", Kind: String, Default: ""},
		'r': {Name: "reactant_count", Kind: Int, Default: 0},
		'p': {Name: "product_count", Kind: Int, Default: 0},
	}
}

// ConfigError reports a format string whose letter has no entry in the field
// table. This is a mismatch between two pieces of configuration, not a data
// error, and is never recoverable.
type ConfigError struct {
	Letter byte
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("format letter %q has no field table entry", e.Letter)
}

// DecodeHeaderLine decodes one fixed-width header line into field-name-keyed
// metadata using the compiled spans of format and the letter table. Letters
// present in the format but absent from the table are a *ConfigError. After
// decoding, year/month/day/hour/minute sub-fields are combined into a single
// date_time value; when the combination is out of range the sub-fields are
// replaced by a nil date_time marker, or by an error when strict is set.
func DecodeHeaderLine(line, format string, table FieldTable, strict bool) (*types.Metadata, error) {
	f := CompileFormat(format)
	md := types.NewMetadata()
	for _, letter := range f.Letters() {
		spec, ok := table[letter]
		if !ok {
			return nil, &ConfigError{Letter: letter}
		}
		span, _ := f.Span(letter)
		v, err := DecodeField(line, &span, spec.Kind, spec.Default, SubstituteDefault)
		if err != nil {
			return nil, err
		}
		md.Set(spec.Name, v)
	}
	if err := combineDateTime(md, strict); err != nil {
		return nil, err
	}
	return md, nil
}

var dateTimeFields = []string{"year", "month", "day", "hour", "minute"}

// combineDateTime synthesizes md's date-time sub-fields into a single
// date_time value and deletes the raw sub-fields. Header lines without any
// date sub-field are left untouched. An out-of-range combination stores nil
// under date_time unless strict is set.
func combineDateTime(md *types.Metadata, strict bool) error {
	present := 0
	parts := make(map[string]int, len(dateTimeFields))
	for _, k := range dateTimeFields {
		if v, ok := md.Get(k); ok {
			present++
			if n, ok := v.(int); ok {
				parts[k] = n
			}
		}
	}
	if present == 0 {
		return nil
	}

	t, err := makeDate(parts)
	if err != nil {
		if strict {
			return err
		}
		md.Set(types.DateTimeKey, nil)
	} else {
		md.Set(types.DateTimeKey, t)
	}
	for _, k := range dateTimeFields {
		md.Delete(k)
	}
	return nil
}

// makeDate validates the sub-fields the way a calendar does: time.Date
// normalizes out-of-range values, so the result must round-trip exactly.
func makeDate(parts map[string]int) (time.Time, error) {
	year, month, day := parts["year"], parts["month"], parts["day"]
	hour, minute := parts["hour"], parts["minute"]
	if year < 1 {
		return time.Time{}, fmt.Errorf("date out of range: year %d", year)
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, fmt.Errorf("date out of range: %04d-%02d-%02d %02d:%02d",
			year, month, day, hour, minute)
	}
	return t, nil
}
