// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rxnblock

import "testing"

func TestParseYield(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"87.0", 87.0, true},
		{"75", 75, true},
		{"87.0-87.0", 87.0, true},
		{"80-90", 85, true},
		{"87.5 - 90.5", 89, true},
		{"60;70", 65, true},
		{"60, 70", 65, true},
		{"60 70", 65, true},
		{">95", 0, false},
		{"ca. 80", 0, false},
		{"", 0, false},
		{"80-", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseYield(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseYield(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseYield(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
