// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rxnblock

import (
	"strings"
	"testing"

	"github.com/mwalton/rdfkit/pkg/types"
)

func scanAll(t *testing.T, block string) []Property {
	t.Helper()
	var props []Property
	sc := NewPropertyScanner(block)
	for sc.Scan() {
		props = append(props, sc.Property())
	}
	return props
}

func TestPropertyScannerPlainValues(t *testing.T) {
	block := "$RXN\npreamble ignored\n" +
		"$DTYPE RXN:VARIATION(1):YIELD\n" +
		"$DATUM 87.0\n" +
		"$DTYPE RXN:LITREF\n" +
		"$DATUM J. Org. Chem.\n"

	props := scanAll(t, block)
	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2", len(props))
	}
	if props[0].Key != "rxn_variation_1__yield" || props[0].Value != "87.0" {
		t.Errorf("first property = %q=%q", props[0].Key, props[0].Value)
	}
	if props[1].Key != "rxn_litref" || props[1].Value != "J. Org. Chem." {
		t.Errorf("second property = %q=%q", props[1].Key, props[1].Value)
	}
}

func TestPropertyScannerContinuation(t *testing.T) {
	// A trailing "+" joins the next line without a break; the marker and
	// at most one following whitespace character are stripped from the
	// joined text.
	block := "$DTYPE RXN:VARIATION(1):TEXT\n" +
		"$DATUM 87.0-+\n" +
		"87.0\n"

	props := scanAll(t, block)
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1", len(props))
	}
	if props[0].Value != "87.0-87.0" {
		t.Errorf("value = %q, want \"87.0-87.0\"", props[0].Value)
	}
}

func TestPropertyScannerEmbeddedStructure(t *testing.T) {
	block := "$DTYPE RXN:VARIATION(1):CATALYST(1):MOL\n" +
		"$DATUM $MFMT\n" +
		molBlock("palladium", "P") +
		"$DTYPE RXN:VARIATION(1):SOLVENT(1):MOL\n" +
		"$DATUM $MFMT\n" +
		molBlock("toluene", "C")

	props := scanAll(t, block)
	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2", len(props))
	}

	cat := props[0]
	if cat.Structure == nil {
		t.Fatal("catalyst property has no structure")
	}
	if cat.Structure.Role != types.RoleCatalyst {
		t.Errorf("role = %q, want %q", cat.Structure.Role, types.RoleCatalyst)
	}
	// The "$MFMT" line itself is not part of the block text.
	if !strings.HasPrefix(cat.Structure.Text, "palladium\n") {
		t.Errorf("structure text starts %q, want the block's name line", firstLine(cat.Structure.Text))
	}

	sol := props[1]
	if sol.Structure == nil || sol.Structure.Role != types.RoleSolvent {
		t.Errorf("solvent property = %+v, want a solvent structure", sol.Structure)
	}
}

func TestPropertyScannerCatalystBeforeSolvent(t *testing.T) {
	// A tag naming both reads as catalyst.
	block := "$DTYPE RXN:SOLVENT:CATALYST:MOL\n" +
		"$DATUM $MFMT\n" +
		molBlock("mixed", "C")

	props := scanAll(t, block)
	if len(props) != 1 || props[0].Structure == nil {
		t.Fatalf("bad scan result: %+v", props)
	}
	if props[0].Structure.Role != types.RoleCatalyst {
		t.Errorf("role = %q, want %q", props[0].Structure.Role, types.RoleCatalyst)
	}
}

func TestPropertyScannerRestart(t *testing.T) {
	block := "$DTYPE RXN:LITREF\n$DATUM ref\n"
	sc := NewPropertyScanner(block)
	for sc.Scan() {
	}
	// A fresh scanner over the same text sees the same stream.
	props := scanAll(t, block)
	if len(props) != 1 || props[0].Value != "ref" {
		t.Errorf("rescan = %+v", props)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"RXN:VARIATION:STEPNO:SOLVENT(1):MOL:SYMBOL", "rxn_variation_stepno_solvent_1__mol_symbol"},
		{"RXN:LITREF", "rxn_litref"},
		{"  padded  ", "padded"},
		{"1STKEY", "_1stkey"},
		{"TRAILING:::", "trailing"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := SanitizeKey(tt.raw); got != tt.want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
