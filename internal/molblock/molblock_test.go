// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package molblock

import (
	"testing"
	"time"

	"github.com/mwalton/rdfkit/pkg/types"
)

const sampleMolBlock = `sample name
MWrdfkit  05242214232D 1       0.5         0.0RX1234
a comment
  2  1  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    0.0000    0.0000    0.0000 O   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
M  END
`

func TestMetadata(t *testing.T) {
	md, err := Metadata(sampleMolBlock)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}

	want := map[string]any{
		"molecule_name":     "sample name",
		"user_initials":     "MW",
		"program_name":      "rdfkit",
		"dimensional_codes": "2D",
		"scaling_factor_1":  1,
		"scaling_factor_2":  0.5,
		"energy":            0.0,
		"registry_number":   "RX1234",
		"comment":           "a comment",
	}
	for key, wantVal := range want {
		got, ok := md.Get(key)
		if !ok {
			t.Errorf("key %s missing", key)
			continue
		}
		if got != wantVal {
			t.Errorf("%s = %#v, want %#v", key, got, wantVal)
		}
	}

	dt, ok := md.Time(types.DateTimeKey)
	if !ok {
		t.Fatal("date_time missing")
	}
	if want := time.Date(22, 5, 24, 14, 23, 0, 0, time.UTC); !dt.Equal(want) {
		t.Errorf("date_time = %v, want %v", dt, want)
	}
}

func TestMetadataLargeRegnoOverride(t *testing.T) {
	block := sampleMolBlock + "M  REG 123456789012\nM  END\n"

	md, err := Metadata(block)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if got := md.String("registry_number"); got != "123456789012" {
		t.Errorf("registry_number = %q, want the long-form override", got)
	}
}

func TestMetadataLargeRegnoLastWins(t *testing.T) {
	block := sampleMolBlock + "M  REG 111\nM  REG 222\nM  END\n"

	md, err := Metadata(block)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if got := md.String("registry_number"); got != "222" {
		t.Errorf("registry_number = %q, want %q (last override wins)", got, "222")
	}
}

func TestMetadataNoRegnoLineKeepsHeaderValue(t *testing.T) {
	md, err := Metadata(sampleMolBlock)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if got := md.String("registry_number"); got != "RX1234" {
		t.Errorf("registry_number = %q, want the header value %q", got, "RX1234")
	}
}

func TestMetadataTruncatedBlock(t *testing.T) {
	if _, err := Metadata("just a name\n"); err == nil {
		t.Fatal("expected an error for a block shorter than its header")
	}
}
