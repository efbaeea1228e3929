// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdfile

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mwalton/rdfkit/pkg/types"
)

const testHeaderLine = "MW    rdfkit   052420221423  12345"

func testMolBlock(name, symbol string) string {
	return name + "\n" +
		"MWrdfkit  05242214232D 1       0.5         0.0RX1234\n" +
		"\n" +
		"  1  0  0  0  0  0  0  0  0  0999 V2000\n" +
		"    0.0000    0.0000    0.0000 " + symbol + "   0  0  0  0  0  0  0  0  0  0  0  0\n" +
		"M  END\n"
}

// testRxnBlock builds a one-reactant, one-product reaction block. It spans 19
// lines.
func testRxnBlock(name string) string {
	return "$RXN\n" + name + "\n" + testHeaderLine + "\ncomment\n  1  1\n" +
		"$MOL\n" + testMolBlock("a", "C") +
		"$MOL\n" + testMolBlock("b", "O")
}

func testContainer(blocks ...string) string {
	var b strings.Builder
	b.WriteString("$RDFILE 1\n$DATM 05/24/22 14:23\n")
	for i, block := range blocks {
		b.WriteString("$RFMT $RIREG ")
		b.WriteString([]string{"1001", "1002", "1003"}[i])
		b.WriteString("\n")
		b.WriteString(block)
	}
	return b.String()
}

func TestReaderMetadata(t *testing.T) {
	r := NewReader(strings.NewReader(testContainer(testRxnBlock("one"))), types.DefaultParserConfig())
	meta := r.Metadata()
	if meta.Version != "1" {
		t.Errorf("Version = %q, want \"1\"", meta.Version)
	}
	if meta.DateStamp != "05/24/22 14:23" {
		t.Errorf("DateStamp = %q", meta.DateStamp)
	}

	// Metadata before Next does not disturb record streaming.
	rxn, err := r.Next()
	if err != nil {
		t.Fatalf("Next after Metadata: %v", err)
	}
	if rxn.ID != "1001" {
		t.Errorf("first record ID = %q, want 1001", rxn.ID)
	}
}

func TestReaderNext(t *testing.T) {
	input := testContainer(testRxnBlock("one"), testRxnBlock("two"))
	r := NewReader(strings.NewReader(input), types.DefaultParserConfig())

	first, err := r.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first.ID != "1001" || first.LineNo != 3 {
		t.Errorf("first record = %q at line %d, want 1001 at line 3", first.ID, first.LineNo)
	}
	if name, _ := first.Metadata.Get("reaction_name"); name != "one" {
		t.Errorf("reaction_name = %v, want one", name)
	}
	if first.File == nil || first.File.Version != "1" {
		t.Errorf("record carries file metadata %+v", first.File)
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	// One delimiter line plus 19 block lines per record.
	if second.ID != "1002" || second.LineNo != 23 {
		t.Errorf("second record = %q at line %d, want 1002 at line 23", second.ID, second.LineNo)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next past last record = %v, want io.EOF", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("repeated Next = %v, want io.EOF", err)
	}
}

func TestReaderStrictFailure(t *testing.T) {
	// The middle block is framed like a record but is not a reaction.
	input := testContainer(testRxnBlock("one"), "not a reaction\n", testRxnBlock("three"))
	r := NewReader(strings.NewReader(input), types.DefaultParserConfig())

	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	_, err := r.Next()
	if err == nil {
		t.Fatal("second Next succeeded on a non-reaction block")
	}
	if !strings.Contains(err.Error(), "1002") {
		t.Errorf("error %q does not name the failed record", err)
	}
}

func TestReaderTolerant(t *testing.T) {
	input := testContainer(testRxnBlock("one"), "not a reaction\n", testRxnBlock("three"))
	cfg := types.DefaultParserConfig()
	cfg.SkipInvalidReactions = true

	rxns, err := NewReader(strings.NewReader(input), cfg).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rxns) != 3 {
		t.Fatalf("got %d slots, want 3", len(rxns))
	}
	if rxns[0] == nil || rxns[2] == nil {
		t.Error("valid records came back nil")
	}
	if rxns[1] != nil {
		t.Errorf("failed record slot = %+v, want nil", rxns[1])
	}
}

func TestReaderContainerError(t *testing.T) {
	input := "$RDFILE 1\n$DATM 05/24/22 14:23\nstray text\n"
	r := NewReader(strings.NewReader(input), types.DefaultParserConfig())

	_, err := r.Next()
	var ce *ContainerError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ContainerError", err)
	}
	if ce.Line != 3 || ce.Found != "stray text" {
		t.Errorf("ContainerError = %+v, want line 3 %q", ce, "stray text")
	}
}

// brokenPipeReader serves its content, then fails with err instead of a
// clean end of input.
type brokenPipeReader struct {
	r   io.Reader
	err error
}

func (b *brokenPipeReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err == io.EOF {
		return n, b.err
	}
	return n, err
}

func TestReaderPropagatesReadErrors(t *testing.T) {
	errReset := errors.New("connection reset")
	// A container truncated mid-stream by a transport failure must surface
	// that failure, even in tolerant mode, instead of reporting a clean end.
	input := testContainer(testRxnBlock("one"), testRxnBlock("two"))
	cfg := types.DefaultParserConfig()
	cfg.SkipInvalidReactions = true

	src := &brokenPipeReader{r: strings.NewReader(input[:len(input)/2]), err: errReset}
	_, err := NewReader(src, cfg).ReadAll()
	if !errors.Is(err, errReset) {
		t.Errorf("ReadAll = %v, want the underlying read error", err)
	}
}

func TestReaderNextRaw(t *testing.T) {
	block := testRxnBlock("one")
	r := NewReader(strings.NewReader(testContainer(block)), types.DefaultParserConfig())

	raw, err := r.NextRaw()
	if err != nil {
		t.Fatalf("NextRaw: %v", err)
	}
	if raw.ID != "1001" || raw.Line != 3 {
		t.Errorf("raw framing = %q at line %d", raw.ID, raw.Line)
	}
	if raw.Block != block {
		t.Errorf("raw block differs from source:\n%q\nwant\n%q", raw.Block, block)
	}
}
