// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rdfile streams reaction records out of an RDF container file and
// writes containers back out. The reader owns exclusive sequential access
// to its input; one record is parsed at a time and no state is shared
// across records beyond the read-only container metadata.
package rdfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mwalton/rdfkit/internal/chem"
	"github.com/mwalton/rdfkit/internal/ctab"
	"github.com/mwalton/rdfkit/internal/rxnblock"
	"github.com/mwalton/rdfkit/pkg/types"
)

const (
	recordMarker = "$RFMT"
	regPrefix    = "$RFMT $RIREG "
)

// ContainerError reports container text that breaks the $RFMT record
// framing. It is fatal to the stream, not just to one record.
type ContainerError struct {
	Line  int
	Found string
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("invalid RDF container at line %d: expected %s, got %q",
		e.Line, recordMarker, e.Found)
}

// Reader streams reaction records from an RDF container. Records are
// delimited by $RFMT lines; the reader detects the end of a record by
// reading one line past it and holding that line in a one-line lookahead
// buffer, so the next call re-reads it as the next record's delimiter.
type Reader struct {
	br         *bufio.Reader
	cfg        types.ParserConfig
	parser     chem.Parser
	meta       types.FileMetadata
	lineno     int
	pending    string
	hasPending bool
	headerDone bool
}

// NewReader returns a Reader over r. No input is consumed until the first
// Next or Metadata call.
func NewReader(r io.Reader, cfg types.ParserConfig) *Reader {
	return &Reader{br: bufio.NewReader(r), cfg: cfg, lineno: 1}
}

// WithParser replaces the structure parser used to validate records.
func (r *Reader) WithParser(p chem.Parser) *Reader {
	r.parser = p
	return r
}

// Metadata returns the container-level header fields, reading them from the
// input if no record has been requested yet.
func (r *Reader) Metadata() types.FileMetadata {
	r.header()
	return r.meta
}

// RawRecord is one record's undecomposed text plus its container framing.
type RawRecord struct {
	ID    string
	Line  int
	Block string
}

// Next returns the next reaction record. At end of container it returns
// io.EOF. A record that fails to parse aborts the stream with its error
// unless SkipInvalidReactions is set, in which case Next returns (nil, nil)
// as the absent-record marker and the stream continues at the following
// record boundary.
func (r *Reader) Next() (*types.Reaction, error) {
	raw, err := r.NextRaw()
	if err != nil {
		return nil, err
	}

	rxn, err := rxnblock.Decompose(raw.Block, raw.ID, raw.Line, &r.meta, r.decomposeOptions())
	if err != nil {
		if r.cfg.SkipInvalidReactions {
			return nil, nil
		}
		return nil, fmt.Errorf("record %q starting at line %d: %w", raw.ID, raw.Line, err)
	}
	return rxn, nil
}

// NextRaw returns the next record without decomposing it, for callers that
// re-serialize or shard containers. At end of container it returns io.EOF.
func (r *Reader) NextRaw() (RawRecord, error) {
	block, id, start, err := r.nextBlock()
	if err != nil {
		return RawRecord{}, err
	}
	return RawRecord{ID: id, Line: start, Block: block}, nil
}

// ReadAll drains the reader. In tolerant mode failed records appear as nil
// slots so positions and counts are preserved.
func (r *Reader) ReadAll() ([]*types.Reaction, error) {
	var out []*types.Reaction
	for {
		rxn, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rxn)
	}
}

// header parses the two-line container header once: the $RDFILE version and
// the $DATM date stamp, both kept as opaque strings.
func (r *Reader) header() {
	if r.headerDone {
		return
	}
	r.headerDone = true
	line, _ := r.readLine()
	r.meta.Version = trimAfter(line, len("$RDFILE "))
	line, _ = r.readLine()
	r.meta.DateStamp = trimAfter(line, len("$DATM "))
}

// nextBlock accumulates one record's raw text. The stream position after a
// successful return is just before the next record's $RFMT line.
func (r *Reader) nextBlock() (block, id string, start int, err error) {
	r.header()
	start = r.lineno

	line, err := r.readLine()
	if err != nil {
		return "", "", 0, err
	}
	if !strings.HasPrefix(line, recordMarker) {
		return "", "", 0, &ContainerError{Line: start, Found: strings.TrimRight(line, "\n")}
	}
	id = strings.TrimSpace(strings.ReplaceAll(line, regPrefix, ""))

	var b strings.Builder
	for {
		line, err = r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", 0, err
		}
		if strings.HasPrefix(line, recordMarker) {
			r.unread(line)
			break
		}
		b.WriteString(line)
	}
	return b.String(), id, start, nil
}

// readLine returns the lookahead line if one is held, else the next input
// line including its terminator. The line counter advances on every call,
// so ungetting and re-reading a boundary line counts it once net. End of
// input is io.EOF; any other read failure is the underlying error, which
// stays distinct so a truncated transport never looks like a complete
// container.
func (r *Reader) readLine() (string, error) {
	if r.hasPending {
		r.hasPending = false
		r.lineno++
		return r.pending, nil
	}
	line, err := r.br.ReadString('\n')
	if line == "" && err != nil {
		return "", err
	}
	r.lineno++
	return line, nil
}

// unread pushes line back into the lookahead buffer.
func (r *Reader) unread(line string) {
	r.pending = line
	r.hasPending = true
	r.lineno--
}

func (r *Reader) decomposeOptions() rxnblock.Options {
	format := ctab.RxnHeaderFormat
	if r.cfg.HeaderFormat == types.HeaderSPRESI {
		format = ctab.SpresiHeaderFormat
	}
	return rxnblock.Options{
		HeaderFormat:         format,
		Parser:               r.parser,
		SkipInvalidMolecules: r.cfg.SkipInvalidMolecules,
		SkipProperties:       !r.cfg.ParseProperties,
		StrictDates:          r.cfg.StrictDates,
	}
}

func trimAfter(line string, offset int) string {
	if len(line) < offset {
		return ""
	}
	return strings.TrimSpace(line[offset:])
}
