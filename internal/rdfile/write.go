// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdfile

import (
	"fmt"
	"io"
	"time"
)

// now stamps the $DATM header line. Tests override this for stable output.
var now = time.Now

// Write re-serializes raw reaction blocks into a container: a fresh
// $RDFILE/$DATM header, then one $RFMT $RIREG delimiter per block. When ids
// is nil, sequential zero-padded 5-digit ids are generated. A non-nil ids
// must match blocks in length.
func Write(w io.Writer, blocks []string, ids []string) error {
	if ids != nil && len(ids) != len(blocks) {
		return fmt.Errorf("got %d ids for %d blocks", len(ids), len(blocks))
	}
	if ids == nil {
		ids = make([]string, len(blocks))
		for i := range ids {
			ids[i] = fmt.Sprintf("%05d", i+1)
		}
	}

	if _, err := fmt.Fprintf(w, "$RDFILE 1\n$DATM %s\n", now().Format("02/01/06 15:04")); err != nil {
		return err
	}
	for i, block := range blocks {
		if _, err := fmt.Fprintf(w, "%s%s\n%s", regPrefix, ids[i], block); err != nil {
			return err
		}
	}
	return nil
}
