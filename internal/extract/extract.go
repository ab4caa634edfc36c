// Package extract pulls plain text out of uploaded documents so it can be
// fed to the draft generator.
package extract

import (
	"context"
	"io"
)

// Extractor converts a document's raw bytes into plain text.
type Extractor interface {
	// Text reads the whole document from r and returns its textual content.
	Text(ctx context.Context, r io.Reader) (string, error)
}
