package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text from PDF documents. PDFs are random-access files, so the
// whole document is buffered in memory before parsing; upload size limits
// keep this bounded.
type PDF struct{}

// NewPDF creates a PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

var _ Extractor = (*PDF)(nil)

// Text returns the plain text of all pages, concatenated in page order.
func (e *PDF) Text(ctx context.Context, r io.Reader) (text string, err error) {
	// The underlying parser can panic on malformed input; surface that as a
	// regular parse error instead of taking the process down.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("parse pdf: %v", p)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return buf.String(), nil
}
