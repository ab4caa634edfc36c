package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFText(t *testing.T) {
	e := NewPDF()

	text, err := e.Text(context.Background(), bytes.NewReader(minimalPDF()))

	require.NoError(t, err)
	assert.Contains(t, text, "Hello RFP world")
}

func TestPDFTextGarbage(t *testing.T) {
	e := NewPDF()

	_, err := e.Text(context.Background(), strings.NewReader("this is not a pdf at all"))

	assert.Error(t, err)
}

func TestPDFTextEmpty(t *testing.T) {
	e := NewPDF()

	_, err := e.Text(context.Background(), bytes.NewReader(nil))

	assert.Error(t, err)
}

func TestPDFTextTruncated(t *testing.T) {
	e := NewPDF()

	// Cut the file in the middle of the xref table.
	full := minimalPDF()
	_, err := e.Text(context.Background(), bytes.NewReader(full[:len(full)/2]))

	assert.Error(t, err)
}

// minimalPDF assembles a one-page PDF with a single text run. Object offsets
// are computed while writing so the xref table stays consistent.
func minimalPDF() []byte {
	var b bytes.Buffer
	var offsets []int

	add := func(s string) {
		offsets = append(offsets, b.Len())
		b.WriteString(s)
	}

	b.WriteString("%PDF-1.4\n")
	add("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	add("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	add("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>\nendobj\n")
	content := "BT /F1 12 Tf 72 720 Td (Hello RFP world) Tj ET"
	add(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(content), content))
	add("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	b.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\n", len(offsets)+1))
	b.WriteString(fmt.Sprintf("startxref\n%d\n%%%%EOF\n", xrefOffset))

	return b.Bytes()
}
