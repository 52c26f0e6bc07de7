package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// maxDocumentBytes caps how much of a PDF is buffered for extraction.
const maxDocumentBytes = 64 << 20 // 64 MiB

// Extractor pulls plain text out of PDF bytes. Implements the
// reports.TextExtractor port.
type Extractor struct{}

func New() Extractor { return Extractor{} }

func (Extractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxDocumentBytes {
		return "", fmt.Errorf("document too large for text extraction (over %d bytes)", maxDocumentBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	text, err := rd.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, text); err != nil {
		return "", err
	}
	return buf.String(), nil
}
