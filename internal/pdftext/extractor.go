// Package pdftext pulls the embedded text layer out of PDF bytes. It tries
// the Go library first, then falls back to pdftotext when enabled.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/crepdde/pddepack/internal/extool"
	pdflib "github.com/ledongthuc/pdf"
)

// Extractor reads a PDF's visible text as a single string, pages separated
// by form feeds, preserving the content stream's reading order. A PDF with
// no text layer yields an empty string, not an error.
type Extractor struct {
	FallbackPdftotext bool
	Runner            *extool.Runner
	PdftotextPath     string
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	text, err := extractEmbedded(data)
	if err != nil && e.FallbackPdftotext && e.Runner != nil {
		return e.extractPdftotext(ctx, data)
	}
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return text, nil
}

func extractEmbedded(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func (e *Extractor) extractPdftotext(ctx context.Context, data []byte) (string, error) {
	path := e.PdftotextPath
	if path == "" {
		path = "pdftotext"
	}
	out, err := e.Runner.Run(ctx, data, path, "-layout", "-", "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
