package pdftext

import (
	"context"
	"testing"
)

func TestExtract_InvalidBytes(t *testing.T) {
	e := &Extractor{}
	if _, err := e.Extract(context.Background(), []byte("isto não é um pdf")); err == nil {
		t.Fatal("expected error for non-PDF bytes")
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	e := &Extractor{}
	if _, err := e.Extract(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

// Fallback is only attempted when explicitly enabled and a runner is wired.
func TestExtract_NoFallbackWithoutRunner(t *testing.T) {
	e := &Extractor{FallbackPdftotext: true}
	if _, err := e.Extract(context.Background(), []byte("lixo")); err == nil {
		t.Fatal("expected error, fallback must not run without a runner")
	}
}
