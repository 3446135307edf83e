package assemble

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/crepdde/pddepack/internal/extool"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Merger concatenates PDFs in the given order into one PDF, preserving page
// content. Implementations must fail loudly on corrupt input.
type Merger interface {
	Merge(ctx context.Context, pdfs [][]byte) ([]byte, error)
}

// PdfcpuMerger merges in-process with pdfcpu. Default implementation: no
// external binary required.
type PdfcpuMerger struct{}

func (PdfcpuMerger) Merge(ctx context.Context, pdfs [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	readers := make([]io.ReadSeeker, len(pdfs))
	for i, p := range pdfs {
		readers[i] = bytes.NewReader(p)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, conf); err != nil {
		return nil, fmt.Errorf("pdfcpu merge: %w", err)
	}
	return buf.Bytes(), nil
}

// PdfuniteMerger shells out to pdfunite. pdfunite only takes file paths, so
// inputs are staged in a temp directory per invocation.
type PdfuniteMerger struct {
	Runner *extool.Runner
	Path   string
}

func (m *PdfuniteMerger) Merge(ctx context.Context, pdfs [][]byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "pddepack-merge-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := make([]string, 0, len(pdfs)+1)
	for i, p := range pdfs {
		in := filepath.Join(dir, fmt.Sprintf("in_%03d.pdf", i))
		if err := os.WriteFile(in, p, 0o600); err != nil {
			return nil, fmt.Errorf("stage input %d: %w", i, err)
		}
		args = append(args, in)
	}
	out := filepath.Join(dir, "out.pdf")
	args = append(args, out)

	bin := m.Path
	if bin == "" {
		bin = "pdfunite"
	}
	if _, err := m.Runner.Run(ctx, nil, bin, args...); err != nil {
		return nil, err
	}

	merged, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read merged output: %w", err)
	}
	return merged, nil
}
