package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crepdde/pddepack/internal/extool"
	docxlib "github.com/fumiama/go-docx"
	"golang.org/x/net/html"
)

// Converter turns a rendered HTML document into word-processor document
// bytes.
type Converter interface {
	Convert(ctx context.Context, htmlDoc []byte) ([]byte, error)
}

// PandocConverter shells out to pandoc, HTML on stdin, DOCX from a temp
// file.
type PandocConverter struct {
	Runner *extool.Runner
	Path   string
}

func (c *PandocConverter) Convert(ctx context.Context, htmlDoc []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "pddepack-convert-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "out.docx")

	bin := c.Path
	if bin == "" {
		bin = "pandoc"
	}
	if _, err := c.Runner.Run(ctx, htmlDoc, bin, "-f", "html", "-t", "docx", "-o", out); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read converted output: %w", err)
	}
	return data, nil
}

// DocxConverter builds the DOCX in-process with go-docx. Default
// implementation: no external binary required. It understands the subset of
// HTML the templates produce (paragraphs with bold runs).
type DocxConverter struct{}

func (DocxConverter) Convert(ctx context.Context, htmlDoc []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paragraphs, err := parseParagraphs(htmlDoc)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	w := docxlib.New().WithDefaultTheme()
	for _, p := range paragraphs {
		para := w.AddParagraph().Justification("both")
		for _, r := range p {
			added := para.AddText(r.text)
			if r.bold {
				added.Bold()
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

type run struct {
	text string
	bold bool
}

// parseParagraphs walks the HTML tree and flattens each <p> into a sequence
// of plain and bold runs.
func parseParagraphs(src []byte) ([][]run, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	var paragraphs [][]run
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			runs := collectRuns(n, false)
			if len(runs) > 0 {
				paragraphs = append(paragraphs, runs)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return paragraphs, nil
}

func collectRuns(n *html.Node, bold bool) []run {
	var runs []run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			text := strings.ReplaceAll(c.Data, "\n", " ")
			if strings.TrimSpace(text) == "" {
				continue
			}
			runs = append(runs, run{text: text, bold: bold})
		case c.Type == html.ElementNode && (c.Data == "strong" || c.Data == "b"):
			runs = append(runs, collectRuns(c, true)...)
		case c.Type == html.ElementNode:
			runs = append(runs, collectRuns(c, bold)...)
		}
	}
	return runs
}
