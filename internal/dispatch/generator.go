// Package dispatch renders the dossier's cover letter and dispatch
// documents from the batch's resolved facts and converts them to
// word-processor documents.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crepdde/pddepack/internal/dossier"
	"github.com/yuin/goldmark"
)

// Document is one generated dispatch, ready for the packager.
type Document struct {
	Seq  int
	ID   string
	Data []byte
}

// Generator renders every template in Templates order. The missing-fact
// policy is uniform across templates: substitute a clearly marked
// placeholder and warn, or refuse the template entirely in strict mode.
type Generator struct {
	Converter Converter
	Now       func() time.Time
	Strict    bool
	Log       *slog.Logger
}

// Generate produces one document per template. Per-template failures are
// returned in errs so the caller can apply its abort policy; documents for
// the remaining templates are still produced.
func (g *Generator) Generate(ctx context.Context, facts dossier.Facts) ([]Document, []dossier.Warning, []error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	date := dataPorExtenso(now())

	var docs []Document
	var warnings []dossier.Warning
	var errs []error

	for _, tpl := range Templates {
		missing := facts.Missing(tpl.Required...)
		if len(missing) > 0 {
			if g.Strict {
				errs = append(errs, &dossier.IncompleteFactsError{Template: tpl.ID, Missing: missing})
				continue
			}
			warnings = append(warnings, dossier.Warning{
				Kind:   dossier.WarnIncompleteFacts,
				Detail: (&dossier.IncompleteFactsError{Template: tpl.ID, Missing: missing}).Error(),
			})
		}

		var markdown bytes.Buffer
		if err := tpl.Body.Execute(&markdown, buildData(facts, date)); err != nil {
			errs = append(errs, fmt.Errorf("render %s: %w", tpl.ID, err))
			continue
		}

		var htmlBody bytes.Buffer
		if err := goldmark.Convert(markdown.Bytes(), &htmlBody); err != nil {
			errs = append(errs, fmt.Errorf("markdown %s: %w", tpl.ID, err))
			continue
		}

		data, err := g.Converter.Convert(ctx, wrapHTML(htmlBody.Bytes()))
		if err != nil {
			errs = append(errs, &dossier.ToolError{
				Tool:  "convert",
				Scope: tpl.ID,
				Err:   err,
			})
			continue
		}

		if g.Log != nil {
			g.Log.Debug("dispatch generated", "template", tpl.ID, "bytes", len(data))
		}
		docs = append(docs, Document{Seq: tpl.Seq, ID: tpl.ID, Data: data})
	}
	return docs, warnings, errs
}

// buildData fills the template placeholders, marking unresolved facts so
// the generated document shows exactly what still needs filling in.
func buildData(facts dossier.Facts, date string) templateData {
	get := func(field dossier.Field) string {
		if v := facts.Get(field); v != "" {
			return v
		}
		return fmt.Sprintf("[[PREENCHER: %s]]", field)
	}
	return templateData{
		TipoPDDE:    get(dossier.FieldPDDEType),
		Ano:         get(dossier.FieldFiscalYear),
		Escola:      get(dossier.FieldSchoolName),
		CNPJ:        get(dossier.FieldCNPJ),
		Presidente:  get(dossier.FieldCECPresident),
		Processo:    get(dossier.FieldCaseNumber),
		DataExtenso: date,
	}
}

func wrapHTML(body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><body>\n")
	buf.Write(body)
	buf.WriteString("</body></html>\n")
	return buf.Bytes()
}

var meses = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// dataPorExtenso spells a date out in Portuguese ("7 de março de 2026").
func dataPorExtenso(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), meses[t.Month()-1], t.Year())
}
