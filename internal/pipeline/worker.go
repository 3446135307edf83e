package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/crepdde/pddepack/internal/archive"
	"github.com/crepdde/pddepack/internal/assemble"
	"github.com/crepdde/pddepack/internal/classify"
	"github.com/crepdde/pddepack/internal/dispatch"
	"github.com/crepdde/pddepack/internal/dossier"
	"github.com/crepdde/pddepack/internal/extract"
	"golang.org/x/sync/errgroup"
)

// TextExtractor is the worker's view of the PDF text extraction step,
// narrow so tests can feed synthetic text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Worker runs the full pipeline for one batch: extract → classify →
// group/merge → generate → package.
type Worker struct {
	extractor TextExtractor
	merger    assemble.Merger
	converter dispatch.Converter
	log       *slog.Logger
	stats     *Stats
	now       func() time.Time

	maxConcurrentExtract int
}

func NewWorker(extractor TextExtractor, merger assemble.Merger, converter dispatch.Converter, log *slog.Logger, stats *Stats, maxExtract int) *Worker {
	if maxExtract <= 0 {
		maxExtract = 4
	}
	return &Worker{
		extractor:            extractor,
		merger:               merger,
		converter:            converter,
		log:                  log,
		stats:                stats,
		now:                  time.Now,
		maxConcurrentExtract: maxExtract,
	}
}

type docResult struct {
	facts    dossier.Facts
	category dossier.Category
	warning  *dossier.Warning
}

// Process runs a batch to its terminal state. Per-document and per-group
// failures become warnings on the result; only failures that would prevent
// a complete, correctly named archive fail the batch.
func (w *Worker) Process(ctx context.Context, b *Batch) {
	log := w.log.With("batch_id", b.ID)
	started := w.now()
	docs := b.Docs()

	// Per-document work is independent: fan out, join in input order.
	results := make([]docResult, len(docs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(w.maxConcurrentExtract)
	for i, doc := range docs {
		i, doc := i, doc
		eg.Go(func() error {
			var warning *dossier.Warning
			text, err := w.extractor.Extract(egCtx, doc.Data)
			if err != nil {
				uerr := &dossier.UnreadableDocumentError{Filename: doc.Filename, Err: err}
				warning = &dossier.Warning{Kind: dossier.WarnUnreadable, Detail: uerr.Error()}
				text = ""
			}
			doc.SetText(text)
			facts := extract.ExtractFacts(text)
			results[i] = docResult{
				facts:    facts,
				category: classify.Classify(text, facts),
				warning:  warning,
			}
			return nil
		})
	}
	_ = eg.Wait()
	b.SetStage(StageExtracted)

	classified := make([]*dossier.ClassifiedDocument, len(docs))
	perDocFacts := make([]extract.DocFacts, len(docs))
	var unclassified []string
	for i, doc := range docs {
		classified[i] = &dossier.ClassifiedDocument{Doc: doc, Category: results[i].category, Index: i}
		perDocFacts[i] = extract.DocFacts{Facts: results[i].facts, Category: results[i].category, Index: i}
		if results[i].warning != nil {
			b.AddWarning(*results[i].warning)
		}
		if results[i].category == dossier.Unclassified {
			unclassified = append(unclassified, doc.Filename)
			b.AddWarning(dossier.Warning{Kind: dossier.WarnUnclassified, Detail: doc.Filename})
		}
	}
	facts := extract.Resolve(perDocFacts)
	b.SetStage(StageClassified)
	log.Info("batch classified",
		"documents", len(docs),
		"unclassified", len(unclassified),
		"escola", facts.SchoolName,
		"ano", facts.FiscalYear,
	)

	groups := assemble.Build(classified)
	merged, mergeErrs := assemble.Consolidate(ctx, w.merger, groups)
	for _, err := range mergeErrs {
		log.Error("group merge failed", "error", err)
		b.AddWarning(dossier.Warning{Kind: dossier.WarnToolFailure, Detail: err.Error()})
	}
	combined, _, err := assemble.CombinedPackage(ctx, w.merger, groups)
	if err != nil {
		log.Error("combined merge failed", "error", err)
		b.AddWarning(dossier.Warning{Kind: dossier.WarnToolFailure, Detail: err.Error()})
	}
	b.SetStage(StageGrouped)

	gen := &dispatch.Generator{
		Converter: w.converter,
		Now:       w.now,
		Strict:    b.StrictFacts,
		Log:       log,
	}
	dispatches, genWarnings, genErrs := gen.Generate(ctx, facts)
	for _, warning := range genWarnings {
		b.AddWarning(warning)
	}
	for _, err := range genErrs {
		var incomplete *dossier.IncompleteFactsError
		if errors.As(err, &incomplete) {
			log.Error("dispatch refused", "error", err)
			b.Fail(StageGenerated, err.Error())
			return
		}
		log.Error("dispatch conversion failed", "error", err)
		b.AddWarning(dossier.Warning{Kind: dossier.WarnToolFailure, Detail: err.Error()})
	}
	b.SetStage(StageGenerated)

	if len(combined) == 0 && len(merged) == 0 && len(dispatches) == 0 {
		b.Fail(StagePackaged, "nenhum artefato produzido")
		return
	}

	result, err := archive.Build(facts, combined, merged, dispatches)
	if err != nil {
		log.Error("packaging failed", "error", err)
		b.Fail(StagePackaged, err.Error())
		return
	}
	b.SetStage(StagePackaged)

	result.Unclassified = unclassified
	result.Warnings = b.Warnings()
	b.SetResult(result)
	b.SetStage(StageDelivered)

	if w.stats != nil {
		w.stats.Record(time.Since(started).Milliseconds())
	}
	log.Info("batch delivered",
		"archive", result.ArchiveName,
		"artifacts", len(result.Manifest),
		"warnings", len(result.Warnings),
		"duration_ms", time.Since(started).Milliseconds(),
	)
}
