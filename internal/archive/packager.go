package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/crepdde/pddepack/internal/assemble"
	"github.com/crepdde/pddepack/internal/dispatch"
	"github.com/crepdde/pddepack/internal/dossier"
)

// Zip entry timestamps are pinned so re-packaging the same artifacts is
// byte-identical.
var fixedModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Build names every artifact, verifies the names are collision-free and
// writes the delivery zip. Member order is fixed and documented:
// consolidated PDFs first (numeric prefix order, combined package leading),
// then the dispatch documents by sequence.
func Build(facts dossier.Facts, combined []byte, cats []assemble.CategoryPDF, docs []dispatch.Document) (*dossier.Result, error) {
	base := BaseName(facts)

	var artifacts []dossier.Artifact
	if len(combined) > 0 {
		artifacts = append(artifacts, dossier.Artifact{
			Name:   fmt.Sprintf("00_PACOTE_COMPLETO_%s.pdf", base),
			Kind:   dossier.ArtifactPDF,
			Source: "pacote_completo",
			Data:   combined,
		})
	}
	for _, c := range cats {
		artifacts = append(artifacts, dossier.Artifact{
			Name:   fmt.Sprintf("%s_%s.pdf", c.Category.ArtifactPrefix(), base),
			Kind:   dossier.ArtifactPDF,
			Source: c.Category.String(),
			Data:   c.Data,
		})
	}
	ordered := make([]dispatch.Document, len(docs))
	copy(ordered, docs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })
	for _, d := range ordered {
		artifacts = append(artifacts, dossier.Artifact{
			Name:   fmt.Sprintf("despacho_%d_%s.docx", d.Seq, base),
			Kind:   dossier.ArtifactDOCX,
			Source: "despacho_" + d.ID,
			Data:   d.Data,
		})
	}

	seen := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		if seen[a.Name] {
			return nil, &dossier.NamingCollisionError{Name: a.Name}
		}
		seen[a.Name] = true
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range artifacts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     a.Name,
			Method:   zip.Deflate,
			Modified: fixedModTime,
		})
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", a.Name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", a.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}

	manifest := make([]dossier.ManifestEntry, 0, len(artifacts))
	for _, a := range artifacts {
		manifest = append(manifest, dossier.ManifestEntry{Source: a.Source, Name: a.Name})
	}

	return &dossier.Result{
		ArchiveName: fmt.Sprintf("pacote_%s.zip", base),
		Archive:     buf.Bytes(),
		Manifest:    manifest,
		Facts:       facts,
	}, nil
}
