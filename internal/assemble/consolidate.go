package assemble

import (
	"context"
	"sort"

	"github.com/crepdde/pddepack/internal/dossier"
)

// CategoryPDF is one consolidated PDF plus the filenames that went into it,
// in merge order.
type CategoryPDF struct {
	Category dossier.Category
	Files    []string
	Data     []byte
}

// Consolidate merges every consolidatable group into one PDF per category,
// in taxonomy order. A failed merge yields a *dossier.ToolError naming the
// category and its file list; the remaining groups are still processed.
func Consolidate(ctx context.Context, m Merger, groups []dossier.Group) ([]CategoryPDF, []error) {
	var merged []CategoryPDF
	var errs []error
	for _, g := range groups {
		if !g.Category.Consolidate() || len(g.Docs) == 0 {
			continue
		}
		pdfs := make([][]byte, len(g.Docs))
		for i, d := range g.Docs {
			pdfs[i] = d.Doc.Data
		}
		data, err := m.Merge(ctx, pdfs)
		if err != nil {
			errs = append(errs, &dossier.ToolError{
				Tool:  "merge",
				Scope: g.Category.String(),
				Files: g.Filenames(),
				Err:   err,
			})
			continue
		}
		merged = append(merged, CategoryPDF{
			Category: g.Category,
			Files:    g.Filenames(),
			Data:     data,
		})
	}
	return merged, errs
}

// CombinedPackage merges every classified document (Unclassified excluded)
// into the single full-dossier PDF, ordered by the global chronological
// rank, then filename, then arrival.
func CombinedPackage(ctx context.Context, m Merger, groups []dossier.Group) ([]byte, []string, error) {
	var all []*dossier.ClassifiedDocument
	for _, g := range groups {
		if !g.Category.Consolidate() {
			continue
		}
		all = append(all, g.Docs...)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Rank != all[j].Rank {
			return all[i].Rank < all[j].Rank
		}
		if all[i].Doc.Filename != all[j].Doc.Filename {
			return all[i].Doc.Filename < all[j].Doc.Filename
		}
		return all[i].Index < all[j].Index
	})

	pdfs := make([][]byte, len(all))
	files := make([]string, len(all))
	for i, d := range all {
		pdfs[i] = d.Doc.Data
		files[i] = d.Doc.Filename
	}
	data, err := m.Merge(ctx, pdfs)
	if err != nil {
		return nil, files, &dossier.ToolError{
			Tool:  "merge",
			Scope: "pacote_completo",
			Files: files,
			Err:   err,
		}
	}
	return data, files, nil
}
