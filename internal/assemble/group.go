// Package assemble partitions classified documents by category, orders each
// partition deterministically and consolidates partitions into merged PDFs.
package assemble

import (
	"sort"
	"strings"

	"github.com/crepdde/pddepack/internal/dossier"
	"github.com/crepdde/pddepack/internal/extract"
)

// orderTable mirrors the official chronological order of a dossier in SEI.
// Lower rank sorts earlier; keywords are compared against folded text with
// spaces removed.
var orderTable = []struct {
	rank     int
	keywords []string
}{
	{1, []string{"oficio"}},
	{2, []string{"demonstrativo"}},
	{3, []string{"conciliacao"}},
	{4, []string{"extrato conta corrente", "extratos conta corrente", "conta corrente"}},
	{5, []string{"extrato aplicacao", "extratos aplicacao", "extratos aplicacoes", "aplicacao"}},
	{6, []string{"nf", "nota", "comprovante", "orcamento", "pagamento"}},
	{7, []string{"consolidacao", "pesquisa"}},
	{8, []string{"planejamento", "ata"}},
	{9, []string{"bb agil", "declaracao", "agil"}},
	{10, []string{"parecer"}},
}

// unranked places documents no keyword matched after everything else.
const unranked = 100

// Rank returns the chronological sort rank for a document's text.
func Rank(text string) int {
	squeezed := strings.ReplaceAll(extract.Fold(text), " ", "")
	for _, entry := range orderTable {
		for _, kw := range entry.keywords {
			if strings.Contains(squeezed, strings.ReplaceAll(kw, " ", "")) {
				return entry.rank
			}
		}
	}
	return unranked
}

// Build produces one group per non-empty category in taxonomy order. Member
// order is rank, then original filename, then arrival order — stable for
// any permutation of the upload order.
func Build(docs []*dossier.ClassifiedDocument) []dossier.Group {
	for _, d := range docs {
		text, _ := d.Doc.Text()
		d.Rank = Rank(text)
	}

	byCategory := make(map[dossier.Category][]*dossier.ClassifiedDocument)
	for _, d := range docs {
		byCategory[d.Category] = append(byCategory[d.Category], d)
	}

	var groups []dossier.Group
	for _, cat := range dossier.Categories {
		members := byCategory[cat]
		if len(members) == 0 {
			continue
		}
		sortMembers(members)
		groups = append(groups, dossier.Group{Category: cat, Docs: members})
	}
	return groups
}

func sortMembers(members []*dossier.ClassifiedDocument) {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Rank != members[j].Rank {
			return members[i].Rank < members[j].Rank
		}
		if members[i].Doc.Filename != members[j].Doc.Filename {
			return members[i].Doc.Filename < members[j].Doc.Filename
		}
		return members[i].Index < members[j].Index
	})
}
