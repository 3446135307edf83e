package extract

import (
	"sort"

	"github.com/crepdde/pddepack/internal/dossier"
)

// DocFacts pairs one document's partial facts with the priority inputs the
// resolution policy needs.
type DocFacts struct {
	Facts    dossier.Facts
	Category dossier.Category
	Index    int
}

// Merge fills every gap in acc from next and never overwrites a resolved
// field. This is the first-wins half of the resolution policy; priority
// comes from the order Resolve feeds documents in.
func Merge(acc, next dossier.Facts) dossier.Facts {
	for _, field := range dossier.Fields {
		if acc.Get(field) == "" {
			acc.Set(field, next.Get(field))
		}
	}
	return acc
}

// Resolve folds per-document facts into the batch's single authoritative
// record. Documents are consulted in taxonomy-priority order (instruction
// pieces outrank expense receipts), ties broken by arrival order, so a
// later or lower-priority document can fill gaps but never displace a
// value already resolved.
func Resolve(perDoc []DocFacts) dossier.Facts {
	ordered := make([]DocFacts, len(perDoc))
	copy(ordered, perDoc)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Category != ordered[j].Category {
			return ordered[i].Category < ordered[j].Category
		}
		return ordered[i].Index < ordered[j].Index
	})

	var facts dossier.Facts
	for _, df := range ordered {
		facts = Merge(facts, df.Facts)
	}
	return facts
}
