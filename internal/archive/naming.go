// Package archive applies the delivery naming convention and writes the
// final zip package.
package archive

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/crepdde/pddepack/internal/dossier"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify normalizes a value into the filesystem-friendly alphabet of the
// naming convention: diacritics stripped, spaces and hyphens collapsed to
// underscores, everything else non-alphanumeric dropped, upper-cased.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer(" ", "_", "-", "_").Replace(folded)

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// BaseName is the deterministic stem every artifact name is built from:
// PDDE_{TIPO}_{ANO}_{ESCOLA}.
func BaseName(facts dossier.Facts) string {
	return fmt.Sprintf("PDDE_%s_%s_%s",
		component(facts.PDDEType),
		component(facts.FiscalYear),
		component(facts.SchoolName),
	)
}

func component(s string) string {
	if slug := Slugify(s); slug != "" {
		return slug
	}
	return "INDEFINIDO"
}
