package extract

import (
	"regexp"
	"strings"

	"github.com/crepdde/pddepack/internal/dossier"
)

// Rule is one named extraction pattern with a single capture group. Rules
// run in declaration order and the first match for a field wins; later
// rules for the same field are fallbacks.
type Rule struct {
	Name      string
	Field     dossier.Field
	Pattern   *regexp.Regexp
	Normalize func(string) string
}

// Rules is the fixed, ordered rule set. Rule order is part of the contract:
// labeled patterns come before looser inline patterns.
var Rules = []Rule{
	{
		Name:      "tipo_pdde_rotulado",
		Field:     dossier.FieldPDDEType,
		Pattern:   regexp.MustCompile(`(?i)tipo\s+(?:de\s+)?pdde\s*[:\-]\s*([a-zA-Zà-üÀ-Ü][a-zA-Zà-üÀ-Ü ]*)`),
		Normalize: normUpperFold,
	},
	{
		Name:      "tipo_pdde_inline",
		Field:     dossier.FieldPDDEType,
		Pattern:   regexp.MustCompile(`(?i)\bPDDE\s+(b[áa]sico|qualidade|estrutura|educa[çc][ãa]o\s+integral)\b`),
		Normalize: normUpperFold,
	},
	{
		Name:      "ano_exercicio",
		Field:     dossier.FieldFiscalYear,
		Pattern:   regexp.MustCompile(`(?i)exerc[íi]cio\s+(?:de\s+)?(20\d{2})`),
		Normalize: strings.TrimSpace,
	},
	{
		Name:      "ano_pdde_barra",
		Field:     dossier.FieldFiscalYear,
		Pattern:   regexp.MustCompile(`(?i)\bPDDE\b[^\n]{0,60}?/\s*(20\d{2})`),
		Normalize: strings.TrimSpace,
	},
	{
		Name:      "ano_rotulado",
		Field:     dossier.FieldFiscalYear,
		Pattern:   regexp.MustCompile(`(?i)\bano\s*[:\-]\s*(20\d{2})`),
		Normalize: strings.TrimSpace,
	},
	{
		Name:      "escola_rotulada",
		Field:     dossier.FieldSchoolName,
		Pattern:   regexp.MustCompile(`(?im)^\s*(?:unidade\s+escolar|escola)\s*[:\-]\s*(.+)$`),
		Normalize: normText,
	},
	{
		Name:      "escola_sigla",
		Field:     dossier.FieldSchoolName,
		Pattern:   regexp.MustCompile(`\b((?:EMEF|E\.M\.E\.F\.|CIEP|ESCOLA\s+MUNICIPAL)\s+[^\n,;]+)`),
		Normalize: normText,
	},
	{
		Name:      "cnpj",
		Field:     dossier.FieldCNPJ,
		Pattern:   regexp.MustCompile(`\b(\d{2}\.?\d{3}\.?\d{3}\s*/\s*\d{4}\s*-?\s*\d{2})\b`),
		Normalize: normCNPJ,
	},
	{
		Name:      "presidente_narrativo",
		Field:     dossier.FieldCECPresident,
		Pattern:   regexp.MustCompile(`(?i)presid[êe]ncia\s+de\s+([A-ZÀ-Ü][^\n,.;]+)`),
		Normalize: normText,
	},
	{
		Name:      "presidente_rotulado",
		Field:     dossier.FieldCECPresident,
		Pattern:   regexp.MustCompile(`(?im)^\s*presidente(?:\s+do\s+cec)?\s*[:\-]\s*(.+)$`),
		Normalize: normText,
	},
	{
		Name:      "processo",
		Field:     dossier.FieldCaseNumber,
		Pattern:   regexp.MustCompile(`(?i)\bprocesso\s*(?:n[ºo°.]*\s*)?[:\-]?\s*(\d[\d./-]{4,})`),
		Normalize: normCaseNumber,
	},
}

// ExtractFacts applies the rule set to one document's text. Deterministic:
// same text, same facts. A field no rule matches stays empty; absence is
// surfaced later as a completeness warning, never as an error here.
func ExtractFacts(text string) dossier.Facts {
	var facts dossier.Facts
	for _, rule := range Rules {
		if facts.Get(rule.Field) != "" {
			continue
		}
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := rule.Normalize(m[1])
		if value != "" {
			facts.Set(rule.Field, value)
		}
	}
	return facts
}

// normText trims, collapses runs of whitespace and drops trailing
// punctuation.
func normText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, " .,;:")
}

// normUpperFold folds diacritics away and upper-cases, matching the naming
// convention's alphabet ("Básico" -> "BASICO").
func normUpperFold(s string) string {
	return strings.ToUpper(Fold(normText(s)))
}

// normCNPJ keeps digits only and rejects anything that is not 14 of them.
func normCNPJ(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() != 14 {
		return ""
	}
	return b.String()
}

func normCaseNumber(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "./-")
}
