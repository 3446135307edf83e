// Package classify assigns each document exactly one category from the
// closed dossier taxonomy. Rules are an explicit ordered list of
// predicate→category pairs evaluated first-match-wins, so more specific
// categories must be declared before looser ones and rule order is an
// inspectable, testable artifact.
package classify

import (
	"regexp"
	"strings"

	"github.com/crepdde/pddepack/internal/dossier"
	"github.com/crepdde/pddepack/internal/extract"
)

// Rule maps a predicate over folded document text (plus already-known
// facts) to one category.
type Rule struct {
	Name     string
	Category dossier.Category
	Match    func(folded string, facts dossier.Facts) bool
}

// Rules is the taxonomy's fixed rule order. Classification never consults
// filenames: they are advisory input and cannot be trusted.
var Rules = []Rule{
	{
		Name:     "instrucao",
		Category: dossier.Instruction,
		Match: anyOf(
			keywords("oficio", "justificativa"),
			func(folded string, facts dossier.Facts) bool {
				// An otherwise unmarked opening piece: carries the case
				// number and speaks of the prestação de contas itself.
				return facts.CaseNumber != "" && strings.Contains(folded, "prestacao de contas")
			},
		),
	},
	{
		Name:     "comprovacao_despesa",
		Category: dossier.ExpenseProof,
		Match: keywords(
			"nota fiscal", "cupom fiscal", "danfe", "nf", "nfe",
			"comprovante", "orcamento", "pagamento", "recibo",
		),
	},
	{
		Name:     "extratos_conciliacao",
		Category: dossier.BankStatement,
		Match: keywords(
			"extrato", "conciliacao", "conta corrente", "aplicacao", "bb agil",
		),
	},
	{
		Name:     "atas_relatorios_cec",
		Category: dossier.CommitteeRecord,
		Match: keywords(
			"ata", "planejamento", "parecer", "consolidacao",
			"pesquisa de precos", "declaracao", "conselho escolar comunitario",
		),
	},
}

// Classify returns the single category for a document's text. A document
// whose text matches no rule, including one with no extractable text at
// all, lands in the terminal Unclassified bucket.
func Classify(text string, facts dossier.Facts) dossier.Category {
	folded := extract.Fold(text)
	if strings.TrimSpace(folded) == "" {
		return dossier.Unclassified
	}
	for _, rule := range Rules {
		if rule.Match(folded, facts) {
			return rule.Category
		}
	}
	return dossier.Unclassified
}

// keywords builds a predicate matching any of the given folded keywords on
// word boundaries, so "ata" does not fire inside "datada".
func keywords(words ...string) func(string, dossier.Facts) bool {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return func(folded string, _ dossier.Facts) bool {
		for _, p := range patterns {
			if p.MatchString(folded) {
				return true
			}
		}
		return false
	}
}

func anyOf(preds ...func(string, dossier.Facts) bool) func(string, dossier.Facts) bool {
	return func(folded string, facts dossier.Facts) bool {
		for _, p := range preds {
			if p(folded, facts) {
				return true
			}
		}
		return false
	}
}
