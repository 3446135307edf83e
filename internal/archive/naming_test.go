package archive

import (
	"testing"

	"github.com/crepdde/pddepack/internal/dossier"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EMEF Exemplo", "EMEF_EXEMPLO"},
		{"Escola Municipal São João", "ESCOLA_MUNICIPAL_SAO_JOAO"},
		{"Conceição-Açu", "CONCEICAO_ACU"},
		{"ação & reação!", "ACAO__REACAO"},
		{"2024", "2024"},
		{"", ""},
		{"***", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	facts := dossier.Facts{
		PDDEType:   "Básico",
		FiscalYear: "2024",
		SchoolName: "EMEF Exemplo",
	}
	if got := BaseName(facts); got != "PDDE_BASICO_2024_EMEF_EXEMPLO" {
		t.Errorf("BaseName = %q", got)
	}
}

func TestBaseName_UnresolvedComponentsFallBack(t *testing.T) {
	if got := BaseName(dossier.Facts{}); got != "PDDE_INDEFINIDO_INDEFINIDO_INDEFINIDO" {
		t.Errorf("BaseName = %q", got)
	}
	facts := dossier.Facts{FiscalYear: "2025"}
	if got := BaseName(facts); got != "PDDE_INDEFINIDO_2025_INDEFINIDO" {
		t.Errorf("BaseName = %q", got)
	}
}
