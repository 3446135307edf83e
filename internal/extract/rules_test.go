package extract

import (
	"testing"

	"github.com/crepdde/pddepack/internal/dossier"
)

const oficioText = `OFÍCIO Nº 12/2024
Processo: 07/04/123456/2024
Prestação de contas do Programa Dinheiro Direto na Escola – PDDE Básico/2024.
Escola: EMEF Exemplo
CNPJ: 12.345.678/0001-99
Conselho Escolar Comunitário, sob a presidência de Maria da Silva, exercício 2024.`

func TestExtractFacts_OficioCompleto(t *testing.T) {
	facts := ExtractFacts(oficioText)

	if facts.PDDEType != "BASICO" {
		t.Errorf("PDDEType = %q, want BASICO", facts.PDDEType)
	}
	if facts.FiscalYear != "2024" {
		t.Errorf("FiscalYear = %q, want 2024", facts.FiscalYear)
	}
	if facts.SchoolName != "EMEF Exemplo" {
		t.Errorf("SchoolName = %q, want EMEF Exemplo", facts.SchoolName)
	}
	if facts.CNPJ != "12345678000199" {
		t.Errorf("CNPJ = %q, want digits only", facts.CNPJ)
	}
	if facts.CECPresident != "Maria da Silva" {
		t.Errorf("CECPresident = %q, want Maria da Silva", facts.CECPresident)
	}
	if facts.CaseNumber != "07/04/123456/2024" {
		t.Errorf("CaseNumber = %q", facts.CaseNumber)
	}
}

func TestExtractFacts_Deterministic(t *testing.T) {
	a := ExtractFacts(oficioText)
	b := ExtractFacts(oficioText)
	if a != b {
		t.Errorf("same text produced different facts: %+v vs %+v", a, b)
	}
}

func TestExtractFacts_PartialAndAbsent(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, f dossier.Facts)
	}{
		{
			name: "empty text yields empty facts",
			text: "",
			check: func(t *testing.T, f dossier.Facts) {
				if f != (dossier.Facts{}) {
					t.Errorf("expected zero facts, got %+v", f)
				}
			},
		},
		{
			name: "labeled type beats inline mention",
			text: "Tipo de PDDE: Qualidade\nreferente ao PDDE Básico/2023",
			check: func(t *testing.T, f dossier.Facts) {
				if f.PDDEType != "QUALIDADE" {
					t.Errorf("PDDEType = %q, want QUALIDADE", f.PDDEType)
				}
			},
		},
		{
			name: "school from sigla without label",
			text: "Prestação de contas da EMEF Prof. João Carlos, exercício de 2025.",
			check: func(t *testing.T, f dossier.Facts) {
				if f.SchoolName != "EMEF Prof. João Carlos" {
					t.Errorf("SchoolName = %q", f.SchoolName)
				}
				if f.FiscalYear != "2025" {
					t.Errorf("FiscalYear = %q, want 2025", f.FiscalYear)
				}
			},
		},
		{
			name: "malformed cnpj rejected",
			text: "CNPJ: 12.345.678/0001-9",
			check: func(t *testing.T, f dossier.Facts) {
				if f.CNPJ != "" {
					t.Errorf("CNPJ = %q, want empty for 13 digits", f.CNPJ)
				}
			},
		},
		{
			name: "labeled president",
			text: "Presidente do CEC: José Santos Oliveira\n",
			check: func(t *testing.T, f dossier.Facts) {
				if f.CECPresident != "José Santos Oliveira" {
					t.Errorf("CECPresident = %q", f.CECPresident)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ExtractFacts(tt.text))
		})
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Conciliação Bancária"); got != "conciliacao bancaria" {
		t.Errorf("Fold = %q", got)
	}
	if got := Fold("EDUCAÇÃO"); got != "educacao" {
		t.Errorf("Fold = %q", got)
	}
}
