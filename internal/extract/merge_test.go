package extract

import (
	"testing"

	"github.com/crepdde/pddepack/internal/dossier"
)

func TestMerge_FillsGapsOnly(t *testing.T) {
	acc := dossier.Facts{SchoolName: "EMEF Alfa", FiscalYear: "2024"}
	next := dossier.Facts{SchoolName: "EMEF Beta", CNPJ: "12345678000199"}

	merged := Merge(acc, next)

	if merged.SchoolName != "EMEF Alfa" {
		t.Errorf("SchoolName overwritten: %q", merged.SchoolName)
	}
	if merged.CNPJ != "12345678000199" {
		t.Errorf("gap not filled: CNPJ = %q", merged.CNPJ)
	}
	if merged.FiscalYear != "2024" {
		t.Errorf("FiscalYear = %q", merged.FiscalYear)
	}
}

func TestResolve_InstructionOutranksReceipts(t *testing.T) {
	perDoc := []DocFacts{
		{
			Facts:    dossier.Facts{SchoolName: "EMEF Da Nota Fiscal"},
			Category: dossier.ExpenseProof,
			Index:    0,
		},
		{
			Facts:    dossier.Facts{SchoolName: "EMEF Do Ofício", FiscalYear: "2024"},
			Category: dossier.Instruction,
			Index:    2,
		},
	}

	facts := Resolve(perDoc)
	if facts.SchoolName != "EMEF Do Ofício" {
		t.Errorf("SchoolName = %q, want the instruction document's value", facts.SchoolName)
	}
	if facts.FiscalYear != "2024" {
		t.Errorf("FiscalYear = %q", facts.FiscalYear)
	}
}

// Adding a document that lacks a field must never remove an already
// resolved value, regardless of where it lands in the priority order.
func TestResolve_Monotone(t *testing.T) {
	base := []DocFacts{
		{
			Facts:    dossier.Facts{SchoolName: "EMEF Exemplo", CNPJ: "12345678000199"},
			Category: dossier.Instruction,
			Index:    0,
		},
	}
	before := Resolve(base)

	withExtra := append(base, DocFacts{
		Facts:    dossier.Facts{}, // no fields at all
		Category: dossier.Instruction,
		Index:    1,
	})
	after := Resolve(withExtra)

	if before != after {
		t.Errorf("empty document changed resolution: %+v vs %+v", before, after)
	}
}

func TestResolve_TiesBrokenByArrival(t *testing.T) {
	perDoc := []DocFacts{
		{Facts: dossier.Facts{CECPresident: "Primeira Pessoa"}, Category: dossier.Instruction, Index: 0},
		{Facts: dossier.Facts{CECPresident: "Segunda Pessoa"}, Category: dossier.Instruction, Index: 1},
	}
	facts := Resolve(perDoc)
	if facts.CECPresident != "Primeira Pessoa" {
		t.Errorf("CECPresident = %q, want first arrival to win", facts.CECPresident)
	}
}
