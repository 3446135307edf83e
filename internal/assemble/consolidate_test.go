package assemble

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/crepdde/pddepack/internal/dossier"
)

// fakeMerger concatenates inputs and records each call, failing when the
// first page matches failOn.
type fakeMerger struct {
	calls  [][][]byte
	failOn []byte
}

func (m *fakeMerger) Merge(_ context.Context, pdfs [][]byte) ([]byte, error) {
	m.calls = append(m.calls, pdfs)
	if m.failOn != nil && len(pdfs) > 0 && bytes.Equal(pdfs[0], m.failOn) {
		return nil, errors.New("merge exploded")
	}
	return bytes.Join(pdfs, []byte("|")), nil
}

func TestConsolidate_OnePDFPerCategory(t *testing.T) {
	groups := Build([]*dossier.ClassifiedDocument{
		classified("oficio.pdf", "Ofício", dossier.Instruction, 0),
		classified("nf_01.pdf", "Nota fiscal", dossier.ExpenseProof, 1),
		classified("nf_02.pdf", "Nota fiscal", dossier.ExpenseProof, 2),
	})

	m := &fakeMerger{}
	merged, errs := Consolidate(context.Background(), m, groups)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(merged) != 2 {
		t.Fatalf("got %d merged PDFs, want 2", len(merged))
	}
	if merged[0].Category != dossier.Instruction || merged[1].Category != dossier.ExpenseProof {
		t.Errorf("categories out of taxonomy order: %v, %v", merged[0].Category, merged[1].Category)
	}
	if string(merged[1].Data) != "%PDF-nf_01.pdf|%PDF-nf_02.pdf" {
		t.Errorf("expense merge input order wrong: %q", merged[1].Data)
	}
}

func TestConsolidate_FailedGroupDoesNotAbortOthers(t *testing.T) {
	groups := Build([]*dossier.ClassifiedDocument{
		classified("oficio.pdf", "Ofício", dossier.Instruction, 0),
		classified("extrato.pdf", "Extrato conta corrente", dossier.BankStatement, 1),
	})

	m := &fakeMerger{failOn: []byte("%PDF-oficio.pdf")}
	merged, errs := Consolidate(context.Background(), m, groups)

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	var toolErr *dossier.ToolError
	if !errors.As(errs[0], &toolErr) {
		t.Fatalf("error is %T, want *dossier.ToolError", errs[0])
	}
	if toolErr.Scope != dossier.Instruction.String() {
		t.Errorf("Scope = %q", toolErr.Scope)
	}
	if len(merged) != 1 || merged[0].Category != dossier.BankStatement {
		t.Errorf("surviving merges = %+v, want the bank statement group", merged)
	}
}

func TestConsolidate_SkipsUnclassified(t *testing.T) {
	groups := []dossier.Group{
		{Category: dossier.Unclassified, Docs: []*dossier.ClassifiedDocument{
			classified("misterio.pdf", "", dossier.Unclassified, 0),
		}},
	}
	m := &fakeMerger{}
	merged, errs := Consolidate(context.Background(), m, groups)
	if len(merged) != 0 || len(errs) != 0 || len(m.calls) != 0 {
		t.Errorf("unclassified group must not be merged: merged=%v errs=%v calls=%d", merged, errs, len(m.calls))
	}
}

func TestCombinedPackage_GlobalChronologicalOrder(t *testing.T) {
	groups := Build([]*dossier.ClassifiedDocument{
		classified("parecer.pdf", "Parecer conclusivo", dossier.CommitteeRecord, 0),
		classified("nf_01.pdf", "Nota fiscal", dossier.ExpenseProof, 1),
		classified("oficio.pdf", "Ofício", dossier.Instruction, 2),
	})

	m := &fakeMerger{}
	data, files, err := CombinedPackage(context.Background(), m, groups)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"oficio.pdf", "nf_01.pdf", "parecer.pdf"}
	for i, f := range files {
		if f != want[i] {
			t.Fatalf("file order = %v, want %v", files, want)
		}
	}
	if string(data) != "%PDF-oficio.pdf|%PDF-nf_01.pdf|%PDF-parecer.pdf" {
		t.Errorf("combined data = %q", data)
	}
}

func TestCombinedPackage_NoClassifiedDocuments(t *testing.T) {
	m := &fakeMerger{}
	data, files, err := CombinedPackage(context.Background(), m, nil)
	if data != nil || files != nil || err != nil {
		t.Errorf("empty input: data=%v files=%v err=%v", data, files, err)
	}
}
