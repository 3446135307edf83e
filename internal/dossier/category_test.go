package dossier

import "testing"

func TestCategoryOrder(t *testing.T) {
	if Categories[len(Categories)-1] != Unclassified {
		t.Error("Unclassified must close the taxonomy order")
	}
	seen := make(map[string]bool)
	for _, c := range Categories {
		if seen[c.String()] {
			t.Errorf("duplicate category name %q", c)
		}
		seen[c.String()] = true
	}
}

func TestCategoryConsolidate(t *testing.T) {
	for _, c := range Categories {
		want := c != Unclassified
		if c.Consolidate() != want {
			t.Errorf("%v.Consolidate() = %v", c, c.Consolidate())
		}
		if want && c.ArtifactPrefix() == "" {
			t.Errorf("%v has no artifact prefix", c)
		}
	}
	if Unclassified.ArtifactPrefix() != "" {
		t.Error("Unclassified must not name an artifact")
	}
}

func TestFactsMissing(t *testing.T) {
	f := Facts{SchoolName: "EMEF Exemplo"}
	missing := f.Missing(FieldSchoolName, FieldCNPJ, FieldFiscalYear)
	if len(missing) != 2 {
		t.Fatalf("missing = %v", missing)
	}
	if missing[0] != FieldCNPJ || missing[1] != FieldFiscalYear {
		t.Errorf("missing = %v", missing)
	}
}

func TestInputDocumentTextSetOnce(t *testing.T) {
	d := &InputDocument{Filename: "a.pdf"}
	if _, ok := d.Text(); ok {
		t.Error("text reported before extraction")
	}
	d.SetText("primeiro")
	d.SetText("segundo")
	if text, ok := d.Text(); !ok || text != "primeiro" {
		t.Errorf("Text() = %q, %v", text, ok)
	}
}
