package dossier

// Field names a structured fact pulled from document text.
type Field string

const (
	FieldPDDEType     Field = "tipo_pdde"
	FieldFiscalYear   Field = "ano"
	FieldSchoolName   Field = "escola"
	FieldCNPJ         Field = "cnpj"
	FieldCECPresident Field = "presidente_cec"
	FieldCaseNumber   Field = "processo"
)

// Fields lists every known field in a fixed order.
var Fields = []Field{
	FieldPDDEType,
	FieldFiscalYear,
	FieldSchoolName,
	FieldCNPJ,
	FieldCECPresident,
	FieldCaseNumber,
}

// Facts is a partial record of the structured facts extracted from a batch.
// Empty string means the field was never resolved.
type Facts struct {
	PDDEType     string
	FiscalYear   string
	SchoolName   string
	CNPJ         string
	CECPresident string
	CaseNumber   string
}

// Get returns the value of a field, empty when unresolved.
func (f Facts) Get(field Field) string {
	switch field {
	case FieldPDDEType:
		return f.PDDEType
	case FieldFiscalYear:
		return f.FiscalYear
	case FieldSchoolName:
		return f.SchoolName
	case FieldCNPJ:
		return f.CNPJ
	case FieldCECPresident:
		return f.CECPresident
	case FieldCaseNumber:
		return f.CaseNumber
	}
	return ""
}

// Set assigns the value of a field.
func (f *Facts) Set(field Field, value string) {
	switch field {
	case FieldPDDEType:
		f.PDDEType = value
	case FieldFiscalYear:
		f.FiscalYear = value
	case FieldSchoolName:
		f.SchoolName = value
	case FieldCNPJ:
		f.CNPJ = value
	case FieldCECPresident:
		f.CECPresident = value
	case FieldCaseNumber:
		f.CaseNumber = value
	}
}

// Missing returns the subset of fields that are still unresolved.
func (f Facts) Missing(fields ...Field) []Field {
	var missing []Field
	for _, field := range fields {
		if f.Get(field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
