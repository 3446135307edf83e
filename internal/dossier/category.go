package dossier

// Category is one member of the closed document taxonomy. The declaration
// order is the taxonomy order: it defines classification priority, fact
// resolution priority and the position of each consolidated PDF in the
// final archive.
type Category int

const (
	// Instruction covers ofícios and justificativas that open the dossier.
	Instruction Category = iota
	// ExpenseProof covers notas fiscais, comprovantes, orçamentos and
	// payment receipts.
	ExpenseProof
	// BankStatement covers extratos, conciliações and application
	// statements.
	BankStatement
	// CommitteeRecord covers atas, planejamentos, pareceres and other CEC
	// paperwork.
	CommitteeRecord
	// Unclassified is the terminal bucket for documents no rule matched.
	// It is reported to the caller and never consolidated.
	Unclassified
)

// Categories lists the taxonomy in order, Unclassified last.
var Categories = []Category{Instruction, ExpenseProof, BankStatement, CommitteeRecord, Unclassified}

func (c Category) String() string {
	switch c {
	case Instruction:
		return "pecas_instrucao"
	case ExpenseProof:
		return "comprovacao_despesa"
	case BankStatement:
		return "extratos_conciliacao"
	case CommitteeRecord:
		return "atas_relatorios_cec"
	case Unclassified:
		return "nao_classificado"
	}
	return "desconhecido"
}

// ArtifactPrefix is the fixed numbered prefix of the category's
// consolidated PDF inside the delivery archive.
func (c Category) ArtifactPrefix() string {
	switch c {
	case Instruction:
		return "01_PECAS_INSTRUCAO"
	case ExpenseProof:
		return "02_COMPROVACAO_DESPESA"
	case BankStatement:
		return "03_EXTRATOS_CONCILIACAO"
	case CommitteeRecord:
		return "04_ATAS_RELATORIOS_CEC"
	}
	return ""
}

// Consolidate reports whether documents of this category are merged into a
// single PDF. Unclassified documents are reported, never merged.
func (c Category) Consolidate() bool {
	return c != Unclassified
}
