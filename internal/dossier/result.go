package dossier

// ArtifactKind distinguishes merged PDFs from generated documents.
type ArtifactKind string

const (
	ArtifactPDF  ArtifactKind = "pdf"
	ArtifactDOCX ArtifactKind = "docx"
)

// Artifact is a named byte blob headed for the delivery archive: a merged
// category PDF or a generated dispatch document. Name is assigned by the
// packager.
type Artifact struct {
	Name   string
	Kind   ArtifactKind
	Source string // category or template identifier
	Data   []byte
}

// WarningKind labels a non-fatal problem attached to a batch result.
type WarningKind string

const (
	WarnUnreadable      WarningKind = "documento_ilegivel"
	WarnUnclassified    WarningKind = "nao_classificado"
	WarnIncompleteFacts WarningKind = "fatos_incompletos"
	WarnToolFailure     WarningKind = "falha_ferramenta"
)

// Warning is one reported, non-fatal problem.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Detail string      `json:"detail"`
}

// ManifestEntry maps a category or template to the artifact name it
// produced.
type ManifestEntry struct {
	Source string `json:"source"`
	Name   string `json:"name"`
}

// Result is the terminal, immutable product of one pipeline run: the
// archive, its name, a manifest and every warning collected along the way.
type Result struct {
	ArchiveName  string          `json:"archive_name"`
	Archive      []byte          `json:"-"`
	Manifest     []ManifestEntry `json:"manifest"`
	Facts        Facts           `json:"-"`
	Unclassified []string        `json:"unclassified,omitempty"`
	Warnings     []Warning       `json:"warnings,omitempty"`
}
