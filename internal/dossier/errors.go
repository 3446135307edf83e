package dossier

import (
	"fmt"
	"strings"
)

// UnreadableDocumentError means text extraction could not obtain any text
// layer from a document's bytes.
type UnreadableDocumentError struct {
	Filename string
	Err      error
}

func (e *UnreadableDocumentError) Error() string {
	return fmt.Sprintf("documento ilegível %q: %v", e.Filename, e.Err)
}

func (e *UnreadableDocumentError) Unwrap() error { return e.Err }

// IncompleteFactsError means a template required facts that were never
// resolved from the batch.
type IncompleteFactsError struct {
	Template string
	Missing  []Field
}

func (e *IncompleteFactsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("fatos incompletos para %s: %s", e.Template, strings.Join(names, ", "))
}

// ToolError means an external merge or conversion utility failed or timed
// out, scoped to one category or template.
type ToolError struct {
	Tool    string
	Scope   string
	Files   []string
	Timeout bool
	Err     error
}

func (e *ToolError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s excedeu o tempo limite (%s): %v", e.Tool, e.Scope, e.Err)
	}
	return fmt.Sprintf("%s falhou (%s): %v", e.Tool, e.Scope, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// NamingCollisionError means two artifacts resolved to the same final name.
// This is always fatal: it indicates a taxonomy or naming-convention bug.
type NamingCollisionError struct {
	Name string
}

func (e *NamingCollisionError) Error() string {
	return fmt.Sprintf("colisão de nomes no pacote: %q", e.Name)
}
