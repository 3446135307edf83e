package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/crepdde/pddepack/internal/dossier"
	"github.com/crepdde/pddepack/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleSubmitBatch accepts a multipart upload of the dossier's PDFs and
// queues one pipeline batch. File order is preserved: it is the batch's
// arrival order.
func (s *Server) handleSubmitBatch(w http.ResponseWriter, r *http.Request) {
	maxBatch := s.cfg.MaxUploadBytes*int64(s.cfg.MaxBatchFiles) + 10*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBatch)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["pdfs"]
	if len(files) == 0 {
		jsonError(w, "at least one PDF is required", http.StatusBadRequest)
		return
	}
	if len(files) > s.cfg.MaxBatchFiles {
		jsonError(w, fmt.Sprintf("batch exceeds max file count (%d)", s.cfg.MaxBatchFiles), http.StatusRequestEntityTooLarge)
		return
	}

	docs := make([]*dossier.InputDocument, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
			return
		}

		f, err := fh.Open()
		if err != nil {
			jsonError(w, fmt.Sprintf("failed to open %s", filename), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, fmt.Sprintf("failed to read %s", filename), http.StatusInternalServerError)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		docs = append(docs, &dossier.InputDocument{Filename: filename, Data: data})
	}

	strict := s.cfg.StrictFacts
	if v := r.FormValue("strict_facts"); v != "" {
		strict = v == "true"
	}

	batch := pipeline.NewBatch(docs, strict)
	if err := s.orchestrator.Submit(batch); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"batch_id": batch.ID,
		"files":    len(docs),
		"poll_url": fmt.Sprintf("/api/batches/%s", batch.ID),
	})
}

func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	batch := s.orchestrator.Get(batchID)
	if batch == nil {
		jsonError(w, "batch not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch.Snapshot())
}

// handleBatchArchive streams the delivery zip once the batch is delivered.
func (s *Server) handleBatchArchive(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	batch := s.orchestrator.Get(batchID)
	if batch == nil {
		jsonError(w, "batch not found", http.StatusNotFound)
		return
	}
	result := batch.Result()
	if result == nil {
		jsonError(w, "batch not delivered yet", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.ArchiveName))
	w.Write(result.Archive)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
