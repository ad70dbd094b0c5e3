// Package handlers provides the HTTP handlers of the drivescope API: health,
// snapshot analysis and access to saved report runs.
package handlers

import (
	"errors"
	"net/http"
	"path"

	"github.com/drivescope/core/internal/logging"
	"github.com/drivescope/core/internal/storage"
)

// RunsHandler serves the files of saved runs. Routes must bind {runID} and,
// for single files, {file}.
type RunsHandler struct {
	store storage.Store
}

func NewRunsHandler(store storage.Store) *RunsHandler {
	return &RunsHandler{store: store}
}

type RunListing struct {
	RunID string   `json:"run_id"`
	Files []string `json:"files"`
}

// List responds with the files stored for a run.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")

	files, err := h.store.List(r.Context(), runID)
	if err != nil {
		logging.WithContext(r.Context()).Error("list run", logging.String("run_id", runID), logging.Err(err))
		http.Error(w, "Failed to list run", http.StatusInternalServerError)
		return
	}
	if len(files) == 0 {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, RunListing{RunID: runID, Files: files})
}

// File responds with one stored artifact.
func (h *RunsHandler) File(w http.ResponseWriter, r *http.Request) {
	runID, file := r.PathValue("runID"), r.PathValue("file")

	data, err := h.store.Get(r.Context(), runID, file)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error("read artifact", logging.String("run_id", runID), logging.String("file", file), logging.Err(err))
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(file))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(file string) string {
	switch path.Ext(file) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
