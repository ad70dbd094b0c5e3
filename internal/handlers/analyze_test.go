// Package handlers provides the HTTP handlers of the drivescope API: health,
// snapshot analysis and access to saved report runs.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivescope/core/internal/analysis"
	"github.com/drivescope/core/internal/models"
	"github.com/drivescope/core/internal/report"
	"github.com/drivescope/core/internal/storage"
)

const validSnapshot = `{"files": [
	{"id": "root", "name": "Work", "mimeType": "application/vnd.google-apps.folder"},
	{"id": "a", "name": "notes.txt", "mimeType": "text/plain", "size": "10", "parents": ["root"]},
	{"id": "b", "name": "notes.txt", "mimeType": "text/plain", "size": "10", "parents": ["root"]}
]}`

func newAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	cfg := analysis.DefaultConfig()
	cfg.Now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	a, err := analysis.New(cfg)
	require.NoError(t, err)
	return a
}

func postSnapshot(h http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAnalyzeHandler(t *testing.T) {
	h := NewAnalyzeHandler(newAnalyzer(t))

	t.Run("returns the report for a valid snapshot", func(t *testing.T) {
		w := postSnapshot(h, "/analyze", validSnapshot)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var result models.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 2, result.Stats.TotalFiles)
		require.Len(t, result.Duplicates.Exact, 1)
		assert.Equal(t, int64(10), result.Duplicates.TotalReclaimable)
		assert.Equal(t, "/Work", result.Duplicates.Exact[0].Members[0].Location)
	})

	t.Run("accepts a bare array", func(t *testing.T) {
		w := postSnapshot(h, "/analyze", `[]`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("pretty prints on request", func(t *testing.T) {
		w := postSnapshot(h, "/analyze?pretty=true", validSnapshot)
		assert.Contains(t, w.Body.String(), "\n  \"structure\"")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		w := postSnapshot(h, "/analyze", `{"files": [`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid snapshot")
	})

	t.Run("rejects entries without id", func(t *testing.T) {
		w := postSnapshot(h, "/analyze", `[{"name": "x"}]`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "index 0")
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		w := postSnapshot(h, "/analyze", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects bodies over the limit", func(t *testing.T) {
		small := NewAnalyzeHandler(newAnalyzer(t), WithMaxBody(16))
		w := postSnapshot(small, "/analyze", validSnapshot)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("rejects GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestAnalyzeHandlerSave(t *testing.T) {
	store := storage.NewMemoryStore()
	h := NewAnalyzeHandler(newAnalyzer(t), WithWriter(report.NewWriter(store, nil)))

	t.Run("stores the report files under a new run", func(t *testing.T) {
		w := postSnapshot(h, "/analyze?save=true", validSnapshot)

		require.Equal(t, http.StatusOK, w.Code)
		runID := w.Header().Get(RunIDHeader)
		require.NotEmpty(t, runID)

		files, err := store.List(context.Background(), runID)
		require.NoError(t, err)
		assert.Contains(t, files, report.ReportFile)
		assert.Contains(t, files, report.VisualizationFile)
	})

	t.Run("does not store without save", func(t *testing.T) {
		w := postSnapshot(h, "/analyze", validSnapshot)
		assert.Empty(t, w.Header().Get(RunIDHeader))
	})
}
