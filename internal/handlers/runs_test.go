// Package handlers provides the HTTP handlers of the drivescope API: health,
// snapshot analysis and access to saved report runs.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivescope/core/internal/storage"
)

func runsRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "run-1", "drive_stats.json", []byte(`{"total_files":1}`)))
	require.NoError(t, store.Put(ctx, "run-1", "old_files.csv", []byte("ID\n")))

	h := NewRunsHandler(store)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{runID}", h.List)
	mux.HandleFunc("GET /runs/{runID}/{file}", h.File)
	return mux
}

func TestRunsHandler(t *testing.T) {
	mux := runsRouter(t)

	t.Run("lists files of a run", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs/run-1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var listing RunListing
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
		assert.Equal(t, RunListing{RunID: "run-1", Files: []string{"drive_stats.json", "old_files.csv"}}, listing)
	})

	t.Run("unknown run is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("serves a file with its content type", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs/run-1/old_files.csv", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "ID\n", w.Body.String())
	})

	t.Run("missing file is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs/run-1/report.json", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
