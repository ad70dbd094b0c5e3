// Package handlers provides the HTTP handlers of the drivescope API: health,
// snapshot analysis and access to saved report runs.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/drivescope/core/internal/analysis"
	"github.com/drivescope/core/internal/logging"
	"github.com/drivescope/core/internal/metrics"
	"github.com/drivescope/core/internal/parser"
	"github.com/drivescope/core/internal/report"
)

const (
	defaultMaxBody = 256 << 20

	// RunIDHeader names the run a saved report was stored under.
	RunIDHeader = "X-Run-ID"
)

// AnalyzeHandler accepts a snapshot and responds with the full report.
type AnalyzeHandler struct {
	analyzer *analysis.Analyzer
	writer   *report.Writer
	maxBody  int64
}

type AnalyzeOption func(*AnalyzeHandler)

// WithWriter enables ?save=true, which stores the rendered report files.
func WithWriter(w *report.Writer) AnalyzeOption {
	return func(h *AnalyzeHandler) { h.writer = w }
}

func WithMaxBody(n int64) AnalyzeOption {
	return func(h *AnalyzeHandler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

func NewAnalyzeHandler(a *analysis.Analyzer, opts ...AnalyzeOption) *AnalyzeHandler {
	h := &AnalyzeHandler{analyzer: a, maxBody: defaultMaxBody}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger := logging.WithContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	defer r.Body.Close()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Snapshot too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	snapshot, err := parser.ParseSnapshot(body)
	if err != nil {
		metrics.RecordAnalysisFailure()
		logger.Warn("rejected snapshot", logging.Err(err))
		http.Error(w, "Invalid snapshot: "+err.Error(), http.StatusBadRequest)
		return
	}

	graph := parser.BuildGraph(snapshot)
	result := h.analyzer.Run(graph)
	metrics.RecordAnalysis(len(graph.Entries), result, time.Since(start))

	if h.writer != nil && r.URL.Query().Get("save") == "true" {
		runID := uuid.NewString()
		if _, err := h.writer.Write(r.Context(), runID, result, time.Now()); err != nil {
			logger.Error("store report", logging.String("run_id", runID), logging.Err(err))
			http.Error(w, "Failed to store report", http.StatusInternalServerError)
			return
		}
		w.Header().Set(RunIDHeader, runID)
	}

	writeJSON(w, r, http.StatusOK, result)
}
