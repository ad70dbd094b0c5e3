// Package handlers provides the HTTP handlers of the drivescope API: health,
// snapshot analysis and access to saved report runs.
package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/drivescope/core/internal/logging"
)

const ServiceName = "drivescope-api"

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

var startTime = time.Now()

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   ServiceName,
		Uptime:    time.Since(startTime).String(),
		Details: map[string]string{
			"go_version":    runtime.Version(),
			"num_cpu":       strconv.Itoa(runtime.NumCPU()),
			"num_goroutine": strconv.Itoa(runtime.NumGoroutine()),
		},
	}

	writeJSON(w, r, http.StatusOK, response)
}

// writeJSON encodes v, indented when the request asks for ?pretty=true.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		logging.WithContext(r.Context()).Error("encode response", logging.Err(err))
	}
}
