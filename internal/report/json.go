// Package report renders an analysis report into the files a run produces
// and writes them to a storage backend.
package report

import (
	"encoding/json"

	"github.com/drivescope/core/internal/models"
)

func indentJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func StatsJSON(stats models.Stats) ([]byte, error) {
	return indentJSON(stats)
}

func ReportJSON(r *models.Report) ([]byte, error) {
	return indentJSON(r)
}
