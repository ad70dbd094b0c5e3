package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/drivescope/core/internal/analysis"
	"github.com/drivescope/core/internal/models"
	"github.com/drivescope/core/internal/parser"
)

var generated = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

const sampleSnapshot = `[
	{"id": "w", "name": "Work", "mimeType": "application/vnd.google-apps.folder"},
	{"id": "p", "name": "Projects", "mimeType": "application/vnd.google-apps.folder", "parents": ["w"]},
	{"id": "lost", "name": "Lost", "mimeType": "application/vnd.google-apps.folder", "parents": ["gone"]},
	{"id": "1", "name": "report.pdf", "mimeType": "application/pdf", "size": "2048", "createdTime": "2022-01-01T00:00:00.000Z", "parents": ["p"]},
	{"id": "2", "name": "report.pdf", "mimeType": "application/pdf", "size": "2048", "createdTime": "2025-05-01T00:00:00.000Z", "parents": ["w"]},
	{"id": "3", "name": "backup <old>.zip", "mimeType": "application/zip", "size": "100", "createdTime": "2020-01-01T00:00:00.000Z", "parents": ["lost"]},
	{"id": "4", "name": "photo.jpg", "mimeType": "image/jpeg", "parents": ["w"]}
]`

func sample(t *testing.T) (*models.Graph, *models.Report) {
	t.Helper()

	snapshot, err := parser.ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)
	g := parser.BuildGraph(snapshot)

	cfg := analysis.DefaultConfig()
	cfg.Now = func() time.Time { return generated }
	a, err := analysis.New(cfg)
	require.NoError(t, err)

	return g, a.Run(g)
}
