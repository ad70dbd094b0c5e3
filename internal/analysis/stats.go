// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"math"

	"github.com/drivescope/core/internal/format"
	"github.com/drivescope/core/internal/models"
)

func TotalSize(g *models.Graph) int64 {
	var total int64
	for _, e := range g.Entries {
		if e.HasSize() {
			total = addSize(total, e.Bytes())
		}
	}
	return total
}

// addSize and mulSize saturate at math.MaxInt64. Sizes are never negative.
func addSize(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func mulSize(size int64, n int) int64 {
	if n <= 0 || size == 0 {
		return 0
	}
	if size > math.MaxInt64/int64(n) {
		return math.MaxInt64
	}
	return size * int64(n)
}

// LargestFiles returns up to limit of the graph's largest sized files.
func LargestFiles(g *models.Graph, limit int) []models.LargeFile {
	files := g.LargestFiles
	if len(files) > limit {
		files = files[:limit]
	}

	out := make([]models.LargeFile, 0, len(files))
	for _, e := range files {
		out = append(out, models.LargeFile{
			Name:         e.Name,
			SizeBytes:    e.Bytes(),
			SizeReadable: format.Size(e.Bytes()),
			ID:           e.ID,
		})
	}
	return out
}

func Statistics(g *models.Graph, r *Resolver, cfg Config) models.Stats {
	total := TotalSize(g)
	return models.Stats{
		TotalFiles:         len(g.Entries) - len(g.Folders),
		TotalFolders:       len(g.Folders),
		TotalSizeBytes:     total,
		TotalSizeReadable:  format.Size(total),
		MaxFolderDepth:     MaxDepth(g, r),
		RootFoldersCount:   len(g.Roots),
		OrphanFoldersCount: len(g.Orphans),
		FileTypes:          g.MimeTypes,
		CrowdedFolders:     CrowdedFolders(g, cfg.CrowdedTopN),
		LargestFiles:       LargestFiles(g, cfg.LargestTopN),
	}
}
