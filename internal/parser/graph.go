// Package parser decodes snapshots and builds the in-memory graph the analysis
// passes read.
package parser

import (
	"cmp"
	"slices"

	"github.com/drivescope/core/internal/models"
)

const largestFilesKept = 100

func BuildGraph(snapshot *models.Snapshot) *models.Graph {
	graph := &models.Graph{
		Entries:    make([]*models.Entry, 0, len(snapshot.Files)),
		FolderByID: make(map[string]*models.Entry),
		Children:   models.NewOrderedMap[string, []*models.Entry](),
		MimeTypes:  models.NewCounter(),
	}

	for i := range snapshot.Files {
		entry := &snapshot.Files[i]
		graph.Entries = append(graph.Entries, entry)

		if entry.IsFolder() {
			graph.Folders = append(graph.Folders, entry)
			if _, seen := graph.FolderByID[entry.ID]; !seen {
				graph.FolderIDs = append(graph.FolderIDs, entry.ID)
			}
			graph.FolderByID[entry.ID] = entry
			continue
		}

		graph.NonFolders = append(graph.NonFolders, entry)
		models.Inc(graph.MimeTypes, mimeKey(entry.MimeType))
	}

	for _, entry := range graph.Entries {
		for _, parentID := range entry.Parents {
			graph.Children.Update(parentID, func(children []*models.Entry) []*models.Entry {
				return append(children, entry)
			})
		}
	}

	for _, id := range graph.FolderIDs {
		folder := graph.FolderByID[id]
		switch graph.Classify(folder) {
		case models.ClassRoot:
			graph.Roots = append(graph.Roots, folder)
		case models.ClassOrphan:
			graph.Orphans = append(graph.Orphans, folder)
		}
	}

	graph.LargestFiles = largestFiles(graph.NonFolders, largestFilesKept)

	return graph
}

func mimeKey(mimeType string) string {
	if mimeType == "" {
		return "unknown"
	}
	return mimeType
}

func largestFiles(entries []*models.Entry, limit int) []*models.Entry {
	sized := make([]*models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.HasSize() {
			sized = append(sized, e)
		}
	}

	slices.SortStableFunc(sized, func(a, b *models.Entry) int {
		return cmp.Compare(b.Bytes(), a.Bytes())
	})

	if len(sized) > limit {
		sized = sized[:limit]
	}
	return sized
}
