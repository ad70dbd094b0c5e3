package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivescope/core/internal/models"
)

func folder(id, name string, parents ...string) models.Entry {
	return models.Entry{ID: id, Name: name, MimeType: models.FolderMimeType, Parents: parents}
}

func file(id, name string, size int64, parents ...string) models.Entry {
	return models.Entry{ID: id, Name: name, MimeType: "text/plain", Size: models.SizeOf(size), Parents: parents}
}

func ids(entries []*models.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestBuildGraph(t *testing.T) {
	t.Run("empty snapshot returns empty graph", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{})

		assert.NotNil(t, graph)
		assert.Empty(t, graph.Folders)
		assert.Empty(t, graph.Roots)
		assert.Equal(t, 0, graph.Children.Len())
		assert.Equal(t, 0, graph.MimeTypes.Len())
	})

	t.Run("partitions folders and files", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			folder("r", "Root"),
			file("a", "a.txt", 10, "r"),
			file("b", "b.txt", 20, "r"),
		}})

		assert.Equal(t, []string{"r"}, ids(graph.Folders))
		assert.Equal(t, []string{"a", "b"}, ids(graph.NonFolders))
		assert.Len(t, graph.Entries, 3)
	})

	t.Run("children keep input order", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			file("z", "z.txt", 1, "r"),
			folder("r", "Root"),
			folder("s", "Sub", "r"),
			file("a", "a.txt", 1, "r"),
		}})

		assert.Equal(t, []string{"z", "s", "a"}, ids(graph.ChildrenOf("r")))
	})

	t.Run("entries without parents are registered nowhere", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			folder("r", "Root"),
			file("a", "a.txt", 1),
		}})

		assert.Equal(t, 0, graph.Children.Len())
	})

	t.Run("multi-parent entry is indexed under every parent", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			folder("p1", "One"),
			folder("p2", "Two"),
			file("x", "shared.txt", 5, "p1", "p2"),
		}})

		assert.Equal(t, []string{"x"}, ids(graph.ChildrenOf("p1")))
		assert.Equal(t, []string{"x"}, ids(graph.ChildrenOf("p2")))
	})

	t.Run("classifies roots and orphans", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			folder("r", "Root"),
			folder("n", "Normal", "r"),
			folder("o", "Orphan", "deleted"),
			folder("m", "Mixed", "deleted", "r"),
			folder("w", "Second valid only", "missing", "n"),
		}})

		assert.Equal(t, []string{"r"}, ids(graph.Roots))
		assert.Equal(t, []string{"o", "m", "w"}, ids(graph.Orphans))
	})

	t.Run("folder under a file parent is an orphan", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			file("doc", "doc.txt", 1),
			folder("f", "Inside doc", "doc"),
		}})

		assert.Equal(t, []string{"f"}, ids(graph.Orphans))
	})

	t.Run("every folder falls in exactly one class", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			folder("r", "Root"),
			folder("a", "A", "r"),
			folder("b", "B", "c"),
			folder("c", "C", "b"),
			folder("o", "O", "gone"),
			folder("self", "Self", "self"),
		}})

		counts := map[models.FolderClass]int{}
		for _, id := range graph.FolderIDs {
			counts[graph.Classify(graph.FolderByID[id])]++
		}

		assert.Equal(t, len(graph.FolderIDs), counts[models.ClassRoot]+counts[models.ClassOrphan]+counts[models.ClassNormal])
		assert.Equal(t, 1, counts[models.ClassRoot])
		assert.Equal(t, 1, counts[models.ClassOrphan])
		assert.Equal(t, 4, counts[models.ClassNormal])
		assert.Len(t, graph.Roots, counts[models.ClassRoot])
		assert.Len(t, graph.Orphans, counts[models.ClassOrphan])
	})

	t.Run("duplicate folder ids keep the last record", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			folder("r", "First"),
			folder("r", "Second"),
		}})

		assert.Len(t, graph.Folders, 2)
		assert.Equal(t, []string{"r"}, graph.FolderIDs)
		assert.Equal(t, "Second", graph.FolderByID["r"].Name)
		require.Len(t, graph.Roots, 1)
		assert.Equal(t, "Second", graph.Roots[0].Name)
	})

	t.Run("counts mime types of files only", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			folder("r", "Root"),
			{ID: "1", Name: "a.png", MimeType: "image/png"},
			{ID: "2", Name: "b", MimeType: ""},
			{ID: "3", Name: "c.png", MimeType: "image/png"},
		}})

		assert.Equal(t, []string{"image/png", "unknown"}, graph.MimeTypes.Keys())
		n, _ := graph.MimeTypes.Get("image/png")
		assert.Equal(t, 2, n)
		n, _ = graph.MimeTypes.Get("unknown")
		assert.Equal(t, 1, n)
	})

	t.Run("largest files are sized files by descending size", func(t *testing.T) {
		graph := BuildGraph(&models.Snapshot{Files: []models.Entry{
			file("small", "s", 1),
			{ID: "nosize", Name: "n"},
			file("big", "b", 300),
			file("mid", "m", 20),
		}})

		assert.Equal(t, []string{"big", "mid", "small"}, ids(graph.LargestFiles))
	})
}
