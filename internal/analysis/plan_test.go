package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivescope/core/internal/models"
)

func kinds(plan []models.Suggestion) []string {
	out := make([]string, 0, len(plan))
	for _, s := range plan {
		out = append(out, s.Kind)
	}
	return out
}

func TestPlan(t *testing.T) {
	cfg := testConfig()

	t.Run("clean drive yields no suggestions", func(t *testing.T) {
		g := build(folder("r", "Root"), file("f", "f.txt", 1, "r"))
		assert.Empty(t, Plan(PlanInput{Graph: g}, cfg))
	})

	t.Run("suggestions follow a fixed order", func(t *testing.T) {
		var entries []models.Entry
		for i := range 12 {
			entries = append(entries, folder(fmt.Sprintf("p%d", i), fmt.Sprintf("Project %d", i)))
		}
		g := build(entries...)
		r := NewResolver(g, 0)

		crowded := []models.CrowdedFolder{
			{Name: "A", FilesCount: 300, ID: "a"}, {Name: "B", FilesCount: 250, ID: "b"},
			{Name: "C", FilesCount: 200, ID: "c"}, {Name: "D", FilesCount: 150, ID: "d"},
			{Name: "E", FilesCount: 120, ID: "e"}, {Name: "F", FilesCount: 101, ID: "f"},
		}
		dups := models.Duplicates{
			Potential:        []models.DuplicateGroup{{Name: "x", Count: 3}, {Name: "y", Count: 2}},
			Exact:            []models.ExactDuplicateGroup{{Name: "x", Size: 1024, Count: 3, Reclaimable: 2048}},
			TotalReclaimable: 2048,
		}

		plan := Plan(PlanInput{
			Graph:      g,
			Empty:      EmptyFolders(g, r),
			Crowded:    crowded,
			Duplicates: dups,
			OldFiles:   []models.OldFile{{ID: "o"}},
			Unused:     []models.UnusedFile{{ID: "u"}, {ID: "v"}},
		}, cfg)

		assert.Equal(t, []string{
			KindRootFolders, KindEmptyFolders, KindCrowded, KindDuplicates,
			KindExact, KindNaming, KindOldFiles, KindUnusedFiles,
		}, kinds(plan))

		assert.Contains(t, plan[0].Message, "12 root folders")
		assert.Contains(t, plan[1].Message, "12 empty folders")
		assert.Contains(t, plan[2].Message, "6 folders with more than 100 direct files")
		assert.Len(t, plan[2].Details, 5)
		assert.Equal(t, "'A' contains 300 files", plan[2].Details[0])
		assert.Contains(t, plan[3].Message, "2 file names with potential duplicates (5 files in total)")
		assert.Contains(t, plan[4].Message, "would free 2.00 KB")
		assert.Equal(t, []string{"'Project' appears in 12 folder names"}, plan[5].Details)
		assert.Contains(t, plan[6].Message, "1 files are older than 365 days")
		assert.Contains(t, plan[7].Message, "2 files look unused")
	})

	t.Run("root limit is exclusive", func(t *testing.T) {
		var entries []models.Entry
		for i := range 10 {
			entries = append(entries, folder(fmt.Sprintf("r%d", i), fmt.Sprintf("R%d", i)), file(fmt.Sprintf("f%d", i), "f", 1, fmt.Sprintf("r%d", i)))
		}
		g := build(entries...)
		assert.NotContains(t, kinds(Plan(PlanInput{Graph: g}, cfg)), KindRootFolders)
	})
}

func TestCommonPrefixes(t *testing.T) {
	names := []string{
		"Project A", "Project B", "Project C", "Project D",
		"The One", "The Two", "the Three", "The Four",
		"Archive 1", "Archive 2", "Archive 3",
		"Misc", "",
		"Client X", "Client Y", "Client Z", "Client W", "Client V",
	}
	var entries []models.Entry
	for i, name := range names {
		entries = append(entries, folder(fmt.Sprintf("f%d", i), name))
	}
	g := build(entries...)

	prefixes := CommonPrefixes(g, testConfig())

	assert.Equal(t, []PrefixCount{
		{Prefix: "Client", Count: 5},
		{Prefix: "Project", Count: 4},
	}, prefixes)
}
