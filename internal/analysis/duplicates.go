// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"cmp"
	"slices"

	"github.com/drivescope/core/internal/models"
)

func members(entries []*models.Entry, r *Resolver) []models.DuplicateMember {
	out := make([]models.DuplicateMember, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.DuplicateMember{ID: e.ID, Location: r.Location(e)})
	}
	return out
}

// PotentialDuplicates groups files by name alone. Groups of two or more are
// returned largest first; ties keep first-seen order.
func PotentialDuplicates(g *models.Graph, r *Resolver) []models.DuplicateGroup {
	byName := models.NewOrderedMap[string, []*models.Entry]()
	for _, e := range g.NonFolders {
		byName.Update(e.Name, func(group []*models.Entry) []*models.Entry {
			return append(group, e)
		})
	}

	var groups []models.DuplicateGroup
	byName.Each(func(name string, entries []*models.Entry) {
		if len(entries) < 2 {
			return
		}
		groups = append(groups, models.DuplicateGroup{
			Name:    name,
			Count:   len(entries),
			Members: members(entries, r),
		})
	})

	slices.SortStableFunc(groups, func(a, b models.DuplicateGroup) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return groups
}

type nameSize struct {
	name string
	size int64
}

// ExactDuplicates groups sized files by name and size together. Groups are
// returned largest size first with the space deleting the extra copies frees.
func ExactDuplicates(g *models.Graph, r *Resolver) []models.ExactDuplicateGroup {
	byKey := models.NewOrderedMap[nameSize, []*models.Entry]()
	for _, e := range g.NonFolders {
		if !e.HasSize() {
			continue
		}
		byKey.Update(nameSize{name: e.Name, size: e.Bytes()}, func(group []*models.Entry) []*models.Entry {
			return append(group, e)
		})
	}

	var groups []models.ExactDuplicateGroup
	byKey.Each(func(key nameSize, entries []*models.Entry) {
		if len(entries) < 2 {
			return
		}
		groups = append(groups, models.ExactDuplicateGroup{
			Name:        key.name,
			Size:        key.size,
			Count:       len(entries),
			Reclaimable: mulSize(key.size, len(entries)-1),
			Members:     members(entries, r),
		})
	})

	slices.SortStableFunc(groups, func(a, b models.ExactDuplicateGroup) int {
		return cmp.Compare(b.Size, a.Size)
	})
	return groups
}

func TotalReclaimable(groups []models.ExactDuplicateGroup) int64 {
	var total int64
	for _, group := range groups {
		total = addSize(total, group.Reclaimable)
	}
	return total
}

func FindDuplicates(g *models.Graph, r *Resolver) models.Duplicates {
	exact := ExactDuplicates(g, r)
	return models.Duplicates{
		Potential:        PotentialDuplicates(g, r),
		Exact:            exact,
		TotalReclaimable: TotalReclaimable(exact),
	}
}
