// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/drivescope/core/internal/format"
	"github.com/drivescope/core/internal/models"
)

const (
	KindRootFolders  = "root_folders"
	KindEmptyFolders = "empty_folders"
	KindCrowded      = "crowded_folders"
	KindDuplicates   = "duplicates"
	KindExact        = "exact_duplicates"
	KindNaming       = "naming"
	KindOldFiles     = "old_files"
	KindUnusedFiles  = "unused_files"
)

// PlanInput is what the plan reads from the other passes.
type PlanInput struct {
	Graph      *models.Graph
	Empty      []models.FolderRef
	Crowded    []models.CrowdedFolder
	Duplicates models.Duplicates
	OldFiles   []models.OldFile
	Unused     []models.UnusedFile
}

// Plan turns the findings into an ordered list of reorganization suggestions.
func Plan(in PlanInput, cfg Config) []models.Suggestion {
	var plan []models.Suggestion

	if roots := len(in.Graph.Roots); roots > cfg.RootFolderLimit {
		plan = append(plan, models.Suggestion{
			Kind: KindRootFolders,
			Message: fmt.Sprintf("You have %d root folders. Consider grouping them into categories such as "+
				"'Work', 'Personal' and 'Projects'.", roots),
		})
	}

	if n := len(in.Empty); n > 0 {
		plan = append(plan, models.Suggestion{
			Kind: KindEmptyFolders,
			Message: fmt.Sprintf("There are %d empty folders. Consider removing them or using them to organize "+
				"loose files.", n),
		})
	}

	if n := len(in.Crowded); n > 0 {
		s := models.Suggestion{
			Kind: KindCrowded,
			Message: fmt.Sprintf("There are %d folders with more than %d direct files. Consider organizing "+
				"those files into subfolders.", n, cfg.CrowdedThreshold),
		}
		for _, folder := range in.Crowded[:min(n, cfg.CrowdedPlanTopN)] {
			s.Details = append(s.Details, fmt.Sprintf("'%s' contains %d files", folder.Name, folder.FilesCount))
		}
		plan = append(plan, s)
	}

	if groups := in.Duplicates.Potential; len(groups) > 0 {
		files := 0
		for _, group := range groups {
			files += group.Count
		}
		plan = append(plan, models.Suggestion{
			Kind: KindDuplicates,
			Message: fmt.Sprintf("There are %d file names with potential duplicates (%d files in total).",
				len(groups), files),
		})
	}

	if groups := in.Duplicates.Exact; len(groups) > 0 {
		plan = append(plan, models.Suggestion{
			Kind: KindExact,
			Message: fmt.Sprintf("%d groups of files share both name and size. Removing the extra copies "+
				"would free %s.", len(groups), format.Size(in.Duplicates.TotalReclaimable)),
		})
	}

	if prefixes := CommonPrefixes(in.Graph, cfg); len(prefixes) > 0 {
		s := models.Suggestion{
			Kind:    KindNaming,
			Message: "Several folder names share a common prefix. Consider standardizing naming conventions.",
		}
		for _, p := range prefixes[:min(len(prefixes), cfg.PrefixPlanTopN)] {
			s.Details = append(s.Details, fmt.Sprintf("'%s' appears in %d folder names", p.Prefix, p.Count))
		}
		plan = append(plan, s)
	}

	if n := len(in.OldFiles); n > 0 {
		plan = append(plan, models.Suggestion{
			Kind: KindOldFiles,
			Message: fmt.Sprintf("%d files are older than %d days. Consider archiving them.",
				n, cfg.OldFileDays),
		})
	}

	if n := len(in.Unused); n > 0 {
		plan = append(plan, models.Suggestion{
			Kind: KindUnusedFiles,
			Message: fmt.Sprintf("%d files look unused (age, nesting or backup-style names). Review them "+
				"for deletion.", n),
		})
	}

	return plan
}

type PrefixCount struct {
	Prefix string
	Count  int
}

// CommonPrefixes counts the first word of every folder name and keeps the
// ones used more than PrefixMinCount times, most frequent first.
func CommonPrefixes(g *models.Graph, cfg Config) []PrefixCount {
	stop := make(map[string]struct{}, len(cfg.PrefixStopWords))
	for _, w := range cfg.PrefixStopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	counts := models.NewCounter()
	for _, folder := range g.Folders {
		words := strings.Fields(folder.Name)
		if len(words) == 0 {
			continue
		}
		models.Inc(counts, words[0])
	}

	var out []PrefixCount
	counts.Each(func(prefix string, n int) {
		if n <= cfg.PrefixMinCount {
			return
		}
		if _, skip := stop[strings.ToLower(prefix)]; skip {
			return
		}
		out = append(out, PrefixCount{Prefix: prefix, Count: n})
	})

	slices.SortStableFunc(out, func(a, b PrefixCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
