// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/drivescope/core/internal/models"
)

const day = 24 * time.Hour

var createdLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var offsetLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// naive keeps the wall clock of t and drops its zone.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseCreatedTime reads an ISO-8601 timestamp as a zone-less instant. A
// trailing Z is stripped, not converted; explicit offsets are dropped the same
// way.
func ParseCreatedTime(value string) (time.Time, bool) {
	value = strings.TrimSuffix(strings.TrimSpace(value), "Z")
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range createdLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return naive(t), true
		}
	}
	return time.Time{}, false
}

// AgeDays is the whole number of days between created and now, floored.
func AgeDays(now, created time.Time) int {
	d := now.Sub(created)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

// OldFiles returns files older than thresholdDays, oldest first. Files
// without a usable creation time are left out.
func OldFiles(g *models.Graph, r *Resolver, now time.Time, thresholdDays int) []models.OldFile {
	var out []models.OldFile
	for _, e := range g.NonFolders {
		created, ok := ParseCreatedTime(e.CreatedTime)
		if !ok {
			continue
		}
		age := AgeDays(now, created)
		if age <= thresholdDays {
			continue
		}
		out = append(out, models.OldFile{
			ID:      e.ID,
			Name:    e.Name,
			Path:    r.FilePath(e),
			Created: created,
			AgeDays: age,
		})
	}

	slices.SortStableFunc(out, func(a, b models.OldFile) int {
		return cmp.Compare(b.AgeDays, a.AgeDays)
	})
	return out
}

// Scoring holds the unused-file heuristic settings.
type Scoring struct {
	OldDays     int
	VeryOldDays int
	DeepDepth   int
	MinScore    int
	Patterns    []*regexp.Regexp
}

func (c Config) Scoring() (Scoring, error) {
	patterns, err := compilePatterns(c.TempPatterns)
	if err != nil {
		return Scoring{}, err
	}
	return Scoring{
		OldDays:     c.OldBandDays,
		VeryOldDays: c.VeryOldBandDays,
		DeepDepth:   c.DeepNestingDepth,
		MinScore:    c.UnusedMinScore,
		Patterns:    patterns,
	}, nil
}

const patternReason = "backup/temp pattern"

// Score rates how likely a file is unused and explains each point.
func (s Scoring) Score(e *models.Entry, path string, now time.Time) (int, *int, []string) {
	score := 0
	var reasons []string
	var agePtr *int

	if created, ok := ParseCreatedTime(e.CreatedTime); ok {
		age := AgeDays(now, created)
		agePtr = &age
		switch {
		case age > s.VeryOldDays:
			score += 2
			reasons = append(reasons, fmt.Sprintf("very old (%d days)", age))
		case age > s.OldDays:
			score++
			reasons = append(reasons, fmt.Sprintf("old (%d days)", age))
		}
	}

	// Depth of the file's own path: one more than its parent folder's depth.
	if depth := Depth(path); depth > s.DeepDepth {
		score++
		reasons = append(reasons, fmt.Sprintf("deeply nested (depth %d)", depth))
	}

	for _, re := range s.Patterns {
		if re.MatchString(e.Name) {
			score += 2
			reasons = append(reasons, patternReason)
			break
		}
	}

	return score, agePtr, reasons
}

// UnusedFiles keeps files scoring at least MinScore, highest first.
func UnusedFiles(g *models.Graph, r *Resolver, now time.Time, s Scoring) []models.UnusedFile {
	var out []models.UnusedFile
	for _, e := range g.NonFolders {
		path := r.FilePath(e)
		score, age, reasons := s.Score(e, path, now)
		if score < s.MinScore {
			continue
		}
		out = append(out, models.UnusedFile{
			ID:      e.ID,
			Name:    e.Name,
			Path:    path,
			AgeDays: age,
			Score:   score,
			Reasons: reasons,
		})
	}

	slices.SortStableFunc(out, func(a, b models.UnusedFile) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}
