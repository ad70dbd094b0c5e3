// Package report renders an analysis report into the files a run produces
// and writes them to a storage backend.
package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/drivescope/core/internal/format"
	"github.com/drivescope/core/internal/models"
)

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func memberColumns(members []models.DuplicateMember) (string, string) {
	ids := make([]string, 0, len(members))
	locations := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
		locations = append(locations, m.Location)
	}
	return strings.Join(ids, ", "), strings.Join(locations, " | ")
}

func PotentialDuplicatesCSV(groups []models.DuplicateGroup) ([]byte, error) {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		ids, locations := memberColumns(g.Members)
		rows = append(rows, []string{g.Name, strconv.Itoa(g.Count), ids, locations})
	}
	return writeCSV([]string{"File name", "Copies", "File IDs", "Folders"}, rows)
}

func ExactDuplicatesCSV(groups []models.ExactDuplicateGroup) ([]byte, error) {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		ids, locations := memberColumns(g.Members)
		rows = append(rows, []string{
			g.Name,
			strconv.FormatInt(g.Size, 10),
			format.Size(g.Size),
			strconv.Itoa(g.Count),
			strconv.FormatInt(g.Reclaimable, 10),
			ids,
			locations,
		})
	}
	return writeCSV([]string{"File name", "Size bytes", "Size", "Copies", "Reclaimable bytes", "File IDs", "Folders"}, rows)
}

func OldFilesCSV(files []models.OldFile) ([]byte, error) {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.ID, f.Name, f.Path, f.Created.Format(time.RFC3339), strconv.Itoa(f.AgeDays)})
	}
	return writeCSV([]string{"ID", "Name", "Path", "Created", "Age days"}, rows)
}

func UnusedFilesCSV(files []models.UnusedFile) ([]byte, error) {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		age := ""
		if f.AgeDays != nil {
			age = strconv.Itoa(*f.AgeDays)
		}
		rows = append(rows, []string{f.ID, f.Name, f.Path, age, strconv.Itoa(f.Score), strings.Join(f.Reasons, "; ")})
	}
	return writeCSV([]string{"ID", "Name", "Path", "Age days", "Score", "Reasons"}, rows)
}

// CategoriesCSV writes one row per file, grouped by category in evaluation
// order.
func CategoriesCSV(c models.Categories) ([]byte, error) {
	var rows [][]string
	if c.Members != nil {
		c.Members.Each(func(category string, members []models.CategoryMember) {
			for _, m := range members {
				rows = append(rows, []string{category, m.ID, m.Name, m.MimeType})
			}
		})
	}
	return writeCSV([]string{"Category", "ID", "Name", "MIME type"}, rows)
}
