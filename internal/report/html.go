// Package report renders an analysis report into the files a run produces
// and writes them to a storage backend.
package report

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/drivescope/core/internal/models"
)

//go:embed templates/folder_tree.html
var templates embed.FS

var folderTree = template.Must(
	template.New("folder_tree.html").
		Funcs(template.FuncMap{"lower": strings.ToLower}).
		ParseFS(templates, "templates/folder_tree.html"),
)

type treePage struct {
	Generated string
	Stats     models.Stats
	Roots     []*models.FolderNode
}

// FolderTreeHTML renders the collapsible, searchable folder visualization.
func FolderTreeHTML(r *models.Report, generated time.Time) ([]byte, error) {
	var b bytes.Buffer
	err := folderTree.Execute(&b, treePage{
		Generated: generated.Format(timestampLayout),
		Stats:     r.Stats,
		Roots:     r.Structure.Nested,
	})
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
