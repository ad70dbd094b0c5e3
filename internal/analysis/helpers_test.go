package analysis

import (
	"fmt"
	"time"

	"github.com/drivescope/core/internal/models"
	"github.com/drivescope/core/internal/parser"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func folder(id, name string, parents ...string) models.Entry {
	return models.Entry{ID: id, Name: name, MimeType: models.FolderMimeType, Parents: parents}
}

func file(id, name string, size int64, parents ...string) models.Entry {
	return models.Entry{ID: id, Name: name, MimeType: "application/octet-stream", Size: models.SizeOf(size), Parents: parents}
}

func unsized(id, name string, parents ...string) models.Entry {
	return models.Entry{ID: id, Name: name, Parents: parents}
}

func created(e models.Entry, daysAgo int) models.Entry {
	e.CreatedTime = testNow.Add(-time.Duration(daysAgo)*24*time.Hour).Format("2006-01-02T15:04:05.000") + "Z"
	return e
}

func build(entries ...models.Entry) *models.Graph {
	return parser.BuildGraph(&models.Snapshot{Files: entries})
}

// chain returns depth folders d1..dN, each nested in the previous one.
func chain(depth int) []models.Entry {
	out := []models.Entry{folder("d1", "L1")}
	for i := 2; i <= depth; i++ {
		out = append(out, folder(fmt.Sprintf("d%d", i), fmt.Sprintf("L%d", i), fmt.Sprintf("d%d", i-1)))
	}
	return out
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return testNow }
	return cfg
}
