// Package report renders an analysis report into the files a run produces
// and writes them to a storage backend.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/drivescope/core/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// StructureText lists the folder tree from the roots, then the orphans.
func StructureText(s models.Structure, generated time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Drive folder structure - generated at %s\n\n", generated.Format(timestampLayout))

	b.WriteString("Root folders:\n")
	for _, line := range s.Tree {
		fmt.Fprintf(&b, "%s- %s (ID: %s)\n", strings.Repeat("  ", line.Depth), line.Name, line.ID)
	}

	if len(s.Orphans) > 0 {
		b.WriteString("\nOrphan folders (no valid parent):\n")
		for _, folder := range s.Orphans {
			fmt.Fprintf(&b, "- %s (ID: %s)\n", folder.Name, folder.ID)
		}
	}
	return b.Bytes()
}

// SuggestionsText numbers the plan items with their details indented below.
func SuggestionsText(plan []models.Suggestion, generated time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Drive improvement suggestions - generated at %s\n\n", generated.Format(timestampLayout))

	if len(plan) == 0 {
		b.WriteString("No specific suggestions found for improving the drive structure.\n")
		return b.Bytes()
	}

	for i, s := range plan {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Message)
		for _, detail := range s.Details {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}
