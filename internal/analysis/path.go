// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/drivescope/core/internal/models"
)

const (
	UnknownPath = "/unknown"
	CyclicPath  = "/...cyclic reference..."
	NoParent    = "(no parent)"
)

// Resolver rebuilds slash-delimited folder paths by following first parents.
type Resolver struct {
	graph *models.Graph
	cache *lru.Cache[string, string]
}

// NewResolver returns a resolver bound to g. A positive cacheSize memoizes
// results; the graph never changes after Build, so cached paths stay valid.
func NewResolver(g *models.Graph, cacheSize int) *Resolver {
	r := &Resolver{graph: g}
	if cacheSize > 0 {
		r.cache, _ = lru.New[string, string](cacheSize)
	}
	return r
}

// Resolve returns the path of folderID. An unknown ancestor yields the
// UnknownPath prefix and a revisited ancestor yields the CyclicPath prefix,
// followed by the names below it.
func (r *Resolver) Resolve(folderID string) string {
	if r.cache != nil {
		if path, ok := r.cache.Get(folderID); ok {
			return path
		}
	}

	path := r.walk(folderID)

	if r.cache != nil {
		r.cache.Add(folderID, path)
	}
	return path
}

func (r *Resolver) walk(folderID string) string {
	var names []string
	prefix := ""
	visited := make(map[string]struct{})

	id := folderID
	for {
		if _, seen := visited[id]; seen {
			prefix = CyclicPath
			break
		}
		visited[id] = struct{}{}

		folder, ok := r.graph.Folder(id)
		if !ok {
			prefix = UnknownPath
			break
		}
		names = append(names, folder.Name)

		parent, ok := folder.FirstParent()
		if !ok {
			break
		}
		id = parent
	}

	var b strings.Builder
	b.WriteString(prefix)
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(names[i])
	}
	return b.String()
}

// Location is the resolved path of the entry's first parent, or NoParent.
func (r *Resolver) Location(e *models.Entry) string {
	parent, ok := e.FirstParent()
	if !ok {
		return NoParent
	}
	return r.Resolve(parent)
}

// FilePath is the full path of a non-folder entry.
func (r *Resolver) FilePath(e *models.Entry) string {
	parent, ok := e.FirstParent()
	if !ok {
		return "/" + e.Name
	}
	return r.Resolve(parent) + "/" + e.Name
}

// Depth counts the separators in a resolved path.
func Depth(path string) int {
	return strings.Count(path, "/")
}
