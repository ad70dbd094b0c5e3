// Package models defines the core data structures shared by the parser, the
// analysis passes and the report sinks.
package models

// Graph holds the indices built once per snapshot. It is read-only after
// construction; every analysis pass takes it as an argument.
type Graph struct {
	Entries      []*Entry
	Folders      []*Entry
	NonFolders   []*Entry
	FolderByID   map[string]*Entry
	FolderIDs    []string
	Children     *OrderedMap[string, []*Entry]
	Roots        []*Entry
	Orphans      []*Entry
	MimeTypes    *Counter
	LargestFiles []*Entry
}

// ChildrenOf returns the entries registered under parentID, in input order.
func (g *Graph) ChildrenOf(parentID string) []*Entry {
	children, _ := g.Children.Get(parentID)
	return children
}

func (g *Graph) Folder(id string) (*Entry, bool) {
	f, ok := g.FolderByID[id]
	return f, ok
}

// FolderClass is the structural classification of a folder.
type FolderClass string

const (
	ClassRoot   FolderClass = "root"
	ClassOrphan FolderClass = "orphan"
	ClassNormal FolderClass = "normal"
)

// Classify places a folder in exactly one of root, orphan or normal. Only the
// first parent is consulted.
func (g *Graph) Classify(folder *Entry) FolderClass {
	parent, ok := folder.FirstParent()
	if !ok {
		return ClassRoot
	}
	if _, known := g.FolderByID[parent]; !known {
		return ClassOrphan
	}
	return ClassNormal
}
