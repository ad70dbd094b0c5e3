// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"cmp"
	"slices"
	"strings"

	"github.com/drivescope/core/internal/format"
	"github.com/drivescope/core/internal/models"
)

// branch is the chain of folder ids from a root to the current folder.
type branch struct {
	id string
	up *branch
}

func (b *branch) contains(id string) bool {
	for n := b; n != nil; n = n.up {
		if n.id == id {
			return true
		}
	}
	return false
}

func byName(a, b *models.Entry) int {
	return strings.Compare(a.Name, b.Name)
}

func byFoldedName(a, b *models.Entry) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

func sortedEntries(folders []*models.Entry, less func(a, b *models.Entry) int) []*models.Entry {
	out := slices.Clone(folders)
	slices.SortStableFunc(out, less)
	return out
}

// subfolders returns the folder children of id as the graph's folder records.
func subfolders(g *models.Graph, id string) []*models.Entry {
	var out []*models.Entry
	for _, child := range g.ChildrenOf(id) {
		if !child.IsFolder() {
			continue
		}
		if folder, ok := g.Folder(child.ID); ok {
			out = append(out, folder)
		}
	}
	return out
}

// FolderTree lists folders depth-first from the roots, sorted by name at each
// level. Files are not part of the tree. A folder already on the current
// branch is not entered again.
func FolderTree(g *models.Graph) []models.TreeLine {
	type frame struct {
		folder *models.Entry
		depth  int
		parent *branch
	}

	roots := sortedEntries(g.Roots, byName)
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{folder: roots[i]})
	}

	var lines []models.TreeLine
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.parent.contains(f.folder.ID) {
			continue
		}
		lines = append(lines, models.TreeLine{Depth: f.depth, Name: f.folder.Name, ID: f.folder.ID})

		here := &branch{id: f.folder.ID, up: f.parent}
		children := sortedEntries(subfolders(g, f.folder.ID), byName)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{folder: children[i], depth: f.depth + 1, parent: here})
		}
	}

	return lines
}

// NestedTree builds the folder and file hierarchy under every root for the
// visualization. Siblings sort case-insensitively, folders before files.
func NestedTree(g *models.Graph) []*models.FolderNode {
	type frame struct {
		node *models.FolderNode
		path *branch
	}

	roots := sortedEntries(g.Roots, byFoldedName)
	nodes := make([]*models.FolderNode, 0, len(roots))
	var stack []frame

	for _, root := range roots {
		node := &models.FolderNode{ID: root.ID, Name: root.Name}
		nodes = append(nodes, node)
		stack = append(stack, frame{node: node, path: &branch{id: root.ID}})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var files []*models.Entry
		for _, child := range g.ChildrenOf(f.node.ID) {
			if !child.IsFolder() {
				files = append(files, child)
			}
		}

		for _, sub := range sortedEntries(subfolders(g, f.node.ID), byFoldedName) {
			if f.path.contains(sub.ID) {
				continue
			}
			child := &models.FolderNode{ID: sub.ID, Name: sub.Name}
			f.node.Subfolders = append(f.node.Subfolders, child)
			stack = append(stack, frame{node: child, path: &branch{id: sub.ID, up: f.path}})
		}

		for _, file := range sortedEntries(files, byFoldedName) {
			f.node.Files = append(f.node.Files, fileLeaf(file))
		}
	}

	return nodes
}

func fileLeaf(e *models.Entry) models.FileLeaf {
	size := "?"
	if e.HasSize() {
		size = format.Size(e.Bytes())
	}

	mimeType := e.MimeType
	if mimeType == "" {
		mimeType = "unknown"
	}
	kind := mimeType[strings.LastIndex(mimeType, "/")+1:]

	return models.FileLeaf{ID: e.ID, Name: e.Name, Size: size, Type: kind}
}

// MaxDepth is the deepest resolved path over all known folders.
func MaxDepth(g *models.Graph, r *Resolver) int {
	deepest := 0
	for _, id := range g.FolderIDs {
		deepest = max(deepest, Depth(r.Resolve(id)))
	}
	return deepest
}

func directFileCount(g *models.Graph, id string) int {
	n := 0
	for _, child := range g.ChildrenOf(id) {
		if !child.IsFolder() {
			n++
		}
	}
	return n
}

// CrowdedFolders ranks every folder by its direct file children and keeps
// the first limit.
func CrowdedFolders(g *models.Graph, limit int) []models.CrowdedFolder {
	out := make([]models.CrowdedFolder, 0, len(g.FolderIDs))
	for _, id := range g.FolderIDs {
		out = append(out, models.CrowdedFolder{
			Name:       g.FolderByID[id].Name,
			FilesCount: directFileCount(g, id),
			ID:         id,
		})
	}
	return topCrowded(out, limit)
}

// FoldersOverThreshold returns folders with more than threshold direct files.
func FoldersOverThreshold(g *models.Graph, threshold int) []models.CrowdedFolder {
	var out []models.CrowdedFolder
	for _, id := range g.Children.Keys() {
		folder, ok := g.Folder(id)
		if !ok {
			continue
		}
		if n := directFileCount(g, id); n > threshold {
			out = append(out, models.CrowdedFolder{Name: folder.Name, FilesCount: n, ID: id})
		}
	}
	return topCrowded(out, len(out))
}

func topCrowded(folders []models.CrowdedFolder, limit int) []models.CrowdedFolder {
	slices.SortStableFunc(folders, func(a, b models.CrowdedFolder) int {
		return cmp.Compare(b.FilesCount, a.FilesCount)
	})
	if limit >= 0 && len(folders) > limit {
		folders = folders[:limit]
	}
	return folders
}

// EmptyFolders returns folders with neither files nor subfolders.
func EmptyFolders(g *models.Graph, r *Resolver) []models.FolderRef {
	var out []models.FolderRef
	for _, id := range g.FolderIDs {
		if len(g.ChildrenOf(id)) == 0 {
			out = append(out, models.FolderRef{ID: id, Name: g.FolderByID[id].Name, Path: r.Resolve(id)})
		}
	}
	return out
}

// AnalyzeStructure assembles the structural part of the report.
func AnalyzeStructure(g *models.Graph, r *Resolver) models.Structure {
	orphans := make([]models.FolderRef, 0, len(g.Orphans))
	for _, folder := range sortedEntries(g.Orphans, byName) {
		orphans = append(orphans, models.FolderRef{ID: folder.ID, Name: folder.Name, Path: r.Resolve(folder.ID)})
	}

	return models.Structure{
		Tree:     FolderTree(g),
		Nested:   NestedTree(g),
		Orphans:  orphans,
		Empty:    EmptyFolders(g, r),
		MaxDepth: MaxDepth(g, r),
	}
}
