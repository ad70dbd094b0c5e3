// Package models defines the core data structures shared by the parser, the
// analysis passes and the report sinks.
package models

import "time"

type TreeLine struct {
	Depth int    `json:"depth"`
	Name  string `json:"name"`
	ID    string `json:"id"`
}

// FolderNode is the nested view used by the HTML visualization.
type FolderNode struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Subfolders []*FolderNode `json:"subfolders,omitempty"`
	Files      []FileLeaf    `json:"files,omitempty"`
}

type FileLeaf struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size string `json:"size"`
	Type string `json:"type"`
}

type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

type Structure struct {
	Tree     []TreeLine    `json:"tree"`
	Nested   []*FolderNode `json:"nested,omitempty"`
	Orphans  []FolderRef   `json:"orphans"`
	Empty    []FolderRef   `json:"empty_folders"`
	MaxDepth int           `json:"max_depth"`
}

type CrowdedFolder struct {
	Name       string `json:"name"`
	FilesCount int    `json:"files_count"`
	ID         string `json:"id"`
}

type LargeFile struct {
	Name         string `json:"name"`
	SizeBytes    int64  `json:"size_bytes"`
	SizeReadable string `json:"size_readable"`
	ID           string `json:"id"`
}

type Stats struct {
	TotalFiles         int             `json:"total_files"`
	TotalFolders       int             `json:"total_folders"`
	TotalSizeBytes     int64           `json:"total_size_bytes"`
	TotalSizeReadable  string          `json:"total_size_readable"`
	MaxFolderDepth     int             `json:"max_folder_depth"`
	RootFoldersCount   int             `json:"root_folders_count"`
	OrphanFoldersCount int             `json:"orphan_folders_count"`
	FileTypes          *Counter        `json:"file_types"`
	CrowdedFolders     []CrowdedFolder `json:"crowded_folders"`
	LargestFiles       []LargeFile     `json:"largest_files"`
}

// DuplicateMember is one copy of a duplicated file and where it lives.
type DuplicateMember struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

type DuplicateGroup struct {
	Name    string            `json:"name"`
	Count   int               `json:"count"`
	Members []DuplicateMember `json:"members"`
}

type ExactDuplicateGroup struct {
	Name        string            `json:"name"`
	Size        int64             `json:"size"`
	Count       int               `json:"count"`
	Reclaimable int64             `json:"reclaimable"`
	Members     []DuplicateMember `json:"members"`
}

type Duplicates struct {
	Potential        []DuplicateGroup      `json:"potential"`
	Exact            []ExactDuplicateGroup `json:"exact"`
	TotalReclaimable int64                 `json:"total_reclaimable"`
}

type OldFile struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Created time.Time `json:"created"`
	AgeDays int       `json:"age_days"`
}

type UnusedFile struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	AgeDays *int     `json:"age_days,omitempty"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type CategoryMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type,omitempty"`
}

type Categories struct {
	Members *OrderedMap[string, []CategoryMember] `json:"members"`
	Summary *Counter                              `json:"summary"`
}

// Suggestion is one item of the reorganization plan.
type Suggestion struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type Report struct {
	Structure  Structure    `json:"structure"`
	Stats      Stats        `json:"stats"`
	Duplicates Duplicates   `json:"duplicates"`
	OldFiles   []OldFile    `json:"old_files"`
	Unused     []UnusedFile `json:"unused_files"`
	Categories Categories   `json:"categories"`
	Plan       []Suggestion `json:"plan"`
}
