// Package models defines the core data structures shared by the parser, the
// analysis passes and the report sinks.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// FolderMimeType marks an entry as a folder.
const FolderMimeType = "application/vnd.google-apps.folder"

type Entry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MimeType    string     `json:"mimeType,omitempty"`
	Size        *ByteCount `json:"size,omitempty"`
	CreatedTime string     `json:"createdTime,omitempty"`
	Parents     []string   `json:"parents,omitempty"`
}

func (e *Entry) IsFolder() bool {
	return e.MimeType == FolderMimeType
}

// FirstParent returns the parent used for paths and classification.
func (e *Entry) FirstParent() (string, bool) {
	if len(e.Parents) == 0 {
		return "", false
	}
	return e.Parents[0], true
}

// HasSize reports whether the snapshot carried a size for the entry.
func (e *Entry) HasSize() bool {
	return e.Size != nil
}

// Bytes returns the coerced size, 0 when absent.
func (e *Entry) Bytes() int64 {
	if e.Size == nil {
		return 0
	}
	return int64(*e.Size)
}

// ByteCount is a size field that tolerates the string encoding used by the
// Drive API. Values that do not parse as an integer decode to 0.
type ByteCount int64

func (b *ByteCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*b = 0
			return nil
		}
		*b = ByteCount(parseByteCount(raw, false))
		return nil
	}

	*b = ByteCount(parseByteCount(string(data), true))
	return nil
}

// parseByteCount coerces raw to a non-negative integer. Bare JSON numbers such
// as 1024.0 truncate; quoted values must be integers. Values past the int64
// range clamp to math.MaxInt64.
func parseByteCount(raw string, number bool) int64 {
	raw = strings.TrimSpace(raw)

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return max(n, 0)
	}

	if number {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0
		}
		switch {
		case f >= math.MaxInt64:
			return math.MaxInt64
		case f > 0:
			return int64(f)
		}
	}

	return 0
}

func SizeOf(n int64) *ByteCount {
	b := ByteCount(n)
	return &b
}

// Snapshot is the complete, static list of entries one analysis run reads.
type Snapshot struct {
	Files []Entry `json:"files"`
}
