// Package storage reads snapshots and persists report artifacts, either on
// the local filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const s3Scheme = "s3://"

// Location names a snapshot either on disk or as an object in a bucket.
type Location struct {
	Path   string
	Bucket string
	Key    string
}

func (l Location) IsS3() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Path
}

// ParseLocation accepts a filesystem path or s3://bucket/key.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("snapshot location is required")
	}
	if !strings.HasPrefix(raw, s3Scheme) {
		return Location{Path: raw}, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(raw, s3Scheme), "/")
	if !ok || bucket == "" || strings.Trim(key, "/") == "" {
		return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", raw)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// ReadSnapshot loads the raw snapshot bytes from loc. Bucket reads use cfg
// for the endpoint and credentials; the bucket comes from loc.
func ReadSnapshot(ctx context.Context, loc Location, cfg S3Config) ([]byte, error) {
	if !loc.IsS3() {
		data, err := os.ReadFile(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		return data, nil
	}

	cfg.Bucket = loc.Bucket
	store, err := NewS3Store(cfg)
	if err != nil {
		return nil, err
	}
	data, err := store.GetObject(ctx, loc.Key)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot %s: %w", loc, err)
	}
	return data, nil
}
