// Package storage reads snapshots and persists report artifacts, either on
// the local filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store persists the artifacts of one analysis run under a run id.
type Store interface {
	Put(ctx context.Context, runID, path string, content []byte) error
	Get(ctx context.Context, runID, path string) ([]byte, error)
	List(ctx context.Context, runID string) ([]string, error)
}

var ErrNotFound = errors.New("artifact not found")

// checkKey trims and validates the run id and path shared by every backend.
func checkRunID(runID string) (string, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return "", fmt.Errorf("run_id is required")
	}
	if strings.Contains(runID, "..") {
		return "", fmt.Errorf("invalid run id %s", runID)
	}
	return runID, nil
}

func checkKey(runID, path string) (string, string, error) {
	runID, err := checkRunID(runID)
	if err != nil {
		return "", "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", "", fmt.Errorf("path is required")
	}
	if strings.Contains(path, "..") {
		return "", "", fmt.Errorf("invalid artifact key %s/%s", runID, path)
	}
	return runID, path, nil
}

func objectKey(runID, path string) string {
	normalized := strings.TrimLeft(strings.TrimSpace(path), "/")
	return strings.TrimSpace(runID) + "/" + normalized
}
