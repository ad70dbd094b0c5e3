// Package storage reads snapshots and persists report artifacts, either on
// the local filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/drivescope/core/internal/metrics"
)

type instrumented struct {
	backend string
	next    Store
}

// Instrument records the latency and outcome of every operation on next.
func Instrument(backend string, next Store) Store {
	return &instrumented{backend: backend, next: next}
}

func (s *instrumented) Put(ctx context.Context, runID, path string, content []byte) error {
	start := time.Now()
	err := s.next.Put(ctx, runID, path, content)
	metrics.RecordStorageOperation(s.backend, "put", time.Since(start), err == nil)
	return err
}

func (s *instrumented) Get(ctx context.Context, runID, path string) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Get(ctx, runID, path)
	metrics.RecordStorageOperation(s.backend, "get", time.Since(start), err == nil || errors.Is(err, ErrNotFound))
	return data, err
}

func (s *instrumented) List(ctx context.Context, runID string) ([]string, error) {
	start := time.Now()
	paths, err := s.next.List(ctx, runID)
	metrics.RecordStorageOperation(s.backend, "list", time.Since(start), err == nil)
	return paths, err
}

const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Open builds the configured backend wrapped with metrics.
func Open(backend, localRoot string, s3 S3Config) (Store, error) {
	switch backend {
	case BackendS3:
		store, err := NewS3Store(s3)
		if err != nil {
			return nil, err
		}
		return Instrument(BackendS3, store), nil
	case BackendLocal, "":
		store, err := NewLocalStore(localRoot)
		if err != nil {
			return nil, err
		}
		return Instrument(BackendLocal, store), nil
	default:
		return nil, errors.New("unknown storage backend " + backend)
	}
}
