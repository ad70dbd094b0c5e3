// Package parser decodes snapshots and builds the in-memory graph the analysis
// passes read.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/drivescope/core/internal/models"
)

var ErrEmptySnapshot = errors.New("empty snapshot data")

// ParseSnapshot accepts either a bare array of entries or an object with a
// "files" array. Schema violations are rejected here, before any pass runs.
func ParseSnapshot(data []byte) (*models.Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptySnapshot
	}

	var snapshot models.Snapshot
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &snapshot.Files); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
	case '{':
		var wrapped struct {
			Files *[]models.Entry `json:"files"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		if wrapped.Files == nil {
			return nil, fmt.Errorf("invalid snapshot: missing files field")
		}
		snapshot.Files = *wrapped.Files
	default:
		return nil, fmt.Errorf("invalid snapshot: expected a JSON array or object")
	}

	if err := Validate(&snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Validate checks every entry of an already decoded snapshot.
func Validate(snapshot *models.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("invalid snapshot: nil")
	}
	for i := range snapshot.Files {
		if err := validateEntry(&snapshot.Files[i]); err != nil {
			return fmt.Errorf("invalid entry at index %d: %w", i, err)
		}
	}
	return nil
}

func validateEntry(e *models.Entry) error {
	return validation.ValidateStruct(e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Parents, validation.Each(validation.Required)),
	)
}
