// Package report renders an analysis report into the files a run produces
// and writes them to a storage backend.
package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/drivescope/core/internal/logging"
	"github.com/drivescope/core/internal/models"
	"github.com/drivescope/core/internal/storage"
)

const (
	StructureFile     = "drive_structure.txt"
	PotentialFile     = "potential_duplicates.csv"
	ExactFile         = "exact_duplicates.csv"
	OldFilesFile      = "old_files.csv"
	UnusedFilesFile   = "unused_files.csv"
	CategoriesFile    = "categories.csv"
	StatsFile         = "drive_stats.json"
	ReportFile        = "report.json"
	SuggestionsFile   = "improvement_suggestions.txt"
	VisualizationFile = "folder_tree.html"
)

// Artifact is one rendered output file.
type Artifact struct {
	Name string
	Data []byte
}

// Render produces every output file for r in a fixed order.
func Render(r *models.Report, generated time.Time) ([]Artifact, error) {
	renderers := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{StructureFile, func() ([]byte, error) { return StructureText(r.Structure, generated), nil }},
		{PotentialFile, func() ([]byte, error) { return PotentialDuplicatesCSV(r.Duplicates.Potential) }},
		{ExactFile, func() ([]byte, error) { return ExactDuplicatesCSV(r.Duplicates.Exact) }},
		{OldFilesFile, func() ([]byte, error) { return OldFilesCSV(r.OldFiles) }},
		{UnusedFilesFile, func() ([]byte, error) { return UnusedFilesCSV(r.Unused) }},
		{CategoriesFile, func() ([]byte, error) { return CategoriesCSV(r.Categories) }},
		{StatsFile, func() ([]byte, error) { return StatsJSON(r.Stats) }},
		{ReportFile, func() ([]byte, error) { return ReportJSON(r) }},
		{SuggestionsFile, func() ([]byte, error) { return SuggestionsText(r.Plan, generated), nil }},
		{VisualizationFile, func() ([]byte, error) { return FolderTreeHTML(r, generated) }},
	}

	artifacts := make([]Artifact, 0, len(renderers))
	for _, rr := range renderers {
		data, err := rr.render()
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", rr.name, err)
		}
		artifacts = append(artifacts, Artifact{Name: rr.name, Data: data})
	}
	return artifacts, nil
}

// Writer stores rendered reports under a run id.
type Writer struct {
	store  storage.Store
	logger *zap.Logger
}

func NewWriter(store storage.Store, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{store: store, logger: logger}
}

// Write renders r and stores every artifact, returning the stored names.
func (w *Writer) Write(ctx context.Context, runID string, r *models.Report, generated time.Time) ([]string, error) {
	artifacts, err := Render(r, generated)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		if err := w.store.Put(ctx, runID, a.Name, a.Data); err != nil {
			return names, fmt.Errorf("store %s: %w", a.Name, err)
		}
		w.logger.Debug("artifact written",
			logging.String("run_id", runID),
			logging.String("file", a.Name),
			logging.Int("bytes", len(a.Data)),
		)
		names = append(names, a.Name)
	}

	w.logger.Info("report written", logging.String("run_id", runID), logging.Int("files", len(names)))
	return names, nil
}
