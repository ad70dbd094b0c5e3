// Package analysis runs the independent passes over a built snapshot graph:
// path resolution, structure, duplicates, age and relevance scoring,
// categorization, statistics and the reorganization plan.
package analysis

import (
	"time"

	"go.uber.org/zap"

	"github.com/drivescope/core/internal/logging"
	"github.com/drivescope/core/internal/models"
)

// Analyzer runs every pass over a graph. It holds only compiled settings, so
// one Analyzer may serve concurrent runs over independent graphs.
type Analyzer struct {
	cfg         Config
	scoring     Scoring
	categorizer *Categorizer
	logger      *zap.Logger
}

type Option func(*Analyzer)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func New(cfg Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scoring, err := cfg.Scoring()
	if err != nil {
		return nil, err
	}

	categorizer, err := NewCategorizer(cfg.Categories)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:         cfg,
		scoring:     scoring,
		categorizer: categorizer,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Analyzer) Config() Config {
	return a.cfg
}

// Run executes all passes sequentially. The graph is only read.
func (a *Analyzer) Run(g *models.Graph) *models.Report {
	now := a.cfg.now()
	r := NewResolver(g, a.cfg.PathCacheSize)

	report := &models.Report{}

	a.timed("structure", func() { report.Structure = AnalyzeStructure(g, r) })
	a.timed("statistics", func() { report.Stats = Statistics(g, r, a.cfg) })
	a.timed("duplicates", func() { report.Duplicates = FindDuplicates(g, r) })
	a.timed("old_files", func() { report.OldFiles = OldFiles(g, r, now, a.cfg.OldFileDays) })
	a.timed("unused_files", func() { report.Unused = UnusedFiles(g, r, now, a.scoring) })
	a.timed("categories", func() { report.Categories = a.categorizer.Categorize(g) })
	a.timed("plan", func() {
		report.Plan = Plan(PlanInput{
			Graph:      g,
			Empty:      report.Structure.Empty,
			Crowded:    FoldersOverThreshold(g, a.cfg.CrowdedThreshold),
			Duplicates: report.Duplicates,
			OldFiles:   report.OldFiles,
			Unused:     report.Unused,
		}, a.cfg)
	})

	a.logger.Info("analysis completed",
		logging.Int("entries", len(g.Entries)),
		logging.Int("folders", len(g.Folders)),
		logging.Int("potential_duplicates", len(report.Duplicates.Potential)),
		logging.Int("unused_files", len(report.Unused)),
	)

	return report
}

func (a *Analyzer) timed(pass string, fn func()) {
	start := time.Now()
	fn()
	a.logger.Debug("pass finished", logging.String("pass", pass), logging.Duration("duration", time.Since(start)))
}
