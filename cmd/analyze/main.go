// Package main is the drivescope command line tool: it reads a drive
// snapshot, analyzes it and writes the report files of one run.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivescope/core/internal/analysis"
	"github.com/drivescope/core/internal/config"
	"github.com/drivescope/core/internal/logging"
	"github.com/drivescope/core/internal/models"
	"github.com/drivescope/core/internal/parser"
	"github.com/drivescope/core/internal/report"
	"github.com/drivescope/core/internal/storage"
)

type options struct {
	input    string
	out      string
	config   string
	duckdb   string
	oldDays  int
	runID    string
	logLevel string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var opts options
	flag.StringVar(&opts.input, "input", cfg.SnapshotInput, "snapshot file path or s3://bucket/key")
	flag.StringVar(&opts.out, "out", cfg.OutputDir, "output directory for local runs")
	flag.StringVar(&opts.config, "config", cfg.AnalysisConfigPath, "analysis settings YAML file")
	flag.StringVar(&opts.duckdb, "duckdb", cfg.DuckDBPath, "also export to this DuckDB database file")
	flag.IntVar(&opts.oldDays, "old-days", 0, "override the old-file threshold in days")
	flag.StringVar(&opts.runID, "run-id", "", "run id the report files are stored under (default: random)")
	flag.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console", OutputPath: "stderr"}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Sync()
	logging.SetLevel(opts.logLevel)

	cfg.OutputDir = opts.out
	cfg.AnalysisConfigPath = opts.config

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout, logging.L()); err != nil {
		logging.L().Fatal("analysis failed", logging.Err(err))
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, stdout io.Writer, logger *zap.Logger) error {
	analysisCfg, err := cfg.Analysis()
	if err != nil {
		return err
	}
	if opts.oldDays > 0 {
		analysisCfg.OldFileDays = opts.oldDays
	}
	analyzer, err := analysis.New(analysisCfg, analysis.WithLogger(logger.Named("analysis")))
	if err != nil {
		return err
	}

	loc, err := storage.ParseLocation(opts.input)
	if err != nil {
		return err
	}
	logger.Info("loading snapshot", logging.String("input", loc.String()))
	raw, err := storage.ReadSnapshot(ctx, loc, cfg.S3())
	if err != nil {
		return err
	}

	snapshot, err := parser.ParseSnapshot(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", loc, err)
	}
	graph := parser.BuildGraph(snapshot)
	logger.Info("snapshot loaded",
		logging.Int("entries", len(graph.Entries)),
		logging.Int("folders", len(graph.Folders)),
	)

	result := analyzer.Run(graph)

	store, err := cfg.Store()
	if err != nil {
		return err
	}
	runID := opts.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	names, err := report.NewWriter(store, logger.Named("report")).Write(ctx, runID, result, time.Now())
	if err != nil {
		return err
	}

	if opts.duckdb != "" {
		if err := exportDuckDB(ctx, opts.duckdb, graph, result); err != nil {
			return err
		}
		names = append(names, opts.duckdb)
	}

	printSummary(stdout, runID, result, names)
	return nil
}

func exportDuckDB(ctx context.Context, path string, g *models.Graph, r *models.Report) error {
	sink, err := report.OpenDuckDB(path)
	if err != nil {
		return err
	}
	defer sink.Close()
	return sink.Export(ctx, g, r)
}

func printSummary(w io.Writer, runID string, r *models.Report, files []string) {
	fmt.Fprintf(w, "Run %s\n\n", runID)
	fmt.Fprintf(w, "Drive statistics:\n")
	fmt.Fprintf(w, "- Total files: %d\n", r.Stats.TotalFiles)
	fmt.Fprintf(w, "- Total folders: %d\n", r.Stats.TotalFolders)
	fmt.Fprintf(w, "- Total size: %s\n", r.Stats.TotalSizeReadable)
	fmt.Fprintf(w, "- Maximum folder depth: %d\n", r.Stats.MaxFolderDepth)
	fmt.Fprintf(w, "- Root folders: %d\n", r.Stats.RootFoldersCount)
	if r.Stats.OrphanFoldersCount > 0 {
		fmt.Fprintf(w, "- Orphan folders: %d\n", r.Stats.OrphanFoldersCount)
	}

	if len(r.Plan) > 0 {
		fmt.Fprintf(w, "\nTop suggestions:\n")
		for _, s := range r.Plan[:min(3, len(r.Plan))] {
			fmt.Fprintf(w, "- %s\n", s.Message)
		}
	}

	fmt.Fprintf(w, "\nFiles written:\n")
	for i, name := range files {
		fmt.Fprintf(w, "%d. %s\n", i+1, name)
	}
}
