// Command preprocess runs the full preprocessing pipeline over a shopping
// behavior dataset and writes the processed table as CSV.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/config"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/exporter"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/infrastructure"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/pipeline"
)

func main() {
	in := flag.String("in", "", "input dataset file (.csv or .xlsx)")
	out := flag.String("out", "", "output CSV file (defaults to <output_dir>/processed.csv)")
	configFile := flag.String("config", "config.yaml", "configuration file")
	noOutliers := flag.Bool("no-outliers", false, "skip outlier handling")
	encode := flag.Bool("encode", false, "encode categorical columns")
	action := flag.String("outlier-action", "", "override outlier action (cap|remove)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *in != "" {
		cfg.Paths.InputFile = *in
	}
	if *noOutliers {
		cfg.Pipeline.HandleOutliers = false
	}
	if *encode {
		cfg.Pipeline.EncodeCategoricals = true
	}
	if *action != "" {
		cfg.Pipeline.OutlierAction = *action
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Paths.InputFile == "" {
		slog.Error("no input file: pass -in or set paths.input_file")
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	runner := pipeline.NewRunner(logger)
	result, err := runner.Run(context.Background(), pipeline.Options{
		InputPath: cfg.Paths.InputFile,
		Pipeline:  cfg.Pipeline,
	})
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(cfg.Paths.OutputDir, "processed.csv")
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteTable(outPath, result.Table, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		logger.Error("failed to write output", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("done",
		slog.String("output", outPath),
		slog.Int("rows", result.Table.NumRows()),
		slog.Int("columns", result.Table.NumCols()))
}
