// Package pipeline wires the preprocessing stages into a single batch run:
// load, clean, outlier handling, feature enrichment and optional categorical
// encoding, strictly in that order. Each stage fully materializes its result
// before the next one starts; the run aborts on the first error.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/cleaner"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/config"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/encoder"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/enricher"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/infrastructure"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/loader"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/outliers"
)

// Stage is one step of the preprocessing pipeline. Run mutates the table in
// place.
type Stage interface {
	Name() string
	Run(ctx context.Context, table *dataset.Table) error
}

// Options configures a pipeline run.
type Options struct {
	// InputPath is the dataset file to load.
	InputPath string
	// Schema defaults to dataset.ShoppingSchema when nil.
	Schema dataset.Schema
	// Pipeline carries the stage toggles and parameters.
	Pipeline config.PipelineConfig
}

// Result is the output of a completed run.
type Result struct {
	RunID string
	Table *dataset.Table
	// Encoders holds the fitted encoder state when encoding ran, else nil.
	Encoders *encoder.Encoders
}

// Runner executes the preprocessing pipeline.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger falls back to slog.Default().
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run loads the input file and executes the configured stages in order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	runID := uuid.NewString()
	ctx = infrastructure.WithRunID(ctx, runID)
	logger := r.logger.With(slog.String("run_id", runID))

	schema := opts.Schema
	if schema == nil {
		schema = dataset.ShoppingSchema()
	}

	logger.Info("starting preprocessing pipeline",
		slog.String("input", opts.InputPath))

	table, err := loader.New(logger).Load(opts.InputPath, schema)
	if err != nil {
		return nil, fmt.Errorf("stage load: %w", err)
	}

	stages, encodeStage, err := r.buildStages(logger, opts.Pipeline)
	if err != nil {
		return nil, err
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := stage.Run(ctx, table); err != nil {
			logger.Error("stage failed",
				slog.String("stage", stage.Name()),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		logger.Info("stage complete",
			slog.String("stage", stage.Name()),
			slog.Duration("duration", time.Since(start)),
			slog.Int("rows", table.NumRows()),
			slog.Int("columns", table.NumCols()))
	}

	result := &Result{RunID: runID, Table: table}
	if encodeStage != nil {
		result.Encoders = encodeStage.fitted
	}

	logger.Info("preprocessing pipeline complete",
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	return result, nil
}

func (r *Runner) buildStages(logger *slog.Logger, cfg config.PipelineConfig) ([]Stage, *encodeStage, error) {
	stages := []Stage{
		&cleanStage{cleaner: cleaner.New(logger)},
	}

	if cfg.HandleOutliers {
		handler, err := outliers.New(logger, cfg.OutlierMethod, cfg.OutlierMultiplier,
			outliers.Action(cfg.OutlierAction))
		if err != nil {
			return nil, nil, err
		}
		stages = append(stages, &outlierStage{handler: handler, columns: cfg.OutlierColumns})
	}

	stages = append(stages, &enrichStage{enricher: enricher.New(logger)})

	var enc *encodeStage
	if cfg.EncodeCategoricals {
		enc = &encodeStage{
			encoder:   encoder.New(logger, cfg.DropFirst),
			labelCols: cfg.LabelColumns,
			oneHot:    cfg.OneHotColumns,
		}
		stages = append(stages, enc)
	}

	return stages, enc, nil
}

type cleanStage struct {
	cleaner *cleaner.Cleaner
}

func (s *cleanStage) Name() string { return "clean" }

func (s *cleanStage) Run(_ context.Context, table *dataset.Table) error {
	return s.cleaner.Clean(table)
}

type outlierStage struct {
	handler *outliers.Handler
	columns []string
}

func (s *outlierStage) Name() string { return "outliers" }

func (s *outlierStage) Run(_ context.Context, table *dataset.Table) error {
	return s.handler.Handle(table, s.columns)
}

type enrichStage struct {
	enricher *enricher.Enricher
}

func (s *enrichStage) Name() string { return "enrich" }

func (s *enrichStage) Run(_ context.Context, table *dataset.Table) error {
	return s.enricher.Enrich(table)
}

type encodeStage struct {
	encoder   *encoder.Encoder
	labelCols []string
	oneHot    []string
	fitted    *encoder.Encoders
}

func (s *encodeStage) Name() string { return "encode" }

func (s *encodeStage) Run(_ context.Context, table *dataset.Table) error {
	fitted, err := s.encoder.Encode(table, s.labelCols, s.oneHot)
	if err != nil {
		return err
	}
	s.fitted = fitted
	return nil
}
