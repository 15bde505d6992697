// Command inspect loads a shopping behavior dataset and prints a text
// overview: shape, missing counts, distinct counts and numeric summaries.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/config"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/infrastructure"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/loader"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/profile"
)

func main() {
	in := flag.String("in", "", "input dataset file (.csv or .xlsx)")
	configFile := flag.String("config", "config.yaml", "configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *in != "" {
		cfg.Paths.InputFile = *in
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

	table, err := loader.New(logger).Load(cfg.Paths.InputFile, dataset.ShoppingSchema())
	if err != nil {
		logger.Error("failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := profile.Describe(table).Render(os.Stdout); err != nil {
		logger.Error("failed to render overview", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
