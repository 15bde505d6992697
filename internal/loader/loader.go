// Package loader reads a shopping behavior dataset from disk into a
// dataset.Table, coercing every cell to its declared column kind.
package loader

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	apperrors "github.com/Hemantdhake/shopping-behavior-pipeline/internal/errors"
)

// Loader reads delimited or spreadsheet files into record tables.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the file at path into a table conforming to schema. The format
// is chosen by extension: .xlsx via excelize, anything else as CSV. A
// missing file yields a NOT_FOUND error, any other failure a LOAD error;
// both are logged and returned.
func (l *Loader) Load(path string, schema dataset.Schema) (*dataset.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		appErr := apperrors.NewNotFoundError(path, err)
		l.logger.Error("input file not found", slog.String("path", path))
		return nil, appErr
	}

	var records [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readExcel(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		appErr := apperrors.NewLoadError("failed to read input file", err).
			WithContext("path", path)
		l.logger.Error("failed to read input file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, appErr
	}

	table, err := buildTable(records, schema)
	if err != nil {
		l.logger.Error("failed to parse input file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	l.logger.Info("loaded dataset",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	return table, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	return reader.ReadAll()
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// buildTable coerces raw records to the schema. The first record must be a
// header matching the schema's column names in order.
func buildTable(records [][]string, schema dataset.Schema) (*dataset.Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewLoadError("input file is empty", nil)
	}

	header := records[0]
	if len(header) != len(schema) {
		return nil, apperrors.NewLoadError(
			fmt.Sprintf("expected %d columns, got %d", len(schema), len(header)), nil)
	}
	for i, spec := range schema {
		if strings.TrimSpace(header[i]) != spec.Name {
			return nil, apperrors.NewLoadError(
				fmt.Sprintf("header mismatch at column %d: expected %q, got %q",
					i, spec.Name, strings.TrimSpace(header[i])), nil)
		}
	}

	rows := records[1:]
	table := dataset.New(schema, len(rows))

	for i, row := range rows {
		for j, spec := range schema {
			var cell string
			// Spreadsheet rows may omit trailing empty cells.
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			if cell == "" {
				continue
			}

			col, _ := table.Column(spec.Name)
			switch spec.Kind {
			case dataset.Int:
				v, err := strconv.ParseInt(cell, 10, 64)
				if err != nil {
					return nil, cellError(i, spec.Name, cell, err)
				}
				col.SetFloat(i, float64(v))
			case dataset.Float:
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, cellError(i, spec.Name, cell, err)
				}
				col.SetFloat(i, v)
			default:
				col.SetString(i, cell)
			}
		}
	}

	return table, nil
}

func cellError(row int, column, value string, err error) error {
	return apperrors.NewLoadError(
		fmt.Sprintf("cannot parse value %q in column %q", value, column), err).
		WithContext("row", row).
		WithContext("column", column)
}
