// Package cleaner removes exact-duplicate rows and imputes missing values:
// median for numeric columns, mode for categorical columns.
package cleaner

import (
	"log/slog"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	apperrors "github.com/Hemantdhake/shopping-behavior-pipeline/internal/errors"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/stats"
)

// Cleaner deduplicates and imputes a record table in place.
type Cleaner struct {
	logger *slog.Logger
}

// New creates a cleaner. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean removes exact-duplicate rows (first occurrence wins) and fills every
// missing value. Running it again on the result is a no-op.
func (c *Cleaner) Clean(table *dataset.Table) error {
	removed := c.dropDuplicates(table)
	filled, err := c.imputeMissing(table)
	if err != nil {
		return err
	}

	c.logger.Info("cleaning complete",
		slog.Int("duplicates_removed", removed),
		slog.Int("missing_filled", filled),
		slog.Int("rows", table.NumRows()))

	return nil
}

// dropDuplicates removes rows whose full cell contents equal an earlier row.
// Missing cells compare equal only to missing cells.
func (c *Cleaner) dropDuplicates(table *dataset.Table) int {
	n := table.NumRows()
	seen := make(map[string]struct{}, n)
	keep := make([]bool, n)
	removed := 0

	for i := 0; i < n; i++ {
		key := table.RowKey(i)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}

	if removed > 0 {
		table.Filter(keep)
	}
	return removed
}

func (c *Cleaner) imputeMissing(table *dataset.Table) (int, error) {
	total := 0
	for _, col := range table.Columns() {
		missing := 0
		for i := range col.Missing {
			if col.Missing[i] {
				missing++
			}
		}
		if missing == 0 {
			continue
		}

		if col.Kind.IsNumeric() {
			values := col.NonMissingFloats()
			if len(values) == 0 {
				return total, apperrors.NewEmptyColumnError(col.Name)
			}
			median := stats.Median(values)
			for i := range col.Missing {
				if col.Missing[i] {
					col.SetFloat(i, median)
				}
			}
			c.logger.Debug("imputed numeric column",
				slog.String("column", col.Name),
				slog.Int("filled", missing),
				slog.Float64("median", median))
		} else {
			mode, ok := columnMode(col)
			if !ok {
				return total, apperrors.NewEmptyColumnError(col.Name)
			}
			for i := range col.Missing {
				if col.Missing[i] {
					col.SetString(i, mode)
				}
			}
			c.logger.Debug("imputed categorical column",
				slog.String("column", col.Name),
				slog.Int("filled", missing),
				slog.String("mode", mode))
		}
		total += missing
	}
	return total, nil
}

// columnMode returns the most frequent non-missing value. Ties are broken by
// first occurrence in row order, which keeps the stage deterministic.
func columnMode(col *dataset.Column) (string, bool) {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i := range col.Missing {
		if col.Missing[i] {
			continue
		}
		v := col.Strings[i]
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
	}
	if len(counts) == 0 {
		return "", false
	}

	var best string
	bestCount := -1
	for v, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[v] < firstSeen[best]) {
			best = v
			bestCount = n
		}
	}
	return best, true
}
