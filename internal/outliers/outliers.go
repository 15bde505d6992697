// Package outliers detects statistical outliers in numeric columns with the
// IQR rule and either caps them to the computed bounds or removes the rows.
package outliers

import (
	"fmt"
	"log/slog"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	apperrors "github.com/Hemantdhake/shopping-behavior-pipeline/internal/errors"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/stats"
)

// Action decides what happens to out-of-bounds values.
type Action string

const (
	// ActionCap clamps out-of-bounds values to the nearest bound. Row
	// count is preserved.
	ActionCap Action = "cap"
	// ActionRemove drops rows containing out-of-bounds values. Columns
	// processed later see the already-shrunk table, so the caller's column
	// order is significant.
	ActionRemove Action = "remove"
)

// MethodIQR is the only detection method defined.
const MethodIQR = "iqr"

// Handler applies outlier detection to a record table.
type Handler struct {
	logger     *slog.Logger
	method     string
	multiplier float64
	action     Action
}

// New creates a handler. Method must be "iqr", multiplier is the IQR factor
// (1.5 is the conventional default), action is cap or remove.
func New(logger *slog.Logger, method string, multiplier float64, action Action) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if method != MethodIQR {
		return nil, apperrors.NewConfigError(fmt.Sprintf("unknown outlier method %q", method), nil)
	}
	if action != ActionCap && action != ActionRemove {
		return nil, apperrors.NewConfigError(fmt.Sprintf("unknown outlier action %q", action), nil)
	}
	if multiplier <= 0 {
		return nil, apperrors.NewConfigError("outlier multiplier must be positive", nil)
	}
	return &Handler{
		logger:     logger,
		method:     method,
		multiplier: multiplier,
		action:     action,
	}, nil
}

// Handle processes the named columns in the given order. Names missing from
// the table are skipped silently; non-numeric columns are skipped with a
// warning. Each column's bounds come from its own values only.
func (h *Handler) Handle(table *dataset.Table, columns []string) error {
	for _, name := range columns {
		col, ok := table.Column(name)
		if !ok {
			continue
		}
		if !col.Kind.IsNumeric() {
			h.logger.Warn("skipping non-numeric outlier target",
				slog.String("column", name))
			continue
		}
		h.handleColumn(table, col)
	}
	return nil
}

func (h *Handler) handleColumn(table *dataset.Table, col *dataset.Column) {
	values := col.NonMissingFloats()
	if len(values) == 0 {
		return
	}

	q1 := stats.Quantile(values, 0.25)
	q3 := stats.Quantile(values, 0.75)
	iqr := q3 - q1
	lower := q1 - h.multiplier*iqr
	upper := q3 + h.multiplier*iqr

	n := table.NumRows()
	outliers := 0
	keep := make([]bool, n)
	for i := 0; i < n; i++ {
		keep[i] = true
		if col.Missing[i] {
			continue
		}
		v := col.Floats[i]
		if v < lower || v > upper {
			outliers++
			switch h.action {
			case ActionCap:
				if v < lower {
					col.SetFloat(i, lower)
				} else {
					col.SetFloat(i, upper)
				}
			case ActionRemove:
				keep[i] = false
			}
		}
	}

	if outliers > 0 && h.action == ActionRemove {
		table.Filter(keep)
	}

	if outliers > 0 {
		h.logger.Info("handled outliers",
			slog.String("column", col.Name),
			slog.Int("count", outliers),
			slog.String("action", string(h.action)),
			slog.Float64("lower_bound", lower),
			slog.Float64("upper_bound", upper))
	}
}
