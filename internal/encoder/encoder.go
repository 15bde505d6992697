// Package encoder converts categorical columns to numeric representations.
// Label encoding maps sorted distinct categories to contiguous integers;
// one-hot encoding expands a column into per-category indicator columns.
// The fitted state is returned so the same encoding can be reapplied to new
// data.
package encoder

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	apperrors "github.com/Hemantdhake/shopping-behavior-pipeline/internal/errors"
)

// LabelEncoding is the fitted state of a label-encoded column. Classes are
// the distinct categories seen at fit time in lexicographic order; the code
// of Classes[i] is i.
type LabelEncoding struct {
	Column  string
	Classes []string
	index   map[string]int
}

// Transform returns the integer code for a category. Categories outside the
// fitted set yield an ENCODING error.
func (l *LabelEncoding) Transform(value string) (int, error) {
	code, ok := l.index[value]
	if !ok {
		return 0, apperrors.NewEncodingError(
			fmt.Sprintf("unknown category %q for column %q", value, l.Column), nil)
	}
	return code, nil
}

// Inverse returns the category for a code produced by Transform.
func (l *LabelEncoding) Inverse(code int) (string, error) {
	if code < 0 || code >= len(l.Classes) {
		return "", apperrors.NewEncodingError(
			fmt.Sprintf("code %d out of range for column %q", code, l.Column), nil)
	}
	return l.Classes[code], nil
}

// OneHotEncoding is the fitted state of a one-hot-encoded column.
// Categories are sorted lexicographically; with DropFirst the first
// category's indicator column is omitted and an all-zero row denotes it.
type OneHotEncoding struct {
	Column     string
	Categories []string
	DropFirst  bool
}

// IndicatorNames returns the generated column names in output order.
func (o *OneHotEncoding) IndicatorNames() []string {
	cats := o.encodedCategories()
	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = o.Column + "_" + cat
	}
	return names
}

// Transform returns the indicator row for a category. Unknown categories
// produce an all-zero row rather than an error.
func (o *OneHotEncoding) Transform(value string) []float64 {
	cats := o.encodedCategories()
	row := make([]float64, len(cats))
	for i, cat := range cats {
		if cat == value {
			row[i] = 1
			break
		}
	}
	return row
}

func (o *OneHotEncoding) encodedCategories() []string {
	if o.DropFirst && len(o.Categories) > 0 {
		return o.Categories[1:]
	}
	return o.Categories
}

// Encoders holds the fitted encoder state per column.
type Encoders struct {
	Label  map[string]*LabelEncoding
	OneHot map[string]*OneHotEncoding
}

// Encoder applies categorical encoding to a record table.
type Encoder struct {
	logger    *slog.Logger
	dropFirst bool
}

// New creates an encoder. dropFirst controls whether one-hot encoding omits
// each column's first category to avoid redundant indicators.
func New(logger *slog.Logger, dropFirst bool) *Encoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Encoder{logger: logger, dropFirst: dropFirst}
}

// Encode label-encodes labelCols in place and one-hot-expands oneHotCols,
// dropping the originals. Requested columns absent from the table are
// silently skipped; a non-categorical or all-missing target is an ENCODING
// error.
func (e *Encoder) Encode(table *dataset.Table, labelCols, oneHotCols []string) (*Encoders, error) {
	fitted := &Encoders{
		Label:  make(map[string]*LabelEncoding),
		OneHot: make(map[string]*OneHotEncoding),
	}

	for _, name := range labelCols {
		col, ok := table.Column(name)
		if !ok {
			continue
		}
		enc, err := e.labelEncode(col)
		if err != nil {
			return nil, err
		}
		fitted.Label[name] = enc
	}

	for _, name := range oneHotCols {
		col, ok := table.Column(name)
		if !ok {
			continue
		}
		enc, err := e.oneHotEncode(table, col)
		if err != nil {
			return nil, err
		}
		fitted.OneHot[name] = enc
	}

	e.logger.Info("categorical encoding complete",
		slog.Int("label_encoded", len(fitted.Label)),
		slog.Int("onehot_encoded", len(fitted.OneHot)))

	return fitted, nil
}

// labelEncode rewrites the column in place as integer codes, preserving its
// position in the table.
func (e *Encoder) labelEncode(col *dataset.Column) (*LabelEncoding, error) {
	enc, err := fitLabelEncoding(col)
	if err != nil {
		return nil, err
	}

	codes := make([]float64, col.Len())
	for i := range col.Missing {
		if col.Missing[i] {
			continue
		}
		codes[i] = float64(enc.index[col.Strings[i]])
	}

	col.Kind = dataset.Int
	col.Floats = codes
	col.Strings = nil

	return enc, nil
}

func fitLabelEncoding(col *dataset.Column) (*LabelEncoding, error) {
	if col.Kind != dataset.String {
		return nil, apperrors.NewEncodingError(
			fmt.Sprintf("column %q is not categorical", col.Name), nil)
	}

	classes := distinctSorted(col)
	if len(classes) == 0 {
		return nil, apperrors.NewEncodingError(
			fmt.Sprintf("column %q has no categories to encode", col.Name), nil)
	}

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoding{Column: col.Name, Classes: classes, index: index}, nil
}

// oneHotEncode appends one indicator column per encoded category and drops
// the source column.
func (e *Encoder) oneHotEncode(table *dataset.Table, col *dataset.Column) (*OneHotEncoding, error) {
	if col.Kind != dataset.String {
		return nil, apperrors.NewEncodingError(
			fmt.Sprintf("column %q is not categorical", col.Name), nil)
	}

	categories := distinctSorted(col)
	if len(categories) == 0 {
		return nil, apperrors.NewEncodingError(
			fmt.Sprintf("column %q has no categories to encode", col.Name), nil)
	}

	enc := &OneHotEncoding{Column: col.Name, Categories: categories, DropFirst: e.dropFirst}

	n := col.Len()
	for _, cat := range enc.encodedCategories() {
		indicator := dataset.NewColumn(col.Name+"_"+cat, dataset.Int, n)
		for i := 0; i < n; i++ {
			if col.Missing[i] {
				indicator.SetFloat(i, 0)
				continue
			}
			if col.Strings[i] == cat {
				indicator.SetFloat(i, 1)
			} else {
				indicator.SetFloat(i, 0)
			}
		}
		if err := table.AppendColumn(indicator); err != nil {
			return nil, apperrors.NewEncodingError("failed to append indicator column", err)
		}
	}

	table.DropColumn(col.Name)
	return enc, nil
}

func distinctSorted(col *dataset.Column) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range col.Missing {
		if col.Missing[i] {
			continue
		}
		v := col.Strings[i]
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
