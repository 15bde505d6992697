// Package dataset defines the in-memory record table the preprocessing
// stages operate on: ordered typed columns with a per-cell missing mask.
// The table is created once by the loader and mutated in place by each
// stage; derived columns are append-only.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Column is a single typed column. Numeric kinds use Floats, String uses
// Strings; the unused payload slice stays nil. Missing marks cells with no
// value.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Missing []bool
}

// NewColumn creates an empty column of the given kind with n cells, all
// marked missing.
func NewColumn(name string, kind Kind, n int) *Column {
	c := &Column{
		Name:    name,
		Kind:    kind,
		Missing: make([]bool, n),
	}
	for i := range c.Missing {
		c.Missing[i] = true
	}
	if kind.IsNumeric() {
		c.Floats = make([]float64, n)
	} else {
		c.Strings = make([]string, n)
	}
	return c
}

// Len returns the number of cells.
func (c *Column) Len() int {
	return len(c.Missing)
}

// SetFloat assigns a numeric value and clears the missing mark.
func (c *Column) SetFloat(i int, v float64) {
	c.Floats[i] = v
	c.Missing[i] = false
}

// SetString assigns a categorical value and clears the missing mark.
func (c *Column) SetString(i int, v string) {
	c.Strings[i] = v
	c.Missing[i] = false
}

// CellString formats cell i for export. Missing cells render empty; whole
// numeric values render without a decimal point regardless of kind.
func (c *Column) CellString(i int) string {
	if c.Missing[i] {
		return ""
	}
	if c.Kind.IsNumeric() {
		return strconv.FormatFloat(c.Floats[i], 'f', -1, 64)
	}
	return c.Strings[i]
}

// NonMissingFloats returns the numeric values of all non-missing cells, in
// row order.
func (c *Column) NonMissingFloats() []float64 {
	vals := make([]float64, 0, c.Len())
	for i := range c.Missing {
		if !c.Missing[i] {
			vals = append(vals, c.Floats[i])
		}
	}
	return vals
}

// clone returns a deep copy of the column.
func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	out.Missing = append([]bool(nil), c.Missing...)
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	return out
}

// filter keeps only cells where keep[i] is true.
func (c *Column) filter(keep []bool) {
	n := 0
	for i := range keep {
		if !keep[i] {
			continue
		}
		if c.Floats != nil {
			c.Floats[n] = c.Floats[i]
		}
		if c.Strings != nil {
			c.Strings[n] = c.Strings[i]
		}
		c.Missing[n] = c.Missing[i]
		n++
	}
	if c.Floats != nil {
		c.Floats = c.Floats[:n]
	}
	if c.Strings != nil {
		c.Strings = c.Strings[:n]
	}
	c.Missing = c.Missing[:n]
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	cols  []*Column
	index map[string]int
}

// New creates a table with one empty column per schema entry, each with
// nrows cells marked missing.
func New(schema Schema, nrows int) *Table {
	t := &Table{index: make(map[string]int, len(schema))}
	for _, spec := range schema {
		col := NewColumn(spec.Name, spec.Kind, nrows)
		t.index[spec.Name] = len(t.cols)
		t.cols = append(t.cols, col)
	}
	return t
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Column returns the named column, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Columns returns the columns in table order.
func (t *Table) Columns() []*Column {
	return t.cols
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// AppendColumn adds a derived column to the end of the table.
func (t *Table) AppendColumn(col *Column) error {
	if _, exists := t.index[col.Name]; exists {
		return fmt.Errorf("column %q already exists", col.Name)
	}
	if len(t.cols) > 0 && col.Len() != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", col.Name, col.Len(), t.NumRows())
	}
	t.index[col.Name] = len(t.cols)
	t.cols = append(t.cols, col)
	return nil
}

// DropColumn removes the named column. Dropping an absent column is a no-op.
func (t *Table) DropColumn(name string) {
	i, ok := t.index[name]
	if !ok {
		return
	}
	t.cols = append(t.cols[:i], t.cols[i+1:]...)
	delete(t.index, name)
	for j := i; j < len(t.cols); j++ {
		t.index[t.cols[j].Name] = j
	}
}

// Filter keeps only rows where keep[i] is true, in place.
func (t *Table) Filter(keep []bool) {
	for _, c := range t.cols {
		c.filter(keep)
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{index: make(map[string]int, len(t.cols))}
	for _, c := range t.cols {
		out.index[c.Name] = len(out.cols)
		out.cols = append(out.cols, c.clone())
	}
	return out
}

// Row formats row i as export-ready strings, one per column.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.cols))
	for j, c := range t.cols {
		row[j] = c.CellString(i)
	}
	return row
}

// RowKey builds a canonical key for full-row equality comparison. Missing
// cells compare equal to missing cells and never to any value.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for _, c := range t.cols {
		if c.Missing[i] {
			b.WriteString("\x00?")
		} else {
			b.WriteString(c.CellString(i))
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}
