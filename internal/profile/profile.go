// Package profile produces a text overview of a record table: shape,
// per-column missing and distinct counts, and numeric summary statistics.
package profile

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
)

// ColumnProfile summarizes one column.
type ColumnProfile struct {
	Name    string
	Kind    string
	Missing int
	Unique  int
	// Min, Mean and Max are populated for numeric columns with at least
	// one value; HasStats reports whether they are meaningful.
	HasStats bool
	Min      float64
	Mean     float64
	Max      float64
}

// Overview summarizes a whole table.
type Overview struct {
	Rows    int
	Columns int
	Profile []ColumnProfile
}

// Describe computes an overview of the table.
func Describe(table *dataset.Table) *Overview {
	o := &Overview{
		Rows:    table.NumRows(),
		Columns: table.NumCols(),
	}

	for _, col := range table.Columns() {
		p := ColumnProfile{Name: col.Name, Kind: kindName(col.Kind)}

		distinct := make(map[string]struct{})
		for i := range col.Missing {
			if col.Missing[i] {
				p.Missing++
				continue
			}
			distinct[col.CellString(i)] = struct{}{}
		}
		p.Unique = len(distinct)

		if col.Kind.IsNumeric() {
			values := col.NonMissingFloats()
			if len(values) > 0 {
				p.HasStats = true
				p.Min, p.Max = values[0], values[0]
				sum := 0.0
				for _, v := range values {
					if v < p.Min {
						p.Min = v
					}
					if v > p.Max {
						p.Max = v
					}
					sum += v
				}
				p.Mean = sum / float64(len(values))
			}
		}

		o.Profile = append(o.Profile, p)
	}

	return o
}

// Render writes the overview as an aligned text table.
func (o *Overview) Render(w io.Writer) error {
	fmt.Fprintf(w, "Shape: %d rows x %d columns\n\n", o.Rows, o.Columns)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Column\tKind\tMissing\tUnique\tMin\tMean\tMax")
	for _, p := range o.Profile {
		if p.HasStats {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.4g\t%.4g\t%.4g\n",
				p.Name, p.Kind, p.Missing, p.Unique, p.Min, p.Mean, p.Max)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t-\t-\t-\n",
				p.Name, p.Kind, p.Missing, p.Unique)
		}
	}
	return tw.Flush()
}

func kindName(k dataset.Kind) string {
	switch k {
	case dataset.Int:
		return "int"
	case dataset.Float:
		return "float"
	default:
		return "string"
	}
}
