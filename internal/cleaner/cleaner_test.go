package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	apperrors "github.com/Hemantdhake/shopping-behavior-pipeline/internal/errors"
)

func buildTable(t *testing.T, ages []float64, genders []string) *dataset.Table {
	t.Helper()
	schema := dataset.Schema{
		{Name: "Age", Kind: dataset.Int},
		{Name: "Gender", Kind: dataset.String},
	}
	tbl := dataset.New(schema, len(ages))
	age, _ := tbl.Column("Age")
	gender, _ := tbl.Column("Gender")
	for i := range ages {
		if ages[i] >= 0 {
			age.SetFloat(i, ages[i])
		}
		if genders[i] != "" {
			gender.SetString(i, genders[i])
		}
	}
	return tbl
}

func TestClean_RemovesExactDuplicates(t *testing.T) {
	tbl := buildTable(t,
		[]float64{25, 25, 30, 25},
		[]string{"Male", "Male", "Male", "Female"})

	require.NoError(t, New(nil).Clean(tbl))

	// Only the full-row duplicate (row 1) goes; row 3 differs in Gender.
	assert.Equal(t, 3, tbl.NumRows())
	age, _ := tbl.Column("Age")
	assert.Equal(t, []float64{25, 30, 25}, age.Floats)
}

func TestClean_ImputesNumericWithMedian(t *testing.T) {
	// Non-missing ages 20, 30, 40 -> median 30.
	tbl := buildTable(t,
		[]float64{20, -1, 30, 40},
		[]string{"A", "B", "C", "D"})

	require.NoError(t, New(nil).Clean(tbl))

	age, _ := tbl.Column("Age")
	assert.Equal(t, 30.0, age.Floats[1])
	assert.False(t, age.Missing[1])
}

func TestClean_ImputesCategoricalWithMode(t *testing.T) {
	tbl := buildTable(t,
		[]float64{1, 2, 3, 4, 5},
		[]string{"Male", "Female", "Female", "", "Male"})

	require.NoError(t, New(nil).Clean(tbl))

	gender, _ := tbl.Column("Gender")
	// Male and Female both appear twice; Male was seen first.
	assert.Equal(t, "Male", gender.Strings[3])
}

func TestClean_ModeTieBreakIsFirstSeen(t *testing.T) {
	tbl := buildTable(t,
		[]float64{1, 2, 3},
		[]string{"Zeta", "Alpha", ""})

	require.NoError(t, New(nil).Clean(tbl))

	gender, _ := tbl.Column("Gender")
	assert.Equal(t, "Zeta", gender.Strings[2])
}

func TestClean_AllMissingCategoricalFails(t *testing.T) {
	tbl := buildTable(t,
		[]float64{1, 2},
		[]string{"", ""})

	err := New(nil).Clean(tbl)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptyColumn))
}

func TestClean_AllMissingNumericFails(t *testing.T) {
	tbl := buildTable(t,
		[]float64{-1, -1},
		[]string{"A", "B"})

	err := New(nil).Clean(tbl)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptyColumn))
}

func TestClean_Idempotent(t *testing.T) {
	tbl := buildTable(t,
		[]float64{20, -1, 30, 30},
		[]string{"Male", "Female", "Male", "Male"})

	c := New(nil)
	require.NoError(t, c.Clean(tbl))
	snapshot := tbl.Clone()

	require.NoError(t, c.Clean(tbl))

	assert.Equal(t, snapshot.NumRows(), tbl.NumRows())
	for _, name := range tbl.ColumnNames() {
		was, _ := snapshot.Column(name)
		now, _ := tbl.Column(name)
		assert.Equal(t, was, now, "column %s changed on second pass", name)
	}
}

func TestClean_MissingCellsCompareEqualForDedup(t *testing.T) {
	tbl := buildTable(t,
		[]float64{25, 25, 25},
		[]string{"", "", "Male"})

	require.NoError(t, New(nil).Clean(tbl))

	// Rows 0 and 1 are identical including the missing Gender cell.
	assert.Equal(t, 2, tbl.NumRows())
}
