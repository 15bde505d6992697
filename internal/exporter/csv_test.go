package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	schema := dataset.Schema{
		{Name: "Age", Kind: dataset.Int},
		{Name: "Gender", Kind: dataset.String},
		{Name: "Review Rating", Kind: dataset.Float},
	}
	tbl := dataset.New(schema, 2)
	age, _ := tbl.Column("Age")
	gender, _ := tbl.Column("Gender")
	rating, _ := tbl.Column("Review Rating")
	age.SetFloat(0, 25)
	gender.SetString(0, "Male")
	rating.SetFloat(0, 3.5)
	age.SetFloat(1, 40)
	gender.SetString(1, "Female")
	// Rating in row 1 stays missing.
	return tbl
}

func TestWriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "processed.csv")

	err := NewCSVWriter(nil).WriteTable(path, sampleTable(t), WriteOptions{})
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Age", "Gender", "Review Rating"},
		{"25", "Male", "3.5"},
		{"40", "Female", ""},
	}, records)
}

func TestWriteTable_BOMPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.csv")

	err := NewCSVWriter(nil).WriteTable(path, sampleTable(t), WriteOptions{BOMPrefix: true})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "\xEF\xBB\xBF"))
}

func TestStreamWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.csv")

	w := NewCSVWriter(nil)
	sw, err := w.CreateStreamWriter(path, []string{"A", "B"})
	require.NoError(t, err)

	require.NoError(t, sw.WriteRecord([]string{"1", "x"}))
	require.NoError(t, sw.WriteRecord([]string{"2", "y"}))
	require.NoError(t, sw.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,x\n2,y\n", string(content))
}
