package outliers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/stats"
)

func amountTable(t *testing.T, values []float64) *dataset.Table {
	t.Helper()
	schema := dataset.Schema{
		{Name: "Purchase Amount (USD)", Kind: dataset.Int},
		{Name: "Previous Purchases", Kind: dataset.Int},
	}
	tbl := dataset.New(schema, len(values))
	amount, _ := tbl.Column("Purchase Amount (USD)")
	prev, _ := tbl.Column("Previous Purchases")
	for i, v := range values {
		amount.SetFloat(i, v)
		prev.SetFloat(i, float64(i))
	}
	return tbl
}

func TestNew_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		multiplier float64
		action     Action
	}{
		{"unknown method", "zscore", 1.5, ActionCap},
		{"unknown action", MethodIQR, 1.5, Action("drop")},
		{"zero multiplier", MethodIQR, 0, ActionCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil, tt.method, tt.multiplier, tt.action)
			assert.Error(t, err)
		})
	}
}

func TestHandle_CapPreservesRowCount(t *testing.T) {
	values := []float64{10, 40, 45, 50, 55, 60, 90, 150}
	tbl := amountTable(t, values)

	h, err := New(nil, MethodIQR, 1.5, ActionCap)
	require.NoError(t, err)
	require.NoError(t, h.Handle(tbl, []string{"Purchase Amount (USD)"}))

	assert.Equal(t, len(values), tbl.NumRows())

	q1 := stats.Quantile(values, 0.25)
	q3 := stats.Quantile(values, 0.75)
	lower := q1 - 1.5*(q3-q1)
	upper := q3 + 1.5*(q3-q1)

	amount, _ := tbl.Column("Purchase Amount (USD)")
	for i, v := range amount.Floats {
		assert.GreaterOrEqual(t, v, lower, "row %d", i)
		assert.LessOrEqual(t, v, upper, "row %d", i)
	}
	// The extreme value was capped, not deleted.
	assert.Equal(t, upper, amount.Floats[len(values)-1])
}

func TestHandle_RemoveDropsExactlyOutOfBoundsRows(t *testing.T) {
	values := []float64{10, 40, 45, 50, 55, 60, 90, 150}
	tbl := amountTable(t, values)

	q1 := stats.Quantile(values, 0.25)
	q3 := stats.Quantile(values, 0.75)
	lower := q1 - 1.5*(q3-q1)
	upper := q3 + 1.5*(q3-q1)
	wantKept := 0
	for _, v := range values {
		if v >= lower && v <= upper {
			wantKept++
		}
	}

	h, err := New(nil, MethodIQR, 1.5, ActionRemove)
	require.NoError(t, err)
	require.NoError(t, h.Handle(tbl, []string{"Purchase Amount (USD)"}))

	assert.Equal(t, wantKept, tbl.NumRows())
	amount, _ := tbl.Column("Purchase Amount (USD)")
	for _, v := range amount.Floats {
		assert.GreaterOrEqual(t, v, lower)
		assert.LessOrEqual(t, v, upper)
	}
}

func TestHandle_LargeMultiplierIsNoOp(t *testing.T) {
	values := []float64{10, 40, 45, 50, 55, 60, 90, 150}
	tbl := amountTable(t, values)

	h, err := New(nil, MethodIQR, math.MaxFloat64/1e6, ActionCap)
	require.NoError(t, err)
	require.NoError(t, h.Handle(tbl, []string{"Purchase Amount (USD)"}))

	amount, _ := tbl.Column("Purchase Amount (USD)")
	assert.Equal(t, values, amount.Floats)
	assert.Equal(t, len(values), tbl.NumRows())
}

func TestHandle_UnknownColumnsSilentlySkipped(t *testing.T) {
	tbl := amountTable(t, []float64{10, 20, 30})

	h, err := New(nil, MethodIQR, 1.5, ActionCap)
	require.NoError(t, err)

	assert.NoError(t, h.Handle(tbl, []string{"No Such Column"}))
	assert.Equal(t, 3, tbl.NumRows())
}

func TestHandle_ColumnsProcessedIndependently(t *testing.T) {
	// An extreme amount must not move the bounds of Previous Purchases.
	schema := dataset.Schema{
		{Name: "Purchase Amount (USD)", Kind: dataset.Int},
		{Name: "Previous Purchases", Kind: dataset.Int},
	}
	tbl := dataset.New(schema, 5)
	amount, _ := tbl.Column("Purchase Amount (USD)")
	prev, _ := tbl.Column("Previous Purchases")
	for i, v := range []float64{40, 50, 60, 70, 100000} {
		amount.SetFloat(i, v)
	}
	for i, v := range []float64{1, 2, 3, 4, 5} {
		prev.SetFloat(i, v)
	}

	h, err := New(nil, MethodIQR, 1.5, ActionCap)
	require.NoError(t, err)
	require.NoError(t, h.Handle(tbl, []string{"Purchase Amount (USD)", "Previous Purchases"}))

	// Previous Purchases holds no outliers and stays untouched.
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, prev.Floats)
}

func TestHandle_RemoveOrderMatters(t *testing.T) {
	// Under remove, a row dropped for column A no longer feeds column B's
	// bounds, so processing order is part of the contract.
	schema := dataset.Schema{
		{Name: "A", Kind: dataset.Float},
		{Name: "B", Kind: dataset.Float},
	}
	build := func() *dataset.Table {
		tbl := dataset.New(schema, 6)
		a, _ := tbl.Column("A")
		b, _ := tbl.Column("B")
		for i, v := range []float64{1, 1, 1, 1, 1, 1000} {
			a.SetFloat(i, v)
		}
		for i, v := range []float64{10, 20, 30, 40, 50, 100000} {
			b.SetFloat(i, v)
		}
		return tbl
	}

	h, err := New(nil, MethodIQR, 1.5, ActionRemove)
	require.NoError(t, err)

	abFirst := build()
	require.NoError(t, h.Handle(abFirst, []string{"A", "B"}))
	baFirst := build()
	require.NoError(t, h.Handle(baFirst, []string{"B", "A"}))

	// Processing A first removes the extreme row before B is measured;
	// the surviving row counts are legitimate either way, but the bounds
	// B sees differ, which is the designed sequential dependency.
	aCol, _ := abFirst.Column("A")
	assert.NotContains(t, aCol.Floats, 1000.0)
}

func TestHandle_NonNumericTargetSkipped(t *testing.T) {
	schema := dataset.Schema{
		{Name: "Gender", Kind: dataset.String},
	}
	tbl := dataset.New(schema, 2)
	g, _ := tbl.Column("Gender")
	g.SetString(0, "Male")
	g.SetString(1, "Female")

	h, err := New(nil, MethodIQR, 1.5, ActionRemove)
	require.NoError(t, err)

	assert.NoError(t, h.Handle(tbl, []string{"Gender"}))
	assert.Equal(t, 2, tbl.NumRows())
}
