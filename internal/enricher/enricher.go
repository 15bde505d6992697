// Package enricher appends derived columns to a cleaned record table. It
// never mutates existing columns; a derivation whose source columns are
// absent is skipped without error.
package enricher

import (
	"log/slog"

	"github.com/Hemantdhake/shopping-behavior-pipeline/internal/dataset"
)

// Derived column names.
const (
	ColAgeGroup        = "Age_Group"
	ColAgeGroupOrdinal = "Age_Group_Ordinal"
	ColPurchaseCat     = "Purchase_Category"
	ColDiscountOrPromo = "Discount_or_Promo"
	ColRepeatCustomer  = "Is_Repeat_Customer"
	ColSeasonCategory  = "Season_Category"
)

// Age bins are left-closed, right-open except the final bin, which includes
// its upper edge.
var (
	ageEdges  = []float64{0, 18, 25, 35, 45, 55, 65, 100}
	ageLabels = []string{"<18", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

	// purchaseEdges are the right-closed upper edges of each bin; the last
	// bin is open-ended.
	purchaseEdges  = []float64{30, 50, 75, 100}
	purchaseLabels = []string{"Very Low", "Low", "Medium", "High", "Very High"}
)

// Enricher derives categorical bins and interaction columns.
type Enricher struct {
	logger *slog.Logger
}

// New creates an enricher. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{logger: logger}
}

// Enrich appends every derivation whose source columns are present.
func (e *Enricher) Enrich(table *dataset.Table) error {
	var added []string

	for _, d := range []struct {
		name  string
		apply func(*dataset.Table) (bool, error)
	}{
		{ColAgeGroup, e.deriveAgeGroup},
		{ColPurchaseCat, e.derivePurchaseCategory},
		{ColDiscountOrPromo, e.deriveDiscountOrPromo},
		{ColRepeatCustomer, e.deriveRepeatCustomer},
		{ColSeasonCategory, e.deriveSeasonCategory},
	} {
		ok, err := d.apply(table)
		if err != nil {
			return err
		}
		if ok {
			added = append(added, d.name)
		}
	}

	e.logger.Info("feature engineering complete",
		slog.Any("columns_added", added))
	return nil
}

func (e *Enricher) deriveAgeGroup(table *dataset.Table) (bool, error) {
	age, ok := table.Column("Age")
	if !ok {
		return false, nil
	}

	n := age.Len()
	group := dataset.NewColumn(ColAgeGroup, dataset.String, n)
	ordinal := dataset.NewColumn(ColAgeGroupOrdinal, dataset.Int, n)

	for i := 0; i < n; i++ {
		if age.Missing[i] {
			ordinal.SetFloat(i, -1)
			continue
		}
		idx := ageBucket(age.Floats[i])
		ordinal.SetFloat(i, float64(idx))
		if idx >= 0 {
			group.SetString(i, ageLabels[idx])
		}
	}

	if err := table.AppendColumn(group); err != nil {
		return false, err
	}
	if err := table.AppendColumn(ordinal); err != nil {
		return false, err
	}
	return true, nil
}

// ageBucket returns the bin index for an age, or -1 when the value falls
// outside every bin.
func ageBucket(v float64) int {
	for i := 0; i < len(ageLabels); i++ {
		lo, hi := ageEdges[i], ageEdges[i+1]
		last := i == len(ageLabels)-1
		if v >= lo && (v < hi || (last && v == hi)) {
			return i
		}
	}
	return -1
}

func (e *Enricher) derivePurchaseCategory(table *dataset.Table) (bool, error) {
	amount, ok := table.Column("Purchase Amount (USD)")
	if !ok {
		return false, nil
	}

	n := amount.Len()
	cat := dataset.NewColumn(ColPurchaseCat, dataset.String, n)
	for i := 0; i < n; i++ {
		if amount.Missing[i] {
			continue
		}
		cat.SetString(i, purchaseBucket(amount.Floats[i]))
	}

	return true, table.AppendColumn(cat)
}

// purchaseBucket places an amount into right-closed bins
// (-inf,30],(30,50],(50,75],(75,100],(100,inf).
func purchaseBucket(v float64) string {
	for i, edge := range purchaseEdges {
		if v <= edge {
			return purchaseLabels[i]
		}
	}
	return purchaseLabels[len(purchaseLabels)-1]
}

func (e *Enricher) deriveDiscountOrPromo(table *dataset.Table) (bool, error) {
	discount, ok := table.Column("Discount Applied")
	if !ok {
		return false, nil
	}
	promo, ok := table.Column("Promo Code Used")
	if !ok {
		return false, nil
	}

	n := discount.Len()
	either := dataset.NewColumn(ColDiscountOrPromo, dataset.String, n)
	for i := 0; i < n; i++ {
		yes := (!discount.Missing[i] && discount.Strings[i] == "Yes") ||
			(!promo.Missing[i] && promo.Strings[i] == "Yes")
		if yes {
			either.SetString(i, "Yes")
		} else {
			either.SetString(i, "No")
		}
	}

	return true, table.AppendColumn(either)
}

func (e *Enricher) deriveRepeatCustomer(table *dataset.Table) (bool, error) {
	prev, ok := table.Column("Previous Purchases")
	if !ok {
		return false, nil
	}

	n := prev.Len()
	repeat := dataset.NewColumn(ColRepeatCustomer, dataset.Int, n)
	for i := 0; i < n; i++ {
		if prev.Missing[i] {
			continue
		}
		if prev.Floats[i] >= 10 {
			repeat.SetFloat(i, 1)
		} else {
			repeat.SetFloat(i, 0)
		}
	}

	return true, table.AppendColumn(repeat)
}

func (e *Enricher) deriveSeasonCategory(table *dataset.Table) (bool, error) {
	season, ok := table.Column("Season")
	if !ok {
		return false, nil
	}
	category, ok := table.Column("Category")
	if !ok {
		return false, nil
	}

	n := season.Len()
	combo := dataset.NewColumn(ColSeasonCategory, dataset.String, n)
	for i := 0; i < n; i++ {
		if season.Missing[i] || category.Missing[i] {
			continue
		}
		combo.SetString(i, season.Strings[i]+"_"+category.Strings[i])
	}

	return true, table.AppendColumn(combo)
}
