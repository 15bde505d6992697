package dataset

// Kind is the semantic type of a column.
type Kind int

const (
	// Int columns hold whole numbers. The payload is still float64 so a
	// later stage can cap a value to a fractional bound without changing
	// the column kind.
	Int Kind = iota
	// Float columns hold real numbers.
	Float
	// String columns hold categorical values.
	String
)

// IsNumeric reports whether the kind carries a numeric payload.
func (k Kind) IsNumeric() bool {
	return k == Int || k == Float
}

// ColumnSpec declares one column of a schema.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// Schema is the ordered column layout a loaded file must conform to.
type Schema []ColumnSpec

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, spec := range s {
		names[i] = spec.Name
	}
	return names
}

// ShoppingSchema returns the fixed schema of the shopping behavior dataset.
// Column names and order match the published CSV exactly.
func ShoppingSchema() Schema {
	return Schema{
		{Name: "Customer ID", Kind: Int},
		{Name: "Age", Kind: Int},
		{Name: "Gender", Kind: String},
		{Name: "Item Purchased", Kind: String},
		{Name: "Category", Kind: String},
		{Name: "Purchase Amount (USD)", Kind: Int},
		{Name: "Location", Kind: String},
		{Name: "Size", Kind: String},
		{Name: "Color", Kind: String},
		{Name: "Season", Kind: String},
		{Name: "Review Rating", Kind: Float},
		{Name: "Subscription Status", Kind: String},
		{Name: "Shipping Type", Kind: String},
		{Name: "Discount Applied", Kind: String},
		{Name: "Promo Code Used", Kind: String},
		{Name: "Previous Purchases", Kind: Int},
		{Name: "Payment Method", Kind: String},
		{Name: "Frequency of Purchases", Kind: String},
	}
}
