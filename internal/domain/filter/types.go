package filter

// ComparisonType defines the comparison kinds for advanced filters.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	Less           ComparisonType = "lt"
	LessOrEqual    ComparisonType = "lte"
	Greater        ComparisonType = "gt"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"
	NotInList      ComparisonType = "nin"
	Contains       ComparisonType = "contains"  // ILIKE %val%
	NotContains    ComparisonType = "ncontains" // NOT ILIKE %val%

	// Hierarchical filters (group or any subgroup)
	InHierarchy    ComparisonType = "in_hierarchy"
	NotInHierarchy ComparisonType = "nin_hierarchy"

	IsNull    ComparisonType = "null"
	IsNotNull ComparisonType = "not_null"
)

// Item represents a single filter condition.
type Item struct {
	Field    string         `json:"field"`    // Column name (snake_case)
	Operator ComparisonType `json:"operator"` // Comparison kind
	Value    any            `json:"value"`    // Value (string, number, ID list)
}
