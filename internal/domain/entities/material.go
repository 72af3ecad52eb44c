package entities

// MaterialTemplate is the per-category bill-of-materials line configuration.
//
// Storage model (DynamoDB):
//   - PK: category
//   - SK: sort_key (display/evaluation order within the category)
//
// Formula is a restricted arithmetic expression over job attribute keys.
// When it fails to evaluate to a finite number the engine substitutes
// DefaultQuantity (or 1 when unset). Templates are reference data: consumed,
// never mutated, by the formula engine.
type MaterialTemplate struct {
	Category        string  `json:"category"`
	SortKey         int     `json:"sort_key"`
	Name            string  `json:"name"`
	Formula         string  `json:"formula"`
	DefaultQuantity float64 `json:"default_quantity"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"unit_price"`
	IsRequired      bool    `json:"is_required"`
}

// MaterialEstimate is one evaluated bill-of-materials line. Derived per
// request, never persisted.
//
// Invariants:
//   - Quantity >= 1 when IsRequired
//   - optional lines with quantity <= 0 are dropped before this struct is built
//   - EstimatedTotal = round(Quantity * UnitPrice, 2), half-up
type MaterialEstimate struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	UnitPrice      float64 `json:"unit_price"`
	EstimatedTotal float64 `json:"estimated_total"`
	IsRequired     bool    `json:"is_required"`
}

// MaterialsSummary aggregates the included lines of a materials estimate.
type MaterialsSummary struct {
	Materials     []MaterialEstimate `json:"materials"`
	RequiredTotal float64            `json:"required_total"`
	TotalEstimate float64            `json:"total_estimate"`
}
