package menu

import "github.com/shopspring/decimal"

// AllCategories is the category label that disables filtering.
const AllCategories = "All"

// MenuItem is one orderable entry of the catalog. Items are built once at
// process start and never mutated afterwards.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Glyph       string          `json:"glyph"`
	Category    string          `json:"category"`
	Featured    bool            `json:"featured"`
	Rating      *float64        `json:"rating,omitempty"` // nil when the item was never rated
}

// HasRating reports whether a rating was assigned.
func (m MenuItem) HasRating() bool {
	return m.Rating != nil
}
