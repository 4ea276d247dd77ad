package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidID        = errors.New("id must be a positive integer")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrMissingName      = errors.New("name is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrRatingRange      = errors.New("rating must be between 0 and 5")
	ErrMissingCategory  = errors.New("category is required")
	ErrReservedCategory = errors.New("category label is reserved")
)

// ValidateItem checks the invariants of a single catalog entry.
func ValidateItem(item MenuItem) error {
	if item.ID <= 0 {
		return fmt.Errorf("item %d: %w", item.ID, ErrInvalidID)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("item %d: %w", item.ID, ErrMissingName)
	}
	if item.UnitPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("item %d: %w", item.ID, ErrNegativePrice)
	}
	if item.Rating != nil && (*item.Rating < 0 || *item.Rating > 5) {
		return fmt.Errorf("item %d: %w", item.ID, ErrRatingRange)
	}

	switch strings.TrimSpace(item.Category) {
	case "":
		return fmt.Errorf("item %d: %w", item.ID, ErrMissingCategory)
	case AllCategories:
		return fmt.Errorf("item %d: %w", item.ID, ErrReservedCategory)
	}

	return nil
}
