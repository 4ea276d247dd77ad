package menu

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog is the fixed, read-only list of menu items offered by the demo
// menu. It is safe for concurrent readers because nothing mutates it after
// NewCatalog returns.
type Catalog struct {
	items      []MenuItem
	index      map[int]int
	categories []string
}

// NewCatalog validates items and freezes them in the given order.
func NewCatalog(items []MenuItem) (*Catalog, error) {
	c := &Catalog{
		items:      make([]MenuItem, 0, len(items)),
		index:      make(map[int]int, len(items)),
		categories: []string{AllCategories},
	}

	seen := make(map[string]bool)

	for _, item := range items {
		if err := ValidateItem(item); err != nil {
			return nil, err
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("item %d: %w", item.ID, ErrDuplicateID)
		}

		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)

		if !seen[item.Category] {
			seen[item.Category] = true
			c.categories = append(c.categories, item.Category)
		}
	}

	return c, nil
}

// Items returns the whole catalog in its original order.
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Categories returns "All" followed by every distinct item category in
// first-seen order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// HasCategory reports whether label is a selectable category, "All" included.
func (c *Catalog) HasCategory(label string) bool {
	for _, cat := range c.categories {
		if cat == label {
			return true
		}
	}
	return false
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) Lookup(id int) (MenuItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return MenuItem{}, false
	}
	return c.items[i], true
}

// UnitPrice satisfies cart.PriceLookup.
func (c *Catalog) UnitPrice(id int) (decimal.Decimal, bool) {
	item, ok := c.Lookup(id)
	if !ok {
		return decimal.Zero, false
	}
	return item.UnitPrice, true
}

// Position returns the index of id in catalog order, or -1.
func (c *Catalog) Position(id int) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// Visible is VisibleItems applied to this catalog.
func (c *Catalog) Visible(activeCategory string) []MenuItem {
	return VisibleItems(c.items, activeCategory)
}

// VisibleItems projects items onto activeCategory. AllCategories yields every
// item; any other label yields the matching items in original order, or an
// empty slice when nothing matches.
func VisibleItems(items []MenuItem, activeCategory string) []MenuItem {
	if activeCategory == AllCategories {
		out := make([]MenuItem, len(items))
		copy(out, items)
		return out
	}

	out := []MenuItem{}
	for _, item := range items {
		if item.Category == activeCategory {
			out = append(out, item)
		}
	}
	return out
}
