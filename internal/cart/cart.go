package cart

import (
	"sort"

	"cardapio/internal/menu"

	"github.com/shopspring/decimal"
)

// PriceLookup resolves the unit price of a catalog item.
type PriceLookup interface {
	UnitPrice(itemID int) (decimal.Decimal, bool)
}

// ItemSource resolves full catalog entries and their display position.
type ItemSource interface {
	Lookup(itemID int) (menu.MenuItem, bool)
	Position(itemID int) int
}

// Cart maps item ids to strictly positive quantities. A Cart has a single
// owner and is not safe for concurrent use; Store serializes access per
// session.
type Cart struct {
	quantities map[int]int
}

// Line is one cart entry joined with its catalog item.
type Line struct {
	Item     menu.MenuItem
	Quantity int
	Subtotal decimal.Decimal
}

func New() *Cart {
	return &Cart{quantities: make(map[int]int)}
}

// Add increments the quantity of itemID, creating the entry at 1.
func (c *Cart) Add(itemID int) {
	c.quantities[itemID]++
}

// Remove decrements the quantity of itemID and deletes the entry when it
// reaches zero. Removing an absent item is a no-op.
func (c *Cart) Remove(itemID int) {
	qty, ok := c.quantities[itemID]
	if !ok {
		return
	}
	if qty > 1 {
		c.quantities[itemID] = qty - 1
		return
	}
	delete(c.quantities, itemID)
}

func (c *Cart) QuantityOf(itemID int) int {
	return c.quantities[itemID]
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	total := 0
	for _, qty := range c.quantities {
		total += qty
	}
	return total
}

// Len is the number of distinct items in the cart.
func (c *Cart) Len() int {
	return len(c.quantities)
}

func (c *Cart) IsEmpty() bool {
	return len(c.quantities) == 0
}

// TotalPrice sums quantity × unit price. Items unknown to prices count as 0.
func (c *Cart) TotalPrice(prices PriceLookup) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range c.quantities {
		price, ok := prices.UnitPrice(id)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// Lines returns the entries known to items, in catalog order.
func (c *Cart) Lines(items ItemSource) []Line {
	lines := make([]Line, 0, len(c.quantities))
	for id, qty := range c.quantities {
		item, ok := items.Lookup(id)
		if !ok {
			continue
		}
		lines = append(lines, Line{
			Item:     item,
			Quantity: qty,
			Subtotal: item.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		return items.Position(lines[i].Item.ID) < items.Position(lines[j].Item.ID)
	})

	return lines
}

// Quantities returns a copy of the underlying mapping.
func (c *Cart) Quantities() map[int]int {
	out := make(map[int]int, len(c.quantities))
	for id, qty := range c.quantities {
		out[id] = qty
	}
	return out
}
