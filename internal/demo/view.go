package demo

import (
	"cardapio/internal/cart"
	"cardapio/internal/menu"
)

type itemView struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	UnitPrice    string   `json:"unit_price"`
	PriceDisplay string   `json:"price_display"`
	Glyph        string   `json:"glyph"`
	Category     string   `json:"category"`
	Featured     bool     `json:"featured"`
	Rating       *float64 `json:"rating,omitempty"`
}

type menuEntryView struct {
	itemView
	Quantity int `json:"quantity"`
}

type lineView struct {
	Item     itemView `json:"item"`
	Quantity int      `json:"quantity"`
	Subtotal string   `json:"subtotal"`
}

type cartView struct {
	SessionID    string     `json:"session_id"`
	Items        []lineView `json:"items"`
	ItemCount    int        `json:"item_count"`
	TotalPrice   string     `json:"total_price"`
	TotalDisplay string     `json:"total_display"`
}

func newItemView(item menu.MenuItem) itemView {
	return itemView{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		UnitPrice:    item.UnitPrice.StringFixed(2),
		PriceDisplay: menu.FormatPrice(item.UnitPrice),
		Glyph:        item.Glyph,
		Category:     item.Category,
		Featured:     item.Featured,
		Rating:       item.Rating,
	}
}

func newItemViews(items []menu.MenuItem) []itemView {
	out := make([]itemView, 0, len(items))
	for _, item := range items {
		out = append(out, newItemView(item))
	}
	return out
}

func newCartView(sessionID string, c *cart.Cart, catalog *menu.Catalog) cartView {
	lines := c.Lines(catalog)
	views := make([]lineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, lineView{
			Item:     newItemView(l.Item),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal.StringFixed(2),
		})
	}

	total := c.TotalPrice(catalog)

	return cartView{
		SessionID:    sessionID,
		Items:        views,
		ItemCount:    c.ItemCount(),
		TotalPrice:   total.StringFixed(2),
		TotalDisplay: menu.FormatPrice(total),
	}
}
