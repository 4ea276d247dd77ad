package demo

import (
	"errors"
	"net/http"
	"strconv"

	"cardapio/internal/cart"
	"cardapio/internal/menu"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the client-facing interactive menu. Carts live in the
// session store; the handler only translates requests into cart operations.
type Handler struct {
	catalog *menu.Catalog
	store   *cart.Store
	logger  *zap.Logger
}

func NewHandler(catalog *menu.Catalog, store *cart.Store, logger *zap.Logger) *Handler {
	return &Handler{catalog: catalog, store: store, logger: logger}
}

// --------------------------------------------------
// GET /demo/catalog?category=
// --------------------------------------------------
func (h *Handler) Catalog(c *gin.Context) {
	active := activeCategory(c)

	c.JSON(http.StatusOK, gin.H{
		"categories":      h.catalog.Categories(),
		"active_category": active,
		"items":           newItemViews(h.catalog.Visible(active)),
	})
}

// --------------------------------------------------
// POST /demo/sessions
// --------------------------------------------------
func (h *Handler) CreateSession(c *gin.Context) {
	id, err := h.store.Create()
	if err != nil {
		h.sessionError(c, err)
		return
	}

	var view cartView
	if err := h.store.Do(id, func(crt *cart.Cart) {
		view = newCartView(id, crt, h.catalog)
	}); err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// --------------------------------------------------
// GET /demo/sessions/:session/menu?category=
// --------------------------------------------------
func (h *Handler) Menu(c *gin.Context) {
	sessionID := c.Param("session")
	active := activeCategory(c)
	visible := h.catalog.Visible(active)

	var (
		entries []menuEntryView
		view    cartView
	)
	err := h.store.Do(sessionID, func(crt *cart.Cart) {
		entries = make([]menuEntryView, 0, len(visible))
		for _, item := range visible {
			entries = append(entries, menuEntryView{
				itemView: newItemView(item),
				Quantity: crt.QuantityOf(item.ID),
			})
		}
		view = newCartView(sessionID, crt, h.catalog)
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":      h.catalog.Categories(),
		"active_category": active,
		"items":           entries,
		"cart":            view,
	})
}

// --------------------------------------------------
// GET /demo/sessions/:session/cart
// --------------------------------------------------
func (h *Handler) Cart(c *gin.Context) {
	h.mutate(c, nil)
}

// --------------------------------------------------
// POST /demo/sessions/:session/cart/items/:item
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	if _, found := h.catalog.Lookup(itemID); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	h.mutate(c, func(crt *cart.Cart) { crt.Add(itemID) })
}

// --------------------------------------------------
// DELETE /demo/sessions/:session/cart/items/:item
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	h.mutate(c, func(crt *cart.Cart) { crt.Remove(itemID) })
}

// --------------------------------------------------
// DELETE /demo/sessions/:session
// --------------------------------------------------
func (h *Handler) EndSession(c *gin.Context) {
	if !h.store.End(c.Param("session")) {
		c.JSON(http.StatusNotFound, gin.H{"error": cart.ErrSessionNotFound.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// mutate applies op (if any) and responds with the recomputed cart view.
func (h *Handler) mutate(c *gin.Context, op func(*cart.Cart)) {
	sessionID := c.Param("session")

	var view cartView
	err := h.store.Do(sessionID, func(crt *cart.Cart) {
		if op != nil {
			op(crt)
		}
		view = newCartView(sessionID, crt, h.catalog)
	})
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, cart.ErrStoreFull):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("cart session failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// activeCategory reads ?category=, treating a missing or empty value as
// the no-filter sentinel.
func activeCategory(c *gin.Context) string {
	if v := c.Query("category"); v != "" {
		return v
	}
	return menu.AllCategories
}

func parseItemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("item"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}
