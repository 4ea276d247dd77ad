package dashboard

import (
	"context"
	"errors"
	"net/http"

	"cardapio/internal/core"
	"cardapio/internal/profile"
	"cardapio/internal/restaurant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Section is one entry of the back-office home.
type Section struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

var sections = []Section{
	{Key: "menu", Title: "Gerenciar Cardápio", Description: "Adicione e edite itens do seu cardápio digital", Path: "/menu-manager"},
	{Key: "orders", Title: "Pedidos", Description: "Visualize e gerencie pedidos em tempo real", Path: "/orders"},
	{Key: "settings", Title: "Configurações", Description: "Configure seu restaurante e perfil", Path: "/settings"},
}

type ProfileReader interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

type Handler struct {
	profiles    ProfileReader
	restaurants core.RestaurantReader
	logger      *zap.Logger
}

func NewHandler(profiles ProfileReader, restaurants core.RestaurantReader, logger *zap.Logger) *Handler {
	return &Handler{profiles: profiles, restaurants: restaurants, logger: logger}
}

// --------------------------------------------------
// GET /dashboard
// --------------------------------------------------
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("userID")
	email := c.GetString("userEmail")

	fullName := ""
	p, err := h.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		fullName = p.FullName
	case !errors.Is(err, profile.ErrNotFound):
		h.logger.Error("dashboard profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	hasRestaurant := true
	if _, err := h.restaurants.GetByOwner(ctx, userID); err != nil {
		if !errors.Is(err, restaurant.ErrNotFound) {
			h.logger.Error("dashboard restaurant lookup failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		hasRestaurant = false
	}

	greeting := fullName
	if greeting == "" {
		greeting = email
	}

	c.JSON(http.StatusOK, gin.H{
		"email":          email,
		"full_name":      fullName,
		"greeting":       "Bem-vindo de volta, " + greeting + "!",
		"has_restaurant": hasRestaurant,
		"sections":       sections,
	})
}

// --------------------------------------------------
// GET /menu-manager
// --------------------------------------------------
func (h *Handler) MenuManager(c *gin.Context) {
	res, err := h.restaurants.GetByOwner(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Configure seu restaurante primeiro",
				"redirect": "/settings",
			})
			return
		}
		h.logger.Error("menu manager lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": res})
}
