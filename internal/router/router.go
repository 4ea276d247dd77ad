package router

import (
	"context"
	"net/http"
	"time"

	"cardapio/internal/auth"
	"cardapio/internal/dashboard"
	"cardapio/internal/demo"
	"cardapio/internal/middleware"
	"cardapio/internal/orders"
	"cardapio/internal/profile"
	"cardapio/internal/restaurant"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps holds everything the HTTP surface is built from.
type Deps struct {
	Logger      *zap.Logger
	JWTSecret   []byte
	CORSOrigins []string
	Roles       middleware.RoleChecker

	// Health, when set, is checked by GET /health.
	Health func(ctx context.Context) error

	Auth       *auth.Handler
	Demo       *demo.Handler
	Profile    *profile.Handler
	Restaurant *restaurant.Handler
	Orders     *orders.Handler
	Dashboard  *dashboard.Handler
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(d.Logger), middleware.RequestLogger(d.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				d.Logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(d.JWTSecret)

	// ───────────────────────── PUBLIC MENU DEMO ─────────────────────────
	if d.Demo != nil {
		demoGroup := r.Group("/demo")
		{
			demoGroup.GET("/catalog", d.Demo.Catalog)
			demoGroup.POST("/sessions", d.Demo.CreateSession)
			demoGroup.DELETE("/sessions/:session", d.Demo.EndSession)
			demoGroup.GET("/sessions/:session/menu", d.Demo.Menu)
			demoGroup.GET("/sessions/:session/cart", d.Demo.Cart)
			demoGroup.POST("/sessions/:session/cart/items/:item", d.Demo.AddItem)
			demoGroup.DELETE("/sessions/:session/cart/items/:item", d.Demo.RemoveItem)
		}
	}

	// ───────────────────────── AUTH ─────────────────────────
	if d.Auth != nil {
		authGroup := r.Group("/auth")
		{
			authGroup.POST("/register", d.Auth.Register)
			authGroup.POST("/login", d.Auth.Login)
			authGroup.GET("/session", requireAuth, d.Auth.Session)
		}
	}

	// ───────────────────────── BACK OFFICE ─────────────────────────
	backOffice := r.Group("")
	backOffice.Use(requireAuth)
	{
		if d.Dashboard != nil {
			backOffice.GET("/dashboard", d.Dashboard.Dashboard)
			backOffice.GET("/menu-manager", d.Dashboard.MenuManager)
		}
		if d.Profile != nil {
			backOffice.GET("/profile", d.Profile.Get)
			backOffice.PUT("/profile", d.Profile.Update)
		}
		if d.Restaurant != nil {
			backOffice.GET("/restaurants/me", d.Restaurant.GetMine)
			backOffice.PUT("/restaurants/me", d.Restaurant.Save)
			backOffice.POST("/restaurants/me/logo", d.Restaurant.UploadLogo)
		}
	}

	// ───────────────────────── ORDERS ─────────────────────────
	if d.Orders != nil {
		ordersGroup := r.Group("/orders")
		ordersGroup.Use(
			requireAuth,
			middleware.RequireRole(d.Roles, d.Logger, auth.RoleRestaurantOwner),
		)
		{
			ordersGroup.GET("", d.Orders.List)
			ordersGroup.GET("/stream", d.Orders.Stream)
			ordersGroup.PATCH("/:id/status", d.Orders.UpdateStatus)
		}
	}

	return r
}
