package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardapio/internal/auth"
	"cardapio/internal/cart"
	"cardapio/internal/config"
	"cardapio/internal/dashboard"
	"cardapio/internal/db"
	"cardapio/internal/demo"
	"cardapio/internal/logging"
	"cardapio/internal/menu"
	"cardapio/internal/orders"
	"cardapio/internal/profile"
	"cardapio/internal/restaurant"
	"cardapio/internal/router"
	"cardapio/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pool, err := db.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool, logger); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	// ───────────────────────── CATALOG + CARTS ─────────────────────────
	catalog, err := menu.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("catalog load failed", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("items", catalog.Len()))

	carts := cart.NewStore(cfg.CartSessionTTL, cfg.CartMaxSessions, logger)
	go carts.Run(ctx)

	// ───────────────────────── STORAGE ─────────────────────────
	var uploader restaurant.Uploader
	if cfg.Storage.Enabled() {
		client, err := storage.NewR2Client(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("object storage init failed", zap.Error(err))
		}
		uploader = client
	} else {
		logger.Warn("object storage not configured, logo uploads disabled")
	}

	// ───────────────────────── REPOS + SERVICES ─────────────────────────
	users := auth.NewPostgresUserRepository(pool)
	roles := auth.NewPostgresRoleRepository(pool)
	authService := auth.NewService(users, roles, []byte(cfg.JWTSecret), logger)

	profiles := profile.NewPostgresRepository(pool)
	restaurants := restaurant.NewPostgresRepository(pool)
	orderRepo := orders.NewPostgresRepository(pool)

	// ───────────────────────── REALTIME ─────────────────────────
	hub := orders.NewHub(0, logger)
	go orders.NewListener(pool, hub, logger).Run(ctx)

	// ───────────────────────── HTTP ─────────────────────────
	engine := router.New(router.Deps{
		Logger:      logger,
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Roles:       authService,
		Health:      pool.Ping,
		Auth:        auth.NewHandler(authService, logger),
		Demo:        demo.NewHandler(catalog, carts, logger),
		Profile:     profile.NewHandler(profile.NewService(profiles), logger),
		Restaurant:  restaurant.NewHandler(restaurant.NewService(restaurants, uploader, logger), logger),
		Orders:      orders.NewHandler(orders.NewService(orderRepo, restaurants, logger), hub, logger),
		Dashboard:   dashboard.NewHandler(profiles, restaurants, logger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		// Open order streams end when the process is asked to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("api listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// ───────────────────────── SHUTDOWN ─────────────────────────
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
