package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-parts-market/internal/config"
	"go-parts-market/internal/database"
	"go-parts-market/internal/event"
	"go-parts-market/internal/handler"
	"go-parts-market/internal/middleware"
	"go-parts-market/internal/repository"
	"go-parts-market/internal/router"
	"go-parts-market/internal/service"
	"go-parts-market/internal/websocket"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	garageRepo := repository.NewGarageRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	recommendationRepo := repository.NewRecommendationRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)

	bus := event.NewBus()
	hub := websocket.NewHub(bus)
	go hub.Run()

	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, garageRepo, bus)
	catalogService := service.NewCatalogService(catalogRepo)
	vehicleService := service.NewVehicleService(vehicleRepo)
	garageService := service.NewGarageService(garageRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, productRepo, bus)
	recommendationService := service.NewRecommendationService(recommendationRepo)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		User:           handler.NewUserHandler(userService, productService),
		Product:        handler.NewProductHandler(productService),
		Catalog:        handler.NewCatalogHandler(catalogService),
		Vehicle:        handler.NewVehicleHandler(vehicleService),
		Garage:         handler.NewGarageHandler(garageService),
		Message:        handler.NewMessageHandler(messageService),
		Recommendation: handler.NewRecommendationHandler(recommendationService),
		Health:         handler.NewHealthHandler(db),
	}, hub)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
