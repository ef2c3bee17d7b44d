package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/minimart/backend/internal/application/cart"
	catalogapp "github.com/minimart/backend/internal/application/catalog"
	identityapp "github.com/minimart/backend/internal/application/identity"
	"github.com/minimart/backend/internal/infrastructure/auth"
	"github.com/minimart/backend/internal/infrastructure/config"
	"github.com/minimart/backend/internal/infrastructure/logger"
	"github.com/minimart/backend/internal/infrastructure/persistence"
	"github.com/minimart/backend/internal/interfaces/http/handler"
	"github.com/minimart/backend/internal/interfaces/http/middleware"
	"github.com/minimart/backend/internal/interfaces/http/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting minimart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Connect to the document store
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	db, err := persistence.NewDatabase(connectCtx, &cfg.Mongo)
	cancelConnect()
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		closeCtx, cancelClose := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelClose()
		if err := db.Close(closeCtx); err != nil {
			log.Error("Error closing document store", zap.Error(err))
		}
	}()
	log.Info("Document store connected")

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancelIndex()
		log.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancelIndex()

	// Token service and optional Redis-backed blacklist
	tokenService := auth.NewTokenService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	if cfg.RedisEnabled() {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	productRepo := persistence.NewMongoProductRepository(db)
	userRepo := persistence.NewMongoUserRepository(db)
	cartRepo := persistence.NewMongoCartRepository(db)

	// Application services
	productService := catalogapp.NewProductService(productRepo, log)
	authService := identityapp.NewAuthService(userRepo, tokenService, blacklist, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)

	// Handlers
	productHandler := handler.NewProductHandler(productService)
	authHandler := handler.NewAuthHandler(authService)
	cartHandler := handler.NewCartHandler(cartService, productService)
	healthHandler := handler.NewHealthHandler(db)

	// Metrics registry with process and Go runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := middleware.NewHTTPMetrics(registry, cfg.App.Name)
	if err != nil {
		log.Fatal("Failed to register HTTP metrics", zap.Error(err))
	}

	// Gin engine and middleware chain
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(httpMetrics.Middleware())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	jwtConfig := middleware.DefaultJWTConfig(tokenService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Operational endpoints outside API versioning
	engine.GET("/healthz", healthHandler.Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authHandler).
		Register(productHandler).
		Register(cartHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
