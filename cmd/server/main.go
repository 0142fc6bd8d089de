package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streetmarket/internal/api/handlers"
	"streetmarket/internal/config"
	"streetmarket/internal/infrastructure/leader"
	"streetmarket/internal/infrastructure/mysql"
	redisinfra "streetmarket/internal/infrastructure/redis"
	ws "streetmarket/internal/infrastructure/websocket"
	"streetmarket/internal/services"
	"streetmarket/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log := logger.New()
	log.Info("Starting Street Market Service")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	log.Info("Configuration loaded", "config", cfg.GetConfigString())

	// Initialize Redis
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to Redis", "address", cfg.Redis.Address)

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		log.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Error("Failed to close MySQL connection", "error", err)
		}
	}(db)

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		log.Error("Failed to ping MySQL", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to MySQL")

	// Initialize repositories
	artistRepo := mysql.NewMySQLArtistRepository(db)
	artworkRepo := mysql.NewMySQLArtworkRepository(db)
	auctionRepo := mysql.NewMySQLAuctionRepository(db)
	commissionRepo := mysql.NewMySQLCommissionRepository(db)
	performanceRepo := mysql.NewMySQLPerformanceRepository(db)

	// Redis based components
	eventPublisher := redisinfra.NewEventPublisher(rdb)
	statsCache := redisinfra.NewStatsCache(rdb, cfg.Auction.StatsCacheTTL)
	leaderElection := leader.NewRedisLeaderElection(rdb, cfg.Leader.TTL)

	// Live auction feed
	connManager := ws.NewConnectionManager(log)
	notifier := ws.NewWebSocketNotifier(connManager)
	wsHandler := ws.NewWebSocketHandler(auctionRepo, connManager, log)

	// Services
	auctionService := services.NewAuctionService(
		auctionRepo, artworkRepo, eventPublisher, notifier,
		cfg.Auction.BidCountdown, nil, log,
	)
	analyticsService := services.NewAnalyticsService(
		artworkRepo, commissionRepo, performanceRepo, statsCache, log,
	)
	artistService := services.NewArtistService(artistRepo, nil, log)
	artworkService := services.NewArtworkService(artworkRepo, nil, log)
	commissionService := services.NewCommissionService(commissionRepo, nil, log)
	performanceService := services.NewPerformanceService(performanceRepo, nil, log)

	sweeper := services.NewAuctionSweeper(
		auctionRepo, auctionService, leaderElection,
		cfg.Instance.ID, cfg.Auction.SweepInterval, nil, log,
	)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `{"time":"${time_rfc3339}","id":"${id}","remote_ip":"${remote_ip}","host":"${host}","method":"${method}","uri":"${uri}","user_agent":"${user_agent}","status":${status},"error":"${error}","latency":${latency},"latency_human":"${latency_human}","bytes_in":${bytes_in},"bytes_out":${bytes_out}}` + "\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET, echo.HEAD, echo.PUT, echo.PATCH,
			echo.POST, echo.DELETE, echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// API routes
	api := e.Group("/api/v1")
	handlers.NewArtistHandler(artistService, log).Register(api)
	handlers.NewArtworkHandler(artworkService, log).Register(api)
	handlers.NewAuctionHandler(auctionService, log).Register(api)
	handlers.NewCommissionHandler(commissionService, log).Register(api)
	handlers.NewPerformanceHandler(performanceService, log).Register(api)
	handlers.NewAnalyticsHandler(analyticsService, log).Register(api)

	// Live feed endpoint, served through the mux router
	e.GET("/ws/auctions/:auctionID", echo.WrapHandler(wsHandler.Router()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "street-market",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		})
	})

	// Start background services
	go func() {
		if err := sweeper.Start(context.Background()); err != nil {
			log.Error("Failed to start auction sweeper", "error", err)
		}
	}()

	// Try to become leader
	go func() {
		for {
			became, err := leaderElection.BecomeLeader(context.Background(), cfg.Instance.ID)
			if err != nil {
				log.Error("Failed to attempt leadership", "error", err)
				time.Sleep(5 * time.Second)
				continue
			}
			if became {
				log.Info("Became sweeper leader", "instance_id", cfg.Instance.ID)
			}
			time.Sleep(10 * time.Second)
		}
	}()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting street market server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down street market service...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sweeper.Stop(); err != nil {
		log.Error("Failed to stop auction sweeper", "error", err)
	}
	if err := leaderElection.ReleaseLeadership(ctx, cfg.Instance.ID); err != nil {
		log.Error("Failed to release leadership", "error", err)
	}

	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Street market service stopped")
}
