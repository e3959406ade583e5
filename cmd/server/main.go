package main

import (
	"context"   // context package is needed for Redis operations and shutdown
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // OS signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Server timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"waste_tracker/internal/api"        // HTTP handlers and routes
	"waste_tracker/internal/cache"      // Weekly report cache
	"waste_tracker/internal/config"     // Configuration
	"waste_tracker/internal/db"         // Database connection
	"waste_tracker/internal/repository" // MySQL repositories
	"waste_tracker/internal/service"    // Application services
	"waste_tracker/internal/session"    // Session tokens
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database
	conn, err := db.Open(cfg.DSN(), cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	sqlDB, err := conn.DB() // Underlying pool, used for health checks and shutdown
	if err != nil {
		logrus.Fatalf("failed to get DB pool: %v", err)
	}
	defer sqlDB.Close()

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	calendar := service.NewCalendar(cfg.Location)                              // Dates in the application time zone
	reports := cache.New(redisClient, cfg.CacheTTL)                            // Weekly report cache
	entries := repository.NewEntryRepository(conn)                             // Entry storage
	users := repository.NewUserRepository(conn)                                // User storage
	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL, redisClient) // Session tokens and revocation

	router, err := api.NewRouter(api.Deps{
		Users:          service.NewUserService(users),
		Entries:        service.NewEntryService(entries, reports, calendar),
		Weekly:         service.NewWeeklyService(entries, reports, calendar),
		Sessions:       sessions,
		DB:             sqlDB,
		Redis:          redisClient,
		Location:       cfg.Location,
		SecureCookies:  cfg.IsProd,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1) // Receives the stop signal
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server shutdown failed: %v", err)
		return
	}
	logrus.Info("Server stopped")
}
