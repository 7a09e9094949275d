package main

import (
	"context" // context package is needed for Redis operations

	"deluxe_membership/internal/api"        // Custom package for API handlers
	"deluxe_membership/internal/challenge"  // Challenge registry
	"deluxe_membership/internal/config"     // Custom package for configuration
	"deluxe_membership/internal/db"         // Database connection
	"deluxe_membership/internal/membership" // Upgrade service
	"deluxe_membership/internal/middleware" // Custom package for middleware
	"deluxe_membership/internal/session"    // Session registry

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/time/rate"       // Rate limiting
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

	gdb, err := db.Open(cfg.DSN(), !cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	var sessions session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		sessions = session.NewMemoryStore(cfg.JWTTTL) // Single instance only
	default:
		sessions = session.NewRedisStore(redisClient, cfg.JWTTTL)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New() // Gin router instance
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Deps{
		DB:         gdb,
		Cache:      redisClient,
		Sessions:   sessions,
		Challenges: challenge.NewRegistry(gdb),
		Upgrader:   membership.NewService(gdb, cfg.DeluxeSecret),
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.JWTTTL,
		Limiter:    middleware.NewClientLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	})

	logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
