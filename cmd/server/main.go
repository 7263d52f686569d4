package main

import (
	"context"                     // Context for Redis and storage probes
	"log"                         // log package is needed for logging
	"cognihub/internal/api"       // Custom package for API handlers
	"cognihub/internal/config"    // Custom package for configuration
	"cognihub/internal/middleware" // Custom package for middleware
	"cognihub/internal/storage"   // Resource file store
	"cognihub/internal/summarize" // AI summarization client

	"github.com/gin-contrib/cors"  // CORS middleware for the SPA origin
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
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
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup the resource file store (probes the bucket at startup)
	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("failed to set up file storage: %v", err)
	}

	// Setup the summarization client (an empty key disables it; publishing
	// then proceeds with the fallback summary)
	ai := summarize.NewClient(cfg.GeminiKey, cfg.GeminiModel)
	if cfg.GeminiKey == "" {
		logrus.Warn("GEMINI_API_KEY not set, summarization disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Allow the SPA origin to call the API
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db, cfg.JWTSecret)) // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))       // Login endpoint

	// Resource routes (protected by JWT)
	resourceGroup := r.Group("/resources")
	resourceGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	resourceGroup.GET("", api.ListResourcesHandler(db, redisClient))                       // Browse the catalogue
	resourceGroup.POST("", api.PublishResourceHandler(db, redisClient, store, ai))         // Publish a resource
	resourceGroup.POST("/:id/download", api.DownloadResourceHandler(db, redisClient, store)) // Download (charged)
	resourceGroup.GET("/mine", api.MyResourcesHandler(db))                                 // Own uploads

	// User routes (protected by JWT)
	userGroup := r.Group("/users")
	userGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userGroup.GET("/me", api.GetProfileHandler(db, redisClient))        // Profile endpoint
	userGroup.PUT("/me", api.UpdateProfileHandler(db, redisClient))     // Profile update endpoint
	userGroup.GET("/leaderboard", api.LeaderboardHandler(db, redisClient)) // Leaderboard endpoint

	// Community routes (protected by JWT)
	r.GET("/communities", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.ListCommunitiesHandler(db))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", api.ListUsersHandler(db, redisClient))                     // List users endpoint
	adminGroup.GET("/resources", api.ListAllResourcesHandler(db, redisClient))          // List resources endpoint
	adminGroup.PATCH("/resources/:id/visibility", api.UpdateVisibilityHandler(db, redisClient)) // Moderation override
	adminGroup.GET("/stats", api.StatsHandler(db))                                      // Platform stats endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
