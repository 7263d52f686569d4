package api

import (
	"context"                  // Context for Redis operations
	"net/http"                 // HTTP status codes
	"strconv"                  // String conversion
	"time"                     // Time durations
	"cognihub/internal/domain" // Importing domain models
	"cognihub/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// pagination reads page/page_size query parameters with sane bounds
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1      // Default page number
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		// If valid, set page number
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		// If valid, set page size
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size
		}
	}
	return page, pageSize
}

// ListUsersHandler returns all users with their balances (admin only)
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		// Try to get cached response
		var cached struct {
			Users      []domain.User `json:"users"`       // List of users
			Page       int           `json:"page"`        // Current page
			PageSize   int           `json:"page_size"`   // Page size
			Total      int64         `json:"total"`       // Total number of users
			TotalPages int           `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // List of users
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page, pageSize := pagination(c) // Pagination parameters
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		// Fetch total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"}) // Return on error
			return
		}
		var users []domain.User // Slice to hold users
		// Apply offset and limit for pagination
		if err := db.Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"}) // Return on error
			return
		}
		// The total number of pages
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Prepare final response data
		respData := gin.H{
			"users":       users,      // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// ListAllResourcesHandler returns resources across every visibility tier,
// with optional filtering by visibility or category (admin only)
func ListAllResourcesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Build cache key from the query parameters
		cacheKey := "admin:resources:visibility=" + c.DefaultQuery("visibility", "") +
			":category=" + c.DefaultQuery("category", "") +
			":page=" + c.DefaultQuery("page", "1") +
			":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Resources  []domain.Resource `json:"resources"`   // List of resources
			Page       int               `json:"page"`        // Current page
			PageSize   int               `json:"page_size"`   // Page size
			Total      int64             `json:"total"`       // Total number of resources
			TotalPages int               `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"resources":   cached.Resources,  // List of resources
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of resources
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page, pageSize := pagination(c)      // Pagination parameters
		offset := (page - 1) * pageSize      // Calculate offset for pagination
		query := db.Model(&domain.Resource{}) // Start building the query
		if v := c.Query("visibility"); v != "" {
			query = query.Where("visibility = ?", v) // Filter by visibility tier
		}
		if cat := c.Query("category"); cat != "" {
			query = query.Where("category = ?", cat) // Filter by category
		}
		var total int64 // Total resource count
		// Get total count of resources matching the filters
		if err := query.Count(&total).Error; err != nil {
			// If error occurs, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count resources"})
			return
		}
		var resources []domain.Resource // Slice to hold resources
		// Fetch paginated resources with filters applied
		if err := query.Order("upload_date desc").Offset(offset).Limit(pageSize).Find(&resources).Error; err != nil {
			// If error occurs, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resources"})
			return
		}
		// The total number of pages
		totalPages := (int(total) + pageSize - 1) / pageSize
		respData := gin.H{
			"resources":   resources,  // List of resources
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of resources
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// VisibilityUpdateRequest carries the moderation override
type VisibilityUpdateRequest struct {
	Visibility string `json:"visibility" binding:"required"` // New visibility tier
}

// UpdateVisibilityHandler changes a resource's visibility tier. Ordinary
// users can never do this; it is the admin moderation capability.
func UpdateVisibilityHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VisibilityUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || !domain.ValidVisibility(req.Visibility) {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Visibility must be EDU, GENERAL or PUBLIC"})
			return
		}
		var resource domain.Resource // Fetch the resource
		if err := db.First(&resource, "id = ?", c.Param("id")).Error; err != nil {
			// If resource not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		previous := resource.Visibility // Remember the old tier for cache invalidation
		// Apply the override
		if err := db.Model(&resource).Update("visibility", req.Visibility).Error; err != nil {
			// If the update fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update visibility"})
			return
		}
		// Log the moderation action
		logrus.WithFields(logrus.Fields{
			"resource": resource.ID,    // Resource ID
			"from":     previous,       // Old visibility
			"to":       req.Visibility, // New visibility
		}).Info("Visibility override") // Log the override
		// Invalidate the catalogue caches of both the old and new tiers
		ctx := context.Background() // Context for Redis operations
		utils.InvalidateResourceLists(ctx, rdb, previous)
		utils.InvalidateResourceLists(ctx, rdb, req.Visibility)
		c.JSON(http.StatusOK, gin.H{"resource": resource}) // Return the updated resource
	}
}

// StatsHandler returns platform-wide counters (admin only)
func StatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, resourceCount int64 // Entity counts
		// Count users
		if err := db.Model(&domain.User{}).Count(&userCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"}) // Return on error
			return
		}
		// Count resources
		if err := db.Model(&domain.Resource{}).Count(&resourceCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count resources"}) // Return on error
			return
		}
		// Total downloads across the catalogue
		var totalDownloads int64
		if err := db.Model(&domain.Resource{}).
			Select("COALESCE(SUM(downloads), 0)").
			Scan(&totalDownloads).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum downloads"}) // Return on error
			return
		}
		// Per-visibility resource split
		split := map[string]int64{} // Visibility -> count
		for _, v := range []string{domain.VisibilityEDU, domain.VisibilityGeneral, domain.VisibilityPublic} {
			var n int64
			if err := db.Model(&domain.Resource{}).Where("visibility = ?", v).Count(&n).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count resources"}) // Return on error
				return
			}
			split[v] = n // Record the count
		}
		// Return the platform stats
		c.JSON(http.StatusOK, gin.H{
			"users":           userCount,      // Total users
			"resources":       resourceCount,  // Total resources
			"total_downloads": totalDownloads, // Sum of download counters
			"by_visibility":   split,          // Per-tier resource counts
		})
	}
}
