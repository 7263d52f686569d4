package api

import (
	"context"                   // Context for Redis and collaborator calls
	"errors"                    // Sentinel error matching
	"net/http"                  // HTTP status codes
	"path/filepath"             // File extension handling
	"strconv"                   // String conversion
	"time"                      // Time durations
	"cognihub/internal/catalog" // Visibility filtering
	"cognihub/internal/domain"  // Importing domain models
	"cognihub/internal/ledger"  // Merit accounting
	"cognihub/internal/storage" // Resource file store
	"cognihub/internal/summarize" // AI summarization
	"cognihub/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // UUID generation
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// downloadURLTTL is how long a presigned file URL stays valid
const downloadURLTTL = 15 * time.Minute

// viewerNetwork derives the viewer's network tier from the role claim the
// JWT middleware stored. The network is a pure function of the role, so the
// token never needs to carry it separately.
func viewerNetwork(c *gin.Context) string {
	return domain.NetworkForRole(c.GetString("userRole"))
}

// ListResourcesHandler returns the resources the viewer may browse,
// narrowed by the search and category query parameters. The per-network
// partition is cached in Redis; the visibility filter is still re-applied
// on every response rather than trusting the stored partition alone.
func ListResourcesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		network := viewerNetwork(c)                       // Viewer's network tier
		query := c.Query("search")                        // Free-text search term
		category := c.DefaultQuery("category", catalog.CategoryAll) // Category facet

		ctx := context.Background()                // Context for Redis operations
		cacheKey := utils.ResourceListKey(network) // Per-network catalogue cache key
		var resources []domain.Resource            // Catalogue partition for this network
		found, err := utils.GetCache(ctx, rdb, cacheKey, &resources)
		// If found in cache, filter and return it
		if err == nil && found {
			filtered := catalog.Filter(resources, network, query, category)
			c.JSON(http.StatusOK, gin.H{"resources": filtered, "cached": true})
			return
		}
		// If not in cache, fetch the network partition from the database
		dbErr := db.Where("visibility IN ?", []string{network, domain.VisibilityPublic}).
			Order("upload_date desc").
			Find(&resources).Error
		if dbErr != nil {
			// A failed read degrades to a clearly labeled empty set; the
			// catalogue is never fabricated.
			logrus.WithFields(logrus.Fields{
				"network": network,       // Requested partition
				"error":   dbErr.Error(), // Error message
			}).Error("Resource listing failed") // Log the failure
			c.JSON(http.StatusOK, gin.H{"resources": []domain.Resource{}, "degraded": true})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resources, 60*time.Second) // Cache the partition for 60 seconds
		// Re-apply the full filter: defensive network re-check plus search/category
		filtered := catalog.Filter(resources, network, query, category)
		c.JSON(http.StatusOK, gin.H{"resources": filtered, "cached": false})
	}
}

// PublishResourceHandler accepts a multipart publish: metadata fields plus
// the resource file. The flow is summarize (best-effort), store the file,
// then insert the resource and grant the upload reward in one transaction.
func PublishResourceHandler(db *gorm.DB, rdb *redis.Client, store *storage.Store, ai *summarize.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch the uploader
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Read and validate metadata fields
		title := c.PostForm("title")             // Resource title
		description := c.PostForm("description") // Free-text description
		category := c.PostForm("category")       // Category enum value
		subject := c.PostForm("subject")         // Subject/topic
		if title == "" || description == "" {
			// Required fields missing; a local validation error, re-prompted by the UI
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
			return
		}
		if !domain.ValidCategory(category) {
			// Category must be one of the closed enum values
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		semester, err := strconv.Atoi(c.DefaultPostForm("semester", "1"))
		if err != nil || semester < 1 || semester > 8 {
			// Semester must be 1-8
			c.JSON(http.StatusBadRequest, gin.H{"error": "Semester must be between 1 and 8"})
			return
		}
		if subject == "" {
			subject = "General" // Default subject
		}
		// Visibility is pinned to the uploader's network unless the upload
		// is explicitly PUBLIC. Anything else is rejected.
		visibility := c.DefaultPostForm("visibility", user.Network)
		if visibility != user.Network && visibility != domain.VisibilityPublic {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Visibility must be your network or PUBLIC"})
			return
		}
		// The resource file itself
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Resource file is required"})
			return
		}
		// Best-effort summarization; a failed call yields the fallback
		// summary and never blocks the publish.
		aiResult := ai.Summarize(c.Request.Context(), title, description)

		// Store the file before touching the database; a failed upload is a
		// failed publish with no economic effect.
		src, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read file"})
			return
		}
		defer src.Close()
		fileKey := "resources/" + uuid.NewString() + filepath.Ext(fileHeader.Filename) // Object storage key
		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream" // Unknown content type
		}
		if err := store.Upload(c.Request.Context(), fileKey, src, contentType); err != nil {
			// A failed write is surfaced, never silently absorbed
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Uploader
				"error":   err.Error(), // Error message
			}).Error("Resource file upload failed") // Log the failure
			c.JSON(http.StatusBadGateway, gin.H{"error": "File storage unavailable, try again"})
			return
		}
		resource := domain.Resource{
			ID:           uuid.NewString(),            // UUID primary key
			Title:        title,                       // Resource title
			Description:  description,                 // Description
			UploaderID:   user.ID,                     // Uploader reference
			UploaderName: user.Name,                   // Denormalized for display
			Category:     category,                    // Validated category
			Subject:      subject,                     // Subject/topic
			Semester:     semester,                    // Validated semester
			UploadDate:   time.Now(),                  // Publish timestamp
			Tags:         domain.TagList(aiResult.Tags), // Generated keywords
			AISummary:    aiResult.Summary,            // Generated summary
			FileKey:      fileKey,                     // Stored file key
			Visibility:   visibility,                  // Fixed at creation
		}
		// Insert the resource and grant the upload reward atomically
		err = db.Transaction(func(tx *gorm.DB) error {
			// Save the resource
			if err := tx.Create(&resource).Error; err != nil {
				return err // Return error to rollback
			}
			// Grant the upload reward
			if err := tx.Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]any{
				"points": gorm.Expr("points + ?", ledger.UploadPoints), // Reward points
				"xp":     gorm.Expr("xp + ?", ledger.UploadXP),         // Reward XP
			}).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  user.ID,     // Uploader
				"resource": resource.ID, // Resource ID
				"error":    err.Error(), // Error message
			}).Error("Publish failed") // Log publish failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Publish failed"})
			return
		}
		ledger.ApplyUpload(&user) // Mirror the reward on the in-memory record for the response
		// Log successful publish
		logrus.WithFields(logrus.Fields{
			"user_id":    user.ID,             // Uploader
			"resource":   resource.ID,         // Resource ID
			"visibility": resource.Visibility, // Visibility tier
			"type":       "upload",            // Economic event type
		}).Info("Resource published") // Log publish success
		// Invalidate the catalogue caches the new resource appears in,
		// plus the uploader's profile and the leaderboard
		ctx := context.Background() // Context for Redis operations
		utils.InvalidateResourceLists(ctx, rdb, resource.Visibility)
		_ = utils.DeleteCache(ctx, rdb, utils.ProfileKey(user.ID))
		_ = utils.DeleteCache(ctx, rdb, utils.LeaderboardKey)
		// Return the created resource and the rewarded balance
		c.JSON(http.StatusCreated, gin.H{"resource": resource, "user": user})
	}
}

// DownloadResourceHandler charges the viewer for a download, bumps the
// resource's download counter and returns a presigned file URL. The charge
// and the counter bump happen in one transaction; the balance condition is
// enforced in the UPDATE itself so concurrent requests cannot overspend.
func DownloadResourceHandler(db *gorm.DB, rdb *redis.Client, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch the downloader
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var resource domain.Resource // Fetch the resource
		if err := db.First(&resource, "id = ?", c.Param("id")).Error; err != nil {
			// If resource not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		// The network partition applies to downloads exactly as to browsing;
		// an invisible resource is indistinguishable from a missing one.
		if !catalog.VisibleTo(resource, user.Network) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		// Gate on affordability against the freshest known balance. On
		// failure nothing is mutated and no counter moves.
		if err := ledger.ApplyDownload(&user, &resource); err != nil {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient merit points, earn more by uploading resources"})
			return
		}
		// Presign the file URL before charging; a failed presign must not
		// cost the user anything.
		downloadURL, err := store.PresignDownload(c.Request.Context(), resource.FileKey, downloadURLTTL)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"resource": resource.ID, // Resource ID
				"error":    err.Error(), // Error message
			}).Error("Presign failed") // Log the failure
			c.JSON(http.StatusBadGateway, gin.H{"error": "File storage unavailable, try again"})
			return
		}
		cost := ledger.DownloadCost(user.Role) // Point cost for this role
		// Charge and count atomically
		err = db.Transaction(func(tx *gorm.DB) error {
			// Deduct the cost and grant XP, but only while the balance
			// still covers the cost. Zero affected rows means a concurrent
			// download spent the points first.
			charge := tx.Model(&domain.User{}).
				Where("id = ? AND points >= ?", user.ID, cost).
				Updates(map[string]any{
					"points": gorm.Expr("points - ?", cost),              // Deduct the cost
					"xp":     gorm.Expr("xp + ?", ledger.DownloadXP),     // Grant download XP
				})
			if charge.Error != nil {
				return charge.Error // Return error to rollback
			}
			if charge.RowsAffected == 0 {
				return ledger.ErrInsufficientMerit // Balance moved underneath us
			}
			// Increment the download counter
			if err := tx.Model(&domain.Resource{}).Where("id = ?", resource.ID).
				Update("downloads", gorm.Expr("downloads + 1")).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if errors.Is(err, ledger.ErrInsufficientMerit) {
			// Recoverable, user-facing condition
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient merit points, earn more by uploading resources"})
			return
		}
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":  user.ID,     // Downloader
				"resource": resource.ID, // Resource ID
				"cost":     cost,        // Point cost
				"error":    err.Error(), // Error message
			}).Error("Download failed") // Log download failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Download failed"})
			return
		}
		// Log the economic event
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,     // Downloader
			"resource": resource.ID, // Resource ID
			"cost":     cost,        // Point cost
			"type":     "download",  // Economic event type
		}).Info("Resource downloaded") // Log download success
		// Invalidate the caches the changed counters appear in
		ctx := context.Background() // Context for Redis operations
		utils.InvalidateResourceLists(ctx, rdb, resource.Visibility)
		_ = utils.DeleteCache(ctx, rdb, utils.ProfileKey(user.ID))
		_ = utils.DeleteCache(ctx, rdb, utils.LeaderboardKey)
		// Return the file URL and the post-charge balance
		c.JSON(http.StatusOK, gin.H{
			"downloadUrl": downloadURL,        // Presigned file URL
			"points":      user.Points,        // Balance after the charge
			"xp":          user.XP,            // XP after the grant
			"downloads":   resource.Downloads, // Counter after the bump
		})
	}
}

// MyResourcesHandler returns the authenticated user's own uploads,
// regardless of visibility tier.
func MyResourcesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var resources []domain.Resource // Slice to hold resources
		// Fetch the user's uploads, newest first
		if err := db.Where("uploader_id = ?", userID).
			Order("upload_date desc").
			Find(&resources).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resources"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"resources": resources}) // Return the uploads
	}
}
