package api

import (
	"context"                  // Context for Redis operations
	"net/http"                 // HTTP status codes
	"time"                     // Time durations
	"cognihub/internal/domain" // Importing domain models
	"cognihub/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// leaderboardSize is the number of entries on the public leaderboard
const leaderboardSize = 10

// GetProfileHandler returns the authenticated user's record
func GetProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()                           // Context for Redis operations
		cacheKey := utils.ProfileKey(userID.(string))         // Cache key for the profile
		var user domain.User                                  // User struct to hold data
		found, err := utils.GetCache(ctx, rdb, cacheKey, &user) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			// Return cached profile
			c.JSON(http.StatusOK, gin.H{"user": user, "cached": true})
			return
		}
		// If not in cache, fetch from DB
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			// Return not found if the user doesn't exist
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, user, 60*time.Second) // Cache the profile for 60 seconds
		c.JSON(http.StatusOK, gin.H{"user": user, "cached": false}) // Return profile
	}
}

// ProfileUpdateRequest carries the client-writable profile fields. Role,
// network, points and XP are never client-writable: the network is pinned
// to the role and balances move only through the merit ledger.
type ProfileUpdateRequest struct {
	Name        string `json:"name"`        // Display name
	CollegeName string `json:"collegeName"` // College or institution name
	Department  string `json:"department"`  // Department
	Semester    int    `json:"semester"`    // Current semester
	Bio         string `json:"bio"`         // Free-text bio
}

// UpdateProfileHandler updates the descriptive profile fields
func UpdateProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ProfileUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Name == "" {
			// The display name cannot be cleared
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			// Return not found if the user doesn't exist
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Apply only the writable fields
		user.Name = req.Name               // Display name
		user.CollegeName = req.CollegeName // College name
		user.Department = req.Department   // Department
		user.Semester = req.Semester       // Semester
		user.Bio = req.Bio                 // Bio
		// Persist via a column map so cleared fields are written too
		updates := map[string]any{
			"name":         user.Name,        // Display name
			"college_name": user.CollegeName, // College name
			"department":   user.Department,  // Department
			"semester":     user.Semester,    // Semester
			"bio":          user.Bio,         // Bio
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			// If the update fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		// Invalidate the profile cache
		ctx := context.Background() // Context for Redis operations
		_ = utils.DeleteCache(ctx, rdb, utils.ProfileKey(user.ID))
		c.JSON(http.StatusOK, gin.H{"user": user}) // Return the updated profile
	}
}

// LeaderboardEntry is one row of the points leaderboard
type LeaderboardEntry struct {
	ID     string `json:"id"`     // User ID
	Name   string `json:"name"`   // Display name
	Points int    `json:"points"` // Merit points
	XP     int    `json:"xp"`     // Experience
	Rank   int    `json:"rank"`   // 1-based rank
}

// LeaderboardHandler returns the top users ordered by points, then XP
func LeaderboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()  // Context for Redis operations
		var entries []LeaderboardEntry // Leaderboard rows
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, utils.LeaderboardKey, &entries)
		if err == nil && found {
			// Return cached leaderboard
			c.JSON(http.StatusOK, gin.H{"leaderboard": entries, "cached": true})
			return
		}
		var users []domain.User // Slice to hold users
		// Fetch the top users by points, XP breaking ties
		if err := db.Order("points desc, xp desc").Limit(leaderboardSize).Find(&users).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
			return
		}
		// Map users to leaderboard rows
		entries = make([]LeaderboardEntry, len(users))
		for i, u := range users {
			entries[i] = LeaderboardEntry{
				ID:     u.ID,     // User ID
				Name:   u.Name,   // Display name
				Points: u.Points, // Merit points
				XP:     u.XP,     // Experience
				Rank:   i + 1,    // 1-based rank
			}
		}
		_ = utils.SetCache(ctx, rdb, utils.LeaderboardKey, entries, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"leaderboard": entries, "cached": false})       // Return the leaderboard
	}
}
