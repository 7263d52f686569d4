package api

import (
	"net/http"                 // HTTP status codes
	"cognihub/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ListCommunitiesHandler returns the communities of the viewer's network.
// Communities are strictly network-local: there is no PUBLIC tier for them.
func ListCommunitiesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		network := viewerNetwork(c)     // Viewer's network tier
		var communities []domain.Community // Slice to hold communities
		// Fetch communities of this network, largest first
		if err := db.Where("type = ?", network).
			Order("members desc").
			Find(&communities).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch communities"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"communities": communities}) // Return the communities
	}
}
