package api

import (
	"net/http"                // HTTP status codes
	"regexp"                  // Regular expressions
	"strings"                 // String manipulation
	"cognihub/internal/domain" // Importing domain models
	"cognihub/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // UUID generation
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Starter balance granted at registration
const (
	starterPoints = 500 // Initial merit points
	starterXP     = 100 // Initial XP
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`     // Display name must be provided
	Email       string `json:"email" binding:"required"`    // Email must be provided
	Password    string `json:"password" binding:"required"` // Password must be provided
	Role        string `json:"role"`                        // STUDENT, TEACHER or OUTSIDER; defaults to STUDENT
	CollegeName string `json:"collegeName"`                 // Optional profile field
	Department  string `json:"department"`                  // Optional profile field
	Semester    int    `json:"semester"`                    // Optional profile field
	Bio         string `json:"bio"`                         // Optional profile field
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the JWT and the authenticated user record
type AuthResponse struct {
	Token string      `json:"token"` // JWT token
	User  domain.User `json:"user"`  // Authenticated user
}

// emailPattern is a pragmatic email shape check, not full RFC validation
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isValidEmail checks the email shape
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email) // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 64 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64 // Return true if length is valid
}

// RegisterHandler creates a new account. The network tier is derived from
// the chosen role (outsiders land on GENERAL, everyone else on EDU) and the
// starter balance is granted. Admin accounts are not self-serve.
func RegisterHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate email and password
		if !isValidEmail(req.Email) {
			// If email is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		// Default and validate the role
		role := req.Role
		if role == "" {
			role = domain.RoleStudent // Default role
		}
		if !domain.ValidRole(role) || role == domain.RoleAdmin {
			// Unknown roles and self-serve admin signups are rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create user with lowercase email to ensure uniqueness
		user := domain.User{
			ID:          uuid.NewString(),            // UUID primary key
			Name:        req.Name,                    // Display name
			Email:       strings.ToLower(req.Email),  // Login identity
			Password:    string(hash),                // Hashed password
			Role:        role,                        // Validated role
			Network:     domain.NetworkForRole(role), // Derived network tier
			Points:      starterPoints,               // Starter merit points
			XP:          starterXP,                   // Starter XP
			CollegeName: req.CollegeName,             // Optional profile field
			Department:  req.Department,              // Optional profile field
			Semester:    req.Semester,                // Optional profile field
			Bio:         req.Bio,                     // Optional profile field
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// If creation fails (e.g., duplicate email), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,      // New user ID
			"role":    user.Role,    // Chosen role
			"network": user.Network, // Derived network
		}).Info("User registered") // Log registration
		// Return the token and user in the response
		c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token and user in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}
