package api

import (
	"errors"
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"gainz_journal/internal/domain"
	"gainz_journal/internal/middleware"
	"gainz_journal/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the body for POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// userJSON shapes a user for responses without its nested associations
func userJSON(user *domain.User) gin.H {
	return gin.H{
		"id":     user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"gender": user.Gender,
	}
}

// activeProfiles returns the user's currently active profiles
func activeProfiles(db *gorm.DB, userID uint) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := db.Where("user_id = ? AND active = ?", userID, true).Find(&profiles).Error
	return profiles, err
}

// currentProfileID picks the client's current profile id from the active
// list, or nil when the user has no profiles left
func currentProfileID(profiles []domain.Profile) *uint {
	if len(profiles) == 0 {
		return nil
	}
	return &profiles[0].ID
}

// RegisterHandler creates a user together with their default profile.
// The default profile is created here, at registration, and is always
// active; no other endpoint creates profiles implicitly.
func RegisterHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Email == "" || req.Password == "" || req.Name == "" {
			badRequest(c, "Please provide all required fields")
			return
		}
		if !emailPattern.MatchString(req.Email) {
			badRequest(c, "Invalid email address")
			return
		}
		// Check if user exists
		var existing domain.User
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
			conflict(c, "User already exists")
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			serverError(c, err, "Failed to hash password")
			return
		}
		user := domain.User{
			Email:    strings.ToLower(req.Email),
			Password: string(hash),
			Name:     req.Name,
			Profiles: []domain.Profile{
				{Name: req.Name, Active: true}, // First profile is forced active
			},
		}
		// User and default profile are created together. A concurrent
		// register can still lose the race on the unique email column.
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				conflict(c, "User already exists")
				return
			}
			serverError(c, err, "Failed to register user")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("User registered")
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			serverError(c, err, "Failed to generate token")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"user":     userJSON(&user),
			"profiles": user.Profiles,
			"token":    token,
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token together
// with their active profile for client state bootstrap
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Google-only accounts have no password to compare against
		if user.Password == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		profiles, err := activeProfiles(db, user.ID)
		if err != nil {
			serverError(c, err, "Failed to load profiles")
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			serverError(c, err, "Failed to generate token")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":             userJSON(&user),
			"token":            token,
			"currentProfileId": currentProfileID(profiles),
			"profiles":         profiles,
		})
	}
}

// GetUserHandler returns the authenticated user and their active profile
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		profiles, err := activeProfiles(db, user.ID)
		if err != nil {
			serverError(c, err, "Failed to load profiles")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":             userJSON(user),
			"profiles":         profiles,
			"currentProfileId": currentProfileID(profiles),
		})
	}
}
