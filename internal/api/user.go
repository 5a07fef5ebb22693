package api

import (
	"errors"
	"net/http" // HTTP status codes

	"gainz_journal/internal/middleware"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// UpdateUserRequest is the body for PUT /api/users/me. Only supplied
// fields are applied; email is immutable through this endpoint.
type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Gender *string `json:"gender"`
}

// UpdateUserHandler partially updates the authenticated user's name and
// gender
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Name == nil && req.Gender == nil {
			badRequest(c, "Please provide name or gender to update")
			return
		}
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Gender != nil {
			updates["gender"] = *req.Gender
		}
		if err := db.Model(user).Updates(updates).Error; err != nil {
			// A unique-column collision is a client error, not a 500
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				conflict(c, "Email already exists")
				return
			}
			serverError(c, err, "Failed to update user")
			return
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Gender != nil {
			user.Gender = *req.Gender
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
		}).Info("User updated")
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
