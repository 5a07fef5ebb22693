package api

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework

	"gainz_journal/internal/middleware"
)

// parseIDParam reads the :id route parameter as an entity id
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseIDQuery reads a required query parameter as an entity id
func parseIDQuery(c *gin.Context, name, missingMsg string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		badRequest(c, missingMsg)
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// requesterID returns the authenticated user's id from the gin context
func requesterID(c *gin.Context) uint {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
