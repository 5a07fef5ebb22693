package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// In production the raw error text is kept out of response bodies
var prodMode bool

// SetProdMode controls whether 500 responses echo the underlying error
func SetProdMode(prod bool) {
	prodMode = prod
}

// All failures use the same envelope: {"error": message}. 401 means the
// token is missing or bad, 403 means the token is fine but the entity
// belongs to someone else.

// badRequest rejects a request before any persistence call
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// notFound reports a missing entity
func notFound(c *gin.Context, entity string) {
	c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
}

// notOwned reports a valid token whose user does not own the entity
func notOwned(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
}

// conflict reports a uniqueness collision, e.g. a duplicate email
func conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"error": msg})
}

// serverError logs the failure and returns a generic 500. The raw error
// message is only leaked outside production mode.
func serverError(c *gin.Context, err error, msg string) {
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error(msg)
	body := gin.H{"error": msg}
	if !prodMode {
		body["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
