package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/clientive/clientive/internal/domain"
)

// Messages for malformed requests.
const (
	msgInvalidJSON   = "Invalid JSON body"
	msgNoFields      = "No fields to update"
	msgNotFound      = "Not found"
	msgTooManyRequests = "Too many requests. Please try again later."
)

// bindJSON decodes the body into dst. Struct-tag validation failures are
// answered with requiredMsg, anything else with msgInvalidJSON.
// Returns false when a response has been written.
func bindJSON(c *gin.Context, dst any, requiredMsg string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && requiredMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": requiredMsg})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
	return false
}

// writeError maps a use case error onto a status code and JSON body.
func (s *Server) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoFields})
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		s.opts.Logger.Error("http", c.Request.Method+" "+c.FullPath()+": "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.FriendlyError(err)})
	}
}
