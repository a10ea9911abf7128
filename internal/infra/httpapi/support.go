package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/ratelimit"
	"github.com/clientive/clientive/internal/usecase"
)

type supportRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// clientIP returns the first X-Forwarded-For entry.
func clientIP(c *gin.Context) string {
	first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
	if ip := strings.TrimSpace(first); ip != "" {
		return ip
	}
	return usecase.UnknownSupportPeer
}

func (s *Server) handleSupport(c *gin.Context) {
	if s.opts.Support == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	key := clientIP(c)

	var req supportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed requests still count against the limit.
		if admitErr := s.opts.Support.Admit(key); admitErr != nil {
			s.supportLimited(c, admitErr)
			return
		}
		s.opts.Metrics.SupportRequest("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return
	}

	out, err := s.opts.Support.Execute(c.Request.Context(), usecase.SendSupportInput{
		ClientKey: key,
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			s.supportLimited(c, err)
			return
		}
		s.opts.Metrics.SupportRequest("invalid")
		s.writeError(c, err)
		return
	}

	outcome := "logged"
	if out.Emailed {
		outcome = "emailed"
	}
	s.opts.Metrics.SupportRequest(outcome)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) supportLimited(c *gin.Context, err error) {
	s.opts.Metrics.SupportRequest("limited")
	var rl *domain.RateLimitError
	if errors.As(err, &rl) {
		c.Header("Retry-After", strconv.Itoa(ratelimit.RetryAfterSeconds(rl.RetryAfter)))
	}
	c.JSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyRequests})
}
