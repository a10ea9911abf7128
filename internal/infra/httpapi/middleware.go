package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/metrics"
)

// requestLogger logs every request and records its latency.
func requestLogger(logger domain.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.ObserveRequest(c.Request.Method, route, status, d)
		logger.Debug("http", fmt.Sprintf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, d.Round(time.Millisecond)))
	}
}

// bearerToken extracts the access token from the Authorization header.
func bearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// feedToken is bearerToken with a fallback to the token query parameter,
// for calendar clients that cannot set headers. Only the feed accepts it.
func feedToken(c *gin.Context) string {
	if c.GetHeader("Authorization") != "" {
		return bearerToken(c)
	}
	return c.Query("token")
}

// authenticate resolves the owner of token.
func authenticate(tokens domain.TokenService, token string) (string, error) {
	if token == "" || tokens == nil {
		return "", domain.ErrUnauthorized
	}
	return tokens.Verify(token)
}

// requireOwner rejects requests without a valid token.
func requireOwner(tokens domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, err := authenticate(tokens, bearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}
