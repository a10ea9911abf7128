package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientive/clientive/internal/usecase"
)

func (s *Server) deleteAccount(c *gin.Context) {
	if err := usecase.NewDeleteAccount(s.store(c).Account, s.opts.Logger).Execute(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
