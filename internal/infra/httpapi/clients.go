package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

// createClientRequest is the body of POST /api/clients.
type createClientRequest struct {
	LastContact  *time.Time           `json:"lastContact"`
	Name         string               `json:"name" binding:"required"`
	Email        string               `json:"email" binding:"required"`
	Phone        string               `json:"phone"`
	Company      string               `json:"company"`
	Notes        string               `json:"notes"`
	Status       domain.ClientStatus  `json:"status"`
	Tags         []string             `json:"tags"`
	Interactions []domain.Interaction `json:"interactions"`
}

// updateClientRequest is the body of PATCH /api/clients/:id. Absent fields
// are left unchanged.
type updateClientRequest struct {
	Name         *string               `json:"name"`
	Email        *string               `json:"email"`
	Phone        *string               `json:"phone"`
	Company      *string               `json:"company"`
	Notes        *string               `json:"notes"`
	Status       *domain.ClientStatus  `json:"status"`
	LastContact  *time.Time            `json:"lastContact"`
	Tags         *[]string             `json:"tags"`
	Interactions *[]domain.Interaction `json:"interactions"`
}

func (s *Server) listClients(c *gin.Context) {
	uc := usecase.NewListClients(s.store(c).Clients)
	out, err := uc.Execute(c.Request.Context(), usecase.ListClientsInput{
		Query:  c.Query("q"),
		Tag:    c.Query("tag"),
		Status: domain.ClientStatus(c.Query("status")),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": out.Clients})
}

func (s *Server) getClient(c *gin.Context) {
	client, err := s.store(c).Clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if client == nil {
		s.writeError(c, domain.ErrClientNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

func (s *Server) createClient(c *gin.Context) {
	var req createClientRequest
	if !bindJSON(c, &req, usecase.MsgNameEmailRequired) {
		return
	}

	in := usecase.CreateClientInput{
		Draft: domain.ClientDraft{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Company: req.Company,
			Notes:   req.Notes,
			Status:  req.Status,
			Tags:    req.Tags,
		},
		Interactions: req.Interactions,
	}
	if req.LastContact != nil {
		in.LastContact = *req.LastContact
	}

	uc := usecase.NewCreateClient(s.store(c).Clients, s.opts.Clock, s.opts.Logger)
	out, err := uc.Execute(c.Request.Context(), in)
	s.opts.Metrics.ClientCreated(err == nil)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": out.Client})
}

func (s *Server) updateClient(c *gin.Context) {
	var req updateClientRequest
	if !bindJSON(c, &req, "") {
		return
	}

	uc := usecase.NewUpdateClient(s.store(c).Clients)
	out, err := uc.Execute(c.Request.Context(), usecase.UpdateClientInput{
		ID:           c.Param("id"),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Notes:        req.Notes,
		Status:       req.Status,
		LastContact:  req.LastContact,
		Tags:         req.Tags,
		Interactions: req.Interactions,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": out.Client})
}

func (s *Server) deleteClient(c *gin.Context) {
	uc := usecase.NewDeleteClient(s.store(c).Clients, s.opts.Logger)
	if err := uc.Execute(c.Request.Context(), usecase.DeleteClientInput{ID: c.Param("id")}); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
