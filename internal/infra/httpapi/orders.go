package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

const msgInvalidDate = "Invalid date"

type createOrderRequest struct {
	Amount      *float64           `json:"amount" binding:"required"`
	ClientID    string             `json:"clientId" binding:"required"`
	Product     string             `json:"product" binding:"required"`
	Description string             `json:"description"`
	Date        string             `json:"date" binding:"required"`
	Status      domain.OrderStatus `json:"status"`
}

type updateOrderRequest struct {
	Amount      *float64            `json:"amount"`
	ClientID    *string             `json:"clientId"`
	Product     *string             `json:"product"`
	Description *string             `json:"description"`
	Date        *string             `json:"date"`
	Status      *domain.OrderStatus `json:"status"`
}

// parseOrderDate accepts the same ISO 8601 forms as task due dates.
func (s *Server) parseOrderDate(v string) (time.Time, bool) {
	return domain.ParseDueDate(v, s.opts.Location)
}

func (s *Server) listOrders(c *gin.Context) {
	out, err := usecase.NewListOrders(s.store(c).Orders).Execute(c.Request.Context(), usecase.ListOrdersInput{
		ClientID: c.Query("clientId"),
		Status:   domain.OrderStatus(c.Query("status")),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": out.Orders})
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.store(c).Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if order == nil {
		s.writeError(c, domain.ErrOrderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if !bindJSON(c, &req, usecase.MsgOrderFieldsRequired) {
		return
	}
	date, ok := s.parseOrderDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidDate})
		return
	}

	uc := usecase.NewCreateOrder(s.store(c).Orders, s.opts.Logger)
	out, err := uc.Execute(c.Request.Context(), usecase.CreateOrderInput{
		ClientID:    req.ClientID,
		Product:     req.Product,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Status:      req.Status,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": out.Order})
}

func (s *Server) updateOrder(c *gin.Context) {
	var req updateOrderRequest
	if !bindJSON(c, &req, "") {
		return
	}
	in := usecase.UpdateOrderInput{
		ID:          c.Param("id"),
		Amount:      req.Amount,
		ClientID:    req.ClientID,
		Product:     req.Product,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.Date != nil {
		date, ok := s.parseOrderDate(*req.Date)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidDate})
			return
		}
		in.Date = &date
	}

	out, err := usecase.NewUpdateOrder(s.store(c).Orders).Execute(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": out.Order})
}

func (s *Server) deleteOrder(c *gin.Context) {
	if err := usecase.NewDeleteOrder(s.store(c).Orders).Execute(c.Request.Context(), usecase.DeleteOrderInput{ID: c.Param("id")}); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
