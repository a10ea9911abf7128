package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// Order validation messages.
const (
	MsgOrderFieldsRequired = "product, clientId, amount, date are required"
	MsgOrderAmountNegative = "Amount must not be negative"
	MsgOrderStatusInvalid  = "Invalid order status"
)

// CreateOrderInput contains the parameters for recording an order.
// Fields are ordered to minimize memory padding.
type CreateOrderInput struct {
	Date        time.Time
	Amount      *float64
	ClientID    string
	Product     string
	Description string
	Status      domain.OrderStatus // Defaults to pending
}

// CreateOrderOutput contains the created order.
type CreateOrderOutput struct {
	Order *domain.Order
}

// CreateOrder records a purchase.
type CreateOrder struct {
	orders domain.OrderRepository
	logger domain.Logger
}

// NewCreateOrder creates a new CreateOrder use case.
func NewCreateOrder(orders domain.OrderRepository, logger domain.Logger) *CreateOrder {
	return &CreateOrder{orders: orders, logger: logger}
}

// Execute validates and stores the order.
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*CreateOrderOutput, error) {
	if strings.TrimSpace(in.Product) == "" || in.ClientID == "" || in.Amount == nil || in.Date.IsZero() {
		return nil, domain.NewValidationError(MsgOrderFieldsRequired)
	}
	if *in.Amount < 0 {
		return nil, domain.NewValidationError(MsgOrderAmountNegative)
	}
	status := in.Status
	if status == "" {
		status = domain.OrderPending
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError(MsgOrderStatusInvalid)
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		ClientID:    in.ClientID,
		Product:     in.Product,
		Description: in.Description,
		Amount:      *in.Amount,
		Date:        in.Date,
		Status:      status,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("order", fmt.Sprintf("created %s for client %s", order.ID, order.ClientID))
	}
	return &CreateOrderOutput{Order: order}, nil
}
