package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// UpdateOrderInput contains the fields to change. Nil means unchanged.
type UpdateOrderInput struct {
	Date        *time.Time
	Amount      *float64
	ClientID    *string
	Product     *string
	Description *string
	Status      *domain.OrderStatus
	ID          string
}

// UpdateOrderOutput contains the updated order.
type UpdateOrderOutput struct {
	Order *domain.Order
}

// UpdateOrder applies a partial update to an order.
type UpdateOrder struct {
	orders domain.OrderRepository
}

// NewUpdateOrder creates a new UpdateOrder use case.
func NewUpdateOrder(orders domain.OrderRepository) *UpdateOrder {
	return &UpdateOrder{orders: orders}
}

// Execute updates the order.
func (uc *UpdateOrder) Execute(ctx context.Context, in UpdateOrderInput) (*UpdateOrderOutput, error) {
	if in.Date == nil && in.Amount == nil && in.ClientID == nil && in.Product == nil &&
		in.Description == nil && in.Status == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	order, err := uc.orders.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	if in.Product != nil {
		if strings.TrimSpace(*in.Product) == "" {
			return nil, domain.NewValidationError(MsgOrderFieldsRequired)
		}
		order.Product = *in.Product
	}
	if in.ClientID != nil {
		if *in.ClientID == "" {
			return nil, domain.NewValidationError(MsgOrderFieldsRequired)
		}
		order.ClientID = *in.ClientID
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, domain.NewValidationError(MsgOrderAmountNegative)
		}
		order.Amount = *in.Amount
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, domain.NewValidationError(MsgOrderFieldsRequired)
		}
		order.Date = *in.Date
	}
	if in.Description != nil {
		order.Description = *in.Description
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, domain.NewValidationError(MsgOrderStatusInvalid)
		}
		order.Status = *in.Status
	}

	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return &UpdateOrderOutput{Order: order}, nil
}
