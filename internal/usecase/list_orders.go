package usecase

import (
	"context"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// ListOrdersInput contains the optional filters.
type ListOrdersInput struct {
	ClientID string
	Status   domain.OrderStatus
}

// ListOrdersOutput contains the matching orders, newest first, and their total.
type ListOrdersOutput struct {
	Orders []*domain.Order
	Total  float64
}

// ListOrders lists orders.
type ListOrders struct {
	orders domain.OrderRepository
}

// NewListOrders creates a new ListOrders use case.
func NewListOrders(orders domain.OrderRepository) *ListOrders {
	return &ListOrders{orders: orders}
}

// Execute returns the matching orders. Cancelled orders are listed but not
// counted in Total.
func (uc *ListOrders) Execute(ctx context.Context, in ListOrdersInput) (*ListOrdersOutput, error) {
	all, err := uc.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := &ListOrdersOutput{Orders: make([]*domain.Order, 0, len(all))}
	for _, o := range all {
		if in.ClientID != "" && o.ClientID != in.ClientID {
			continue
		}
		if in.Status != "" && o.Status != in.Status {
			continue
		}
		out.Orders = append(out.Orders, o)
		if o.Status != domain.OrderCancelled {
			out.Total += o.Amount
		}
	}
	return out, nil
}
