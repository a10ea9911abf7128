package usecase

import (
	"context"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// DeleteOrderInput contains the parameters for deleting an order.
type DeleteOrderInput struct {
	ID string
}

// DeleteOrder removes an order.
type DeleteOrder struct {
	orders domain.OrderRepository
}

// NewDeleteOrder creates a new DeleteOrder use case.
func NewDeleteOrder(orders domain.OrderRepository) *DeleteOrder {
	return &DeleteOrder{orders: orders}
}

// Execute deletes the order.
func (uc *DeleteOrder) Execute(ctx context.Context, in DeleteOrderInput) error {
	if err := uc.orders.Delete(ctx, in.ID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
