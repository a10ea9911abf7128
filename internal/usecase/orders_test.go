package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/testutil"
	"github.com/clientive/clientive/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v float64) *float64 { return &v }

func TestCreateOrder_Execute(t *testing.T) {
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults to pending", func(t *testing.T) {
		repo := testutil.NewMockOrderRepository()

		out, err := usecase.NewCreateOrder(repo, nil).Execute(context.Background(), usecase.CreateOrderInput{
			ClientID: "c1", Product: "Plan", Amount: amount(0), Date: date,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.OrderPending, out.Order.Status)
		assert.Zero(t, out.Order.Amount)
		assert.Len(t, repo.Orders, 1)
	})

	tests := []struct {
		name string
		in   usecase.CreateOrderInput
		msg  string
	}{
		{name: "missing amount", in: usecase.CreateOrderInput{ClientID: "c1", Product: "P", Date: date}, msg: usecase.MsgOrderFieldsRequired},
		{name: "missing date", in: usecase.CreateOrderInput{ClientID: "c1", Product: "P", Amount: amount(1)}, msg: usecase.MsgOrderFieldsRequired},
		{name: "negative", in: usecase.CreateOrderInput{ClientID: "c1", Product: "P", Amount: amount(-1), Date: date}, msg: usecase.MsgOrderAmountNegative},
		{name: "bad status", in: usecase.CreateOrderInput{ClientID: "c1", Product: "P", Amount: amount(1), Date: date, Status: "lost"}, msg: usecase.MsgOrderStatusInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := usecase.NewCreateOrder(testutil.NewMockOrderRepository(), nil).Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestUpdateOrder_Execute(t *testing.T) {
	repo := testutil.NewMockOrderRepository(&domain.Order{ID: "o1", Product: "Plan", Amount: 10, Status: domain.OrderPending})
	uc := usecase.NewUpdateOrder(repo)
	status := domain.OrderCompleted

	out, err := uc.Execute(context.Background(), usecase.UpdateOrderInput{ID: "o1", Status: &status, Amount: amount(12.5)})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, out.Order.Status)
	assert.InDelta(t, 12.5, out.Order.Amount, 1e-9)

	_, err = uc.Execute(context.Background(), usecase.UpdateOrderInput{ID: "o1"})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)

	_, err = uc.Execute(context.Background(), usecase.UpdateOrderInput{ID: "o1", Amount: amount(-2)})
	assert.EqualError(t, err, usecase.MsgOrderAmountNegative)

	_, err = uc.Execute(context.Background(), usecase.UpdateOrderInput{ID: "zz", Status: &status})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestDeleteOrder_Execute(t *testing.T) {
	repo := testutil.NewMockOrderRepository(&domain.Order{ID: "o1"})
	uc := usecase.NewDeleteOrder(repo)

	require.NoError(t, uc.Execute(context.Background(), usecase.DeleteOrderInput{ID: "o1"}))
	assert.ErrorIs(t, uc.Execute(context.Background(), usecase.DeleteOrderInput{ID: "o1"}), domain.ErrOrderNotFound)
}

func TestListOrders_Execute(t *testing.T) {
	repo := testutil.NewMockOrderRepository(
		&domain.Order{ID: "o1", ClientID: "c1", Amount: 10, Status: domain.OrderCompleted},
		&domain.Order{ID: "o2", ClientID: "c1", Amount: 5, Status: domain.OrderCancelled},
		&domain.Order{ID: "o3", ClientID: "c2", Amount: 7.5, Status: domain.OrderPending},
	)
	uc := usecase.NewListOrders(repo)

	out, err := uc.Execute(context.Background(), usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Len(t, out.Orders, 3)
	assert.InDelta(t, 17.5, out.Total, 1e-9)

	out, err = uc.Execute(context.Background(), usecase.ListOrdersInput{ClientID: "c1"})
	require.NoError(t, err)
	assert.Len(t, out.Orders, 2)
	assert.InDelta(t, 10, out.Total, 1e-9)
}

func TestDeleteAccount_Execute(t *testing.T) {
	account := &testutil.MockAccountRepository{}
	logger := &testutil.MockLogger{}

	require.NoError(t, usecase.NewDeleteAccount(account, logger).Execute(context.Background()))
	assert.True(t, account.Deleted)
	require.Len(t, logger.Entries, 1)
	assert.Equal(t, "WARN", logger.Entries[0].Level)
}
