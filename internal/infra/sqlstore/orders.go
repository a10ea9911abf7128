package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure orderRepo implements domain.OrderRepository.
var _ domain.OrderRepository = (*orderRepo)(nil)

type orderRepo struct {
	db    *DB
	owner string
}

const orderColumns = `id, client_id, product, description, status, amount, date`

func (r *orderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.db.query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE owner_id = ? ORDER BY date DESC, id`, r.owner)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	rows, err := r.db.query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE owner_id = ? AND id = ?`, r.owner, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanOrder(rows)
}

func (r *orderRepo) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	_, err := r.db.exec(ctx,
		`INSERT INTO orders (id, owner_id, client_id, product, description, status, amount, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, r.owner, o.ClientID, o.Product, o.Description, string(o.Status), o.Amount, formatTime(o.Date))
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *orderRepo) Update(ctx context.Context, o *domain.Order) error {
	err := r.db.execOne(ctx, domain.ErrOrderNotFound,
		`UPDATE orders SET client_id = ?, product = ?, description = ?, status = ?, amount = ?, date = ?
		 WHERE owner_id = ? AND id = ?`,
		o.ClientID, o.Product, o.Description, string(o.Status), o.Amount, formatTime(o.Date), r.owner, o.ID)
	if err != nil {
		return fmt.Errorf("update order %s: %w", o.ID, err)
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id string) error {
	err := r.db.execOne(ctx, domain.ErrOrderNotFound,
		`DELETE FROM orders WHERE owner_id = ? AND id = ?`, r.owner, id)
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
		date   string
	)
	if err := rows.Scan(&o.ID, &o.ClientID, &o.Product, &o.Description, &status, &o.Amount, &date); err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Status = domain.OrderStatus(status)
	t, err := parseTime(date)
	if err != nil {
		return nil, fmt.Errorf("decode date of order %s: %w", o.ID, err)
	}
	o.Date = t
	return &o, nil
}
