package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure clientRepo implements domain.ClientRepository.
var _ domain.ClientRepository = (*clientRepo)(nil)

type clientRepo struct {
	db    *DB
	owner string
}

const clientColumns = `id, name, email, phone, company, notes, status, tags, interactions, last_contact`

func (r *clientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	rows, err := r.db.query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id = ? ORDER BY created_at, id`, r.owner)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	clients := []*domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepo) Get(ctx context.Context, id string) (*domain.Client, error) {
	rows, err := r.db.query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id = ? AND id = ?`, r.owner, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanClient(rows)
}

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	tags, interactions, err := encodeClientLists(c)
	if err != nil {
		return err
	}
	_, err = r.db.exec(ctx,
		`INSERT INTO clients (id, owner_id, name, email, phone, company, notes, status, tags, interactions, last_contact, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, r.owner, c.Name, c.Email, c.Phone, c.Company, c.Notes, string(c.Status),
		tags, interactions, formatTime(c.LastContact), formatTime(r.db.now()))
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	tags, interactions, err := encodeClientLists(c)
	if err != nil {
		return err
	}
	err = r.db.execOne(ctx, domain.ErrClientNotFound,
		`UPDATE clients SET name = ?, email = ?, phone = ?, company = ?, notes = ?, status = ?,
		 tags = ?, interactions = ?, last_contact = ? WHERE owner_id = ? AND id = ?`,
		c.Name, c.Email, c.Phone, c.Company, c.Notes, string(c.Status),
		tags, interactions, formatTime(c.LastContact), r.owner, c.ID)
	if err != nil {
		return fmt.Errorf("update client %s: %w", c.ID, err)
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	err := r.db.execOne(ctx, domain.ErrClientNotFound,
		`DELETE FROM clients WHERE owner_id = ? AND id = ?`, r.owner, id)
	if err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	return nil
}

func encodeClientLists(c *domain.Client) (string, string, error) {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	interactions := c.Interactions
	if interactions == nil {
		interactions = []domain.Interaction{}
	}
	t, err := json.Marshal(tags)
	if err != nil {
		return "", "", fmt.Errorf("encode tags: %w", err)
	}
	i, err := json.Marshal(interactions)
	if err != nil {
		return "", "", fmt.Errorf("encode interactions: %w", err)
	}
	return string(t), string(i), nil
}

func scanClient(rows *sql.Rows) (*domain.Client, error) {
	var (
		c            domain.Client
		status       string
		tags         string
		interactions string
		lastContact  string
	)
	if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes,
		&status, &tags, &interactions, &lastContact); err != nil {
		return nil, fmt.Errorf("scan client: %w", err)
	}
	c.Status = domain.ClientStatus(status)
	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of client %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(interactions), &c.Interactions); err != nil {
		return nil, fmt.Errorf("decode interactions of client %s: %w", c.ID, err)
	}
	t, err := parseTime(lastContact)
	if err != nil {
		return nil, fmt.Errorf("decode last contact of client %s: %w", c.ID, err)
	}
	c.LastContact = t
	return &c, nil
}
