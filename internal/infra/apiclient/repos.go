package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure repositories implement their ports.
var (
	_ domain.ClientRepository  = (*clientRepo)(nil)
	_ domain.TaskRepository    = (*taskRepo)(nil)
	_ domain.OrderRepository   = (*orderRepo)(nil)
	_ domain.AccountRepository = (*accountRepo)(nil)
	_ domain.ClientCreator     = (*Client)(nil)
	_ domain.StoreProvider     = (*Client)(nil)
)

// notFound turns a 404 into nil for Get lookups.
func notFound(err error) bool {
	var se *domain.StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// mapNotFound replaces a 404 with the entity's sentinel.
func mapNotFound(err, sentinel error) error {
	if notFound(err) {
		return sentinel
	}
	return err
}

func itemPath(collection, id string) string {
	return "/api/" + collection + "/" + url.PathEscape(id)
}

// CreateClient implements domain.ClientCreator.
func (c *Client) CreateClient(ctx context.Context, draft domain.ClientDraft) (*domain.Client, error) {
	var out struct {
		Client *domain.Client `json:"client"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/clients", draft, &out); err != nil {
		return nil, err
	}
	return out.Client, nil
}

type clientRepo struct{ c *Client }

func (r *clientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	var out struct {
		Clients []*domain.Client `json:"clients"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/api/clients", nil, &out); err != nil {
		return nil, err
	}
	return out.Clients, nil
}

func (r *clientRepo) Get(ctx context.Context, id string) (*domain.Client, error) {
	var out struct {
		Client *domain.Client `json:"client"`
	}
	err := r.c.do(ctx, http.MethodGet, itemPath("clients", id), nil, &out)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Client, nil
}

// clientBody is the full client sent on create and update. Unlike
// domain.Client it never omits fields, so a PATCH can clear them.
type clientBody struct {
	LastContact  *time.Time           `json:"lastContact,omitempty"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Company      string               `json:"company"`
	Notes        string               `json:"notes"`
	Status       domain.ClientStatus  `json:"status"`
	Tags         []string             `json:"tags"`
	Interactions []domain.Interaction `json:"interactions"`
}

func newClientBody(cl *domain.Client) clientBody {
	body := clientBody{
		Name:         cl.Name,
		Email:        cl.Email,
		Phone:        cl.Phone,
		Company:      cl.Company,
		Notes:        cl.Notes,
		Status:       cl.Status,
		Tags:         cl.Tags,
		Interactions: cl.Interactions,
	}
	if !cl.LastContact.IsZero() {
		lc := cl.LastContact
		body.LastContact = &lc
	}
	return body
}

func (r *clientRepo) Create(ctx context.Context, cl *domain.Client) error {
	var out struct {
		Client *domain.Client `json:"client"`
	}
	if err := r.c.do(ctx, http.MethodPost, "/api/clients", newClientBody(cl), &out); err != nil {
		return err
	}
	if out.Client != nil {
		*cl = *out.Client
	}
	return nil
}

func (r *clientRepo) Update(ctx context.Context, cl *domain.Client) error {
	err := r.c.do(ctx, http.MethodPatch, itemPath("clients", cl.ID), newClientBody(cl), nil)
	return mapNotFound(err, domain.ErrClientNotFound)
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	err := r.c.do(ctx, http.MethodDelete, itemPath("clients", id), nil, nil)
	return mapNotFound(err, domain.ErrClientNotFound)
}

type taskRepo struct{ c *Client }

func (r *taskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	var out struct {
		Tasks []*domain.Task `json:"tasks"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (r *taskRepo) Get(ctx context.Context, id string) (*domain.Task, error) {
	var out struct {
		Task *domain.Task `json:"task"`
	}
	err := r.c.do(ctx, http.MethodGet, itemPath("tasks", id), nil, &out)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Task, nil
}

func (r *taskRepo) Create(ctx context.Context, t *domain.Task) error {
	var out struct {
		Task *domain.Task `json:"task"`
	}
	if err := r.c.do(ctx, http.MethodPost, "/api/tasks", t, &out); err != nil {
		return err
	}
	if out.Task != nil {
		*t = *out.Task
	}
	return nil
}

func (r *taskRepo) Update(ctx context.Context, t *domain.Task) error {
	err := r.c.do(ctx, http.MethodPatch, itemPath("tasks", t.ID), t, nil)
	return mapNotFound(err, domain.ErrTaskNotFound)
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	err := r.c.do(ctx, http.MethodDelete, itemPath("tasks", id), nil, nil)
	return mapNotFound(err, domain.ErrTaskNotFound)
}

type orderRepo struct{ c *Client }

// orderBody carries the date in the string form the server parses.
type orderBody struct {
	Amount      float64            `json:"amount"`
	ClientID    string             `json:"clientId"`
	Product     string             `json:"product"`
	Description string             `json:"description"`
	Date        string             `json:"date"`
	Status      domain.OrderStatus `json:"status"`
}

func newOrderBody(o *domain.Order) orderBody {
	return orderBody{
		Amount:      o.Amount,
		ClientID:    o.ClientID,
		Product:     o.Product,
		Description: o.Description,
		Date:        o.Date.Format(time.RFC3339Nano),
		Status:      o.Status,
	}
}

func (r *orderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	var out struct {
		Orders []*domain.Order `json:"orders"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (r *orderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	var out struct {
		Order *domain.Order `json:"order"`
	}
	err := r.c.do(ctx, http.MethodGet, itemPath("orders", id), nil, &out)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Order, nil
}

func (r *orderRepo) Create(ctx context.Context, o *domain.Order) error {
	var out struct {
		Order *domain.Order `json:"order"`
	}
	if err := r.c.do(ctx, http.MethodPost, "/api/orders", newOrderBody(o), &out); err != nil {
		return err
	}
	if out.Order != nil {
		*o = *out.Order
	}
	return nil
}

func (r *orderRepo) Update(ctx context.Context, o *domain.Order) error {
	err := r.c.do(ctx, http.MethodPatch, itemPath("orders", o.ID), newOrderBody(o), nil)
	return mapNotFound(err, domain.ErrOrderNotFound)
}

func (r *orderRepo) Delete(ctx context.Context, id string) error {
	err := r.c.do(ctx, http.MethodDelete, itemPath("orders", id), nil, nil)
	return mapNotFound(err, domain.ErrOrderNotFound)
}

type accountRepo struct{ c *Client }

func (r *accountRepo) DeleteAll(ctx context.Context) error {
	return r.c.do(ctx, http.MethodDelete, "/api/account", nil, nil)
}
