package domain

import (
	"context"
	"time"
)

// ClientRepository manages client persistence for one owner.
type ClientRepository interface {
	// List retrieves every client, oldest first.
	List(ctx context.Context) ([]*Client, error)

	// Get retrieves a client by ID. Returns nil if not found.
	Get(ctx context.Context, id string) (*Client, error)

	// Create stores a new client. Implementations may overwrite fields
	// with server-assigned values (ID, defaults).
	Create(ctx context.Context, client *Client) error

	// Update replaces an existing client.
	Update(ctx context.Context, client *Client) error

	// Delete removes a client by ID.
	Delete(ctx context.Context, id string) error
}

// TaskRepository manages task persistence for one owner.
type TaskRepository interface {
	// List retrieves every task ordered by due date.
	List(ctx context.Context) ([]*Task, error)

	// Get retrieves a task by ID. Returns nil if not found.
	Get(ctx context.Context, id string) (*Task, error)

	// Create stores a new task.
	Create(ctx context.Context, task *Task) error

	// Update replaces an existing task.
	Update(ctx context.Context, task *Task) error

	// Delete removes a task by ID.
	Delete(ctx context.Context, id string) error
}

// OrderRepository manages order persistence for one owner.
type OrderRepository interface {
	// List retrieves every order, newest first.
	List(ctx context.Context) ([]*Order, error)

	// Get retrieves an order by ID. Returns nil if not found.
	Get(ctx context.Context, id string) (*Order, error)

	// Create stores a new order.
	Create(ctx context.Context, order *Order) error

	// Update replaces an existing order.
	Update(ctx context.Context, order *Order) error

	// Delete removes an order by ID.
	Delete(ctx context.Context, id string) error
}

// AccountRepository manages data that spans every entity of an owner.
type AccountRepository interface {
	// DeleteAll removes every record belonging to the owner.
	DeleteAll(ctx context.Context) error
}

// Store groups the repositories of one owner. Every read and write through
// a Store is confined to that owner's rows.
type Store struct {
	Clients ClientRepository
	Tasks   TaskRepository
	Orders  OrderRepository
	Account AccountRepository
}

// StoreProvider hands out owner-scoped stores.
type StoreProvider interface {
	// ForOwner returns the store for the given principal.
	ForOwner(owner string) Store

	// Ping checks that the backing database is reachable.
	Ping(ctx context.Context) error
}

// ClientCreator is the client creation contract consumed by imports and
// the add command. Any returned error counts as a failure for that draft.
type ClientCreator interface {
	CreateClient(ctx context.Context, draft ClientDraft) (*Client, error)
}

// PendingClient is a draft that could not reach the server and waits in the
// local outbox.
// Fields are ordered to minimize memory padding.
type PendingClient struct {
	QueuedAt time.Time   `json:"queuedAt"`
	Draft    ClientDraft `json:"draft"`
	ID       string      `json:"id"`
	Reason   string      `json:"reason"`
	Attempts int         `json:"attempts"`
}

// Outbox keeps local-only drafts until they are synced.
type Outbox interface {
	// Enqueue stores a pending draft.
	Enqueue(p PendingClient) error

	// List returns pending drafts in the order they were queued.
	List() ([]PendingClient, error)

	// Remove deletes a pending draft by ID.
	Remove(id string) error

	// Update replaces a pending draft (e.g. to bump Attempts).
	Update(p PendingClient) error
}

// MailMessage is an outgoing email.
type MailMessage struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	// Issue returns a signed token for owner and its expiry.
	Issue(owner string, ttl time.Duration) (string, time.Time, error)

	// Verify returns the owner a token was issued for.
	// Returns ErrUnauthorized for any invalid or expired token.
	Verify(token string) (string, error)
}

// RateLimiter throttles requests per key.
type RateLimiter interface {
	// Allow consumes one request for key. When the request is refused,
	// retryAfter is how long the caller should wait.
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// Logger writes categorized log entries.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults, global, local).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ConfigInfo describes one config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// GetLocalConfigInfo returns the working-directory config file.
	GetLocalConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitLocalConfig writes a starter config to the working directory.
	InitLocalConfig(cfg *Config) error

	// InitGlobalConfig writes a starter config to the global directory.
	InitGlobalConfig(cfg *Config) error
}
