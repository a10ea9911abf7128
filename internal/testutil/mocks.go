// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockClientRepository is a test double for domain.ClientRepository.
// Clients are kept in insertion order.
// Fields are ordered to minimize memory padding.
type MockClientRepository struct {
	Clients   []*domain.Client
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	nextID    int
}

// NewMockClientRepository creates an empty MockClientRepository.
func NewMockClientRepository(clients ...*domain.Client) *MockClientRepository {
	return &MockClientRepository{Clients: clients}
}

// List returns every client.
func (m *MockClientRepository) List(_ context.Context) ([]*domain.Client, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Clients), nil
}

// Get retrieves a client by ID.
func (m *MockClientRepository) Get(_ context.Context, id string) (*domain.Client, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	c, _ := domain.FindClient(m.Clients, id)
	return c, nil
}

// Create stores a client, assigning "c<n>" when the ID is empty.
func (m *MockClientRepository) Create(_ context.Context, c *domain.Client) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if c.ID == "" {
		m.nextID++
		c.ID = fmt.Sprintf("c%d", m.nextID)
	}
	m.Clients = append(m.Clients, c)
	return nil
}

// Update replaces a client.
func (m *MockClientRepository) Update(_ context.Context, c *domain.Client) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, existing := range m.Clients {
		if existing.ID == c.ID {
			m.Clients[i] = c
			return nil
		}
	}
	return domain.ErrClientNotFound
}

// Delete removes a client.
func (m *MockClientRepository) Delete(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, existing := range m.Clients {
		if existing.ID == id {
			m.Clients = slices.Delete(m.Clients, i, i+1)
			return nil
		}
	}
	return domain.ErrClientNotFound
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks     []*domain.Task
	ListErr   error
	CreateErr error
	UpdateErr error
	nextID    int
}

// NewMockTaskRepository creates a MockTaskRepository holding tasks.
func NewMockTaskRepository(tasks ...*domain.Task) *MockTaskRepository {
	return &MockTaskRepository{Tasks: tasks}
}

// List returns every task in insertion order.
func (m *MockTaskRepository) List(_ context.Context) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Tasks), nil
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(_ context.Context, id string) (*domain.Task, error) {
	for _, t := range m.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

// Create stores a task, assigning "t<n>" when the ID is empty.
func (m *MockTaskRepository) Create(_ context.Context, t *domain.Task) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if t.ID == "" {
		m.nextID++
		t.ID = fmt.Sprintf("t%d", m.nextID)
	}
	m.Tasks = append(m.Tasks, t)
	return nil
}

// Update replaces a task.
func (m *MockTaskRepository) Update(_ context.Context, t *domain.Task) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, existing := range m.Tasks {
		if existing.ID == t.ID {
			m.Tasks[i] = t
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

// Delete removes a task.
func (m *MockTaskRepository) Delete(_ context.Context, id string) error {
	for i, existing := range m.Tasks {
		if existing.ID == id {
			m.Tasks = slices.Delete(m.Tasks, i, i+1)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

// MockOrderRepository is a test double for domain.OrderRepository.
type MockOrderRepository struct {
	Orders  []*domain.Order
	ListErr error
	nextID  int
}

// NewMockOrderRepository creates a MockOrderRepository holding orders.
func NewMockOrderRepository(orders ...*domain.Order) *MockOrderRepository {
	return &MockOrderRepository{Orders: orders}
}

// List returns every order in insertion order.
func (m *MockOrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Orders), nil
}

// Get retrieves an order by ID.
func (m *MockOrderRepository) Get(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range m.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

// Create stores an order, assigning "o<n>" when the ID is empty.
func (m *MockOrderRepository) Create(_ context.Context, o *domain.Order) error {
	if o.ID == "" {
		m.nextID++
		o.ID = fmt.Sprintf("o%d", m.nextID)
	}
	m.Orders = append(m.Orders, o)
	return nil
}

// Update replaces an order.
func (m *MockOrderRepository) Update(_ context.Context, o *domain.Order) error {
	for i, existing := range m.Orders {
		if existing.ID == o.ID {
			m.Orders[i] = o
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

// Delete removes an order.
func (m *MockOrderRepository) Delete(_ context.Context, id string) error {
	for i, existing := range m.Orders {
		if existing.ID == id {
			m.Orders = slices.Delete(m.Orders, i, i+1)
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

// MockAccountRepository is a test double for domain.AccountRepository.
type MockAccountRepository struct {
	Err     error
	Deleted bool
}

// DeleteAll records the call.
func (m *MockAccountRepository) DeleteAll(_ context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = true
	return nil
}

// MockStore bundles mock repositories.
type MockStore struct {
	Clients *MockClientRepository
	Tasks   *MockTaskRepository
	Orders  *MockOrderRepository
	Account *MockAccountRepository
}

// NewMockStore creates a MockStore with empty repositories.
func NewMockStore() *MockStore {
	return &MockStore{
		Clients: NewMockClientRepository(),
		Tasks:   NewMockTaskRepository(),
		Orders:  NewMockOrderRepository(),
		Account: &MockAccountRepository{},
	}
}

// Store returns the domain view of the mocks.
func (m *MockStore) Store() domain.Store {
	return domain.Store{
		Clients: m.Clients,
		Tasks:   m.Tasks,
		Orders:  m.Orders,
		Account: m.Account,
	}
}

// MockStoreProvider is a test double for domain.StoreProvider.
// Every owner gets its own MockStore, created on first use.
type MockStoreProvider struct {
	Stores  map[string]*MockStore
	PingErr error
	mu      sync.Mutex
}

// NewMockStoreProvider creates an empty MockStoreProvider.
func NewMockStoreProvider() *MockStoreProvider {
	return &MockStoreProvider{Stores: make(map[string]*MockStore)}
}

// Owner returns the MockStore for owner, creating it if needed.
func (m *MockStoreProvider) Owner(owner string) *MockStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Stores[owner]
	if !ok {
		s = NewMockStore()
		m.Stores[owner] = s
	}
	return s
}

// ForOwner implements domain.StoreProvider.
func (m *MockStoreProvider) ForOwner(owner string) domain.Store {
	return m.Owner(owner).Store()
}

// Ping returns the configured error.
func (m *MockStoreProvider) Ping(_ context.Context) error {
	return m.PingErr
}

// MockClientCreator is a test double for domain.ClientCreator.
// FailOn maps a client name to the error returned for it.
type MockClientCreator struct {
	FailOn   map[string]error
	OnCreate func(draft domain.ClientDraft)
	Drafts   []domain.ClientDraft
}

// CreateClient records the draft and returns a client or the configured error.
func (m *MockClientCreator) CreateClient(_ context.Context, draft domain.ClientDraft) (*domain.Client, error) {
	m.Drafts = append(m.Drafts, draft)
	if m.OnCreate != nil {
		m.OnCreate(draft)
	}
	if err, ok := m.FailOn[draft.Name]; ok {
		return nil, err
	}
	return draft.NewClient(fmt.Sprintf("c%d", len(m.Drafts)), time.Time{}), nil
}

// MockOutbox is a test double for domain.Outbox.
type MockOutbox struct {
	Pending    []domain.PendingClient
	EnqueueErr error
}

// Enqueue appends p.
func (m *MockOutbox) Enqueue(p domain.PendingClient) error {
	if m.EnqueueErr != nil {
		return m.EnqueueErr
	}
	m.Pending = append(m.Pending, p)
	return nil
}

// List returns pending entries.
func (m *MockOutbox) List() ([]domain.PendingClient, error) {
	return slices.Clone(m.Pending), nil
}

// Remove deletes an entry by ID.
func (m *MockOutbox) Remove(id string) error {
	m.Pending = slices.DeleteFunc(m.Pending, func(p domain.PendingClient) bool { return p.ID == id })
	return nil
}

// Update replaces an entry by ID.
func (m *MockOutbox) Update(p domain.PendingClient) error {
	for i := range m.Pending {
		if m.Pending[i].ID == p.ID {
			m.Pending[i] = p
			return nil
		}
	}
	return domain.ErrClientNotFound
}

// MockMailer is a test double for domain.Mailer.
type MockMailer struct {
	Err  error
	Sent []domain.MailMessage
}

// Send records msg and returns the configured error.
func (m *MockMailer) Send(_ context.Context, msg domain.MailMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// MockTokenService is a test double for domain.TokenService.
// Tokens are "token-<owner>".
type MockTokenService struct {
	IssueErr error
}

// Issue returns a predictable token.
func (m *MockTokenService) Issue(owner string, ttl time.Duration) (string, time.Time, error) {
	if m.IssueErr != nil {
		return "", time.Time{}, m.IssueErr
	}
	return "token-" + owner, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

// Verify accepts tokens produced by Issue.
func (m *MockTokenService) Verify(token string) (string, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", domain.ErrUnauthorized
	}
	return token[len(prefix):], nil
}

// MockRateLimiter is a test double for domain.RateLimiter.
// Each key is allowed Limit requests.
type MockRateLimiter struct {
	Counts     map[string]int
	Limit      int
	RetryAfter time.Duration
}

// Allow counts the request for key.
func (m *MockRateLimiter) Allow(key string) (bool, time.Duration) {
	if m.Counts == nil {
		m.Counts = make(map[string]int)
	}
	if m.Counts[key] >= m.Limit {
		return false, m.RetryAfter
	}
	m.Counts[key]++
	return true, 0
}

// LogEntry is one recorded log call.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger records every entry.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.add("INFO", category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(category, msg string) { m.add("WARN", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// Ensure mocks implement their interfaces.
var (
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.ClientRepository = (*MockClientRepository)(nil)
	_ domain.TaskRepository   = (*MockTaskRepository)(nil)
	_ domain.OrderRepository  = (*MockOrderRepository)(nil)
	_ domain.StoreProvider    = (*MockStoreProvider)(nil)
	_ domain.ClientCreator    = (*MockClientCreator)(nil)
	_ domain.Outbox           = (*MockOutbox)(nil)
	_ domain.Mailer           = (*MockMailer)(nil)
	_ domain.TokenService     = (*MockTokenService)(nil)
	_ domain.RateLimiter      = (*MockRateLimiter)(nil)
	_ domain.Logger           = (*MockLogger)(nil)
)

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitLocalErr     error
	InitGlobalErr    error
	Initialized      *domain.Config
	LocalConfigInfo  domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
}

// NewMockConfigManager creates an empty MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetLocalConfigInfo returns the configured info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// GetGlobalConfigInfo returns the configured info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitLocalConfig records cfg.
func (m *MockConfigManager) InitLocalConfig(cfg *domain.Config) error {
	if m.InitLocalErr != nil {
		return m.InitLocalErr
	}
	m.Initialized = cfg
	return nil
}

// InitGlobalConfig records cfg.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	m.Initialized = cfg
	return nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// NewMockConfigLoader creates a MockConfigLoader returning defaults.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	return m.Config, m.Err
}

// LoadGlobal returns the configured config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Config, m.Err
}

var (
	_ domain.ConfigManager = (*MockConfigManager)(nil)
	_ domain.ConfigLoader  = (*MockConfigLoader)(nil)
)
