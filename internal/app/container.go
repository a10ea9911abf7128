// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/apiclient"
	"github.com/clientive/clientive/internal/infra/auth"
	"github.com/clientive/clientive/internal/infra/config"
	"github.com/clientive/clientive/internal/infra/httpapi"
	"github.com/clientive/clientive/internal/infra/jsonstore"
	"github.com/clientive/clientive/internal/infra/logging"
	"github.com/clientive/clientive/internal/infra/mailer"
	"github.com/clientive/clientive/internal/infra/metrics"
	"github.com/clientive/clientive/internal/infra/ratelimit"
	"github.com/clientive/clientive/internal/infra/sqlstore"
	"github.com/clientive/clientive/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir    string // Directory searched for clientive.toml
	DataDir    string // Database, outbox and logs live here
	OutboxPath string // Path to outbox.json
}

// newConfig derives paths from the working directory and XDG_DATA_HOME.
func newConfig(workDir string) Config {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	dataDir := ""
	if dataHome != "" {
		dataDir = domain.DataDir(dataHome)
	}
	return Config{
		WorkDir:    workDir,
		DataDir:    dataDir,
		OutboxPath: filepath.Join(dataDir, domain.OutboxFileName),
	}
}

// Remote is the backend used when [remote] url is set: repositories and
// the creation contract are served by a running clientive server.
type Remote interface {
	domain.StoreProvider
	domain.ClientCreator
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Outbox        domain.Outbox
	Mailer        domain.Mailer
	Tokens        domain.TokenService
	Limiter       domain.RateLimiter
	Logger        domain.Logger

	// Database is opened on first use unless injected.
	Database domain.StoreProvider
	// Remote is nil for direct database access.
	Remote Remote

	// Pointer fields
	AppConfig *domain.Config
	Diag      *slog.Logger // stderr diagnostics

	closers []io.Closer

	// Configuration
	Config Config

	mu sync.Mutex
}

// New creates a Container for the given working directory.
func New(dir string) (*Container, error) {
	cfg := newConfig(dir)

	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	fileLogger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))
	diag := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))

	c := &Container{
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Outbox:        jsonstore.New(cfg.OutboxPath),
		Mailer:        mailer.New(appConfig.Mail, fileLogger),
		Tokens:        auth.NewTokenManager(appConfig.Auth.Secret),
		Limiter:       ratelimit.New(appConfig.Support.RateLimit, appConfig.Support.RateWindow.Std()),
		Logger:        fileLogger,
		AppConfig:     appConfig,
		Diag:          diag,
		Config:        cfg,
		closers:       []io.Closer{fileLogger},
	}
	if appConfig.UsesRemote() {
		c.Remote = apiclient.New(appConfig.Remote.URL, appConfig.Remote.Token)
	}
	return c, nil
}

// Deps are the ports injected by NewWithDeps.
type Deps struct {
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Database      domain.StoreProvider
	Remote        Remote
	Outbox        domain.Outbox
	Mailer        domain.Mailer
	Tokens        domain.TokenService
	Limiter       domain.RateLimiter
	Logger        domain.Logger
	AppConfig     *domain.Config
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps) *Container {
	if deps.AppConfig == nil {
		deps.AppConfig = domain.NewDefaultConfig()
	}
	if deps.Logger == nil {
		deps.Logger = domain.NopLogger{}
	}
	if deps.Clock == nil {
		deps.Clock = domain.RealClock{}
	}
	return &Container{
		Clock:         deps.Clock,
		ConfigLoader:  deps.ConfigLoader,
		ConfigManager: deps.ConfigManager,
		Database:      deps.Database,
		Remote:        deps.Remote,
		Outbox:        deps.Outbox,
		Mailer:        deps.Mailer,
		Tokens:        deps.Tokens,
		Limiter:       deps.Limiter,
		Logger:        deps.Logger,
		AppConfig:     deps.AppConfig,
		Diag:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:        cfg,
	}
}

// Close releases the database and the log file.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// Location returns the calendar timezone.
func (c *Container) Location() *time.Location {
	return c.AppConfig.Location()
}

// OpenDatabase returns the database, opening it on first use. An empty
// SQLite DSN defaults to clientive.db in the data directory.
func (c *Container) OpenDatabase(ctx context.Context) (domain.StoreProvider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Database != nil {
		return c.Database, nil
	}

	driver := c.AppConfig.Database.Driver
	dsn := c.AppConfig.Database.DSN
	if dsn == "" && driver == sqlstore.DriverSQLite && c.Config.DataDir != "" {
		if err := os.MkdirAll(c.Config.DataDir, 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dsn = filepath.Join(c.Config.DataDir, domain.DatabaseFileName)
	}

	db, err := sqlstore.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	c.Database = db
	c.closers = append(c.closers, db)
	return db, nil
}

// Store returns the repositories the CLI works against: the remote server
// when one is configured, otherwise the database scoped to [account] owner.
func (c *Container) Store(ctx context.Context) (domain.Store, error) {
	if c.Remote != nil {
		return c.Remote.ForOwner(""), nil
	}
	owner := c.AppConfig.Account.Owner
	if owner == "" {
		return domain.Store{}, domain.ErrNoOwner
	}
	db, err := c.OpenDatabase(ctx)
	if err != nil {
		return domain.Store{}, err
	}
	return db.ForOwner(owner), nil
}

// ClientCreator returns the creation contract: the server's POST
// /api/clients in remote mode, the local CreateClient use case otherwise.
func (c *Container) ClientCreator(ctx context.Context) (domain.ClientCreator, error) {
	if c.Remote != nil {
		return c.Remote, nil
	}
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewCreateClient(st.Clients, c.Clock, c.Logger), nil
}

// Server builds the HTTP API over the database. Collectors are registered
// with reg, which also serves /metrics.
func (c *Container) Server(ctx context.Context, reg *prometheus.Registry) (*httpapi.Server, error) {
	db, err := c.OpenDatabase(ctx)
	if err != nil {
		return nil, err
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return httpapi.New(httpapi.Options{
		Stores:      db,
		Tokens:      c.Tokens,
		Clock:       c.Clock,
		Logger:      c.Logger,
		Gatherer:    reg,
		Metrics:     metrics.MustNew(reg),
		Support:     c.SendSupportUseCase(),
		Location:    c.Location(),
		CORSOrigins: c.AppConfig.Server.CORSOrigins,
	}), nil
}

// UseCase factory methods

// AddClientUseCase returns a new AddClient use case.
func (c *Container) AddClientUseCase(ctx context.Context) (*usecase.AddClient, error) {
	creator, err := c.ClientCreator(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewAddClient(creator, c.Outbox, c.Clock, c.Logger), nil
}

// SyncOutboxUseCase returns a new SyncOutbox use case.
func (c *Container) SyncOutboxUseCase(ctx context.Context) (*usecase.SyncOutbox, error) {
	creator, err := c.ClientCreator(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewSyncOutbox(creator, c.Outbox, c.Logger), nil
}

// ImportClientsUseCase returns a new ImportClients use case.
func (c *Container) ImportClientsUseCase(ctx context.Context) (*usecase.ImportClients, error) {
	creator, err := c.ClientCreator(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewImportClients(creator, c.Logger), nil
}

// PreviewImportUseCase returns a new PreviewImport use case.
func (c *Container) PreviewImportUseCase() *usecase.PreviewImport {
	return usecase.NewPreviewImport()
}

// ListClientsUseCase returns a new ListClients use case.
func (c *Container) ListClientsUseCase(ctx context.Context) (*usecase.ListClients, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewListClients(st.Clients), nil
}

// UpdateClientUseCase returns a new UpdateClient use case.
func (c *Container) UpdateClientUseCase(ctx context.Context) (*usecase.UpdateClient, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewUpdateClient(st.Clients), nil
}

// DeleteClientUseCase returns a new DeleteClient use case.
func (c *Container) DeleteClientUseCase(ctx context.Context) (*usecase.DeleteClient, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewDeleteClient(st.Clients, c.Logger), nil
}

// AddInteractionUseCase returns a new AddInteraction use case.
func (c *Container) AddInteractionUseCase(ctx context.Context) (*usecase.AddInteraction, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewAddInteraction(st.Clients, c.Clock), nil
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase(ctx context.Context) (*usecase.CreateTask, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewCreateTask(st.Tasks, c.Location(), c.Logger), nil
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase(ctx context.Context) (*usecase.ListTasks, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewListTasks(st.Tasks, st.Clients, c.Clock, c.Location()), nil
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase(ctx context.Context) (*usecase.UpdateTask, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewUpdateTask(st.Tasks, c.Location()), nil
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase(ctx context.Context) (*usecase.DeleteTask, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewDeleteTask(st.Tasks), nil
}

// CreateOrderUseCase returns a new CreateOrder use case.
func (c *Container) CreateOrderUseCase(ctx context.Context) (*usecase.CreateOrder, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewCreateOrder(st.Orders, c.Logger), nil
}

// ListOrdersUseCase returns a new ListOrders use case.
func (c *Container) ListOrdersUseCase(ctx context.Context) (*usecase.ListOrders, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewListOrders(st.Orders), nil
}

// UpdateOrderUseCase returns a new UpdateOrder use case.
func (c *Container) UpdateOrderUseCase(ctx context.Context) (*usecase.UpdateOrder, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewUpdateOrder(st.Orders), nil
}

// DeleteOrderUseCase returns a new DeleteOrder use case.
func (c *Container) DeleteOrderUseCase(ctx context.Context) (*usecase.DeleteOrder, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewDeleteOrder(st.Orders), nil
}

// DeleteAccountUseCase returns a new DeleteAccount use case.
func (c *Container) DeleteAccountUseCase(ctx context.Context) (*usecase.DeleteAccount, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewDeleteAccount(st.Account, c.Logger), nil
}

// BuildCalendarUseCase returns a new BuildCalendar use case.
func (c *Container) BuildCalendarUseCase(ctx context.Context) (*usecase.BuildCalendar, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewBuildCalendar(st.Tasks, st.Clients, c.Clock, c.Location(), c.Logger), nil
}

// ExportTaskCalendarUseCase returns a new ExportTaskCalendar use case.
func (c *Container) ExportTaskCalendarUseCase(ctx context.Context) (*usecase.ExportTaskCalendar, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewExportTaskCalendar(st.Tasks, st.Clients, c.Clock, c.Location()), nil
}

// QuickAddURLUseCase returns a new QuickAddURL use case.
func (c *Container) QuickAddURLUseCase(ctx context.Context) (*usecase.QuickAddURL, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewQuickAddURL(st.Tasks, st.Clients, c.Clock, c.Location()), nil
}

// ExportDataUseCase returns a new ExportData use case.
func (c *Container) ExportDataUseCase(ctx context.Context) (*usecase.ExportData, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewExportData(st.Clients, st.Orders, c.Clock, c.Location(), c.AppConfig.Export.DateLayout), nil
}

// SendRemindersUseCase returns a new SendReminders use case.
func (c *Container) SendRemindersUseCase(ctx context.Context) (*usecase.SendReminders, error) {
	st, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewSendReminders(st.Tasks, st.Clients, c.Mailer, c.Clock, c.Location(), c.Logger), nil
}

// SendSupportUseCase returns a new SendSupport use case.
func (c *Container) SendSupportUseCase() *usecase.SendSupport {
	return usecase.NewSendSupport(c.Limiter, c.Mailer, c.AppConfig.Mail.SupportInbox, c.Logger)
}

// IssueTokenUseCase returns a new IssueToken use case.
func (c *Container) IssueTokenUseCase() *usecase.IssueToken {
	return usecase.NewIssueToken(c.Tokens, c.AppConfig.Server.PublicURL)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
