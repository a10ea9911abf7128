// Package httpapi serves the clientive REST API, the live calendar feed and
// the support contact form over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/metrics"
	"github.com/clientive/clientive/internal/usecase"
)

// ownerKey is the gin context key holding the authenticated owner.
const ownerKey = "owner"

// Options configures a Server.
// Fields are ordered to minimize memory padding.
type Options struct {
	Stores      domain.StoreProvider
	Tokens      domain.TokenService
	Clock       domain.Clock
	Logger      domain.Logger
	Gatherer    prometheus.Gatherer // Serves /metrics when set
	Support     *usecase.SendSupport
	Metrics     *metrics.Metrics
	Location    *time.Location
	CORSOrigins []string // Empty allows every origin
}

// Server is the HTTP front end.
type Server struct {
	engine *gin.Engine
	opts   Options
}

// New builds the router.
func New(opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = domain.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = domain.NopLogger{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(opts.Logger, opts.Metrics))

	corsConfig := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	s := &Server{engine: engine, opts: opts}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	if s.opts.Gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := s.engine.Group("/api")

	// The feed authenticates itself so that failures still render a calendar.
	api.GET("/calendar", s.handleCalendar)
	api.POST("/support", s.handleSupport)

	authed := api.Group("")
	authed.Use(requireOwner(s.opts.Tokens))
	{
		authed.GET("/clients", s.listClients)
		authed.POST("/clients", s.createClient)
		authed.GET("/clients/:id", s.getClient)
		authed.PATCH("/clients/:id", s.updateClient)
		authed.DELETE("/clients/:id", s.deleteClient)

		authed.GET("/tasks", s.listTasks)
		authed.POST("/tasks", s.createTask)
		authed.GET("/tasks/:id", s.getTask)
		authed.PATCH("/tasks/:id", s.updateTask)
		authed.DELETE("/tasks/:id", s.deleteTask)

		authed.GET("/orders", s.listOrders)
		authed.POST("/orders", s.createOrder)
		authed.GET("/orders/:id", s.getOrder)
		authed.PATCH("/orders/:id", s.updateOrder)
		authed.DELETE("/orders/:id", s.deleteOrder)

		authed.DELETE("/account", s.deleteAccount)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("http", "listening on "+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.opts.Logger.Info("http", "server stopped")
		return nil
	}
}

// store returns the repositories of the authenticated owner.
func (s *Server) store(c *gin.Context) domain.Store {
	return s.opts.Stores.ForOwner(c.GetString(ownerKey))
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.opts.Stores.Ping(c.Request.Context()); err != nil {
		s.opts.Logger.Error("http", "health check: "+err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
