// Package apiclient talks to a running clientive server over its REST API.
// It implements the repository ports so the CLI can work against a remote
// server exactly as it works against a local database.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/clientive/clientive/internal/domain"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 15 * time.Second

// Client is an authenticated REST client.
type Client struct {
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
	token   string
}

// New creates a Client for baseURL using a bearer token.
func New(baseURL, token string) *Client {
	return NewWithHTTPClient(baseURL, token, &http.Client{Timeout: DefaultTimeout})
}

// NewWithHTTPClient creates a Client with a custom HTTP client.
func NewWithHTTPClient(baseURL, token string, hc *http.Client) *Client {
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "clientive-api",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     20 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			// Only transport failures count; a 4xx answer proves the server is up.
			IsSuccessful: func(err error) bool {
				return err == nil || !errors.Is(err, domain.ErrUnavailable)
			},
		}),
	}
}

// Store returns the remote repositories.
func (c *Client) Store() domain.Store {
	return domain.Store{
		Clients: &clientRepo{c: c},
		Tasks:   &taskRepo{c: c},
		Orders:  &orderRepo{c: c},
		Account: &accountRepo{c: c},
	}
}

// ForOwner implements domain.StoreProvider. The owner is fixed by the token,
// so the argument is ignored.
func (c *Client) ForOwner(string) domain.Store {
	return c.Store()
}

// Ping checks that the server answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// errorBody is the JSON error envelope returned by the server.
type errorBody struct {
	Error string `json:"error"`
}

// do sends a request and decodes a JSON response into out (when non-nil).
// Transport failures and gateway errors wrap domain.ErrUnavailable;
// other non-2xx answers are returned as *domain.StatusError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, in, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrUnavailable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w: read body: %v", method, path, domain.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(code int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)
	se := &domain.StatusError{Code: code, Message: eb.Error}

	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, se)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, se)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, se)
	case http.StatusBadRequest:
		if eb.Error != "" {
			return fmt.Errorf("%w: %w", domain.NewValidationError(eb.Error), se)
		}
	}
	return se
}
