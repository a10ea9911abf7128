package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/metrics"
	"github.com/clientive/clientive/internal/testutil"
	"github.com/clientive/clientive/internal/usecase"
)

var testNow = time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	server  *Server
	stores  *testutil.MockStoreProvider
	mailer  *testutil.MockMailer
	limiter *testutil.MockRateLimiter
	logger  *testutil.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		stores:  testutil.NewMockStoreProvider(),
		mailer:  &testutil.MockMailer{},
		limiter: &testutil.MockRateLimiter{Limit: 5, RetryAfter: 1500 * time.Millisecond},
		logger:  &testutil.MockLogger{},
	}
	reg := prometheus.NewRegistry()
	f.server = New(Options{
		Stores:   f.stores,
		Tokens:   &testutil.MockTokenService{},
		Clock:    &testutil.MockClock{NowTime: testNow},
		Logger:   f.logger,
		Gatherer: reg,
		Metrics:  metrics.MustNew(reg),
		Support:  usecase.NewSendSupport(f.limiter, f.mailer, "help@clientive.local", f.logger),
	})
	return f
}

func (f *fixture) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) authed(method, path, body string) *httptest.ResponseRecorder {
	return f.do(method, path, body, map[string]string{"Authorization": "Bearer token-u1"})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	f.stores.PingErr = errors.New("db down")
	rec = f.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodGet, "/healthz", "", nil)

	rec := f.do(http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clientive_http_request_duration_seconds")
}

func TestUnauthorized(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		header map[string]string
		name   string
		method string
		path   string
	}{
		{name: "no header"},
		{name: "bad token", header: map[string]string{"Authorization": "Bearer forged"}},
		{name: "wrong scheme", header: map[string]string{"Authorization": "Basic token-u1"}},
		{name: "query token", path: "/api/clients?token=token-u1"},
		{name: "query token on delete", method: http.MethodDelete, path: "/api/account?token=token-u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, path := tt.method, tt.path
			if method == "" {
				method = http.MethodGet
			}
			if path == "" {
				path = "/api/clients"
			}

			rec := f.do(method, path, "", tt.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Unauthorized", decode(t, rec)["error"])
		})
	}
	assert.False(t, f.stores.Owner("u1").Account.Deleted)
}

func TestCalendarFeed(t *testing.T) {
	// Setup
	f := newFixture(t)
	st := f.stores.Owner("u1")
	st.Clients.Clients = []*domain.Client{{ID: "c1", Name: "Ana"}}
	st.Tasks.Tasks = []*domain.Task{{ID: "t1", Title: "Call", ClientID: "c1", DueDate: "2025-04-03T09:00:00Z"}}

	// Execute
	rec := f.do(http.MethodGet, "/api/calendar?token=token-u1", "", nil)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "UID:task-t1@clientive.local\r\n")
	assert.Contains(t, rec.Body.String(), "SUMMARY:Call — Ana\r\n")
}

func TestCalendarFeed_AcceptsBearerHeader(t *testing.T) {
	f := newFixture(t)
	f.stores.Owner("u1").Tasks.Tasks = []*domain.Task{{ID: "t1", Title: "Call", ClientID: "c1", DueDate: "2025-04-03T09:00:00Z"}}

	rec := f.authed(http.MethodGet, "/api/calendar", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "UID:task-t1@clientive.local\r\n")
	assert.NotContains(t, rec.Body.String(), "UID:error@clientive.local")
}

func TestCalendarFeed_FailuresStillRender(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		setup func(f *fixture)
	}{
		{name: "missing token", path: "/api/calendar"},
		{name: "invalid token", path: "/api/calendar?token=nope"},
		{
			name:  "storage error",
			path:  "/api/calendar?token=token-u1",
			setup: func(f *fixture) { f.stores.Owner("u1").Tasks.ListErr = errors.New("database is locked") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := f.do(http.MethodGet, tt.path, "", nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			body := rec.Body.String()
			assert.Contains(t, body, "UID:error@clientive.local\r\n")
			assert.Contains(t, body, "SUMMARY:Calendar feed error\r\n")
			assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
		})
	}
}

func TestClientsCRUD(t *testing.T) {
	f := newFixture(t)

	// Create
	rec := f.authed(http.MethodPost, "/api/clients", `{"name":"Ana","email":"ana@x.com","tags":["a"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	client := decode(t, rec)["client"].(map[string]any)
	id := client["id"].(string)
	assert.Equal(t, "prospect", client["status"])
	assert.Equal(t, []any{"a"}, client["tags"])
	assert.Equal(t, []any{}, client["interactions"])

	// List
	rec = f.authed(http.MethodGet, "/api/clients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["clients"], 1)

	// Other owners see nothing
	rec = f.do(http.MethodGet, "/api/clients", "", map[string]string{"Authorization": "Bearer token-u2"})
	assert.Empty(t, decode(t, rec)["clients"])

	// Patch
	rec = f.authed(http.MethodPatch, "/api/clients/"+id, `{"company":"Acme","status":"vip"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	client = decode(t, rec)["client"].(map[string]any)
	assert.Equal(t, "Acme", client["company"])
	assert.Equal(t, "Ana", client["name"])

	// Get
	rec = f.authed(http.MethodGet, "/api/clients/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete
	rec = f.authed(http.MethodDelete, "/api/clients/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["ok"])

	rec = f.authed(http.MethodGet, "/api/clients/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateClient_BadRequests(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing email", body: `{"name":"Ana"}`, want: "Name and email are required"},
		{name: "blank name", body: `{"name":"  ","email":"a@x.com"}`, want: "Name and email are required"},
		{name: "bad status", body: `{"name":"Ana","email":"a@x.com","status":"gold"}`, want: domain.MsgStatusInvalid},
		{name: "malformed", body: `{"name":`, want: "Invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.authed(http.MethodPost, "/api/clients", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["error"])
		})
	}
}

func TestPatchClient_NoFields(t *testing.T) {
	f := newFixture(t)
	f.stores.Owner("u1").Clients.Clients = []*domain.Client{{ID: "c1", Name: "Ana"}}

	rec := f.authed(http.MethodPatch, "/api/clients/c1", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", decode(t, rec)["error"])
}

func TestTasksEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.authed(http.MethodPost, "/api/tasks", `{"title":"Call","clientId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.MsgTaskFieldsRequired, decode(t, rec)["error"])

	rec = f.authed(http.MethodPost, "/api/tasks", `{"title":"Call","clientId":"c1","dueDate":"2025-04-05T09:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	task := decode(t, rec)["task"].(map[string]any)
	assert.Equal(t, "follow-up", task["type"])
	assert.Equal(t, "medium", task["priority"])
	id := task["id"].(string)

	rec = f.authed(http.MethodPatch, "/api/tasks/"+id, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["task"].(map[string]any)["completed"])

	rec = f.authed(http.MethodGet, "/api/tasks?pending=true", "")
	assert.Empty(t, decode(t, rec)["tasks"])

	rec = f.authed(http.MethodDelete, "/api/tasks/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.authed(http.MethodDelete, "/api/tasks/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrdersEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.authed(http.MethodPost, "/api/orders", `{"product":"Plan","clientId":"c1","date":"2025-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.MsgOrderFieldsRequired, decode(t, rec)["error"])

	rec = f.authed(http.MethodPost, "/api/orders", `{"product":"Plan","clientId":"c1","amount":0,"date":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidDate, decode(t, rec)["error"])

	rec = f.authed(http.MethodPost, "/api/orders", `{"product":"Plan","clientId":"c1","amount":0,"date":"2025-01-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order := decode(t, rec)["order"].(map[string]any)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "2025-01-01T00:00:00Z", order["date"])

	rec = f.authed(http.MethodPatch, "/api/orders/"+order["id"].(string), `{"amount":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.authed(http.MethodGet, "/api/orders", "")
	assert.Len(t, decode(t, rec)["orders"], 1)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)

	rec := f.authed(http.MethodDelete, "/api/account", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, f.stores.Owner("u1").Account.Deleted)
	assert.False(t, f.stores.Owner("u2").Account.Deleted)
}

func TestInternalErrorsAreFriendly(t *testing.T) {
	f := newFixture(t)
	f.stores.Owner("u1").Clients.ListErr = errors.New("database is locked")

	rec := f.authed(http.MethodGet, "/api/clients", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong on our side. Please try again.", decode(t, rec)["error"])
}

func TestSupport(t *testing.T) {
	t.Run("emails the inbox", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/support", `{"name":"Ana","email":"ana@x.com","message":"Hi"}`,
			map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decode(t, rec)["ok"])
		require.Len(t, f.mailer.Sent, 1)
		assert.Equal(t, 1, f.limiter.Counts["203.0.113.9"])
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/support", `{"name":"Ana","email":"ana","message":"Hi"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email", decode(t, rec)["error"])
		assert.Equal(t, 1, f.limiter.Counts["unknown"])
	})

	t.Run("invalid json", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/support", `nope`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON body", decode(t, rec)["error"])
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newFixture(t)
		for range 5 {
			f.do(http.MethodPost, "/api/support", `nope`, nil)
		}

		rec := f.do(http.MethodPost, "/api/support", `{"name":"Ana","email":"ana@x.com","message":"Hi"}`, nil)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Equal(t, "Too many requests. Please try again later.", decode(t, rec)["error"])
		assert.Empty(t, f.mailer.Sent)
	})

	t.Run("mail failure still succeeds", func(t *testing.T) {
		f := newFixture(t)
		f.mailer.Err = domain.ErrMailNotConfigured

		rec := f.do(http.MethodPost, "/api/support", `{"name":"Ana","email":"ana@x.com","message":"Hi"}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodOptions, "/api/clients", "", map[string]string{
		"Origin":                        "https://app.example.com",
		"Access-Control-Request-Method": "PATCH",
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
