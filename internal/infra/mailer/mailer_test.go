package mailer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/domain"
)

func TestNew_SelectsProvider(t *testing.T) {
	assert.IsType(t, Disabled{}, New(domain.MailConfig{Provider: ProviderLog}, nil))
	assert.IsType(t, Disabled{}, New(domain.MailConfig{Provider: ProviderSendGrid}, nil))
	assert.IsType(t, &SendGrid{}, New(domain.MailConfig{Provider: ProviderSendGrid, SendGridKey: "k"}, nil))
}

func TestDisabled_Send(t *testing.T) {
	err := Disabled{}.Send(context.Background(), domain.MailMessage{To: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrMailNotConfigured)
}

func TestSendGrid_Send(t *testing.T) {
	// Setup
	var got *mail.SGMailV3
	m := newSendGrid(func(_ context.Context, msg *mail.SGMailV3) (*rest.Response, error) {
		got = msg
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}, "Clientive <noreply@clientive.local>", nil)

	// Execute
	err := m.Send(context.Background(), domain.MailMessage{
		To:      "support@clientive.local",
		ReplyTo: "ana@x.com",
		Subject: "Support request from Ana",
		Text:    "hello",
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Clientive", got.From.Name)
	assert.Equal(t, "noreply@clientive.local", got.From.Address)
	assert.Equal(t, "Support request from Ana", got.Subject)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "ana@x.com", got.ReplyTo.Address)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "support@clientive.local", got.Personalizations[0].To[0].Address)
}

func TestSendGrid_SendRejectedStatus(t *testing.T) {
	m := newSendGrid(func(context.Context, *mail.SGMailV3) (*rest.Response, error) {
		return &rest.Response{StatusCode: http.StatusUnauthorized}, nil
	}, "noreply@clientive.local", nil)

	err := m.Send(context.Background(), domain.MailMessage{To: "a@b.c"})

	assert.ErrorContains(t, err, "status code 401")
}

func TestSendGrid_BreakerOpens(t *testing.T) {
	// Setup
	calls := 0
	m := newSendGrid(func(context.Context, *mail.SGMailV3) (*rest.Response, error) {
		calls++
		return nil, errors.New("connection refused")
	}, "noreply@clientive.local", nil)

	// Execute
	for range 3 {
		_ = m.Send(context.Background(), domain.MailMessage{To: "a@b.c"})
	}
	err := m.Send(context.Background(), domain.MailMessage{To: "a@b.c"})

	// Assert
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, 3, calls, "open breaker short-circuits")
}
