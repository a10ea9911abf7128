// Package mailer delivers email through SendGrid behind a circuit breaker.
package mailer

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sony/gobreaker"

	"github.com/clientive/clientive/internal/domain"
)

// Providers accepted in [mail] provider.
const (
	ProviderLog      = "log"
	ProviderSendGrid = "sendgrid"
)

// sendTimeout bounds a single API call.
const sendTimeout = 30 * time.Second

// New returns the mailer configured by cfg. The "log" provider (or a
// sendgrid provider without a key) yields a Disabled mailer.
func New(cfg domain.MailConfig, logger domain.Logger) domain.Mailer {
	if cfg.Provider == ProviderSendGrid && cfg.SendGridKey != "" {
		return NewSendGrid(cfg.SendGridKey, cfg.From, logger)
	}
	return Disabled{}
}

// Disabled refuses every message with domain.ErrMailNotConfigured.
type Disabled struct{}

// Send implements domain.Mailer.
func (Disabled) Send(context.Context, domain.MailMessage) error {
	return domain.ErrMailNotConfigured
}

// sendFunc matches (*sendgrid.Client).SendWithContext.
type sendFunc func(ctx context.Context, msg *mail.SGMailV3) (*rest.Response, error)

// Ensure SendGrid implements domain.Mailer.
var _ domain.Mailer = (*SendGrid)(nil)

// SendGrid sends plain-text email via the SendGrid v3 API.
type SendGrid struct {
	send    sendFunc
	breaker *gobreaker.CircuitBreaker
	logger  domain.Logger
	from    *mail.Email
}

// NewSendGrid creates a SendGrid mailer. from may be "Name <addr>" or a bare address.
func NewSendGrid(key, from string, logger domain.Logger) *SendGrid {
	client := sendgrid.NewSendClient(key)
	return newSendGrid(client.SendWithContext, from, logger)
}

func newSendGrid(send sendFunc, from string, logger domain.Logger) *SendGrid {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &SendGrid{
		send:   send,
		logger: logger,
		from:   parseAddress(from),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "sendgrid",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Send implements domain.Mailer.
func (s *SendGrid) Send(ctx context.Context, msg domain.MailMessage) error {
	to := parseAddress(msg.To)
	message := mail.NewSingleEmail(s.from, msg.Subject, to, msg.Text, "")
	if msg.ReplyTo != "" {
		message.SetReplyTo(parseAddress(msg.ReplyTo))
	}

	_, err := s.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()

		resp, err := s.send(ctx, message)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusAccepted {
			return nil, fmt.Errorf("sendgrid: status code %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
		}
		s.logger.Error("mail", fmt.Sprintf("send %q to %s failed: %v", msg.Subject, msg.To, err))
		return fmt.Errorf("send email: %w", err)
	}
	s.logger.Info("mail", fmt.Sprintf("sent %q to %s", msg.Subject, msg.To))
	return nil
}

// parseAddress splits "Name <addr>" for the SendGrid helper.
func parseAddress(s string) *mail.Email {
	if a, err := netmail.ParseAddress(s); err == nil {
		return mail.NewEmail(a.Name, a.Address)
	}
	return mail.NewEmail("", s)
}
