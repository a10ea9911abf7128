package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/clientive/clientive/internal/domain"
)

// Support form validation messages.
const (
	MsgSupportMissing  = "Missing name, email, or message"
	MsgSupportEmail    = "Invalid email"
	MsgSupportTooLong  = "Message too long"
	UnknownSupportPeer = "unknown"
)

// SendSupportInput contains a contact form submission.
type SendSupportInput struct {
	ClientKey string // Rate limit key, usually the caller's IP
	Name      string
	Email     string
	Message   string
}

// SendSupportOutput reports what happened to the message.
type SendSupportOutput struct {
	Reason  string // Why the message was only logged
	Emailed bool
}

// SendSupport forwards a contact form submission to the support inbox.
// Fields are ordered to minimize memory padding.
type SendSupport struct {
	limiter domain.RateLimiter
	mailer  domain.Mailer
	logger  domain.Logger
	inbox   string
}

// NewSendSupport creates a new SendSupport use case.
func NewSendSupport(limiter domain.RateLimiter, mailer domain.Mailer, inbox string, logger domain.Logger) *SendSupport {
	return &SendSupport{limiter: limiter, mailer: mailer, inbox: inbox, logger: logger}
}

// Execute throttles, validates and delivers the message. Delivery failures
// are logged and do not fail the request.
func (uc *SendSupport) Execute(ctx context.Context, in SendSupportInput) (*SendSupportOutput, error) {
	if err := uc.Admit(in.ClientKey); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return nil, domain.NewValidationError(MsgSupportMissing)
	}
	if !validSupportEmail(email) {
		return nil, domain.NewValidationError(MsgSupportEmail)
	}
	if utf8.RuneCountInString(message) > domain.SupportMessageMaxChars {
		return nil, domain.NewValidationError(MsgSupportTooLong)
	}

	msg := domain.MailMessage{
		To:      uc.inbox,
		ReplyTo: email,
		Subject: "Support request from " + name,
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s\n", name, email, message),
	}

	var err error
	if uc.mailer == nil || uc.inbox == "" {
		err = domain.ErrMailNotConfigured
	} else {
		err = uc.mailer.Send(ctx, msg)
	}
	if err == nil {
		if uc.logger != nil {
			uc.logger.Info("support", "emailed message from "+email)
		}
		return &SendSupportOutput{Emailed: true}, nil
	}

	reason := "send_error"
	if errors.Is(err, domain.ErrMailNotConfigured) {
		reason = "not_configured"
	}
	if uc.logger != nil {
		uc.logger.Info("support", fmt.Sprintf("message from %s <%s> not emailed (%s): %s", name, email, reason, message))
		if reason != "not_configured" {
			uc.logger.Error("support", err.Error())
		}
	}
	return &SendSupportOutput{Reason: reason}, nil
}

var supportEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Admit consumes one request from key's allowance. It returns a
// *domain.RateLimitError when the caller must wait. Execute calls it; front
// ends call it directly for requests rejected before Execute.
func (uc *SendSupport) Admit(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		key = UnknownSupportPeer
	}
	if uc.limiter == nil {
		return nil
	}
	if ok, retry := uc.limiter.Allow(key); !ok {
		return &domain.RateLimitError{RetryAfter: retry}
	}
	return nil
}

func validSupportEmail(s string) bool {
	return supportEmail.MatchString(s)
}
