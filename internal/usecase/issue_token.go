package usecase

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// IssueTokenInput contains the parameters for minting a token.
type IssueTokenInput struct {
	Owner string
	TTL   time.Duration
}

// IssueTokenOutput contains the token and a ready-to-subscribe feed URL.
type IssueTokenOutput struct {
	ExpiresAt time.Time
	Token     string
	FeedURL   string // Empty when no public URL is configured
}

// IssueToken mints an access token for an owner.
type IssueToken struct {
	tokens    domain.TokenService
	publicURL string
}

// NewIssueToken creates a new IssueToken use case.
func NewIssueToken(tokens domain.TokenService, publicURL string) *IssueToken {
	return &IssueToken{tokens: tokens, publicURL: publicURL}
}

// Execute signs the token.
func (uc *IssueToken) Execute(in IssueTokenInput) (*IssueTokenOutput, error) {
	if strings.TrimSpace(in.Owner) == "" {
		return nil, domain.ErrNoOwner
	}
	token, exp, err := uc.tokens.Issue(in.Owner, in.TTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &IssueTokenOutput{
		Token:     token,
		ExpiresAt: exp,
		FeedURL:   FeedURL(uc.publicURL, token),
	}, nil
}

// FeedURL returns the calendar subscription URL for token.
func FeedURL(publicURL, token string) string {
	if publicURL == "" {
		return ""
	}
	return strings.TrimRight(publicURL, "/") + "/api/calendar?token=" + url.QueryEscape(token)
}
