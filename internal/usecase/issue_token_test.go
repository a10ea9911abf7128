package usecase_test

import (
	"testing"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/testutil"
	"github.com/clientive/clientive/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken_Execute(t *testing.T) {
	uc := usecase.NewIssueToken(&testutil.MockTokenService{}, "https://crm.example.com/")

	out, err := uc.Execute(usecase.IssueTokenInput{Owner: "u1", TTL: time.Hour})

	require.NoError(t, err)
	assert.Equal(t, "token-u1", out.Token)
	assert.Equal(t, "https://crm.example.com/api/calendar?token=token-u1", out.FeedURL)
	assert.Equal(t, 2030, out.ExpiresAt.Year())
}

func TestIssueToken_Errors(t *testing.T) {
	_, err := usecase.NewIssueToken(&testutil.MockTokenService{}, "").Execute(usecase.IssueTokenInput{Owner: " "})
	assert.ErrorIs(t, err, domain.ErrNoOwner)

	_, err = usecase.NewIssueToken(&testutil.MockTokenService{IssueErr: domain.ErrUnauthorized}, "").Execute(usecase.IssueTokenInput{Owner: "u1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFeedURL(t *testing.T) {
	assert.Empty(t, usecase.FeedURL("", "abc"))
	assert.Equal(t, "http://localhost:8080/api/calendar?token=a%2Bb", usecase.FeedURL("http://localhost:8080", "a+b"))
}
