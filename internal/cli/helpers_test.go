package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/testutil"
)

const testOwner = "u1"

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// newTestContainer creates an app.Container over mock dependencies and
// returns the mock store of the configured owner.
func newTestContainer(t *testing.T) (*app.Container, *testutil.MockStore) {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	cfg.Account.Owner = testOwner
	cfg.Account.Email = "me@example.com"

	db := testutil.NewMockStoreProvider()
	c := app.NewWithDeps(app.Config{WorkDir: t.TempDir()}, app.Deps{
		Clock:         &testutil.MockClock{NowTime: testNow},
		ConfigLoader:  &testutil.MockConfigLoader{Config: cfg},
		ConfigManager: testutil.NewMockConfigManager(),
		Database:      db,
		Outbox:        &testutil.MockOutbox{},
		Mailer:        &testutil.MockMailer{},
		Tokens:        &testutil.MockTokenService{},
		Limiter:       &testutil.MockRateLimiter{Limit: 5},
		AppConfig:     cfg,
	})
	return c, db.Owner(testOwner)
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// fakeRemote is a server stand-in for app.Remote.
type fakeRemote struct {
	*testutil.MockStoreProvider
	*testutil.MockClientCreator
}
