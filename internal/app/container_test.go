package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/testutil"
)

type fakeRemote struct {
	*testutil.MockStoreProvider
	*testutil.MockClientCreator
}

func TestContainer_Store(t *testing.T) {
	t.Run("no owner", func(t *testing.T) {
		c := NewWithDeps(Config{WorkDir: t.TempDir()}, Deps{Database: testutil.NewMockStoreProvider()})

		_, err := c.Store(context.Background())

		assert.ErrorIs(t, err, domain.ErrNoOwner)
	})

	t.Run("scoped to configured owner", func(t *testing.T) {
		// Setup
		db := testutil.NewMockStoreProvider()
		db.Owner("alice").Clients.Clients = []*domain.Client{{ID: "c1", Name: "ana"}}
		cfg := domain.NewDefaultConfig()
		cfg.Account.Owner = "alice"
		c := NewWithDeps(Config{WorkDir: t.TempDir()}, Deps{Database: db, AppConfig: cfg})

		// Execute
		st, err := c.Store(context.Background())

		// Assert
		require.NoError(t, err)
		clients, err := st.Clients.List(context.Background())
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, "ana", clients[0].Name)
	})

	t.Run("remote ignores owner", func(t *testing.T) {
		remote := fakeRemote{testutil.NewMockStoreProvider(), &testutil.MockClientCreator{}}
		c := NewWithDeps(Config{WorkDir: t.TempDir()}, Deps{Remote: remote})

		_, err := c.Store(context.Background())
		require.NoError(t, err)
		creator, err := c.ClientCreator(context.Background())

		require.NoError(t, err)
		assert.Equal(t, remote, creator)
	})
}

func TestContainer_OpenDatabase_DefaultsToDataDir(t *testing.T) {
	// Setup
	dataDir := filepath.Join(t.TempDir(), "data")
	c := NewWithDeps(Config{WorkDir: t.TempDir(), DataDir: dataDir}, Deps{})

	// Execute
	db, err := c.OpenDatabase(context.Background())

	// Assert
	require.NoError(t, err)
	require.NoError(t, db.Ping(context.Background()))
	_, err = os.Stat(filepath.Join(dataDir, domain.DatabaseFileName))
	assert.NoError(t, err)

	again, err := c.OpenDatabase(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, again)
	assert.NoError(t, c.Close())
}

func TestContainer_Server_RegistersCollectors(t *testing.T) {
	c := NewWithDeps(Config{WorkDir: t.TempDir()}, Deps{
		Database: testutil.NewMockStoreProvider(),
		Tokens:   &testutil.MockTokenService{},
		Mailer:   &testutil.MockMailer{},
		Limiter:  &testutil.MockRateLimiter{Limit: 5},
	})
	reg := prometheus.NewRegistry()

	srv, err := c.Server(context.Background(), reg)

	require.NoError(t, err)
	assert.NotNil(t, srv)
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_goroutines")
}
