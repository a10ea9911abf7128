package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoader_Load_Defaults(t *testing.T) {
	// Setup
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_LocalOverridesGlobal(t *testing.T) {
	// Setup
	workDir := t.TempDir()
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[database]
driver = "postgres"
dsn = "postgres://global"

[calendar]
timezone = "America/New_York"
`)
	writeFile(t, filepath.Join(workDir, domain.LocalConfigFileName), `
[database]
dsn = "postgres://local"

[support]
rate_limit = 10
rate_window = "2m"
`)
	loader := NewLoaderWithGlobalDir(workDir, globalDir)

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://local", cfg.Database.DSN)
	assert.Equal(t, "America/New_York", cfg.Calendar.Timezone)
	assert.Equal(t, 10, cfg.Support.RateLimit)
	assert.Equal(t, 2*time.Minute, cfg.Support.RateWindow.Std())
	assert.Equal(t, domain.DefaultServerAddr, cfg.Server.Addr)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_Warnings(t *testing.T) {
	// Setup
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, domain.LocalConfigFileName), `
[server]
addr = ":9090"
port = 9090

[calendar]
timezone = "Mars/Olympus"

[reminders]
window = "soon"

[plugins]
enabled = true
`)
	loader := NewLoaderWithGlobalDir(workDir, "")

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "UTC", cfg.Calendar.Timezone, "invalid zone keeps default")
	assert.Equal(t, domain.DefaultReminderWindow, cfg.Reminders.Window.Std())
	assert.Equal(t, []string{
		"invalid value in [calendar]: timezone = Mars/Olympus",
		"invalid value in [reminders]: window = soon",
		"unknown key in [server]: port",
		"unknown section: plugins",
	}, cfg.Warnings)
}

func TestLoader_Load_CORSOrigins(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, domain.LocalConfigFileName), `
[server]
cors_origins = ["https://a.example", "https://b.example"]
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, "").Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoader_Load_ParseError(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, domain.LocalConfigFileName), "[server\naddr = ")

	_, err := NewLoaderWithGlobalDir(workDir, "").Load()

	assert.Error(t, err)
}

func TestLoader_LoadGlobal_NoDir(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()

	assert.ErrorIs(t, err, os.ErrNotExist)
}
