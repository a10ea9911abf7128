package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/config"
)

// newConfigTestContainer creates an app.Container with real config files
// under temporary directories.
func newConfigTestContainer(t *testing.T) (*app.Container, string, string) {
	t.Helper()
	workDir := t.TempDir()
	globalDir := t.TempDir()

	loader := config.NewLoaderWithGlobalDir(workDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	c := app.NewWithDeps(app.Config{WorkDir: workDir}, app.Deps{
		ConfigLoader:  loader,
		ConfigManager: config.NewManagerWithGlobalDir(workDir, globalDir),
		AppConfig:     cfg,
	})
	return c, workDir, globalDir
}

func TestConfigInit_Local(t *testing.T) {
	// Setup
	c, workDir, _ := newConfigTestContainer(t)

	// Execute
	out, err := execute(t, newConfigCommand(c), "init", "--owner", "alice", "--email", "alice@example.com")

	// Assert
	require.NoError(t, err)
	path := filepath.Join(workDir, domain.LocalConfigFileName)
	assert.Equal(t, "Created config file: "+path+"\n", out)

	loaded, err := config.NewLoaderWithGlobalDir(workDir, t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Account.Owner)
	assert.Equal(t, "alice@example.com", loaded.Account.Email)
	assert.Empty(t, loaded.Warnings)
}

func TestConfigInit_Global(t *testing.T) {
	c, _, globalDir := newConfigTestContainer(t)

	out, err := execute(t, newConfigCommand(c), "init", "--global")

	require.NoError(t, err)
	path := filepath.Join(globalDir, domain.ConfigFileName)
	assert.Equal(t, "Created config file: "+path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# owner = \"your-owner-id\"")
}

func TestConfigInit_AlreadyExists(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)
	_, err := execute(t, newConfigCommand(c), "init")
	require.NoError(t, err)

	_, err = execute(t, newConfigCommand(c), "init")

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestConfigShow(t *testing.T) {
	// Setup
	c, workDir, globalDir := newConfigTestContainer(t)
	content := "[account]\nowner = \"alice\"\n\n[auth]\nsecret = \"hunter2\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(workDir, domain.LocalConfigFileName), []byte(content), 0o600))

	tests := []struct {
		name       string
		args       []string
		wantSecret bool
	}{
		{name: "redacted", args: []string{"show"}},
		{name: "show secrets", args: []string{"show", "--show-secrets"}, wantSecret: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			out, err := execute(t, newConfigCommand(c), tt.args...)

			// Assert
			require.NoError(t, err)
			assert.Contains(t, out, "[Loaded from]")
			assert.Contains(t, out, "- "+filepath.Join(globalDir, domain.ConfigFileName)+" (not found)")
			assert.Contains(t, out, "- "+filepath.Join(workDir, domain.LocalConfigFileName)+"\n")
			assert.Contains(t, out, "[Effective Config]")
			assert.Contains(t, out, "alice")
			if tt.wantSecret {
				assert.Contains(t, out, "hunter2")
			} else {
				assert.NotContains(t, out, "hunter2")
			}
		})
	}
}
