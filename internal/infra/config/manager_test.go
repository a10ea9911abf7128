package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clientive/clientive/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetLocalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		workDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\"\n"
		err := os.WriteFile(filepath.Join(workDir, domain.LocalConfigFileName), []byte(configContent), 0o644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir(workDir, "")
		info := manager.GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(workDir, domain.LocalConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		workDir := t.TempDir()

		manager := NewManagerWithGlobalDir(workDir, "")
		info := manager.GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(workDir, domain.LocalConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("empty when global dir is unknown", func(t *testing.T) {
		manager := NewManagerWithGlobalDir(t.TempDir(), "")
		assert.Equal(t, domain.ConfigInfo{}, manager.GetGlobalConfigInfo())
	})

	t.Run("reads global file", func(t *testing.T) {
		globalDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte("x = 1"), 0o644))

		info := NewManagerWithGlobalDir(t.TempDir(), globalDir).GetGlobalConfigInfo()

		assert.True(t, info.Exists)
		assert.Equal(t, "x = 1", info.Content)
	})
}

func TestManager_InitLocalConfig(t *testing.T) {
	// Setup
	workDir := t.TempDir()
	manager := NewManagerWithGlobalDir(workDir, "")

	// Execute
	err := manager.InitLocalConfig(domain.NewDefaultConfig())

	// Assert
	require.NoError(t, err)
	path := filepath.Join(workDir, domain.LocalConfigFileName)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[server]")
	assert.Contains(t, string(content), `# addr = ":8080"`)
	assert.Contains(t, string(content), `# token_ttl = "8760h0m0s"`)

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())

	// The rendered template must load back without warnings.
	cfg, err := NewLoaderWithGlobalDir(workDir, "").Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
}

func TestManager_InitLocalConfig_Exists(t *testing.T) {
	workDir := t.TempDir()
	manager := NewManagerWithGlobalDir(workDir, "")
	require.NoError(t, manager.InitLocalConfig(domain.NewDefaultConfig()))

	err := manager.InitLocalConfig(domain.NewDefaultConfig())

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates directory and file", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "clientive")
		manager := NewManagerWithGlobalDir(t.TempDir(), globalDir)

		require.NoError(t, manager.InitGlobalConfig(domain.NewDefaultConfig()))

		assert.True(t, manager.GetGlobalConfigInfo().Exists)
	})

	t.Run("fails without global dir", func(t *testing.T) {
		manager := NewManagerWithGlobalDir(t.TempDir(), "")

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())

		assert.Error(t, err)
	})
}
