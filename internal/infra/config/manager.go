package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	workDir       string // Directory holding clientive.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/clientive)
}

// NewManager creates a new Manager.
func NewManager(workDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(workDir, globalConfDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// GetLocalConfigInfo returns information about the working-directory config file.
func (m *Manager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.getConfigInfo(domain.LocalConfigPath(m.workDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitLocalConfig creates clientive.toml in the working directory.
func (m *Manager) InitLocalConfig(cfg *domain.Config) error {
	return m.initConfig(domain.LocalConfigPath(m.workDir), cfg)
}

// InitGlobalConfig creates the global config file.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return err
	}
	return m.initConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName), cfg)
}

// initConfig creates a config file from the starter template.
// The file may hold secrets, so it is private to the owner.
func (m *Manager) initConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	return os.WriteFile(path, []byte(domain.RenderConfigTemplate(cfg)), 0o600)
}
