// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	workDir       string // Directory searched for clientive.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/clientive)
}

// NewLoader creates a new Loader.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// GlobalPath returns the global config file path ("" when unknown).
func (l *Loader) GlobalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// LocalPath returns the working-directory config file path.
func (l *Loader) LocalPath() string {
	return domain.LocalConfigPath(l.workDir)
}

// Load returns the merged configuration.
// Local config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- local (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	path := l.GlobalPath()
	if path == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(path)
}

// LoadLocal returns only the working-directory configuration.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	return l.loadFile(l.LocalPath())
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// section collects values and warnings for one [table].
type section struct {
	name     string
	warnings *[]string
}

func (s section) unknown(key string) {
	*s.warnings = append(*s.warnings, fmt.Sprintf("unknown key in [%s]: %s", s.name, key))
}

func (s section) invalid(key string, v any) {
	*s.warnings = append(*s.warnings, fmt.Sprintf("invalid value in [%s]: %s = %v", s.name, key, v))
}

func (s section) str(key string, v any, dst *string) {
	if str, ok := v.(string); ok {
		*dst = str
		return
	}
	s.invalid(key, v)
}

func (s section) integer(key string, v any, dst *int) {
	if n, ok := v.(int64); ok {
		*dst = int(n)
		return
	}
	s.invalid(key, v)
}

func (s section) duration(key string, v any, dst *domain.Duration) {
	str, ok := v.(string)
	if !ok {
		s.invalid(key, v)
		return
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		s.invalid(key, v)
		return
	}
	*dst = domain.Duration(d)
}

func (s section) strings(key string, v any, dst *[]string) {
	list, ok := v.([]any)
	if !ok {
		s.invalid(key, v)
		return
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	*dst = out
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for name, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", name))
			continue
		}
		s := section{name: name, warnings: &warnings}
		switch name {
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					s.str(k, v, &res.Server.Addr)
				case "public_url":
					s.str(k, v, &res.Server.PublicURL)
				case "cors_origins":
					s.strings(k, v, &res.Server.CORSOrigins)
				default:
					s.unknown(k)
				}
			}
		case "database":
			for k, v := range m {
				switch k {
				case "driver":
					s.str(k, v, &res.Database.Driver)
				case "dsn":
					s.str(k, v, &res.Database.DSN)
				default:
					s.unknown(k)
				}
			}
		case "auth":
			for k, v := range m {
				switch k {
				case "secret":
					s.str(k, v, &res.Auth.Secret)
				case "token_ttl":
					s.duration(k, v, &res.Auth.TokenTTL)
				default:
					s.unknown(k)
				}
			}
		case "account":
			for k, v := range m {
				switch k {
				case "owner":
					s.str(k, v, &res.Account.Owner)
				case "email":
					s.str(k, v, &res.Account.Email)
				default:
					s.unknown(k)
				}
			}
		case "remote":
			for k, v := range m {
				switch k {
				case "url":
					s.str(k, v, &res.Remote.URL)
				case "token":
					s.str(k, v, &res.Remote.Token)
				default:
					s.unknown(k)
				}
			}
		case "mail":
			for k, v := range m {
				switch k {
				case "provider":
					s.str(k, v, &res.Mail.Provider)
				case "sendgrid_key":
					s.str(k, v, &res.Mail.SendGridKey)
				case "from":
					s.str(k, v, &res.Mail.From)
				case "support_inbox":
					s.str(k, v, &res.Mail.SupportInbox)
				default:
					s.unknown(k)
				}
			}
		case "calendar":
			for k, v := range m {
				switch k {
				case "timezone":
					s.str(k, v, &res.Calendar.Timezone)
					if _, err := time.LoadLocation(res.Calendar.Timezone); err != nil {
						s.invalid(k, v)
						res.Calendar.Timezone = ""
					}
				default:
					s.unknown(k)
				}
			}
		case "export":
			for k, v := range m {
				switch k {
				case "date_layout":
					s.str(k, v, &res.Export.DateLayout)
				default:
					s.unknown(k)
				}
			}
		case "support":
			for k, v := range m {
				switch k {
				case "rate_limit":
					s.integer(k, v, &res.Support.RateLimit)
				case "rate_window":
					s.duration(k, v, &res.Support.RateWindow)
				default:
					s.unknown(k)
				}
			}
		case "reminders":
			for k, v := range m {
				switch k {
				case "window":
					s.duration(k, v, &res.Reminders.Window)
				default:
					s.unknown(k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					s.str(k, v, &res.Log.Level)
				default:
					s.unknown(k)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", name))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
// Zero values in override leave the base value in place.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	setString(&result.Server.Addr, override.Server.Addr)
	setString(&result.Server.PublicURL, override.Server.PublicURL)
	if len(override.Server.CORSOrigins) > 0 {
		result.Server.CORSOrigins = append([]string{}, override.Server.CORSOrigins...)
	}
	setString(&result.Database.Driver, override.Database.Driver)
	setString(&result.Database.DSN, override.Database.DSN)
	setString(&result.Auth.Secret, override.Auth.Secret)
	setDuration(&result.Auth.TokenTTL, override.Auth.TokenTTL)
	setString(&result.Account.Owner, override.Account.Owner)
	setString(&result.Account.Email, override.Account.Email)
	setString(&result.Remote.URL, override.Remote.URL)
	setString(&result.Remote.Token, override.Remote.Token)
	setString(&result.Mail.Provider, override.Mail.Provider)
	setString(&result.Mail.SendGridKey, override.Mail.SendGridKey)
	setString(&result.Mail.From, override.Mail.From)
	setString(&result.Mail.SupportInbox, override.Mail.SupportInbox)
	setString(&result.Calendar.Timezone, override.Calendar.Timezone)
	setString(&result.Export.DateLayout, override.Export.DateLayout)
	if override.Support.RateLimit != 0 {
		result.Support.RateLimit = override.Support.RateLimit
	}
	setDuration(&result.Support.RateWindow, override.Support.RateWindow)
	setDuration(&result.Reminders.Window, override.Reminders.Window)
	setString(&result.Log.Level, override.Log.Level)

	return &result
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *domain.Duration, v domain.Duration) {
	if v != 0 {
		*dst = v
	}
}
