package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings  []string        `toml:"-"`
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Auth      AuthConfig      `toml:"auth"`
	Account   AccountConfig   `toml:"account"`
	Remote    RemoteConfig    `toml:"remote"`
	Mail      MailConfig      `toml:"mail"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Export    ExportConfig    `toml:"export"`
	Support   SupportConfig   `toml:"support"`
	Reminders RemindersConfig `toml:"reminders"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig holds HTTP server settings from [server] section.
type ServerConfig struct {
	Addr        string   `toml:"addr,omitempty"`         // Listen address
	PublicURL   string   `toml:"public_url,omitempty"`   // Externally visible base URL, used for feed links
	CORSOrigins []string `toml:"cors_origins,omitempty"` // Allowed browser origins; empty allows all
}

// DatabaseConfig holds storage settings from [database] section.
type DatabaseConfig struct {
	Driver string `toml:"driver,omitempty"` // "sqlite" (default) or "postgres"
	DSN    string `toml:"dsn,omitempty"`    // Driver-specific data source name
}

// AuthConfig holds token settings from [auth] section.
type AuthConfig struct {
	Secret   string   `toml:"secret,omitempty"`    // HMAC signing secret
	TokenTTL Duration `toml:"token_ttl,omitempty"` // Lifetime of issued tokens
}

// AccountConfig identifies the local user from [account] section.
type AccountConfig struct {
	Owner string `toml:"owner,omitempty"` // Owner ID used for direct database access
	Email string `toml:"email,omitempty"` // Address that receives task reminders
}

// RemoteConfig points the CLI at a running server from [remote] section.
type RemoteConfig struct {
	URL   string `toml:"url,omitempty"`   // Base URL of the API; empty means direct database access
	Token string `toml:"token,omitempty"` // Bearer token for the API
}

// MailConfig holds email delivery settings from [mail] section.
type MailConfig struct {
	Provider     string `toml:"provider,omitempty"`      // "log" (default) or "sendgrid"
	SendGridKey  string `toml:"sendgrid_key,omitempty"`  // SendGrid API key
	From         string `toml:"from,omitempty"`          // Sender address
	SupportInbox string `toml:"support_inbox,omitempty"` // Recipient of support requests
}

// CalendarConfig holds calendar settings from [calendar] section.
type CalendarConfig struct {
	Timezone string `toml:"timezone,omitempty"` // IANA zone for due dates without an offset
}

// ExportConfig holds export settings from [export] section.
type ExportConfig struct {
	DateLayout string `toml:"date_layout,omitempty"` // Go time layout for dates in exports
}

// SupportConfig holds contact-form throttling from [support] section.
type SupportConfig struct {
	RateLimit  int      `toml:"rate_limit,omitempty"`  // Requests allowed per window and address
	RateWindow Duration `toml:"rate_window,omitempty"` // Window length
}

// RemindersConfig holds task reminder settings from [reminders] section.
type RemindersConfig struct {
	Window Duration `toml:"window,omitempty"` // How far ahead due tasks are included
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Duration is a time.Duration that reads and writes as a string ("30m").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default configuration values.
const (
	DefaultServerAddr      = ":8080"
	DefaultDatabaseDriver  = "sqlite"
	DefaultTokenTTL        = 365 * 24 * time.Hour
	DefaultMailProvider    = "log"
	DefaultDateLayout      = "1/2/2006"
	DefaultSupportLimit    = 5
	DefaultSupportWindow   = time.Minute
	DefaultReminderWindow  = 24 * time.Hour
	DefaultLogLevel        = "info"
	DefaultMailFrom        = "Clientive <noreply@clientive.local>"
	DefaultSupportInbox    = "support@clientive.local"
	SupportMessageMaxChars = 5000
)

// Directory and file names for clientive.
const (
	AppDirName          = "clientive"
	ConfigFileName      = "config.toml"
	LocalConfigFileName = "clientive.toml"
	DatabaseFileName    = "clientive.db"
	OutboxFileName      = "outbox.json"
	LogFileName         = "clientive.log"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the config path in a working directory.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// DataDir returns the data directory.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// LogPath returns the log file path under a data directory.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server:    ServerConfig{Addr: DefaultServerAddr},
		Database:  DatabaseConfig{Driver: DefaultDatabaseDriver},
		Auth:      AuthConfig{TokenTTL: Duration(DefaultTokenTTL)},
		Mail:      MailConfig{Provider: DefaultMailProvider, From: DefaultMailFrom, SupportInbox: DefaultSupportInbox},
		Calendar:  CalendarConfig{Timezone: "UTC"},
		Export:    ExportConfig{DateLayout: DefaultDateLayout},
		Support:   SupportConfig{RateLimit: DefaultSupportLimit, RateWindow: Duration(DefaultSupportWindow)},
		Reminders: RemindersConfig{Window: Duration(DefaultReminderWindow)},
		Log:       LogConfig{Level: DefaultLogLevel},
	}
}

// Location resolves the calendar timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c.Calendar.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesRemote reports whether the CLI talks to a server instead of the database.
func (c *Config) UsesRemote() bool {
	return c.Remote.URL != ""
}

// RenderConfigTemplate renders the commented starter config for `config init`.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
