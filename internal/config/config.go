package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	Timer    TimerConfig    `toml:"timer"`
	Locker   LockerConfig   `toml:"locker"`
	Saver    SaverConfig    `toml:"saver"`
	Auth     AuthConfig     `toml:"auth"`
	Session  SessionConfig  `toml:"session"`
	Database DatabaseConfig `toml:"database"`
	Daemon   DaemonConfig   `toml:"daemon"`
	Logging  LoggingConfig  `toml:"logging"`
}

// TimerConfig holds the idle thresholds, in seconds
type TimerConfig struct {
	Timeout int `toml:"timeout"` // Idle time before the screensaver starts
	Lock    int `toml:"lock"`    // Time from start to lock, 0 locks immediately
	Blank   int `toml:"blank"`   // Idle time before screens power off, 0 never
}

// LockerConfig holds display configuration
type LockerConfig struct {
	Display string `toml:"display"` // X display name, empty means $DISPLAY
	DPMS    bool   `toml:"dpms"`    // Whether to drive monitor power
}

// SaverConfig holds screensaver process configuration
type SaverConfig struct {
	Use      []string                  `toml:"use"`
	Timeout  int                       `toml:"timeout"` // Watchdog seconds
	Throttle bool                      `toml:"throttle"`
	Path     string                    `toml:"path"` // Extra directory searched for savers
	Options  map[string]map[string]any `toml:"options"`
}

// AuthConfig holds authentication backends
type AuthConfig struct {
	Internal InternalAuthConfig `toml:"internal"`
	PAM      PAMAuthConfig      `toml:"pam"`
}

// InternalAuthConfig is the bcrypt backend
type InternalAuthConfig struct {
	Hash string `toml:"hash"`
}

// PAMAuthConfig is the PAM backend
type PAMAuthConfig struct {
	Enabled bool   `toml:"enabled"`
	Service string `toml:"service"`
}

// SessionConfig holds desktop session integration
type SessionConfig struct {
	Logind        bool `toml:"logind"`
	DBus          bool `toml:"dbus"` // Export org.freedesktop.ScreenSaver
	LockOnSuspend bool `toml:"lock_on_suspend"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to SQLite database file
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string `toml:"pid_file"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"` // Empty logs to stderr
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			Timeout: 360,
			Lock:    0,
			Blank:   0,
		},
		Locker: LockerConfig{
			DPMS: true,
		},
		Saver: SaverConfig{
			Use:     []string{},
			Timeout: 5,
			Options: map[string]map[string]any{},
		},
		Auth: AuthConfig{
			PAM: PAMAuthConfig{Service: "lockward"},
		},
		Session: SessionConfig{
			Logind:        true,
			DBus:          true,
			LockOnSuspend: true,
		},
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/lockward/lockward.db
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/lockward-%d.pid", os.Getuid()),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Path returns the config file location
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lockward", "config.toml")
}

// LoadFile reads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			if k.String() != "" && !strings.HasPrefix(k.String(), "saver.options.") {
				keys = append(keys, k.String())
			}
		}
		if len(keys) > 0 {
			return nil, errors.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
		}
	}

	if cfg.Saver.Options == nil {
		cfg.Saver.Options = map[string]map[string]any{}
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Timer.Timeout < 0 || c.Timer.Lock < 0 || c.Timer.Blank < 0 {
		return errors.New("timer values cannot be negative")
	}

	if c.Saver.Timeout < 1 {
		return errors.Errorf("saver timeout must be at least 1 second, got %d", c.Saver.Timeout)
	}

	for _, name := range c.Saver.Use {
		if name == "" || strings.ContainsRune(name, '/') {
			return errors.Errorf("invalid saver name %q", name)
		}
	}

	if c.Auth.PAM.Enabled && c.Auth.PAM.Service == "" {
		return errors.New("PAM service cannot be empty")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Errorf("log format must be text or json, got %q", c.Logging.Format)
	}

	if c.Daemon.PIDFile == "" {
		return errors.New("PID file path cannot be empty")
	}

	return nil
}

// TimeoutDuration returns the idle timeout
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timer.Timeout) * time.Second
}

// LockDuration returns the delay from start to lock
func (c *Config) LockDuration() time.Duration {
	return time.Duration(c.Timer.Lock) * time.Second
}

// BlankDuration returns the idle time before blanking
func (c *Config) BlankDuration() time.Duration {
	return time.Duration(c.Timer.Blank) * time.Second
}

// SaverTimeout returns the saver watchdog
func (c *Config) SaverTimeout() time.Duration {
	return time.Duration(c.Saver.Timeout) * time.Second
}

// String returns a string representation of the config
func (c *Config) String() string {
	hash := "unset"
	if c.Auth.Internal.Hash != "" {
		hash = "set"
	}
	options := make([]string, 0, len(c.Saver.Options))
	for name := range c.Saver.Options {
		options = append(options, name)
	}
	sort.Strings(options)

	return fmt.Sprintf(`Configuration:
  Timer:
    Timeout: %v
    Lock: %v
    Blank: %v
  Locker:
    Display: %s
    DPMS: %v
  Saver:
    Use: %s
    Timeout: %v
    Throttle: %v
    Path: %s
    Options: %s
  Auth:
    Internal Hash: %s
    PAM: %v (%s)
  Session:
    Logind: %v
    D-Bus: %v
    Lock On Suspend: %v
  Database:
    Path: %s
  Daemon:
    PID File: %s
  Logging:
    Level: %s
    Format: %s
    File: %s`,
		c.TimeoutDuration(),
		c.LockDuration(),
		c.BlankDuration(),
		c.Locker.Display,
		c.Locker.DPMS,
		strings.Join(c.Saver.Use, ", "),
		c.SaverTimeout(),
		c.Saver.Throttle,
		c.Saver.Path,
		strings.Join(options, ", "),
		hash,
		c.Auth.PAM.Enabled,
		c.Auth.PAM.Service,
		c.Session.Logind,
		c.Session.DBus,
		c.Session.LockOnSuspend,
		c.Database.Path,
		c.Daemon.PIDFile,
		c.Logging.Level,
		c.Logging.Format,
		c.Logging.File,
	)
}
