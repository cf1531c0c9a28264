package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[timer]
timeout = 300
lock = 10
blank = 600

[locker]
display = ":1"
dpms = false

[saver]
use = ["hacks", "laughing-man"]
timeout = 3
throttle = true
path = "/opt/savers"

[saver.options.hacks]
name = "xmatrix"
speed = 2

[auth.internal]
hash = "$2a$10$abcdefghijklmnopqrstuu"

[auth.pam]
enabled = true

[session]
logind = false

[logging]
level = "debug"
format = "json"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// replaceFile swaps content in with a rename so the watcher never sees a
// half-written file.
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := filepath.Join(t.TempDir(), "next.toml")
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, sample))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Minute, cfg.TimeoutDuration())
	assert.Equal(t, 10*time.Second, cfg.LockDuration())
	assert.Equal(t, 10*time.Minute, cfg.BlankDuration())
	assert.Equal(t, ":1", cfg.Locker.Display)
	assert.False(t, cfg.Locker.DPMS)
	assert.Equal(t, []string{"hacks", "laughing-man"}, cfg.Saver.Use)
	assert.Equal(t, 3*time.Second, cfg.SaverTimeout())
	assert.True(t, cfg.Saver.Throttle)
	assert.Equal(t, "/opt/savers", cfg.Saver.Path)
	assert.Equal(t, "xmatrix", cfg.Saver.Options["hacks"]["name"])
	assert.EqualValues(t, 2, cfg.Saver.Options["hacks"]["speed"])
	assert.True(t, cfg.Auth.PAM.Enabled)
	assert.Equal(t, "lockward", cfg.Auth.PAM.Service, "unset keys keep defaults")
	assert.False(t, cfg.Session.Logind)
	assert.True(t, cfg.Session.DBus)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "[timer\ntimeout = 1"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "[timer]\ntimeuot = 1\n"))
	assert.ErrorContains(t, err, "timer.timeuot")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"negative timeout", func(c *Config) { c.Timer.Timeout = -1 }, false},
		{"zero saver timeout", func(c *Config) { c.Saver.Timeout = 0 }, false},
		{"saver name with slash", func(c *Config) { c.Saver.Use = []string{"../evil"} }, false},
		{"empty saver name", func(c *Config) { c.Saver.Use = []string{""} }, false},
		{"pam without service", func(c *Config) { c.Auth.PAM = PAMAuthConfig{Enabled: true} }, false},
		{"pam disabled without service", func(c *Config) { c.Auth.PAM = PAMAuthConfig{} }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, false},
		{"no pid file", func(c *Config) { c.Daemon.PIDFile = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOCKWARD_TIMEOUT", "60")
	t.Setenv("LOCKWARD_LOCK", "-5")
	t.Setenv("LOCKWARD_DISPLAY", ":2")
	t.Setenv("LOCKWARD_DPMS", "false")
	t.Setenv("LOCKWARD_SAVERS", "a, b,,c")
	t.Setenv("LOCKWARD_PAM", "notabool")
	t.Setenv("LOCKWARD_LOG_LEVEL", "warn")
	t.Setenv("LOCKWARD_DB_PATH", "/tmp/lw.db")

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, 60, cfg.Timer.Timeout)
	assert.Equal(t, 0, cfg.Timer.Lock, "negative values are ignored")
	assert.Equal(t, ":2", cfg.Locker.Display)
	assert.False(t, cfg.Locker.DPMS)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Saver.Use)
	assert.False(t, cfg.Auth.PAM.Enabled)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/lw.db", cfg.Database.Path)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/lockward/config.toml", Path())
}

func TestStringHidesHash(t *testing.T) {
	cfg := Default()
	cfg.Auth.Internal.Hash = "$2a$10$secretsecret"
	s := cfg.String()
	assert.NotContains(t, s, "secretsecret")
	assert.Contains(t, s, "Internal Hash: set")
}

func TestLoaderReload(t *testing.T) {
	path := writeConfig(t, "[timer]\ntimeout = 100\n")

	l := NewLoader(path)
	l.debounce = 50 * time.Millisecond
	defer l.Close()

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Timer.Timeout)

	var calls atomic.Int32
	l.OnChange(func(*Config) { calls.Add(1) })
	require.NoError(t, l.Watch())

	replaceFile(t, path, "[timer]\ntimeout = 200\n")
	require.Eventually(t, func() bool {
		return l.Config().Timer.Timeout == 200
	}, 5*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return calls.Load() > 0 }, 5*time.Second, 10*time.Millisecond)

	replaceFile(t, path, "[saver]\ntimeout = 0\n")

	select {
	case err := <-l.Errors():
		assert.ErrorContains(t, err, "saver timeout")
		assert.Equal(t, 200, l.Config().Timer.Timeout, "bad reload keeps the old config")
	case <-time.After(5 * time.Second):
		t.Fatal("invalid config was not reported")
	}
}
