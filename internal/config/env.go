package config

import (
	"os"
	"strconv"
	"strings"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override file and default values
func LoadFromEnv(cfg *Config) {
	// Timer configuration
	setSeconds("LOCKWARD_TIMEOUT", &cfg.Timer.Timeout)
	setSeconds("LOCKWARD_LOCK", &cfg.Timer.Lock)
	setSeconds("LOCKWARD_BLANK", &cfg.Timer.Blank)

	// Locker configuration
	if display := os.Getenv("LOCKWARD_DISPLAY"); display != "" {
		cfg.Locker.Display = display
	}
	setBool("LOCKWARD_DPMS", &cfg.Locker.DPMS)

	// Saver configuration
	if use := os.Getenv("LOCKWARD_SAVERS"); use != "" {
		cfg.Saver.Use = nil
		for _, name := range strings.Split(use, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Saver.Use = append(cfg.Saver.Use, name)
			}
		}
	}
	if path := os.Getenv("LOCKWARD_SAVER_PATH"); path != "" {
		cfg.Saver.Path = path
	}

	// Auth configuration
	if hash := os.Getenv("LOCKWARD_AUTH_HASH"); hash != "" {
		cfg.Auth.Internal.Hash = hash
	}
	setBool("LOCKWARD_PAM", &cfg.Auth.PAM.Enabled)

	// Database configuration
	if dbPath := os.Getenv("LOCKWARD_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Daemon configuration
	if pidFile := os.Getenv("LOCKWARD_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Logging configuration
	if level := os.Getenv("LOCKWARD_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("LOCKWARD_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if file := os.Getenv("LOCKWARD_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
}

func setSeconds(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			*dst = seconds
		}
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// New loads the config file at path over the defaults and applies the
// environment
func New(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	LoadFromEnv(cfg)
	return cfg, nil
}
