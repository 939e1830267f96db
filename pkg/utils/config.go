package utils

import (
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Configuration keys read by the hub
const (
	KEY_API_PORT             = "API_PORT"
	KEY_API_KEY              = "API_KEY"
	KEY_CORS_ALLOWED_ORIGINS = "CORS_ALLOWED_ORIGINS"
	KEY_STORE_BACKEND        = "STORE_BACKEND"
	KEY_GOOGLE_CREDENTIALS   = "GOOGLE_CREDENTIALS_JSON"
	KEY_GOOGLE_TOKEN         = "GOOGLE_TOKEN_JSON"
	KEY_SPREADSHEET_ID       = "SPREADSHEET_ID"
	KEY_SPREADSHEET_TITLE    = "SPREADSHEET_TITLE"
	KEY_DIGEST_CONFIG_PATH   = "DIGEST_CONFIG_PATH"
	KEY_LOG_LEVEL            = "LOG_LEVEL"
	KEY_APP_ENV              = "APP_ENV"
)

// Store backends selectable through STORE_BACKEND
const (
	BACKEND_MEMORY = "memory"
	BACKEND_MYSQL  = "mysql"
	BACKEND_GOOGLE = "google"
)

// Config is a thread-safe view over environment-style key/value settings
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config holding a copy of values
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv loads the given .env files over the process environment
func NewConfigFromEnv(files ...string) *Config {
	return NewConfig(LoadEnv(files...))
}

// Get retrieves a value, or "" when the key is unset
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a value, falling back when it is unset or empty
func (c *Config) GetWithDefault(key, defaultValue string) string {
	if value := c.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBool parses a boolean value. Unset or unparseable values are false
func (c *Config) GetBool(key string) bool {
	value := strings.ToLower(c.Get(key))

	switch value {
	case "1", "yes", "on", "enabled":
		return true
	case "0", "no", "off", "disabled", "":
		return false
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

// GetInt parses an integer value, returning defaultValue when unset or malformed
func (c *Config) GetInt(key string, defaultValue int) int {
	parsed, err := strconv.Atoi(c.Get(key))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDuration parses a Go duration string such as "30s", returning defaultValue when
// unset or malformed
func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	parsed, err := time.ParseDuration(c.Get(key))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetList splits a comma-separated value, dropping blank entries
func (c *Config) GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(c.Get(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.values[key]
	return exists
}

// StoreBackend returns the configured record store backend
func (c *Config) StoreBackend() string {
	return strings.ToLower(c.GetWithDefault(KEY_STORE_BACKEND, BACKEND_MEMORY))
}

// Development reports whether APP_ENV selects development mode
func (c *Config) Development() bool {
	return strings.EqualFold(c.Get(KEY_APP_ENV), "development")
}
