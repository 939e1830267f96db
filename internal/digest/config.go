package digest

import (
	"fmt"
	"os"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/reminders"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_SCHEDULE = "0 9 * * *"
	DEFAULT_TIMEOUT  = 10 * time.Second
)

// Config describes when and where reminder digests are delivered
type Config struct {
	Schedule    string        `yaml:"schedule"`     // Cron spec
	CallbackURL string        `yaml:"callback_url"` // Webhook receiving the digest
	MinPriority string        `yaml:"min_priority"` // Lowest priority included (high, medium, low)
	Timeout     time.Duration `yaml:"timeout"`      // Per-request timeout
}

// LoadConfig reads a digest config file. A missing file returns nil, nil and leaves the digest disabled
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read digest configuration file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse digest configuration file: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize fills defaults and checks required fields
func (c *Config) normalize() error {
	if c.CallbackURL == "" {
		return fmt.Errorf("callback_url cannot be empty")
	}
	if c.Schedule == "" {
		c.Schedule = DEFAULT_SCHEDULE
	}
	if c.Timeout <= 0 {
		c.Timeout = DEFAULT_TIMEOUT
	}
	if c.MinPriority == "" {
		c.MinPriority = string(reminders.PriorityLow)
	}
	if _, ok := reminders.ParsePriority(c.MinPriority); !ok {
		return fmt.Errorf("invalid min_priority '%s'", c.MinPriority)
	}
	return nil
}

// floor returns the parsed minimum priority
func (c *Config) floor() reminders.Priority {
	p, _ := reminders.ParsePriority(c.MinPriority)
	return p
}
