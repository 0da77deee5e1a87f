package threadpool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// Environment overrides applied by LoadConfig
const (
	EnvName    = "THREADPOOL_NAME"
	EnvWorkers = "THREADPOOL_WORKERS"
)

// Config defines configuration for a thread pool
type Config struct {
	// Name identifies the pool in logs and metrics. Generated when empty.
	Name string `yaml:"name" json:"name"`

	// Workers is the number of workers activated by New. Zero leaves the pool inactive.
	Workers int `yaml:"workers" json:"workers"`

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock `yaml:"-" json:"-"`

	// Logger receives lifecycle and failure records (optional)
	Logger types.Logger `yaml:"-" json:"-"`

	// Metrics receives task and queue events (optional)
	Metrics types.Metrics `yaml:"-" json:"-"`

	// ErrorHandler is called with failures escaping fire-and-forget tasks (optional)
	ErrorHandler types.ErrorHandler `yaml:"-" json:"-"`
}

// DefaultConfig returns default configuration: an inactive pool with a generated name
func DefaultConfig() *Config {
	return &Config{
		Workers: 0,
		Clock:   types.NewRealClock(),
		Metrics: types.NoopMetrics{},
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", types.ErrInvalidConfig, c.Workers)
	}
	if c.Name == "" {
		c.Name = "pool-" + uuid.NewString()
	}
	if c.Clock == nil {
		c.Clock = types.NewRealClock()
	}
	if c.Metrics == nil {
		c.Metrics = types.NoopMetrics{}
	}
	return nil
}

// LoadConfig reads a YAML or JSON config file, then applies environment overrides
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvOverrides(c *Config) error {
	if v, ok := os.LookupEnv(EnvName); ok && v != "" {
		c.Name = v
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return nil
}
