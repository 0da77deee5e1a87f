// Package checkpoint provides category-scoped diagnostic logging and runtime expectations.
//
// A CheckPoint wraps a *slog.Logger with a category attribute. Debug output is
// emitted only for categories switched on through Settings, while Info, Warn and
// Error always pass through to the handler. Expect logs a failed expectation and,
// when trapping is configured, panics with a *Violation.
//
// Settings are usually parsed from the CBI_CHECKPOINTS environment variable, a
// colon separated list:
//
//	CBI_CHECKPOINTS=threadpool:queue      enable debug output for two categories
//	CBI_CHECKPOINTS=all                   enable every category ("*" also works)
//	CBI_CHECKPOINTS=all:expect-off        enable output but skip expectations
//	CBI_CHECKPOINTS=threadpool:expect-trap panic on a failed expectation
package checkpoint

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar is the environment variable read by SettingsFromEnv
const EnvVar = "CBI_CHECKPOINTS"

// Settings selects which categories are active and how expectations behave
type Settings struct {
	// All activates every category
	All bool

	// Categories lists individually activated categories
	Categories map[string]bool

	// ExpectOff disables evaluation of expectations
	ExpectOff bool

	// Trap makes a failed expectation panic with *Violation
	Trap bool
}

// ParseSettings parses a colon separated list of checkpoint settings
func ParseSettings(list string) Settings {
	s := Settings{Categories: make(map[string]bool)}
	for _, cat := range strings.Split(list, ":") {
		cat = strings.TrimSpace(cat)
		switch cat {
		case "":
		case "*", "all":
			s.All = true
		case "expect-off":
			s.ExpectOff = true
		case "expect-trap", "expect-fatal":
			s.Trap = true
		default:
			s.Categories[cat] = true
		}
	}
	return s
}

// SettingsFromEnv parses CBI_CHECKPOINTS
func SettingsFromEnv() Settings {
	return ParseSettings(os.Getenv(EnvVar))
}

// Active reports whether category is switched on
func (s Settings) Active(category string) bool {
	return s.All || s.Categories[category]
}

// Violation is the panic value raised by a trapped expectation
type Violation struct {
	Category string
	Message  string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("checkpoint %s: expectation failed: %s", v.Category, v.Message)
}

// CheckPoint is a category-scoped logger with expectation support
type CheckPoint struct {
	category string
	logger   *slog.Logger
	active   bool
	expect   bool
	trap     bool
}

// Option configures a CheckPoint
type Option func(*config)

type config struct {
	logger   *slog.Logger
	settings *Settings
}

// WithLogger routes output through logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithOutput writes text-formatted records to w at debug level and above
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// WithSettings overrides the settings read from the environment
func WithSettings(s Settings) Option {
	return func(c *config) {
		c.settings = &s
	}
}

// New creates a CheckPoint for category
func New(category string, opts ...Option) *CheckPoint {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	settings := cfg.settings
	if settings == nil {
		s := SettingsFromEnv()
		settings = &s
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CheckPoint{
		category: category,
		logger:   logger.With(slog.String("category", category)),
		active:   settings.Active(category),
		expect:   !settings.ExpectOff,
		trap:     settings.Trap,
	}
}

// Category returns the checkpoint category
func (c *CheckPoint) Category() string {
	return c.category
}

// Active reports whether debug output is enabled for this category
func (c *CheckPoint) Active() bool {
	return c.active
}

// Debug logs only when the category is active
func (c *CheckPoint) Debug(msg string, args ...any) {
	if !c.active {
		return
	}
	c.logger.Debug(msg, args...)
}

func (c *CheckPoint) Info(msg string, args ...any) {
	c.logger.Info(msg, args...)
}

func (c *CheckPoint) Warn(msg string, args ...any) {
	c.logger.Warn(msg, args...)
}

func (c *CheckPoint) Error(msg string, args ...any) {
	c.logger.Error(msg, args...)
}

// Expect returns cond. When cond is false it logs msg and traps if configured.
func (c *CheckPoint) Expect(cond bool, msg string, args ...any) bool {
	if cond || !c.expect {
		return cond
	}
	c.logger.Error("expectation failed: "+msg, args...)
	if c.trap {
		panic(&Violation{Category: c.category, Message: msg})
	}
	return cond
}

// Hit records that an unreachable point was reached
func (c *CheckPoint) Hit(msg string, args ...any) {
	c.Expect(false, msg, args...)
}
