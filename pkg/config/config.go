// Package config loads the runtime configuration for the framework core
// from YAML, with defaults matching the reference 10x5 drawing plane.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-archmodel/pkg/auth"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
)

// Config holds the tunable settings of the framework core.
type Config struct {
	// Plane is the drawing plane nodes must stay inside.
	Plane PlaneConfig `yaml:"plane"`

	// DefaultAuthor is attached to mutations when the session layer
	// supplies no author identity.
	DefaultAuthor string `yaml:"default_author"`

	// AuditBufferSize is the capacity of the audit trail ring buffer.
	AuditBufferSize int `yaml:"audit_buffer_size"`

	// HistoryWarnThreshold is the version-store length above which a
	// warning is logged. History itself is unbounded.
	HistoryWarnThreshold int `yaml:"history_warn_threshold"`

	// Roles maps role names to permission lists. Empty means the
	// built-in role map.
	Roles map[string][]string `yaml:"roles"`
}

// PlaneConfig bounds node coordinates.
type PlaneConfig struct {
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Plane:                PlaneConfig{MaxX: 10, MaxY: 5},
		DefaultAuthor:        "system",
		AuditBufferSize:      1024,
		HistoryWarnThreshold: 1000,
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, collecting all errors rather than
// failing on the first one.
func (c *Config) Validate() error {
	return NewConfigValidator("Config").
		PositiveFloat("plane.max_x", c.Plane.MaxX).
		PositiveFloat("plane.max_y", c.Plane.MaxY).
		Required("default_author", c.DefaultAuthor).
		MinInt("audit_buffer_size", c.AuditBufferSize, 1).
		MinInt("history_warn_threshold", c.HistoryWarnThreshold, 1).
		Custom("roles", c.checkRoles).
		Validate()
}

func (c *Config) checkRoles() error {
	for role, perms := range c.Roles {
		if role == "" {
			return fmt.Errorf("role name cannot be empty")
		}
		for _, p := range perms {
			if !auth.Permission(p).Valid() {
				return fmt.Errorf("role %q: unknown permission %q", role, p)
			}
		}
	}
	return nil
}

// Bounds converts the plane settings to validator bounds.
func (c *Config) Bounds() validation.Bounds {
	return validation.Bounds{MaxX: c.Plane.MaxX, MaxY: c.Plane.MaxY}
}

// Checker builds the permission checker: the configured role map if any
// roles are set, the built-in map otherwise.
func (c *Config) Checker() *auth.Checker {
	if len(c.Roles) == 0 {
		return auth.NewChecker()
	}
	roles := make(map[auth.Role][]auth.Permission, len(c.Roles))
	for role, perms := range c.Roles {
		list := make([]auth.Permission, 0, len(perms))
		for _, p := range perms {
			list = append(list, auth.Permission(p))
		}
		roles[auth.Role(role)] = list
	}
	return auth.NewCheckerWithRoles(roles)
}
