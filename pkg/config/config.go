// Package config loads the gateway's configuration: server/session/
// event-store/command settings through Viper (env > file > defaults),
// and the security policy and tool catalog from dedicated YAML files
// decoded with goccy/go-yaml.
package config

import "fmt"

// ServerConfig is the MCP transport and logging configuration.
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Transport string `mapstructure:"transport"` // "stdio" | "streamable-http"
	LogLevel  string `mapstructure:"log_level"`
}

// SessionConfig selects and tunes the SessionStore backend.
type SessionConfig struct {
	Persistence string `mapstructure:"persistence"` // "memory" | "redis" | "sticky"
	TTLSeconds  int    `mapstructure:"ttl_seconds"`
	RedisURL    string `mapstructure:"redis_url"`
}

// EventStoreConfig selects and tunes the EventStore backend.
type EventStoreConfig struct {
	Persistence string `mapstructure:"persistence"` // "none" | "memory" | "redis"
	RedisURL    string `mapstructure:"redis_url"`
	MaxEvents   int    `mapstructure:"max_events"`
	TTLSeconds  int    `mapstructure:"ttl_seconds"`
}

// CommandConfig tunes the runner's default behavior.
type CommandConfig struct {
	DefaultTimeout int `mapstructure:"default_timeout"`
	MaxOutputSize  int `mapstructure:"max_output_size"`
}

// Config is the top-level, immutable-after-load configuration value
// threaded through the server → registry → tools → runner → validator
// construction chain. Security policy and the tool catalog are loaded
// separately (Policy, ToolCatalog) since they come from their own YAML
// files, not the main config document.
type Config struct {
	Server      ServerConfig     `mapstructure:"server"`
	Session     SessionConfig    `mapstructure:"session"`
	EventStore  EventStoreConfig `mapstructure:"event_store"`
	Command     CommandConfig    `mapstructure:"command"`
}

// Default returns the built-in defaults, the lowest layer of the
// env > file > defaults priority order.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      8080,
			Transport: "stdio",
			LogLevel:  "info",
		},
		Session: SessionConfig{
			Persistence: "memory",
			TTLSeconds:  3600,
		},
		EventStore: EventStoreConfig{
			Persistence: "none",
			MaxEvents:   1000,
			TTLSeconds:  3600,
		},
		Command: CommandConfig{
			DefaultTimeout: 60,
			MaxOutputSize:  100000,
		},
	}
}

// Validate applies the cross-field rules from the original's
// K8sMCPServerConfig: a shared backend requires its connection URL.
func (c Config) Validate() []error {
	var errs []error

	switch c.Server.Transport {
	case "stdio", "streamable-http":
	default:
		errs = append(errs, fmt.Errorf("server.transport must be stdio or streamable-http, got %q", c.Server.Transport))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Session.Persistence {
	case "memory", "sticky":
	case "redis":
		if c.Session.RedisURL == "" {
			errs = append(errs, fmt.Errorf("session.redis_url is required when session.persistence is %q", c.Session.Persistence))
		}
	default:
		errs = append(errs, fmt.Errorf("session.persistence must be memory, redis, or sticky, got %q", c.Session.Persistence))
	}
	if c.Session.TTLSeconds < 60 {
		errs = append(errs, fmt.Errorf("session.ttl_seconds must be >= 60, got %d", c.Session.TTLSeconds))
	}

	switch c.EventStore.Persistence {
	case "none", "memory":
	case "redis":
		if c.EventStore.RedisURL == "" {
			errs = append(errs, fmt.Errorf("event_store.redis_url is required when event_store.persistence is %q", c.EventStore.Persistence))
		}
	default:
		errs = append(errs, fmt.Errorf("event_store.persistence must be none, memory, or redis, got %q", c.EventStore.Persistence))
	}

	if c.Command.DefaultTimeout < 1 || c.Command.DefaultTimeout > 600 {
		errs = append(errs, fmt.Errorf("command.default_timeout must be between 1 and 600 seconds, got %d", c.Command.DefaultTimeout))
	}
	if c.Command.MaxOutputSize < 1000 {
		errs = append(errs, fmt.Errorf("command.max_output_size must be >= 1000 bytes, got %d", c.Command.MaxOutputSize))
	}

	switch c.Server.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("server.log_level must be debug, info, warning, or error, got %q", c.Server.LogLevel))
	}

	return errs
}
