package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment-variable namespace for overrides, e.g.
// K8SMCP_SERVER_PORT=9090 or K8SMCP_SESSION_REDIS_URL=redis://....
const envPrefix = "K8SMCP"

// Loader owns the Viper instance backing Config: it applies the
// env > file > defaults priority order and supports watching the
// config file for the server's reload-signal requirement.
type Loader struct {
	v          *viper.Viper
	configPath string
}

// NewLoader builds a Loader. configPath may be empty, in which case
// only environment overrides and built-in defaults apply.
func NewLoader(configPath string) *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	seedDefaults(v, Default())

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	return &Loader{v: v, configPath: configPath}
}

func seedDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.transport", d.Server.Transport)
	v.SetDefault("server.log_level", d.Server.LogLevel)

	v.SetDefault("session.persistence", d.Session.Persistence)
	v.SetDefault("session.ttl_seconds", d.Session.TTLSeconds)
	v.SetDefault("session.redis_url", d.Session.RedisURL)

	v.SetDefault("event_store.persistence", d.EventStore.Persistence)
	v.SetDefault("event_store.redis_url", d.EventStore.RedisURL)
	v.SetDefault("event_store.max_events", d.EventStore.MaxEvents)
	v.SetDefault("event_store.ttl_seconds", d.EventStore.TTLSeconds)

	v.SetDefault("command.default_timeout", d.Command.DefaultTimeout)
	v.SetDefault("command.max_output_size", d.Command.MaxOutputSize)
}

// Load reads the config file (missing file tolerated) and unmarshals
// the env/file/default-merged view into a Config. Unknown top-level
// keys are silently ignored by mapstructure, matching the forward
// compatibility requirement.
func (l *Loader) Load() (Config, error) {
	if l.configPath != "" {
		if err := l.v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Watch installs a file-change callback driving the "reload signal
// rebuilds configuration ... without dropping sessions" requirement.
// onChange receives the freshly reloaded Config; a reload that fails
// to parse is dropped with the previous configuration kept in place
// (the caller logs the reason, Watch never panics).
func (l *Loader) Watch(onChange func(Config, error)) {
	l.v.WatchConfig()
	l.v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		err := l.v.Unmarshal(&cfg)
		onChange(cfg, err)
	})
}
