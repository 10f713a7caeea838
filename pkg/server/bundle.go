// Package server assembles the gateway's components (parser, validator,
// runner, registry, session/event stores, preprocessor) into a running
// MCP server, following the construction order of
// original_source/app/cbx_mcp_k8s/server.go::create_server: load
// config, build the logger, build the policy/validator, build the
// session and event stores, build and probe the registry, build the
// mcp.Server, register tools, and return.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/config"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/events"
	gwlog "github.com/cembryonix/k8s-mcp-gateway/pkg/logger"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/middleware"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/registry"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/session"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/tool"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

const serverName = "k8s-mcp-gateway"

// Version is the gateway's version string, set at build time via
// -ldflags; left at "dev" otherwise.
var Version = "dev"

// Bundle is the fully wired C1-C9 gateway, ready to Run.
type Bundle struct {
	Config config.Config
	Log    *gwlog.Logger

	Runner    *runner.Runner
	Validator *validator.Validator
	Registry  *registry.Registry
	Preproc   *middleware.Preprocessor
	Sessions  session.Store
	Events    events.Store
	MCP       *mcp.Server

	loader  *config.Loader
	secPath string
	sweeper sessionStarter
}

// sessionStarter is satisfied by any store with background-sweep
// lifecycle hooks; MemoryStore and StickyStore implement it, RedisStore
// does not need it (Redis owns expiry).
type sessionStarter interface {
	Start()
	Stop()
}

// Options controls bundle construction beyond what's in config.Config.
type Options struct {
	ConfigPath         string
	SecurityPolicyPath string
	ToolCatalogPath    string
	SkipToolValidation bool
	NativeHandlers     map[string]tool.NativeHandler
}

// Build loads configuration and constructs every component through to
// a ready-to-run mcp.Server, probing the tool catalog along the way.
// The returned registry.Result is populated whenever tool discovery ran
// (including when a required tool failed it); an error before discovery
// returns the zero Result. err is non-nil when configuration, policy or
// catalog loading fails, a component fails to construct, or a required
// tool failed its probe.
func Build(ctx context.Context, opts Options) (*Bundle, registry.Result, error) {
	loader := config.NewLoader(opts.ConfigPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, registry.Result{}, fmt.Errorf("loading config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, registry.Result{}, fmt.Errorf("invalid config: %v", errs)
	}

	log, err := gwlog.New(gwlog.Config{
		Level:        normalizeLevel(cfg.Server.LogLevel),
		AuditLogPath: "logs/audit.log",
		MaxSizeMB:    100,
		MaxBackups:   10,
		MaxAgeDays:   30,
		Compress:     true,
	})
	if err != nil {
		return nil, registry.Result{}, fmt.Errorf("building logger: %w", err)
	}

	policy, err := config.LoadSecurityPolicy(opts.SecurityPolicyPath)
	if err != nil {
		return nil, registry.Result{}, fmt.Errorf("loading security policy: %w", err)
	}
	catalog, err := config.LoadToolCatalog(opts.ToolCatalogPath)
	if err != nil {
		return nil, registry.Result{}, fmt.Errorf("loading tool catalog: %w", err)
	}

	v := validator.New(policy, log.Audit())
	r := runner.New(runner.Config{
		DefaultTimeout: time.Duration(cfg.Command.DefaultTimeout) * time.Second,
		MaxOutputSize:  cfg.Command.MaxOutputSize,
	}, log.Audit())

	sessions, err := buildSessionStore(cfg.Session, log.Named("session"))
	if err != nil {
		return nil, registry.Result{}, fmt.Errorf("building session store: %w", err)
	}
	eventStore, err := buildEventStore(cfg.EventStore)
	if err != nil {
		return nil, registry.Result{}, fmt.Errorf("building event store: %w", err)
	}

	reg := registry.New(r, v, log.Audit(), opts.SkipToolValidation)
	reg.LoadCLITools(catalog, time.Duration(cfg.Command.DefaultTimeout)*time.Second, opts.NativeHandlers)
	result := reg.DiscoverAndValidate(ctx)
	log.Named("registry").Info(result.Summary())
	if !result.OK() {
		return nil, result, fmt.Errorf("required tools failed discovery: %s", result.Summary())
	}

	preproc := middleware.New(log.Audit(), cfg.Server.LogLevel == "debug")

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions: "Execute kubectl, helm, argocd, and aws commands against the cluster this gateway is bound to, " +
			"subject to the configured security policy. Every destructive action must match an explicit safe pattern.",
	})

	b := &Bundle{
		Config:    cfg,
		Log:       log,
		Runner:    r,
		Validator: v,
		Registry:  reg,
		Preproc:   preproc,
		Sessions:  sessions,
		Events:    eventStore,
		MCP:       mcpServer,
		loader:    loader,
		secPath:   opts.SecurityPolicyPath,
	}

	b.registerTools()

	if starter, ok := sessions.(sessionStarter); ok {
		starter.Start()
		b.sweeper = starter
	}

	return b, result, nil
}

func buildSessionStore(cfg config.SessionConfig, audit *zap.Logger) (session.Store, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	switch cfg.Persistence {
	case "redis":
		return session.NewRedisStore(cfg.RedisURL, ttl, "mcp:session:")
	case "sticky":
		return session.NewStickyStore(ttl, ttl/4, audit), nil
	default:
		return session.NewMemoryStore(ttl, ttl/4, audit), nil
	}
}

func buildEventStore(cfg config.EventStoreConfig) (events.Store, error) {
	switch cfg.Persistence {
	case "redis":
		return events.NewRedisEventStore(cfg.RedisURL, "mcp:events", int64(cfg.MaxEvents), time.Duration(cfg.TTLSeconds)*time.Second)
	case "memory":
		return events.NewMemoryEventStore(cfg.MaxEvents), nil
	default:
		return nil, nil
	}
}

// normalizeLevel maps the config's "warning" to zapcore's "warn" spelling.
func normalizeLevel(level string) string {
	if level == "warning" {
		return "warn"
	}
	return level
}

// Shutdown stops background sweeps and closes store connections. Safe
// to call once during graceful shutdown.
func (b *Bundle) Shutdown(ctx context.Context) error {
	if b.sweeper != nil {
		b.sweeper.Stop()
	}
	if closer, ok := b.Sessions.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if closer, ok := b.Events.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	return b.Log.Sync()
}

// Reload rebuilds the security policy from disk and atomically swaps
// it into the live Validator, without rebuilding tool registration —
// matching spec.md's "hot-reload of policy is supported by rebuilding
// the validator in place, but tool registration does not change
// without restart."
func (b *Bundle) Reload() error {
	policy, err := config.LoadSecurityPolicy(b.secPath)
	if err != nil {
		return fmt.Errorf("reloading security policy: %w", err)
	}
	if cfg, err := b.loader.Load(); err != nil {
		b.Log.Named("server").Warn("config reload failed, keeping previous configuration", zap.Error(err))
	} else if errs := cfg.Validate(); len(errs) > 0 {
		b.Log.Named("server").Warn("reloaded config failed validation, keeping previous configuration", zap.Errors("errors", errs))
	} else {
		b.Config = cfg
	}
	b.Validator.Reload(policy)
	b.Log.Named("server").Info("security policy reloaded")
	return nil
}
