package registry

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/sliceutil"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/tool"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

// Registry discovers catalog tools, probes them concurrently, and
// hands the survivors to pkg/server for MCP registration.
type Registry struct {
	runner    *runner.Runner
	validator *validator.Validator
	audit     *zap.Logger

	skipConnectivityTest bool
	maxConcurrentProbes  int

	entries map[string]*entry
}

// New builds a Registry. audit may be nil.
func New(r *runner.Runner, v *validator.Validator, audit *zap.Logger, skipConnectivityTest bool) *Registry {
	return &Registry{
		runner:               r,
		validator:            v,
		audit:                audit,
		skipConnectivityTest: skipConnectivityTest,
		maxConcurrentProbes:  8,
		entries:              map[string]*entry{},
	}
}

// LoadCLITools instantiates a CLITool for every catalog entry and adds
// it to the registry, prior to DiscoverAndValidate. nativeHandlers maps
// a tool name to its handler for any catalog entries of type "native";
// CLI entries ignore it.
func (reg *Registry) LoadCLITools(catalog []tool.Config, defaultTimeout time.Duration, nativeHandlers map[string]tool.NativeHandler) {
	for _, cfg := range catalog {
		var t tool.Tool
		switch cfg.Type {
		case tool.TypeNative:
			handler, ok := nativeHandlers[cfg.Name]
			if !ok {
				continue
			}
			t = tool.NewNativeTool(cfg, handler)
		default:
			t = tool.NewCLITool(cfg, reg.runner, reg.validator, defaultTimeout)
		}
		reg.entries[cfg.Name] = &entry{cfg: cfg, t: t}
	}
}

// DiscoverAndValidate probes every loaded tool's availability (and,
// unless skipConnectivityTest, its connectivity) concurrently, evicting
// any tool whose availability check failed. A failed connectivity test
// is logged as a warning but never evicts a tool, matching the
// original's "don't fail registration" policy.
func (reg *Registry) DiscoverAndValidate(ctx context.Context) Result {
	type probeOutcome struct {
		name    string
		outcome RegistrationOutcome
		keep    bool
	}

	p := pool.NewWithResults[probeOutcome]().WithMaxGoroutines(reg.maxConcurrentProbes)

	for name, e := range reg.entries {
		name, e := name, e
		p.Go(func() probeOutcome {
			check := e.t.CheckAvailable(ctx)
			if !check.Available {
				reg.logProbe(name, "check_available failed", check.Message)
				return probeOutcome{
					name:    name,
					keep:    false,
					outcome: RegistrationOutcome{Name: name, Registered: false, Required: e.cfg.Required, Reason: check.Message},
				}
			}

			if !reg.skipConnectivityTest && e.cfg.TestCmd != "" {
				conn := e.t.TestConnectivity(ctx)
				if !conn.Available {
					reg.logProbe(name, "connectivity check failed (non-fatal)", conn.Message)
				}
			}

			return probeOutcome{
				name:    name,
				keep:    true,
				outcome: RegistrationOutcome{Name: name, Registered: true, Required: e.cfg.Required, Reason: name + " registered successfully"},
			}
		})
	}

	outcomes := p.Wait()

	var result Result
	for _, o := range outcomes {
		if !o.keep {
			delete(reg.entries, o.name)
			if o.outcome.Required {
				result.FailedRequired = append(result.FailedRequired, o.outcome)
			} else {
				result.SkippedOptional = append(result.SkippedOptional, o.outcome)
			}
			continue
		}
		result.Registered = append(result.Registered, o.outcome)
	}
	return result
}

// Get returns the registered tool named name, if any.
func (reg *Registry) Get(name string) (tool.Tool, bool) {
	e, ok := reg.entries[name]
	if !ok {
		return nil, false
	}
	return e.t, true
}

// All returns every surviving tool, in no particular order.
func (reg *Registry) All() []tool.Tool {
	out := make([]tool.Tool, 0, len(reg.entries))
	for _, e := range reg.entries {
		out = append(out, e.t)
	}
	return out
}

// Names returns the names of every surviving tool.
func (reg *Registry) Names() []string {
	return sliceutil.MapToSlice(reg.entries)
}

func (reg *Registry) logProbe(tool, stage, message string) {
	if reg.audit == nil {
		return
	}
	reg.audit.Warn("tool probe", zap.String("tool", tool), zap.String("stage", stage), zap.String("message", message))
}
