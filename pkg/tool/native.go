package tool

import (
	"context"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
)

// NativeTool is a Go-native capability (e.g. an eksinfo-style AWS SDK
// lookup) that never spawns a subprocess. check_available and
// test_connectivity both defer to the same handler with a sentinel
// "_probe" argument since there is no separate binary to locate.
type NativeTool struct {
	cfg     Config
	handler NativeHandler
}

// NewNativeTool builds a NativeTool around handler.
func NewNativeTool(cfg Config, handler NativeHandler) *NativeTool {
	return &NativeTool{cfg: cfg, handler: handler}
}

func (t *NativeTool) Name() string        { return t.cfg.Name }
func (t *NativeTool) Type() Type          { return TypeNative }
func (t *NativeTool) Description() string { return t.cfg.Description }
func (t *NativeTool) IsRequired() bool    { return t.cfg.Required }

func (t *NativeTool) CheckAvailable(ctx context.Context) CheckResult {
	res, err := t.handler(ctx, map[string]any{"_probe": "check"})
	if err != nil {
		return CheckResult{Available: false, Message: t.cfg.Name + " check error: " + err.Error()}
	}
	if res.Status != runner.StatusSuccess {
		return CheckResult{Available: false, Message: t.cfg.Name + " check failed: " + res.ErrorMessage}
	}
	return CheckResult{Available: true, Message: t.cfg.Name + " is available"}
}

func (t *NativeTool) TestConnectivity(ctx context.Context) CheckResult {
	res, err := t.handler(ctx, map[string]any{"_probe": "connectivity"})
	if err != nil {
		return CheckResult{Available: false, Message: t.cfg.Name + " connectivity error: " + err.Error()}
	}
	if res.Status != runner.StatusSuccess {
		return CheckResult{Available: false, Message: t.cfg.Name + " connectivity failed: " + res.ErrorMessage}
	}
	return CheckResult{Available: true, Message: t.cfg.Name + " connectivity OK"}
}

func (t *NativeTool) Execute(ctx context.Context, args map[string]any) runner.Result {
	res, err := t.handler(ctx, args)
	if err != nil {
		return runner.Result{Status: runner.StatusError, ErrorMessage: err.Error()}
	}
	return res
}

func (t *NativeTool) Describe(ctx context.Context) runner.Result {
	return runner.Result{Status: runner.StatusSuccess, Stdout: t.cfg.Description}
}
