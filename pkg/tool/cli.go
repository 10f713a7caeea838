package tool

import (
	"context"
	"strings"
	"time"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

// CLITool wraps an external binary (kubectl, helm, argocd, aws).
// Commands are validated and spawned through pkg/runner/pkg/validator;
// check/test probes deliberately bypass the validator (nil), matching
// the "skip security for check commands" behavior of the system this
// is grounded on.
type CLITool struct {
	cfg            Config
	runner         *runner.Runner
	validator      *validator.Validator
	defaultTimeout time.Duration
}

// NewCLITool builds a CLITool. validator may be nil only for tests;
// production wiring always supplies the server's policy validator.
func NewCLITool(cfg Config, r *runner.Runner, v *validator.Validator, defaultTimeout time.Duration) *CLITool {
	return &CLITool{cfg: cfg, runner: r, validator: v, defaultTimeout: defaultTimeout}
}

func (t *CLITool) Name() string        { return t.cfg.Name }
func (t *CLITool) Type() Type          { return TypeCLI }
func (t *CLITool) Description() string { return t.cfg.Description }
func (t *CLITool) IsRequired() bool    { return t.cfg.Required }

func (t *CLITool) CheckAvailable(ctx context.Context) CheckResult {
	res := t.runner.Execute(ctx, t.cfg.CheckCmd, 10*time.Second, nil)
	if res.Status != runner.StatusSuccess {
		msg := res.ErrorMessage
		if msg == "" {
			msg = res.Stderr
		}
		return CheckResult{Available: false, Message: t.cfg.Name + " check failed: " + msg}
	}
	return CheckResult{
		Available: true,
		Message:   t.cfg.Name + " is available",
		Version:   truncate(strings.TrimSpace(res.Stdout), 100),
	}
}

func (t *CLITool) TestConnectivity(ctx context.Context) CheckResult {
	res := t.runner.Execute(ctx, t.cfg.TestCmd, 30*time.Second, nil)
	if res.Status != runner.StatusSuccess {
		msg := res.ErrorMessage
		if msg == "" {
			msg = res.Stderr
		}
		return CheckResult{Available: false, Message: t.cfg.Name + " connectivity failed: " + msg}
	}
	return CheckResult{Available: true, Message: t.cfg.Name + " connectivity OK"}
}

// Execute runs args["command"], adding the tool name as a prefix if
// the caller omitted it (LLMs often do).
func (t *CLITool) Execute(ctx context.Context, args map[string]any) runner.Result {
	command, _ := args["command"].(string)
	timeout := t.defaultTimeout
	if secs, ok := args["timeout"].(float64); ok && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	trimmed := strings.TrimSpace(command)
	if !strings.HasPrefix(trimmed, t.cfg.Name) {
		command = t.cfg.Name + " " + trimmed
	}

	return t.runner.Execute(ctx, command, timeout, t.validator)
}

func (t *CLITool) Describe(ctx context.Context) runner.Result {
	return t.runner.Describe(ctx, t.cfg.Name, "", t.cfg.HelpFlag)
}
