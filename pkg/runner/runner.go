package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/parser"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

// Config holds the runner's tunables, loaded from the command section
// of the server configuration.
type Config struct {
	DefaultTimeout time.Duration
	MaxOutputSize  int
}

// Runner executes validated commands as child processes.
type Runner struct {
	cfg   Config
	audit *zap.Logger
}

// New builds a Runner. audit may be nil (tests).
func New(cfg Config, audit *zap.Logger) *Runner {
	return &Runner{cfg: cfg, audit: audit}
}

// Execute validates (unless v is nil, a permissive bypass used for
// check/test/describe paths) and runs command, dispatching to the
// piped-chain path when command contains an unquoted pipe. timeout of
// zero uses the runner's configured default.
func (r *Runner) Execute(ctx context.Context, command string, timeout time.Duration, v *validator.Validator) Result {
	if timeout <= 0 {
		timeout = r.cfg.DefaultTimeout
	}

	if parser.IsPipeCommand(command) {
		return r.executePiped(ctx, command, timeout, v)
	}
	return r.executeSingle(ctx, command, timeout, v)
}

func (r *Runner) executeSingle(ctx context.Context, command string, timeout time.Duration, v *validator.Validator) Result {
	parsed := parser.ParseCommand(command)

	if v != nil {
		vr := v.Validate(command)
		if !vr.Allowed {
			return Result{Status: StatusBlocked, Command: command, ErrorMessage: vr.Reason}
		}
		if parsed.Tool == "kubectl" && parsed.Action == "exec" {
			er := validator.ValidateExecCommand(parsed)
			if !er.Allowed {
				return Result{Status: StatusBlocked, Command: command, ErrorMessage: er.Reason}
			}
		}
	}

	argv := parser.Tokenize(command)
	if len(argv) == 0 {
		return Result{Status: StatusError, Command: command, ErrorMessage: "empty command"}
	}

	r.logSpawn(command)
	outcome := runStage(ctx, argv, nil, timeout)
	return r.toResult(command, outcome)
}

func (r *Runner) toResult(command string, outcome stageOutcome) Result {
	switch {
	case outcome.timedOut:
		r.logTimeout(command)
		return Result{Status: StatusTimeout, Command: command, ErrorMessage: "deadline exceeded"}
	case outcome.spawnErr != nil:
		return Result{Status: StatusError, Command: command, ErrorMessage: outcome.spawnErr.Error()}
	}

	stdout, truncated := capAndDecode(outcome.stdout, r.cfg.MaxOutputSize)
	stderr, _ := capAndDecode(outcome.stderr, r.cfg.MaxOutputSize)

	status := StatusSuccess
	if *outcome.exitCode != 0 {
		status = StatusError
	}

	return Result{
		Status:    status,
		Stdout:    stdout,
		Stderr:    stderr,
		ExitCode:  outcome.exitCode,
		Command:   command,
		Truncated: truncated,
	}
}

// Describe runs "<tool> [subcommand] <helpFlag>" permissively (no
// validator), with a short fixed timeout, since help output must be
// retrievable before any policy is trusted.
func (r *Runner) Describe(ctx context.Context, tool, subcommand, helpFlag string) Result {
	cmd := tool
	if subcommand != "" {
		cmd = fmt.Sprintf("%s %s", tool, subcommand)
	}
	cmd = fmt.Sprintf("%s %s", cmd, helpFlag)
	return r.Execute(ctx, cmd, 10*time.Second, nil)
}

func (r *Runner) logSpawn(command string) {
	if r.audit == nil {
		return
	}
	r.audit.Info("spawning command", zap.String("command", command))
}

func (r *Runner) logTimeout(command string) {
	if r.audit == nil {
		return
	}
	r.audit.Warn("command timed out, child killed", zap.String("command", command))
}
