package runner

import (
	"context"
	"time"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/parser"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

const pipeStageTimeoutFloor = 10 * time.Second

// executePiped runs a "|"-separated chain sequentially, feeding each
// stage's captured stdout bytes to the next stage's stdin. Each stage
// gets a budget of max(timeout/n, 10s); a stage that blows its budget
// or fails to spawn aborts the whole chain and reaps every started
// process. A non-zero intermediate exit code does not stop the chain —
// its stdout still flows downstream, matching shell pipeline semantics —
// but only the final stage's exit code/stderr determine the overall
// status, and only the final stage's stdout is subject to the
// output-size cap.
func (r *Runner) executePiped(ctx context.Context, command string, timeout time.Duration, v *validator.Validator) Result {
	stages := parser.SplitPipeCommands(command)
	if len(stages) == 0 {
		return Result{Status: StatusError, Command: command, ErrorMessage: "empty pipe"}
	}

	if v != nil {
		vr := v.Validate(command)
		if !vr.Allowed {
			return Result{Status: StatusBlocked, Command: command, ErrorMessage: vr.Reason}
		}
		first := parser.ParseCommand(stages[0])
		if first.Tool == "kubectl" && first.Action == "exec" {
			if er := validator.ValidateExecCommand(first); !er.Allowed {
				return Result{Status: StatusBlocked, Command: command, ErrorMessage: er.Reason}
			}
		}
	}

	n := len(stages)
	stageBudget := timeout / time.Duration(n)
	if stageBudget < pipeStageTimeoutFloor {
		stageBudget = pipeStageTimeoutFloor
	}

	var stdin []byte
	var last stageOutcome

	for _, stage := range stages {
		argv := parser.Tokenize(stage)
		r.logSpawn(stage)
		outcome := runStage(ctx, argv, stdin, stageBudget)

		if outcome.timedOut || outcome.spawnErr != nil {
			r.logTimeout(command)
			return r.toResult(command, outcome)
		}

		stdin = outcome.stdout
		last = outcome
	}

	stdout, truncated := capAndDecode(last.stdout, r.cfg.MaxOutputSize)
	stderr, _ := capAndDecode(last.stderr, r.cfg.MaxOutputSize)

	status := StatusSuccess
	if *last.exitCode != 0 {
		status = StatusError
	}

	return Result{
		Status:    status,
		Stdout:    stdout,
		Stderr:    stderr,
		ExitCode:  last.exitCode,
		Command:   command,
		Truncated: truncated,
	}
}
