package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// stageOutcome is the raw result of spawning and waiting on one child
// process, before truncation/decoding/status mapping is applied.
type stageOutcome struct {
	stdout   []byte
	stderr   []byte
	exitCode *int
	timedOut bool
	spawnErr error
}

// runStage spawns argv[0] with argv[1:] as arguments (no shell
// involved), feeds stdin as its standard input, and waits up to
// timeout. On deadline it kills the whole process group and reports
// timedOut=true. The child is always reaped before this function
// returns.
func runStage(ctx context.Context, argv []string, stdin []byte, timeout time.Duration) stageOutcome {
	if len(argv) == 0 {
		return stageOutcome{spawnErr: errors.New("empty command")}
	}

	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return stageOutcome{spawnErr: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err == nil {
			return stageOutcome{stdout: stdout.Bytes(), stderr: stderr.Bytes(), exitCode: intPtr(0)}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stageOutcome{
				stdout:   stdout.Bytes(),
				stderr:   stderr.Bytes(),
				exitCode: intPtr(exitErr.ExitCode()),
			}
		}
		return stageOutcome{spawnErr: err}

	case <-stageCtx.Done():
		killProcessGroup(cmd)
		<-done // reap
		return stageOutcome{timedOut: true}
	}
}

// killProcessGroup signals the whole process group so that any
// grandchildren spawned by the CLI tool itself are also terminated.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		_ = cmd.Process.Kill()
		return
	}
	_ = syscall.Kill(-pgid, syscall.SIGKILL)
}
