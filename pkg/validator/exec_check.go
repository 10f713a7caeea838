package validator

import "github.com/cembryonix/k8s-mcp-gateway/pkg/parser"

var interactiveFlags = []string{"-it", "-ti", "-i", "-t"}

var shellBinaries = map[string]bool{
	"sh": true, "bash": true, "zsh": true,
	"/bin/sh": true, "/bin/bash": true, "/bin/zsh": true,
}

// ValidateExecCommand applies the kubectl-exec-specific shell-escape
// check. It must be called in addition to (after) Validate for any
// command parsed as tool=="kubectl", action=="exec" — general
// validation alone does not inspect the post-"--" shell invocation.
func ValidateExecCommand(parsed parser.ParsedCommand) Result {
	if parsed.Tool != "kubectl" || parsed.Action != "exec" {
		return allow()
	}

	if parsed.HasFlag("--help") {
		return allow()
	}

	for _, f := range interactiveFlags {
		if parsed.HasFlag(f) {
			return allow()
		}
	}

	dashIdx := -1
	for i, a := range parsed.Args {
		if a == "--" {
			dashIdx = i
			break
		}
	}
	if dashIdx == -1 || dashIdx+1 >= len(parsed.Args) {
		return allow()
	}

	shellArgs := parsed.Args[dashIdx+1:]
	if !shellBinaries[shellArgs[0]] {
		return allow()
	}

	for _, a := range shellArgs[1:] {
		if a == "-c" {
			return allow()
		}
	}

	return block("exec_shell_check", "kubectl exec into a shell without -c is disallowed; use -it for interactive sessions")
}
