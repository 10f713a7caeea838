// Package registry loads the tool catalog, probes each tool's
// availability/connectivity at startup, and keeps the surviving tools
// for pkg/server, which registers their execute/describe handlers into
// the MCP server.
package registry

import (
	"fmt"
	"strings"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/tool"
)

// RegistrationOutcome is the per-tool result of the discover-and-probe
// pass.
type RegistrationOutcome struct {
	Name       string
	Registered bool
	Required   bool
	Reason     string
}

// Result aggregates the outcome of a full discover-and-validate pass.
type Result struct {
	Registered    []RegistrationOutcome
	FailedRequired []RegistrationOutcome
	SkippedOptional []RegistrationOutcome
}

// OK reports whether startup may proceed: every required tool that
// failed its probe is fatal.
func (r Result) OK() bool {
	return len(r.FailedRequired) == 0
}

// Summary renders a short human-readable report, mirroring the
// original registry's summary log line.
func (r Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tools: %d registered, %d failed (required), %d skipped (optional)",
		len(r.Registered), len(r.FailedRequired), len(r.SkippedOptional))
	for _, f := range r.FailedRequired {
		fmt.Fprintf(&b, "\n  FAILED (required): %s — %s", f.Name, f.Reason)
	}
	for _, s := range r.SkippedOptional {
		fmt.Fprintf(&b, "\n  skipped (optional): %s — %s", s.Name, s.Reason)
	}
	return b.String()
}

// entry is the registry's internal bookkeeping for one catalog tool.
type entry struct {
	cfg tool.Config
	t   tool.Tool
}
