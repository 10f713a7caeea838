package tool

import (
	"context"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
)

// Tool is the uniform capability surface registered into the MCP
// server by pkg/registry, implemented by both CLITool and NativeTool.
type Tool interface {
	Name() string
	Type() Type
	Description() string
	IsRequired() bool

	CheckAvailable(ctx context.Context) CheckResult
	TestConnectivity(ctx context.Context) CheckResult
	Execute(ctx context.Context, args map[string]any) runner.Result
	Describe(ctx context.Context) runner.Result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
