package server

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/tool"
)

// commandResult is the structured half of an execute_<tool>/
// describe_<tool> result — runner.Result re-expressed with json tags
// for MCP structured content, since runner.Result itself stays free of
// wire-format concerns.
type commandResult struct {
	Status       string `json:"status"`
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
	ExitCode     *int   `json:"exit_code,omitempty"`
	Truncated    bool   `json:"truncated"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func toCommandResult(r runner.Result) commandResult {
	return commandResult{
		Status:       string(r.Status),
		Stdout:       r.Stdout,
		Stderr:       r.Stderr,
		ExitCode:     r.ExitCode,
		Truncated:    r.Truncated,
		ErrorMessage: r.ErrorMessage,
	}
}

func toCallToolResult(r runner.Result) *mcp.CallToolResult {
	text := r.Stdout
	if r.Status != runner.StatusSuccess {
		if r.ErrorMessage != "" {
			text = r.ErrorMessage
		} else {
			text = r.Stderr
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: r.Status != runner.StatusSuccess,
	}
}

// registerTools registers execute_<name>/describe_<name> tool pairs for
// every tool that survived discovery, wiring pkg/middleware's
// whitelist filter between the MCP-decoded argument map and the
// tool.Tool call — args the client sent that aren't in the declared
// schema never reach Execute/Describe.
func (b *Bundle) registerTools() {
	execSchema := executeSchema()
	execSchemaMap := schemaAsMap(execSchema)
	descSchema := describeSchema()
	descSchemaMap := schemaAsMap(descSchema)

	for _, name := range b.Registry.Names() {
		t, ok := b.Registry.Get(name)
		if !ok {
			continue
		}
		b.registerExecute(t, execSchema, execSchemaMap)
		b.registerDescribe(t, descSchema, descSchemaMap)
	}
}

func (b *Bundle) registerExecute(t tool.Tool, schema *jsonschema.Schema, schemaMap map[string]any) {
	mcp.AddTool(b.MCP, &mcp.Tool{
		Name:        "execute_" + t.Name(),
		Description: "Run a " + t.Name() + " command: " + t.Description(),
		InputSchema: schema,
	}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, *commandResult, error) {
		filtered := b.Preproc.FilterToSchema(t.Name(), schemaMap, args)
		result := t.Execute(ctx, filtered)
		cr := toCommandResult(result)
		return toCallToolResult(result), &cr, nil
	})
}

func (b *Bundle) registerDescribe(t tool.Tool, schema *jsonschema.Schema, schemaMap map[string]any) {
	mcp.AddTool(b.MCP, &mcp.Tool{
		Name:        "describe_" + t.Name(),
		Description: "Show " + t.Name() + " usage/help, optionally for a specific subcommand",
		InputSchema: schema,
	}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, *commandResult, error) {
		filtered := b.Preproc.FilterToSchema(t.Name(), schemaMap, args)
		subcommand, _ := filtered["subcommand"].(string)
		var result runner.Result
		if subcommand != "" {
			result = b.Runner.Describe(ctx, t.Name(), subcommand, "--help")
		} else {
			result = t.Describe(ctx)
		}
		cr := toCommandResult(result)
		return toCallToolResult(result), &cr, nil
	})
}
