// Package tool defines the uniform tool capability interface
// ({check_available, test_connectivity, execute, describe}) and its
// two concrete implementations: CLITool (spawns an external binary
// through pkg/runner under pkg/validator's policy) and NativeTool (a
// Go-native capability with a declared JSON parameter schema, no
// subprocess involved).
package tool

import (
	"context"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
)

// Type distinguishes how a tool is implemented.
type Type string

const (
	TypeCLI    Type = "cli"
	TypeNative Type = "native"
)

// Config is the catalog entry for one tool, as loaded from the tool
// catalog YAML (pkg/config).
type Config struct {
	Name        string
	Type        Type
	Required    bool
	CheckCmd    string
	TestCmd     string
	HelpFlag    string
	Description string
	Example     string
	// Parameters describes a native tool's JSON Schema "properties"
	// map; unused for CLI tools.
	Parameters map[string]any
}

// CheckResult is the outcome of an availability or connectivity probe.
type CheckResult struct {
	Available bool
	Message   string
	Version   string
}

// NativeHandler implements a native (non-subprocess) tool's execute
// path. args are the whitelisted tool-call arguments.
type NativeHandler func(ctx context.Context, args map[string]any) (runner.Result, error)
