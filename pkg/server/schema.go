package server

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// executeSchema is the declared input shape for every execute_<tool>
// call: the full command line (the catalog tool's own name is
// prepended if the caller omits it) and an optional per-call timeout
// override.
func executeSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"command": {
				Type:        "string",
				Description: "the full command line to run, e.g. \"get pods -n default\"",
			},
			"timeout": {
				Type:        "integer",
				Description: "optional per-call timeout in seconds, overriding the configured default",
			},
		},
		Required: []string{"command"},
	}
}

// describeSchema is the declared input shape for every describe_<tool>
// call: an optional subcommand to fetch detailed help text for.
func describeSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"subcommand": {
				Type:        "string",
				Description: "optional subcommand to get detailed help for, e.g. \"get\"",
			},
		},
	}
}

// schemaAsMap round-trips a *jsonschema.Schema through its own JSON
// encoding to get the map[string]any shape pkg/middleware.Preprocessor
// filters against — the two packages deliberately don't share a type,
// since the preprocessor predates (and is reusable outside) the MCP
// schema representation.
func schemaAsMap(s *jsonschema.Schema) map[string]any {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
