// Package middleware implements tool-call argument preprocessing:
// whitelist-filtering a tools/call request's arguments down to the
// keys declared in the target tool's schema, before the handler ever
// sees them. This accommodates non-standard MCP clients that attach
// extra fields (e.g. a workflow-engine's internal call ID) alongside
// the genuine tool arguments.
package middleware

import "go.uber.org/zap"

// Preprocessor whitelist-filters tool-call arguments against a
// schema's declared "properties" keys.
type Preprocessor struct {
	audit   *zap.Logger
	verbose bool
}

// New builds a Preprocessor. audit may be nil; verbose gates whether
// filtered-field details are logged (never an error — a malformed or
// absent schema is tolerated, not fatal).
func New(audit *zap.Logger, verbose bool) *Preprocessor {
	return &Preprocessor{audit: audit, verbose: verbose}
}

// FilterToSchema returns a copy of args containing only the keys
// present in schema's "properties" map. If schema is malformed (nil,
// missing "properties", or "properties" isn't itself a map), args is
// returned unchanged — the preprocessor never blocks a call outright,
// it only trims.
func (p *Preprocessor) FilterToSchema(toolName string, schema map[string]any, args map[string]any) map[string]any {
	allowed := p.extractAllowedParams(toolName, schema)
	if allowed == nil {
		return args
	}

	filtered := make(map[string]any, len(args))
	var removed []string
	for key, value := range args {
		if allowed[key] {
			filtered[key] = value
			continue
		}
		removed = append(removed, key)
	}

	if len(removed) > 0 && p.verbose && p.audit != nil {
		p.audit.Info("preprocessor filtered tool-call arguments",
			zap.String("tool", toolName), zap.Strings("removed", removed))
	}

	return filtered
}

func (p *Preprocessor) extractAllowedParams(toolName string, schema map[string]any) map[string]bool {
	if schema == nil {
		p.logSkip(toolName, "schema is nil")
		return nil
	}

	rawProps, ok := schema["properties"]
	if !ok {
		p.logSkip(toolName, "schema missing 'properties'")
		return nil
	}

	props, ok := rawProps.(map[string]any)
	if !ok {
		p.logSkip(toolName, "'properties' is not a map")
		return nil
	}

	allowed := make(map[string]bool, len(props))
	for key := range props {
		allowed[key] = true
	}
	return allowed
}

func (p *Preprocessor) logSkip(toolName, reason string) {
	if !p.verbose || p.audit == nil {
		return
	}
	p.audit.Info("preprocessor skipped filtering", zap.String("tool", toolName), zap.String("reason", reason))
}
