// Package parser turns a raw CLI command string into a structured
// ParsedCommand: tool, action, resource, name, positional args and flags.
// Parsing never fails — ambiguous or malformed input simply produces a
// ParsedCommand with empty fields, so downstream validation can always
// run against a uniform shape.
package parser

// ParsedCommand is the structured view of a single (non-piped) command
// stage. It is immutable once constructed.
type ParsedCommand struct {
	Tool     string
	Action   string
	Resource string
	Name     string
	Args     []string
	Flags    map[string]*string
	Raw      string
}

// HasFlag reports whether the given flag token (including its leading
// dashes, e.g. "--namespace") was present, regardless of whether it
// carries a value.
func (p ParsedCommand) HasFlag(flag string) bool {
	_, ok := p.Flags[flag]
	return ok
}

// FlagValue returns the value associated with flag and whether it was
// present at all. A present valueless flag (e.g. "-it") returns ("", true).
func (p ParsedCommand) FlagValue(flag string) (string, bool) {
	v, ok := p.Flags[flag]
	if !ok {
		return "", false
	}
	if v == nil {
		return "", true
	}
	return *v, true
}

// destructiveActions is the set of kubectl verbs whose effect is not
// reversible by re-running the same command.
var destructiveActions = map[string]bool{
	"delete": true,
	"drain":  true,
	"cordon": true,
	"taint":  true,
}

// IsDestructive reports whether the parsed command's action is one of
// the destructive kubectl verbs.
func (p ParsedCommand) IsDestructive() bool {
	return destructiveActions[p.Action]
}
