// Package validator implements the three-layer command security policy:
// a dangerous-prefix blocklist, safe-pattern overrides, and compiled
// regex rules, plus pipe-chain validation and a dedicated kubectl exec
// shell-escape check.
package validator

// RegexRule is a single compiled-pattern validation rule for a tool.
type RegexRule struct {
	Pattern string
	Action  string // "block" | "allow"
	Message string
}

// Policy is the security configuration consumed by the Validator. It is
// immutable once constructed; reload builds a new Policy and swaps it
// into the existing Validator via Validator.Reload.
type Policy struct {
	Mode                string // "strict" | "permissive"
	DangerousCommands   map[string][]string
	SafePatterns        map[string][]string
	RegexRules          map[string][]RegexRule
	AllowedUnixCommands []string
}

// Result is the outcome of validating a command: allow, or block with a
// reason and the rule class that fired.
type Result struct {
	Allowed bool
	Reason  string
	RuleID  string
}

func allow() Result {
	return Result{Allowed: true}
}

func block(ruleID, reason string) Result {
	return Result{Allowed: false, RuleID: ruleID, Reason: reason}
}
