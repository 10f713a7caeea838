package validator

import (
	"regexp"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/parser"
)

type compiledRule struct {
	re      *regexp.Regexp
	action  string
	message string
}

// policyState is the compiled form of a Policy: the allowlist as a
// set and the regex rules compiled once. Swapped atomically by Reload
// so a live Validator picks up a new policy without callers needing a
// new pointer — in-flight Validate calls finish under whichever state
// they already loaded, per the reload-without-dropping-sessions
// requirement.
type policyState struct {
	policy         Policy
	allowedUnix    map[string]bool
	compiledByTool map[string][]compiledRule
}

// Validator decides allow/block for a single command or a pipe chain
// under a Policy. Regex rules are compiled once per policyState; an
// invalid pattern is dropped (it will never match) rather than
// failing validator construction, matching the original's
// skip-and-warn behavior.
type Validator struct {
	state atomic.Pointer[policyState]
	audit *zap.Logger
}

// New builds a Validator from policy. audit may be nil, in which case
// block decisions are not logged anywhere (used in tests).
func New(policy Policy, audit *zap.Logger) *Validator {
	v := &Validator{audit: audit}
	v.state.Store(buildPolicyState(policy, audit))
	return v
}

// Reload atomically swaps in a newly compiled policy. Existing
// handlers holding this *Validator see the new policy on their next
// call; a request already mid-Validate keeps using the state it
// loaded.
func (v *Validator) Reload(policy Policy) {
	v.state.Store(buildPolicyState(policy, v.audit))
}

func buildPolicyState(policy Policy, audit *zap.Logger) *policyState {
	s := &policyState{
		policy:         policy,
		allowedUnix:    map[string]bool{},
		compiledByTool: map[string][]compiledRule{},
	}
	for _, name := range policy.AllowedUnixCommands {
		s.allowedUnix[name] = true
	}
	for tool, rules := range policy.RegexRules {
		for _, r := range rules {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				if audit != nil {
					audit.Warn("dropping invalid regex rule",
						zap.String("tool", tool), zap.String("pattern", r.Pattern), zap.Error(err))
				}
				continue
			}
			s.compiledByTool[tool] = append(s.compiledByTool[tool], compiledRule{
				re: re, action: r.Action, message: r.Message,
			})
		}
	}
	return s
}

// Validate runs the single-command algorithm against a raw command
// string, dispatching to pipe-chain validation when the command
// contains an unquoted pipe.
func (v *Validator) Validate(command string) Result {
	s := v.state.Load()
	if s.policy.Mode == "permissive" {
		return allow()
	}

	if parser.IsPipeCommand(command) {
		return v.validatePipe(s, command)
	}

	parsed := parser.ParseCommand(command)
	return v.validateParsed(s, parsed)
}

func (v *Validator) validatePipe(s *policyState, command string) Result {
	stages := parser.SplitPipeCommands(command)
	if len(stages) == 0 {
		return allow()
	}

	first := parser.ParseCommand(stages[0])
	result := v.validateParsed(s, first)
	if !result.Allowed {
		return result
	}

	for _, stage := range stages[1:] {
		parsed := parser.ParseCommand(stage)
		if !s.allowedUnix[parsed.Tool] {
			r := block("allowed_unix_commands", "pipe stage uses disallowed command: "+parsed.Tool)
			v.logBlock(command, r)
			return r
		}
	}
	return allow()
}

func (v *Validator) validateParsed(s *policyState, parsed parser.ParsedCommand) Result {
	_, dangerousKnown := s.policy.DangerousCommands[parsed.Tool]
	_, safeKnown := s.policy.SafePatterns[parsed.Tool]
	if !dangerousKnown && !safeKnown {
		return v.checkRegexRules(s, parsed)
	}

	rawLower := strings.ToLower(parsed.Raw)
	dangerous := false
	for _, prefix := range s.policy.DangerousCommands[parsed.Tool] {
		if strings.HasPrefix(rawLower, strings.ToLower(prefix)) {
			dangerous = true
			break
		}
	}

	if !dangerous {
		return v.checkRegexRules(s, parsed)
	}

	for _, pattern := range s.policy.SafePatterns[parsed.Tool] {
		if v.matchesSafePattern(parsed, pattern) {
			return v.checkRegexRules(s, parsed)
		}
	}

	if regexResult := v.checkRegexRules(s, parsed); !regexResult.Allowed {
		return regexResult
	}

	result := block("dangerous_commands."+parsed.Tool, "command matches dangerous prefix and no safe pattern applies")
	v.logBlock(parsed.Raw, result)
	return result
}

// matchesSafePattern implements the word-boundary-prefix match and its
// structural fallback, per SPEC_FULL.md §4.2.
func (v *Validator) matchesSafePattern(parsed parser.ParsedCommand, pattern string) bool {
	rawLower := strings.ToLower(parsed.Raw)
	patternLower := strings.ToLower(pattern)

	if strings.HasPrefix(rawLower, patternLower) {
		if len(rawLower) == len(patternLower) {
			patternParsed := parser.ParseCommand(pattern)
			return !patternParsed.IsDestructive()
		}
		if isSpace(rawLower[len(patternLower)]) {
			return true
		}
	}

	patternParsed := parser.ParseCommand(pattern)
	if patternParsed.Tool != parsed.Tool || patternParsed.Action != parsed.Action {
		return false
	}
	for flag := range patternParsed.Flags {
		if !parsed.HasFlag(flag) {
			return false
		}
	}
	if patternParsed.Resource != "" && patternParsed.Resource != parsed.Resource {
		return false
	}
	if patternParsed.IsDestructive() && parsed.Name == "" {
		return false
	}
	return true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func (v *Validator) checkRegexRules(s *policyState, parsed parser.ParsedCommand) Result {
	for _, rule := range s.compiledByTool[parsed.Tool] {
		if rule.re.MatchString(parsed.Raw) {
			if rule.action == "block" {
				result := block("regex_rules."+parsed.Tool, rule.message)
				v.logBlock(parsed.Raw, result)
				return result
			}
			// action == "allow": keep checking remaining rules.
		}
	}
	return allow()
}

func (v *Validator) logBlock(raw string, result Result) {
	if v.audit == nil {
		return
	}
	v.audit.Info("command blocked",
		zap.String("command", raw),
		zap.String("rule", result.RuleID),
		zap.String("reason", result.Reason),
	)
}
