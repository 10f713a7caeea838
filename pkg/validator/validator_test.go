package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/parser"
)

func defaultPolicy() Policy {
	return Policy{
		Mode: "strict",
		DangerousCommands: map[string][]string{
			"kubectl": {"kubectl delete"},
		},
		SafePatterns: map[string][]string{
			"kubectl": {"kubectl delete pod"},
		},
		RegexRules: map[string][]RegexRule{
			"kubectl": {
				{Pattern: `--all\b`, Action: "block", Message: "--all is not permitted on delete"},
			},
		},
		AllowedUnixCommands: []string{"grep", "wc", "jq", "head"},
	}
}

func TestValidate_AllowedGet(t *testing.T) {
	v := New(defaultPolicy(), nil)
	result := v.Validate("kubectl get pods -n default")
	assert.True(t, result.Allowed)
}

func TestValidate_DeleteAllBlockedByRegex(t *testing.T) {
	v := New(defaultPolicy(), nil)
	result := v.Validate("kubectl delete pods --all")
	assert.False(t, result.Allowed)
	assert.Equal(t, "regex_rules.kubectl", result.RuleID)
}

func TestValidate_SafeDeleteWithName(t *testing.T) {
	v := New(defaultPolicy(), nil)
	result := v.Validate("kubectl delete pod nginx")
	assert.True(t, result.Allowed)
}

func TestValidate_DestructiveWithoutNameBlocked(t *testing.T) {
	v := New(defaultPolicy(), nil)
	result := v.Validate("kubectl delete pod")
	assert.False(t, result.Allowed)
}

func TestValidate_PipeDisallowedStageBlocked(t *testing.T) {
	v := New(defaultPolicy(), nil)
	result := v.Validate("kubectl get pods | python -c 'x'")
	assert.False(t, result.Allowed)
	assert.Equal(t, "allowed_unix_commands", result.RuleID)
}

func TestValidate_PipeAllowedStageOK(t *testing.T) {
	v := New(defaultPolicy(), nil)
	result := v.Validate("kubectl get pods | grep Running | wc -l")
	assert.True(t, result.Allowed)
}

func TestValidate_PermissiveAlwaysAllows(t *testing.T) {
	policy := defaultPolicy()
	policy.Mode = "permissive"
	v := New(policy, nil)
	assert.True(t, v.Validate("kubectl delete pod").Allowed)
	assert.True(t, v.Validate("rm -rf /").Allowed)
}

func TestValidateExecCommand_ShellWithoutC(t *testing.T) {
	parsed := parser.ParseCommand("kubectl exec mypod -- bash")
	result := ValidateExecCommand(parsed)
	assert.False(t, result.Allowed)
	assert.Equal(t, "exec_shell_check", result.RuleID)
}

func TestValidateExecCommand_InteractiveAllowed(t *testing.T) {
	parsed := parser.ParseCommand("kubectl exec -it mypod -- bash")
	result := ValidateExecCommand(parsed)
	assert.True(t, result.Allowed)
}

func TestValidateExecCommand_ShellWithDashCAllowed(t *testing.T) {
	parsed := parser.ParseCommand("kubectl exec mypod -- bash -c 'echo hi'")
	result := ValidateExecCommand(parsed)
	assert.True(t, result.Allowed)
}

func TestValidate_UnknownToolFallsThroughToRegex(t *testing.T) {
	v := New(defaultPolicy(), nil)
	result := v.Validate("helm install myrelease ./chart")
	assert.True(t, result.Allowed)
}

func TestReload_SwapsPolicyInPlace(t *testing.T) {
	v := New(defaultPolicy(), nil)

	blocked := v.Validate("kubectl delete pods --all")
	assert.False(t, blocked.Allowed)

	v.Reload(Policy{Mode: "permissive"})

	allowed := v.Validate("kubectl delete pods --all")
	assert.True(t, allowed.Allowed, "reloaded policy should apply to the same *Validator instance")
}
