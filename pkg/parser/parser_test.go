package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Kubectl(t *testing.T) {
	tests := []struct {
		name         string
		command      string
		wantAction   string
		wantResource string
		wantName     string
	}{
		{"get pods with namespace flag", "kubectl get pods -n default", "get", "pod", ""},
		{"get pod by name", "kubectl get pod nginx", "get", "pod", "nginx"},
		{"type slash name form", "kubectl describe deploy/api", "describe", "deployment", "api"},
		{"delete with alias", "kubectl delete po nginx", "delete", "pod", "nginx"},
		{"non resource action", "kubectl version", "version", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCommand(tt.command)
			assert.Equal(t, "kubectl", got.Tool)
			assert.Equal(t, tt.wantAction, got.Action)
			assert.Equal(t, tt.wantResource, got.Resource)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestParseCommand_Flags(t *testing.T) {
	got := ParseCommand("kubectl get pods -n default --output=json --watch")
	ns, ok := got.FlagValue("-n")
	require.True(t, ok)
	assert.Equal(t, "default", ns)

	output, ok := got.FlagValue("--output")
	require.True(t, ok)
	assert.Equal(t, "json", output)

	_, ok = got.FlagValue("--watch")
	assert.True(t, ok)
}

func TestParseCommand_ShortFlagCluster(t *testing.T) {
	got := ParseCommand("kubectl exec -it mypod -- bash")
	assert.True(t, got.HasFlag("-it"))
	val, ok := got.Flags["-it"]
	require.True(t, ok)
	assert.Nil(t, val)
}

func TestParseCommand_Helm(t *testing.T) {
	got := ParseCommand("helm install myrelease ./chart --namespace prod")
	assert.Equal(t, "helm", got.Tool)
	assert.Equal(t, "install", got.Action)
	assert.Equal(t, "myrelease", got.Name)
	ns, ok := got.FlagValue("--namespace")
	require.True(t, ok)
	assert.Equal(t, "prod", ns)
}

func TestParseCommand_Argocd(t *testing.T) {
	got := ParseCommand("argocd app sync myapp")
	assert.Equal(t, "argocd", got.Tool)
	assert.Equal(t, "app sync", got.Action)
	assert.Equal(t, "app", got.Resource)
	assert.Equal(t, "myapp", got.Name)
}

func TestParseCommand_AWS(t *testing.T) {
	got := ParseCommand("aws ec2 describe-instances --region us-east-1")
	assert.Equal(t, "aws", got.Tool)
	assert.Equal(t, "ec2 describe-instances", got.Action)
	assert.Equal(t, "ec2", got.Resource)
}

func TestParseCommand_Generic(t *testing.T) {
	got := ParseCommand("grep -i error")
	assert.Equal(t, "grep", got.Tool)
	assert.Equal(t, "-i", got.Action)
}

func TestParseCommand_Empty(t *testing.T) {
	got := ParseCommand("")
	assert.Empty(t, got.Tool)
	assert.Empty(t, got.Action)
}

func TestParseCommand_MalformedQuotesNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		got := ParseCommand(`kubectl get pods -n "unterminated`)
		assert.Equal(t, "kubectl", got.Tool)
	})
}

func TestIsPipeCommand(t *testing.T) {
	assert.False(t, IsPipeCommand(""))
	assert.False(t, IsPipeCommand("kubectl get pods"))
	assert.True(t, IsPipeCommand("kubectl get pods | grep Running"))
	assert.False(t, IsPipeCommand(`echo "a | b"`))
}

func TestSplitPipeCommands(t *testing.T) {
	stages := SplitPipeCommands("kubectl get pods | grep Running | wc -l")
	require.Len(t, stages, 3)
	assert.Equal(t, "kubectl get pods", stages[0])
	assert.Equal(t, "grep Running", stages[1])
	assert.Equal(t, "wc -l", stages[2])
}

func TestSplitPipeCommands_NoEmptySegments(t *testing.T) {
	stages := SplitPipeCommands("kubectl get pods ||  grep Running")
	for _, s := range stages {
		assert.NotEmpty(t, s)
	}
}

func TestParsedCommand_IsDestructive(t *testing.T) {
	assert.True(t, ParseCommand("kubectl delete pod nginx").IsDestructive())
	assert.True(t, ParseCommand("kubectl drain node1").IsDestructive())
	assert.False(t, ParseCommand("kubectl get pods").IsDestructive())
}
