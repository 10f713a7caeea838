package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/tool"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

func newTestRegistry() *Registry {
	r := runner.New(runner.Config{DefaultTimeout: 5 * time.Second, MaxOutputSize: 1 << 20}, nil)
	v := validator.New(validator.Policy{Mode: "permissive"}, nil)
	return New(r, v, nil, true)
}

func TestDiscoverAndValidate_RegistersAvailableTool(t *testing.T) {
	reg := newTestRegistry()
	reg.LoadCLITools([]tool.Config{
		{Name: "echo", CheckCmd: "echo ok", Required: true},
	}, 5*time.Second, nil)

	result := reg.DiscoverAndValidate(context.Background())

	require.True(t, result.OK())
	require.Len(t, result.Registered, 1)
	assert.Equal(t, "echo", result.Registered[0].Name)

	_, ok := reg.Get("echo")
	assert.True(t, ok)
}

func TestDiscoverAndValidate_RequiredFailureIsFatal(t *testing.T) {
	reg := newTestRegistry()
	reg.LoadCLITools([]tool.Config{
		{Name: "definitely-not-a-real-binary-xyz", CheckCmd: "definitely-not-a-real-binary-xyz --version", Required: true},
	}, 5*time.Second, nil)

	result := reg.DiscoverAndValidate(context.Background())

	assert.False(t, result.OK())
	require.Len(t, result.FailedRequired, 1)

	_, ok := reg.Get("definitely-not-a-real-binary-xyz")
	assert.False(t, ok)
}

func TestDiscoverAndValidate_OptionalFailureIsSkippedNotFatal(t *testing.T) {
	reg := newTestRegistry()
	reg.LoadCLITools([]tool.Config{
		{Name: "definitely-not-a-real-binary-xyz", CheckCmd: "definitely-not-a-real-binary-xyz --version", Required: false},
	}, 5*time.Second, nil)

	result := reg.DiscoverAndValidate(context.Background())

	assert.True(t, result.OK())
	require.Len(t, result.SkippedOptional, 1)
}

func TestResult_SummaryListsFailures(t *testing.T) {
	result := Result{
		FailedRequired: []RegistrationOutcome{{Name: "kubectl", Reason: "binary not found"}},
	}

	summary := result.Summary()

	assert.Contains(t, summary, "kubectl")
	assert.Contains(t, summary, "binary not found")
}

func TestLoadCLITools_NativeToolWithHandlerRegisters(t *testing.T) {
	reg := newTestRegistry()
	reg.LoadCLITools([]tool.Config{
		{Name: "eksinfo", Type: tool.TypeNative},
	}, 5*time.Second, map[string]tool.NativeHandler{
		"eksinfo": func(ctx context.Context, args map[string]any) (runner.Result, error) {
			return runner.Result{Status: runner.StatusSuccess}, nil
		},
	})

	result := reg.DiscoverAndValidate(context.Background())

	require.True(t, result.OK())
	require.Len(t, result.Registered, 1)
}
