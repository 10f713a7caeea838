package tool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

func TestCLITool_CheckAvailable(t *testing.T) {
	r := runner.New(runner.Config{DefaultTimeout: 5 * time.Second, MaxOutputSize: 1 << 20}, nil)
	cfg := Config{Name: "echo", CheckCmd: "echo ok", Required: true}
	ct := NewCLITool(cfg, r, nil, 5*time.Second)

	res := ct.CheckAvailable(context.Background())

	assert.True(t, res.Available)
	assert.Contains(t, res.Version, "ok")
}

func TestCLITool_ExecutePrefixesToolName(t *testing.T) {
	r := runner.New(runner.Config{DefaultTimeout: 5 * time.Second, MaxOutputSize: 1 << 20}, nil)
	v := validator.New(validator.Policy{Mode: "permissive"}, nil)
	cfg := Config{Name: "echo"}
	ct := NewCLITool(cfg, r, v, 5*time.Second)

	res := ct.Execute(context.Background(), map[string]any{"command": "hi"})

	require.Equal(t, runner.StatusSuccess, res.Status)
	assert.Equal(t, "hi\n", res.Stdout)
}

func TestCLITool_ExecuteDeniedByValidator(t *testing.T) {
	r := runner.New(runner.Config{DefaultTimeout: 5 * time.Second, MaxOutputSize: 1 << 20}, nil)
	policy := validator.Policy{
		Mode:              "enforcing",
		DangerousCommands: map[string][]string{"kubectl": {"kubectl delete"}},
		SafePatterns:      map[string][]string{"kubectl": {}},
	}
	v := validator.New(policy, nil)
	cfg := Config{Name: "kubectl"}
	ct := NewCLITool(cfg, r, v, 5*time.Second)

	res := ct.Execute(context.Background(), map[string]any{"command": "delete pod mypod"})

	assert.Equal(t, runner.StatusBlocked, res.Status)
}

func TestNativeTool_ExecuteUsesHandler(t *testing.T) {
	cfg := Config{Name: "eksinfo", Description: "EKS cluster metadata lookup"}
	nt := NewNativeTool(cfg, func(ctx context.Context, args map[string]any) (runner.Result, error) {
		return runner.Result{Status: runner.StatusSuccess, Stdout: "cluster-info"}, nil
	})

	res := nt.Execute(context.Background(), map[string]any{"cluster": "prod"})

	assert.Equal(t, runner.StatusSuccess, res.Status)
	assert.Equal(t, "cluster-info", res.Stdout)
}

func TestNativeTool_CheckAvailablePropagatesHandlerError(t *testing.T) {
	cfg := Config{Name: "eksinfo"}
	nt := NewNativeTool(cfg, func(ctx context.Context, args map[string]any) (runner.Result, error) {
		return runner.Result{}, assert.AnError
	})

	res := nt.CheckAvailable(context.Background())

	assert.False(t, res.Available)
}
