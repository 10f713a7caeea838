package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/tool"
)

// catalogFile mirrors tools.yaml: a map from tool name to its entry,
// preserving the spec's ToolConfig fields plus an optional "type" for
// native (non-subprocess) tools.
type catalogFile struct {
	Tools map[string]catalogEntry `yaml:"tools"`
}

type catalogEntry struct {
	Type        string         `yaml:"type"` // "cli" (default) | "native"
	Required    bool           `yaml:"required"`
	CheckCmd    string         `yaml:"check_cmd"`
	TestCmd     string         `yaml:"test_cmd"`
	HelpFlag    string         `yaml:"help_flag"`
	Description string         `yaml:"description"`
	Example     string         `yaml:"example"`
	Parameters  map[string]any `yaml:"parameters"`
}

// LoadToolCatalog reads tools.yaml into the tool.Config list the
// registry loads at startup. The entries come from a Go map, so the
// order of the returned list is not defined and need not match the
// file; neither this function nor the registry sorts it.
func LoadToolCatalog(path string) ([]tool.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultCatalog(), nil
		}
		return nil, fmt.Errorf("reading tool catalog %s: %w", path, err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing tool catalog %s: %w", path, err)
	}

	out := make([]tool.Config, 0, len(f.Tools))
	for name, e := range f.Tools {
		t := tool.TypeCLI
		if e.Type == "native" {
			t = tool.TypeNative
		}
		out = append(out, tool.Config{
			Name:        name,
			Type:        t,
			Required:    e.Required,
			CheckCmd:    e.CheckCmd,
			TestCmd:     e.TestCmd,
			HelpFlag:    e.HelpFlag,
			Description: e.Description,
			Example:     e.Example,
			Parameters:  e.Parameters,
		})
	}
	return out, nil
}

// defaultCatalog is used when no tools.yaml is present: the four
// tools named in spec.md §1, with kubectl required and the rest
// optional.
func defaultCatalog() []tool.Config {
	return []tool.Config{
		{
			Name:        "kubectl",
			Type:        tool.TypeCLI,
			Required:    true,
			CheckCmd:    "kubectl version --client",
			TestCmd:     "kubectl cluster-info",
			HelpFlag:    "--help",
			Description: "Kubernetes command-line tool",
			Example:     "kubectl get pods -n default",
		},
		{
			Name:        "helm",
			Type:        tool.TypeCLI,
			Required:    false,
			CheckCmd:    "helm version",
			TestCmd:     "helm list --all-namespaces",
			HelpFlag:    "--help",
			Description: "Kubernetes package manager",
			Example:     "helm list -A",
		},
		{
			Name:        "argocd",
			Type:        tool.TypeCLI,
			Required:    false,
			CheckCmd:    "argocd version --client",
			TestCmd:     "argocd app list",
			HelpFlag:    "--help",
			Description: "Argo CD GitOps CLI",
			Example:     "argocd app list",
		},
		{
			Name:        "aws",
			Type:        tool.TypeCLI,
			Required:    false,
			CheckCmd:    "aws --version",
			TestCmd:     "aws sts get-caller-identity",
			HelpFlag:    "help",
			Description: "AWS command-line interface",
			Example:     "aws ec2 describe-instances",
		},
	}
}
