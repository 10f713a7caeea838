package main

import (
	"github.com/spf13/cobra"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/server"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath   string
	securityPath string
	toolsPath    string
}

func newRootCommand() *cobra.Command {
	server.Version = version
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "k8s-mcp-gateway",
		Short:         "MCP gateway exposing kubectl, helm, argocd, and aws as validated tool calls",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config.yaml (env/defaults apply if absent)")
	cmd.PersistentFlags().StringVar(&flags.securityPath, "security-policy", "", "path to security.yaml (strict-mode default if absent)")
	cmd.PersistentFlags().StringVar(&flags.toolsPath, "tools", "", "path to tools.yaml (built-in kubectl/helm/argocd/aws catalog if absent)")

	cmd.AddCommand(newServeCommand(flags))
	cmd.AddCommand(newValidateConfigCommand(flags))
	cmd.AddCommand(newToolsCommand(flags))

	return cmd
}
