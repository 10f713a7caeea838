package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/config"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/registry"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/runner"
	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

func newToolsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Probe the configured tool catalog and report which tools are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(flags.configPath)
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			policy, err := config.LoadSecurityPolicy(flags.securityPath)
			if err != nil {
				return fmt.Errorf("loading security policy: %w", err)
			}
			catalog, err := config.LoadToolCatalog(flags.toolsPath)
			if err != nil {
				return fmt.Errorf("loading tool catalog: %w", err)
			}

			defaultTimeout := time.Duration(cfg.Command.DefaultTimeout) * time.Second

			v := validator.New(policy, nil)
			r := runner.New(runner.Config{
				DefaultTimeout: defaultTimeout,
				MaxOutputSize:  cfg.Command.MaxOutputSize,
			}, nil)

			reg := registry.New(r, v, nil, false)
			reg.LoadCLITools(catalog, defaultTimeout, nil)

			result := reg.DiscoverAndValidate(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			if !result.OK() {
				return fmt.Errorf("one or more required tools are unavailable")
			}
			return nil
		},
	}
	return cmd
}
