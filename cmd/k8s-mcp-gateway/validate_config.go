package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/config"
)

func newValidateConfigCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Load and validate configuration, security policy, and tool catalog without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(flags.configPath)
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if errs := cfg.Validate(); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return fmt.Errorf("%d configuration error(s)", len(errs))
			}

			if _, err := config.LoadSecurityPolicy(flags.securityPath); err != nil {
				return fmt.Errorf("loading security policy: %w", err)
			}
			catalog, err := config.LoadToolCatalog(flags.toolsPath)
			if err != nil {
				return fmt.Errorf("loading tool catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "configuration OK: %d tool(s) in catalog, transport=%s\n", len(catalog), cfg.Server.Transport)
			return nil
		},
	}
}
