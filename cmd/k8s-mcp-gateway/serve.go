package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/server"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	var transport string
	var host string
	var port int
	var skipToolValidation bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			bundle, result, err := server.Build(ctx, server.Options{
				ConfigPath:         flags.configPath,
				SecurityPolicyPath: flags.securityPath,
				ToolCatalogPath:    flags.toolsPath,
				SkipToolValidation: skipToolValidation,
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
				return err
			}

			if transport != "" {
				bundle.Config.Server.Transport = transport
			}
			if host != "" {
				bundle.Config.Server.Host = host
			}
			if port != 0 {
				bundle.Config.Server.Port = port
			}

			fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
			fmt.Fprintf(cmd.ErrOrStderr(), "starting k8s-mcp-gateway %s (%s transport)\n", server.Version, bundle.Config.Server.Transport)

			return bundle.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "override configured transport (stdio|streamable-http)")
	cmd.Flags().StringVar(&host, "host", "", "override configured host (streamable-http only)")
	cmd.Flags().IntVar(&port, "port", 0, "override configured port (streamable-http only)")
	cmd.Flags().BoolVar(&skipToolValidation, "skip-tool-validation", false, "skip connectivity probing at startup (for testing without live clusters)")

	return cmd
}
