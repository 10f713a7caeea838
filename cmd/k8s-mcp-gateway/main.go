// Command k8s-mcp-gateway runs the MCP gateway that exposes kubectl,
// helm, argocd, and aws as validated, auditable tool calls.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
