package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead, e.g. for the MCP Inspector.

Tools: list_accounts, select_account, list_customers, create_child_mcc.

Examples:
  # Stdio mode
  mcc mcp

  # HTTP mode
  mcc mcp --http 127.0.0.1:8080`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().String("http", "", "serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Manager:         manager,
		NewCustomerView: newCustomerView,
	}, version)
	if err != nil {
		return err
	}

	followTokenStore(cmd.Context(), manager)

	if addr != "" {
		return server.RunHTTP(cmd.Context(), addr, func(bound net.Addr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", bound)
		})
	}
	return server.Run(cmd.Context())
}
