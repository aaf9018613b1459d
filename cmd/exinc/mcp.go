package main

import (
	"fmt"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/internal/cli"
	"github.com/aretw0/exinc/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpStore storeFlags

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts exinc as an MCP Server, exposing the expand_includes and
get_expansion tools to AI agents.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP on loopback. Ideal for debuggers.

Tool calls may only search inside the --root directories and the configured
default paths.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		debug, _ := cmd.Flags().GetBool("debug")
		configPath, _ := cmd.Flags().GetString("config")
		roots, _ := cmd.Flags().GetStringSlice("root")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := serverLogger(debug)
		cfg, err := cli.LoadConfig(configPath, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		store, closeStore, err := mcpStore.open()
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(mcp.Config{
			Store:   store,
			Options: []exinc.Option{exinc.WithConfig(cfg), exinc.WithLogger(logger)},
			Roots:   roots,
			Logger:  logger,
		})

		switch transport {
		case "stdio":
			logger.Info("Starting exinc MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			logger.Info("Starting exinc MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().StringSlice("root", nil, "Directory tool calls may search (repeatable)")
	addStoreFlags(mcpCmd, &mcpStore)
}
