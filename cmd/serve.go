package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing wingman tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes window detection
and documentation lookup as tools. AI agents can query the focused window,
screen layout, and application docs without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for Claude Code / MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  wingman serve
  wingman serve --transport streamable-http --port 8080
  wingman serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 200, "Focused-window cache TTL in milliseconds (0 to disable)")
	serveCmd.Flags().String("config", "", "Config file path (default: XDG config dir)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	configPath, _ := cmd.Flags().GetString("config")

	cfg := MCPConfig{
		Transport:  transport,
		Port:       port,
		CacheTTL:   time.Duration(cacheTTLMs) * time.Millisecond,
		ConfigPath: configPath,
	}

	srv, err := newMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return srv.serve(cfg)
}
