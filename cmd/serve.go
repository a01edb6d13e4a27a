package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/uisoup/internal/observability"
	"github.com/mj1618/uisoup/internal/server"
	"github.com/mj1618/uisoup/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing uisoup tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the element and
mouse operations as tools. AI agents can call tools directly without shell
overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  uisoup serve
  uisoup serve --transport streamable-http --port 8080
  uisoup serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default: serve.transport)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default: serve.port)")
	serveCmd.Flags().Int("cache-ttl", -1, "Root element cache TTL in milliseconds, 0 to disable (default: serve.cache_ttl)")
}

// serverConfig merges the serve flags over the loaded configuration.
func serverConfig(cmd *cobra.Command) server.Config {
	cfg := server.Config{
		Transport:           appConfig.Serve.Transport,
		Port:                appConfig.Serve.Port,
		CacheTTL:            appConfig.Serve.CacheTTL,
		DoubleClickInterval: appConfig.Mouse.DoubleClickInterval,
		Version:             version.Version,
	}
	if cmd.Flags().Changed("transport") {
		cfg.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("cache-ttl") {
		ms, _ := cmd.Flags().GetInt("cache-ttl")
		cfg.CacheTTL = time.Duration(ms) * time.Millisecond
	}
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := serverConfig(cmd)
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("--cache-ttl must not be negative")
	}
	srv := server.New(backend, cfg, observability.GetLogger())
	return srv.Serve()
}
