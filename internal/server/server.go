// Package server exposes uisoup element and mouse operations as MCP tools.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/uisoup/internal/element"
	"go.uber.org/zap"
)

// Config holds MCP server configuration.
type Config struct {
	Transport           string
	Port                int
	CacheTTL            time.Duration
	DoubleClickInterval time.Duration
	Version             string
}

// Server wraps the MCP server with the element backend and root cache.
type Server struct {
	backend    *element.Backend
	cache      *RootCache
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
	cfg        Config
	log        *zap.Logger
}

// New creates an MCP server with every uisoup tool registered.
func New(b *element.Backend, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{
		backend: b,
		cache:   NewRootCache(cfg.CacheTTL),
		cfg:     cfg,
		log:     log.Named("mcp"),
	}
	s.mcp = mcpserver.NewMCPServer("uisoup", cfg.Version)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	switch s.cfg.Transport {
	case "stdio", "":
		s.log.Info("serving MCP over stdio")
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		s.log.Info("serving MCP over streamable HTTP", zap.String("addr", addr))
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func targetArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("app", mcp.Description("Application name (e.g. 'Calculator')")),
		mcp.WithNumber("pid", mcp.Description("Process ID; wins over app")),
		mcp.WithString("window", mcp.Description("Window title substring; omit to search the whole application")),
		mcp.WithArray("attr", mcp.Description("Attribute predicates as key=value strings (e.g. 'AXTitle=OK')")),
		mcp.WithString("c_name", mcp.Description("Combined role tag + name (e.g. 'btnOK')")),
	}
}

func tool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	all := append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)
	return mcp.NewTool(name, all...)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		tool("list", "List running applications that expose accessible windows"),
		s.handleList,
	)

	s.mcp.AddTool(
		tool("find", "Find elements matching attribute predicates. Returns role, names, value and bounds of each match.",
			append(targetArgs(),
				mcp.WithBoolean("all", mcp.Description("Return every match instead of the first")),
			)...),
		s.handleFind,
	)

	s.mcp.AddTool(
		tool("exists", "Report whether an element matching the predicates exists", targetArgs()...),
		s.handleExists,
	)

	s.mcp.AddTool(
		tool("inspect", "Dump the element subtree under the target (or the matched element)",
			append(targetArgs(),
				mcp.WithNumber("depth", mcp.Description("Max depth below the root (0 = unlimited)")),
			)...),
		s.handleInspect,
	)

	s.mcp.AddTool(
		tool("click", "Click the matched element at its centre or at an offset from its top-left corner",
			append(targetArgs(),
				mcp.WithString("button", mcp.Description("Mouse button: left (default) or right")),
				mcp.WithBoolean("double", mcp.Description("Double-click")),
				mcp.WithNumber("x_offset", mcp.Description("X offset from the element's left edge")),
				mcp.WithNumber("y_offset", mcp.Description("Y offset from the element's top edge")),
			)...),
		s.handleClick,
	)

	s.mcp.AddTool(
		tool("drag", "Drag the matched element to a screen point",
			append(targetArgs(),
				mcp.WithNumber("to_x", mcp.Description("Destination X"), mcp.Required()),
				mcp.WithNumber("to_y", mcp.Description("Destination Y"), mcp.Required()),
				mcp.WithBoolean("smooth", mcp.Description("Interpolate the motion (default: true)")),
			)...),
		s.handleDrag,
	)

	s.mcp.AddTool(
		tool("set_value", "Set the AXValue of the matched element",
			append(targetArgs(),
				mcp.WithString("value", mcp.Description("Value to set"), mcp.Required()),
			)...),
		s.handleSetValue,
	)

	s.mcp.AddTool(
		tool("focus", "Give keyboard focus to the matched element", targetArgs()...),
		s.handleFocus,
	)

	s.mcp.AddTool(
		tool("mouse_move", "Move the pointer to a screen point",
			mcp.WithNumber("x", mcp.Description("Screen X"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Screen Y"), mcp.Required()),
			mcp.WithBoolean("smooth", mcp.Description("Interpolate the motion")),
		),
		s.handleMouseMove,
	)

	s.mcp.AddTool(
		tool("mouse_position", "Report the live pointer position"),
		s.handleMousePosition,
	)
}
