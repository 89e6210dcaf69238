package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/wingman-desktop/wingman/internal/config"
	"github.com/wingman-desktop/wingman/internal/docs"
	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/platform"
	"github.com/wingman-desktop/wingman/internal/version"
)

// mcpServer wraps the MCP server with the platform provider and cache.
type mcpServer struct {
	provider *platform.Provider
	cache    *mcpFocusCache
	config   config.Config
	mcp      *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport  string
	Port       int
	CacheTTL   time.Duration
	ConfigPath string
}

// newMCPServer creates and configures an MCP server with all wingman tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	path := cfg.ConfigPath
	if path == "" {
		path = config.Path()
	}
	appCfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		provider: platform.NewProvider(),
		cache:    newMCPFocusCache(cfg.CacheTTL),
		config:   appCfg,
	}

	s.mcp = mcpserver.NewMCPServer(
		"wingman",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// focused
	s.mcp.AddTool(
		mcp.NewTool("focused",
			mcp.WithDescription("Get the currently focused window: application id, title, PID, and geometry. Results are briefly cached; repeated calls are cheap."),
			mcp.WithString("backend", mcp.Description("Query a single backend (x11, sway, hyprland, gnome) instead of the fallback chain")),
		),
		s.handleFocused,
	)

	// screens
	s.mcp.AddTool(
		mcp.NewTool("screens",
			mcp.WithDescription("List connected screens with their bounds and which one is primary"),
		),
		s.handleScreens,
	)

	// backends
	s.mcp.AddTool(
		mcp.NewTool("backends",
			mcp.WithDescription("List window detection backends in fallback order with availability"),
		),
		s.handleBackends,
	)

	// docs
	s.mcp.AddTool(
		mcp.NewTool("docs",
			mcp.WithDescription("Retrieve documentation for a command: man page, --help output, or online lookup in configured order"),
			mcp.WithString("command", mcp.Description("Command or application id to document (e.g. 'vim', 'org.mozilla.firefox')"), mcp.Required()),
			mcp.WithString("source", mcp.Description("Restrict to one source: man, help, online")),
		),
		s.handleDocs,
	)

	// config_get
	s.mcp.AddTool(
		mcp.NewTool("config_get",
			mcp.WithDescription("Read wingman configuration. Returns the whole config, or one field when key is given."),
			mcp.WithString("key", mcp.Description("Setting key (e.g. 'doc_sources', 'panel_max_width')")),
		),
		s.handleConfigGet,
	)
}

// toYAML serializes a tool result for the MCP response.
func toYAML(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func (s *mcpServer) handleFocused(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	backend := stringParam(params, "backend", "")

	var (
		win  *model.Window
		name string
		err  error
	)
	if backend != "" {
		d, derr := s.provider.Detector(backend)
		if derr != nil {
			return mcp.NewToolResultError(derr.Error()), nil
		}
		win, err = d.FocusedWindow()
		name = d.Name()
		if err == nil && win == nil {
			err = platform.ErrNoWindow
		}
	} else {
		win, name, err = s.cache.focusedWindow(s.provider)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(toYAML(focusedResult{
		TS:      time.Now().UnixMilli(),
		Backend: name,
		Window:  *win,
	})), nil
}

func (s *mcpServer) handleScreens(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	screens, backend, err := s.provider.Screens()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(screenList{Backend: backend, Screens: screens})), nil
}

func (s *mcpServer) handleBackends(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := backendList{}
	for i, d := range s.provider.Detectors() {
		list.Backends = append(list.Backends, backendInfo{
			Order:     i,
			Name:      d.Name(),
			Available: d.Available(),
		})
	}
	return mcp.NewToolResultText(toYAML(list)), nil
}

func (s *mcpServer) handleDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	command := stringParam(params, "command", "")
	source := stringParam(params, "source", "")
	if command == "" {
		return mcp.NewToolResultError("command parameter is required"), nil
	}

	sources := s.config.DocSources
	if source != "" {
		switch source {
		case docs.SourceMan, docs.SourceHelp, docs.SourceOnline:
			sources = []string{source}
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown documentation source: %s", source)), nil
		}
	}

	retriever := docs.New(sources, s.config.URLPatterns)
	result := retriever.Get(ctx, command)
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *mcpServer) handleConfigGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	key := stringParam(params, "key", "")
	if key == "" {
		return mcp.NewToolResultText(toYAML(s.config)), nil
	}
	value, err := s.config.Get(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(value)), nil
}

// Parameter extraction helpers for MCP argument maps

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that clients may send as int/float
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}
