// Package tools is the envscope-mcp server: it exposes the engine
// façade's five operations (analyze, classify, direct_references,
// symbols, close) plus a scan_repository verb backed by the repository
// scanner, as MCP tools. It is infrastructure around the analysis core,
// not the core itself; an editor-protocol host would wrap the same engine
// the same way.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/envscope/internal/config"
	"github.com/DeusData/envscope/internal/engine"
	"github.com/DeusData/envscope/internal/lang"
)

// Version is the current release version, reported at the MCP handshake.
const Version = "0.1.0"

// Server wraps the MCP server with tool handlers bound to a single Engine.
type Server struct {
	mcp      *mcp.Server
	engine   *engine.Engine
	handlers map[string]mcp.ToolHandler
}

// NewServer creates a new MCP server backed by cfg, with all tools
// registered.
func NewServer(cfg *config.Workspace) *Server {
	srv := &Server{
		engine:   engine.New(cfg),
		handlers: make(map[string]mcp.ToolHandler),
	}

	srv.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "envscope-mcp",
			Version: Version,
		},
		&mcp.ServerOptions{},
	)

	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Engine returns the underlying Engine for direct access (e.g. CLI mode).
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

func (s *Server) addTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mcp.AddTool(tool, handler)
	s.handlers[tool.Name] = handler
}

// CallTool invokes a tool handler directly by name, bypassing MCP transport.
func (s *Server) CallTool(ctx context.Context, name string, argsJSON json.RawMessage) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	if len(argsJSON) == 0 {
		argsJSON = json.RawMessage(`{}`)
	}
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}
	return handler(ctx, req)
}

// ToolNames returns all registered tool names in sorted order.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) registerTools() {
	s.registerAnalyzeTool()
	s.registerClassifyTool()
	s.registerDirectReferencesTool()
	s.registerSymbolsTool()
	s.registerCloseTool()
	s.registerScanRepositoryTool()
}

// --- Helpers ---

// jsonResult marshals data to JSON and returns it as a tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// getIntArg extracts an integer argument with a default value.
func getIntArg(args map[string]any, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok {
		return defaultVal
	}
	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return defaultVal
	}
	return int(f)
}

// parseLanguage validates that tag names a registered language.
func parseLanguage(tag string) (lang.Language, error) {
	l := lang.Language(tag)
	if lang.ForLanguage(l) == nil {
		return "", fmt.Errorf("unregistered language: %s", tag)
	}
	return l, nil
}
