package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/envscope/internal/engine"
)

func (s *Server) registerSymbolsTool() {
	s.addTool(&mcp.Tool{
		Name:        "symbols",
		Description: "List every symbol recorded for a document, each paired with its terminal origin (EnvVar, EnvObject, or Unresolved) after following alias/destructure chains.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"doc_id": {
					"type": "string",
					"description": "Document identifier previously passed to analyze."
				}
			},
			"required": ["doc_id"]
		}`),
	}, s.handleSymbols)
}

func (s *Server) handleSymbols(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	docID := getStringArg(args, "doc_id")
	if docID == "" {
		return errResult("missing required 'doc_id' parameter"), nil
	}

	syms, err := s.engine.Symbols(docID)
	if err != nil {
		return errResult(err.Error()), nil
	}

	views := make([]map[string]any, len(syms))
	for i, sv := range syms {
		views[i] = symbolView(sv)
	}
	return jsonResult(map[string]any{
		"doc_id":  docID,
		"symbols": views,
		"total":   len(views),
	}), nil
}

func symbolView(sv engine.SymbolView) map[string]any {
	return map[string]any{
		"symbol_id":  int32(sv.ID),
		"name":       sv.Name,
		"scope_id":   int32(sv.Scope),
		"decl_span":  spanView(sv.DeclSpan),
		"valid_span": spanView(sv.ValidSpan()),
		"origin":     originView(sv.Origin),
		"resolved":   originView(sv.Resolved),
	}
}
