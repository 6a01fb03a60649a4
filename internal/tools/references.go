package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/envscope/internal/graph"
)

func (s *Server) registerDirectReferencesTool() {
	s.addTool(&mcp.Tool{
		Name:        "direct_references",
		Description: "List every direct env-var access recorded for a document — for diagnostics and semantic highlighting, not including aliased or destructured usages.",
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
	}, s.handleDirectReferences)
}

func (s *Server) handleDirectReferences(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	docID := getStringArg(args, "doc_id")
	if docID == "" {
		return errResult("missing required 'doc_id' parameter"), nil
	}

	refs, err := s.engine.DirectReferences(docID)
	if err != nil {
		return errResult(err.Error()), nil
	}

	views := make([]map[string]any, len(refs))
	for i, r := range refs {
		views[i] = referenceView(r)
	}
	return jsonResult(map[string]any{
		"doc_id":     docID,
		"references": views,
		"total":      len(views),
	}), nil
}

func referenceView(r graph.EnvReference) map[string]any {
	return map[string]any{
		"var_name":    r.VarName,
		"name_span":   spanView(r.NameSpan),
		"access_span": spanView(r.AccessSpan),
		"scope_id":    int32(r.Scope),
	}
}
