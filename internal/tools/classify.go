package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/resolver"
)

func (s *Server) registerClassifyTool() {
	s.addTool(&mcp.Tool{
		Name:        "classify",
		Description: "Classify a byte position in a previously analyzed document: which env var, if any, the symbol under the cursor ultimately resolves to. Resolution priority is direct reference, then declaration, then usage. Returns kind 'None' for unknown documents or positions outside any captured span.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"doc_id": {
					"type": "string",
					"description": "Document identifier previously passed to analyze."
				},
				"byte_position": {
					"type": "integer",
					"description": "UTF-8 byte offset into the document."
				}
			},
			"required": ["doc_id", "byte_position"]
		}`),
	}, s.handleClassify)
}

func (s *Server) handleClassify(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	docID := getStringArg(args, "doc_id")
	if docID == "" {
		return errResult("missing required 'doc_id' parameter"), nil
	}
	pos := getIntArg(args, "byte_position", -1)
	if pos < 0 {
		return errResult("missing required 'byte_position' parameter"), nil
	}

	hit := s.engine.Classify(docID, pos)
	return jsonResult(hitView(hit)), nil
}

// hitView flattens an EnvHit into a JSON-friendly shape.
func hitView(hit resolver.EnvHit) map[string]any {
	out := map[string]any{
		"kind": hit.Kind.String(),
	}
	switch hit.Kind {
	case resolver.HitDirectReference:
		out["var_name"] = hit.VarName
		out["span"] = spanView(hit.Span)
	case resolver.HitSymbolDeclaration, resolver.HitUsage:
		out["symbol_id"] = int32(hit.Symbol)
		out["origin"] = originView(hit.Origin)
		out["span"] = spanView(hit.Span)
	}
	return out
}

func spanView(sp graph.Span) map[string]any {
	return map[string]any{"start": sp.Start, "end": sp.End}
}

func originView(o graph.Origin) map[string]any {
	out := map[string]any{"kind": o.Kind.String()}
	switch o.Kind {
	case graph.OriginEnvVar:
		out["name"] = o.Name
	case graph.OriginDestructuredProperty:
		out["key"] = o.Name
		if o.Default != "" {
			out["default"] = o.Default
		}
	}
	return out
}
