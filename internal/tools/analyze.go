package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerAnalyzeTool() {
	s.addTool(&mcp.Tool{
		Name:        "analyze",
		Description: "Parse source text as the given language and (re-)build its env-var binding graph, replacing any prior revision for this document. Byte-identical source in the same language is a no-op. Call before classify/direct_references/symbols.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"doc_id": {
					"type": "string",
					"description": "Opaque identifier for the document, e.g. a file path."
				},
				"source": {
					"type": "string",
					"description": "Full source text of the document."
				},
				"language": {
					"type": "string",
					"description": "Language tag: javascript, typescript, tsx, python, go, rust, ruby, php, java, c-sharp, c, cpp, kotlin, elixir, lua, bash, zig."
				}
			},
			"required": ["doc_id", "source", "language"]
		}`),
	}, s.handleAnalyze)
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	docID := getStringArg(args, "doc_id")
	if docID == "" {
		return errResult("missing required 'doc_id' parameter"), nil
	}
	source := getStringArg(args, "source")

	l, err := parseLanguage(getStringArg(args, "language"))
	if err != nil {
		return errResult(err.Error()), nil
	}

	if err := s.engine.Analyze(ctx, docID, []byte(source), l); err != nil {
		return errResult(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"doc_id":   docID,
		"language": string(l),
		"status":   "analyzed",
	}), nil
}
