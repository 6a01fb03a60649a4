package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerCloseTool() {
	s.addTool(&mcp.Tool{
		Name:        "close",
		Description: "Drop a document's analysed state. Subsequent classify/direct_references/symbols calls for this doc_id behave as for an unknown document until analyze is called again.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"doc_id": {
					"type": "string",
					"description": "Document identifier to discard."
				}
			},
			"required": ["doc_id"]
		}`),
	}, s.handleClose)
}

func (s *Server) handleClose(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	docID := getStringArg(args, "doc_id")
	if docID == "" {
		return errResult("missing required 'doc_id' parameter"), nil
	}

	s.engine.Close(docID)
	return jsonResult(map[string]any{
		"doc_id": docID,
		"status": "closed",
	}), nil
}
