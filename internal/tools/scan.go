package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerScanRepositoryTool() {
	s.addTool(&mcp.Tool{
		Name:        "scan_repository",
		Description: "Walk a workspace tree and analyze every source file of a recognised language. Bulk/offline use; not part of the per-document editor hot path. Each file's document ID is its path relative to repo_path.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"repo_path": {
					"type": "string",
					"description": "Absolute path to the repository root to scan."
				}
			},
			"required": ["repo_path"]
		}`),
	}, s.handleScanRepository)
}

func (s *Server) handleScanRepository(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	root := getStringArg(args, "repo_path")
	if root == "" {
		return errResult("missing required 'repo_path' parameter"), nil
	}

	results, err := s.engine.ScanRepository(ctx, root)
	if err != nil {
		return errResult(err.Error()), nil
	}

	failed := 0
	views := make([]map[string]any, len(results))
	for i, r := range results {
		v := map[string]any{"path": r.Path}
		if r.Err != nil {
			v["error"] = r.Err.Error()
			failed++
		}
		views[i] = v
	}

	return jsonResult(map[string]any{
		"repo_path": root,
		"analyzed":  len(results) - failed,
		"failed":    failed,
		"total":     len(results),
		"files":     views,
	}), nil
}
