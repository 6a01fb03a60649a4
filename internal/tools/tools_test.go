package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/envscope/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(config.Default())
}

// callToolRaw invokes a tool and decodes its JSON text content, failing the
// test on any transport, tool, or decode error.
func callToolRaw(t *testing.T, s *Server, name string, args map[string]any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	result, err := s.CallTool(context.Background(), name, raw)
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if result.IsError {
		t.Fatalf("tool %s returned error result", name)
	}
	var text string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text = tc.Text
			break
		}
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("unmarshal %s result: %v\ntext=%q", name, err, text)
	}
	return out
}

func TestToolNamesListsAllRegisteredTools(t *testing.T) {
	s := newTestServer(t)
	names := s.ToolNames()
	want := map[string]bool{
		"analyze": false, "classify": false, "direct_references": false,
		"symbols": false, "close": false, "scan_repository": false,
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("expected tool %q to be registered, got %v", n, names)
		}
	}
}

func TestAnalyzeClassifySymbolsEndToEnd(t *testing.T) {
	s := newTestServer(t)
	src := `const env = process.env; const cfg = env; const x = cfg.DATABASE_URL;`

	analyzeResult := callToolRaw(t, s, "analyze", map[string]any{
		"doc_id":   "a.ts",
		"source":   src,
		"language": "typescript",
	})
	if analyzeResult["status"] != "analyzed" {
		t.Fatalf("analyze: unexpected response %v", analyzeResult)
	}

	directPos := strings.Index(src, "DATABASE_URL")
	hit := callToolRaw(t, s, "classify", map[string]any{
		"doc_id":        "a.ts",
		"byte_position": directPos,
	})
	if hit["kind"] != "DirectReference" {
		t.Fatalf("classify at DATABASE_URL: kind = %v, want DirectReference", hit["kind"])
	}
	if hit["var_name"] != "DATABASE_URL" {
		t.Fatalf("classify at DATABASE_URL: var_name = %v", hit["var_name"])
	}

	xPos := strings.Index(src, "const x =") + len("const ")
	hit = callToolRaw(t, s, "classify", map[string]any{
		"doc_id":        "a.ts",
		"byte_position": xPos,
	})
	if hit["kind"] != "SymbolDeclaration" {
		t.Fatalf("classify at x: kind = %v, want SymbolDeclaration", hit["kind"])
	}
	origin, _ := hit["origin"].(map[string]any)
	if origin["kind"] != "EnvVar" || origin["name"] != "DATABASE_URL" {
		t.Fatalf("classify at x: origin = %v, want EnvVar(DATABASE_URL)", origin)
	}

	symbols := callToolRaw(t, s, "symbols", map[string]any{"doc_id": "a.ts"})
	if total, _ := symbols["total"].(float64); total < 3 {
		t.Fatalf("symbols: total = %v, want >= 3 (env, cfg, x)", symbols["total"])
	}

	refs := callToolRaw(t, s, "direct_references", map[string]any{"doc_id": "a.ts"})
	if total, _ := refs["total"].(float64); total != 1 {
		t.Fatalf("direct_references: total = %v, want 1", refs["total"])
	}

	closeResult := callToolRaw(t, s, "close", map[string]any{"doc_id": "a.ts"})
	if closeResult["status"] != "closed" {
		t.Fatalf("close: unexpected response %v", closeResult)
	}

	hit = callToolRaw(t, s, "classify", map[string]any{"doc_id": "a.ts", "byte_position": 0})
	if hit["kind"] != "None" {
		t.Fatalf("classify after close: kind = %v, want None", hit["kind"])
	}
}

func TestAnalyzeRejectsUnregisteredLanguage(t *testing.T) {
	s := newTestServer(t)
	raw, _ := json.Marshal(map[string]any{
		"doc_id": "x", "source": "x", "language": "cobol",
	})
	result, err := s.CallTool(context.Background(), "analyze", raw)
	if err != nil {
		t.Fatalf("call analyze: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for unregistered language")
	}
}
