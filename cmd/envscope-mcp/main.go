// Command envscope-mcp runs the environment-variable binding analysis
// engine as an MCP server over stdio, or as a one-shot CLI for scripting
// and debugging without a client.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/envscope/internal/config"
	"github.com/DeusData/envscope/internal/engine"
	"github.com/DeusData/envscope/internal/tools"
	"github.com/DeusData/envscope/internal/watcher"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("envscope-mcp", version)
		os.Exit(0)
	}

	if len(os.Args) >= 3 && os.Args[1] == "cli" {
		os.Exit(runCLI(os.Args[2:]))
	}

	if len(os.Args) >= 3 && os.Args[1] == "scan" {
		os.Exit(runScan(os.Args[2]))
	}

	if len(os.Args) >= 3 && os.Args[1] == "watch" {
		os.Exit(runWatch(os.Args[2]))
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd err=%v", err)
	}
	cfg := config.Load(cwd)
	srv := tools.NewServer(cfg)

	ctx := context.Background()
	runErr := srv.MCPServer().Run(ctx, &mcp.StdioTransport{})
	if runErr != nil {
		log.Fatalf("server err=%v", runErr)
	}
}

// runScan is the "scan" CLI verb shorthand: `envscope-mcp scan <repo_path>`,
// equivalent to `cli scan_repository {"repo_path": "..."}` but without the
// JSON ceremony, for bulk/offline analysis runs outside an editor.
func runScan(root string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	cfg := config.Load(cwd)
	srv := tools.NewServer(cfg)

	argsJSON, _ := json.Marshal(map[string]any{"repo_path": root})
	result, err := srv.CallTool(context.Background(), "scan_repository", argsJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	var text string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text = tc.Text
			break
		}
	}
	if result.IsError {
		fmt.Fprintf(os.Stderr, "error: %s\n", text)
		return 1
	}
	printSummary("scan_repository", text)
	return 0
}

// runWatch is the "watch" CLI verb: `envscope-mcp watch <repo_path>` polls
// the workspace and re-analyzes changed files until interrupted.
func runWatch(root string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	cfg := config.Load(cwd)
	eng := engine.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("watch.start", "root", root, "interval_seconds", cfg.EffectiveWatchInterval())
	w := watcher.New(root, eng, time.Duration(cfg.EffectiveWatchInterval())*time.Second)
	w.Run(ctx)
	return 0
}

func runCLI(args []string) int {
	raw := false
	var positional []string
	for _, a := range args {
		switch a {
		case "--raw":
			raw = true
		default:
			positional = append(positional, a)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	cfg := config.Load(cwd)
	srv := tools.NewServer(cfg)

	if len(positional) == 0 || positional[0] == "--help" || positional[0] == "-h" {
		fmt.Fprintf(os.Stderr, "Usage: envscope-mcp cli [--raw] <tool_name> [json_args]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n  --raw    Print full JSON output (default: human-friendly summary)\n\n")
		fmt.Fprintf(os.Stderr, "Available tools:\n  %s\n", strings.Join(srv.ToolNames(), "\n  "))
		return 0
	}

	toolName := positional[0]

	var argsJSON json.RawMessage
	if len(positional) > 1 {
		argsJSON = json.RawMessage(positional[1])
	}

	result, err := srv.CallTool(context.Background(), toolName, argsJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var text string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text = tc.Text
			break
		}
	}

	if result.IsError {
		fmt.Fprintf(os.Stderr, "error: %s\n", text)
		return 1
	}

	if raw {
		printRawJSON(text)
		return 0
	}

	printSummary(toolName, text)
	return 0
}

// printRawJSON pretty-prints JSON text to stdout.
func printRawJSON(text string) {
	var buf json.RawMessage
	if json.Unmarshal([]byte(text), &buf) == nil {
		if pretty, err := json.MarshalIndent(buf, "", "  "); err == nil {
			fmt.Println(string(pretty))
			return
		}
	}
	fmt.Println(text)
}

// printSummary prints a human-friendly summary of a tool result.
func printSummary(toolName, text string) {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		fmt.Println(text)
		return
	}

	switch toolName {
	case "analyze":
		fmt.Printf("analyzed %s as %s\n", data["doc_id"], data["language"])
	case "classify":
		printClassifySummary(data)
	case "direct_references":
		printReferencesSummary(data)
	case "symbols":
		printSymbolsSummary(data)
	case "close":
		fmt.Printf("closed %s\n", data["doc_id"])
	case "scan_repository":
		printScanSummary(data)
	default:
		printRawJSON(text)
	}
}

func printClassifySummary(data map[string]any) {
	kind, _ := data["kind"].(string)
	switch kind {
	case "DirectReference":
		fmt.Printf("DirectReference(%s)\n", data["var_name"])
	case "SymbolDeclaration", "Usage":
		origin, _ := data["origin"].(map[string]any)
		fmt.Printf("%s(symbol=%v, origin=%s)\n", kind, data["symbol_id"], originSummary(origin))
	default:
		fmt.Println("None")
	}
}

func originSummary(origin map[string]any) string {
	kind, _ := origin["kind"].(string)
	switch kind {
	case "EnvVar":
		return fmt.Sprintf("EnvVar(%v)", origin["name"])
	case "DestructuredProperty":
		return fmt.Sprintf("DestructuredProperty(%v)", origin["key"])
	default:
		return kind
	}
}

func printReferencesSummary(data map[string]any) {
	total := jsonInt(data["total"])
	refs, _ := data["references"].([]any)
	fmt.Printf("%d direct reference(s)\n", total)
	for _, r := range refs {
		if m, ok := r.(map[string]any); ok {
			fmt.Printf("  %v\n", m["var_name"])
		}
	}
}

func printSymbolsSummary(data map[string]any) {
	total := jsonInt(data["total"])
	syms, _ := data["symbols"].([]any)
	fmt.Printf("%d symbol(s)\n", total)
	for _, sy := range syms {
		if m, ok := sy.(map[string]any); ok {
			origin, _ := m["resolved"].(map[string]any)
			fmt.Printf("  %v -> %s\n", m["name"], originSummary(origin))
		}
	}
}

func printScanSummary(data map[string]any) {
	fmt.Printf("scanned %v: %v analyzed, %v failed (of %v)\n",
		data["repo_path"], data["analyzed"], data["failed"], data["total"])
}

func jsonInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
