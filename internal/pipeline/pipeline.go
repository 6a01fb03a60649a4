// Package pipeline executes the six ordered analysis passes that turn a
// parsed document into a populated Binding Graph: scope extraction, direct
// references, bindings, alias/destructure origin resolution, usages, and
// reassignment invalidation. Each pass reads the tree and prior passes'
// output; later passes never invalidate earlier results.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/parser"
	"github.com/DeusData/envscope/internal/queryengine"
)

// Pipeline runs the six analysis passes for one document revision against
// a shared query engine. A single Pipeline is safe to reuse across
// documents and goroutines: it carries no per-document state.
type Pipeline struct {
	queries  *queryengine.Engine
	MaxDepth int // alias/destructure chain depth bound, forwarded to graph.New
}

// New creates a Pipeline backed by its own query engine. maxDepth bounds
// alias/destructure chain walks (0 uses the graph package default of 32).
func New(maxDepth int) *Pipeline {
	return &Pipeline{queries: queryengine.New(), MaxDepth: maxDepth}
}

// Analyze parses source as language l and runs all six passes, returning a
// frozen Binding Graph. A MalformedSource condition (parser error nodes) is
// not a failure: patterns simply fail to match inside error subtrees, and a
// best-effort partial graph is still returned.
func (p *Pipeline) Analyze(ctx context.Context, source []byte, l lang.Language) (*graph.Graph, error) {
	spec := lang.ForLanguage(l)
	if spec == nil {
		return nil, fmt.Errorf("pipeline: %w: %s", ErrUnregisteredLanguage, l)
	}

	tree, err := parser.Parse(l, source)
	if err != nil {
		return nil, fmt.Errorf("pipeline: parse: %w", err)
	}
	defer tree.Close()

	g := graph.New(uint32(len(source)), p.MaxDepth)
	root := tree.RootNode()
	st := &state{}

	passes := []struct {
		name string
		run  func() error
	}{
		{"scopes", func() error { return p.passScopes(g, spec, root, source) }},
		{"references", func() error { return p.passReferences(g, spec, root, source) }},
		{"bindings", func() error { return p.passBindings(g, spec, root, source, st) }},
		{"origins", func() error { return p.passOrigins(g, spec, root, source, st) }},
		{"usages", func() error { return p.passUsages(g, spec, root, source) }},
		{"reassignments", func() error { return p.passReassignments(g, spec, root, source) }},
	}

	for _, pass := range passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := time.Now()
		runErr := runPass(pass.name, l, pass.run)
		slog.Info("pass.timing", "pass", pass.name, "lang", l, "elapsed", time.Since(t))
		if runErr != nil {
			return nil, fmt.Errorf("pipeline: pass %s: %w", pass.name, runErr)
		}
	}

	g.Freeze()
	return g, nil
}

// runPass executes one pass, converting a panic from the graph's internal
// invariant checks (e.g. mutation after Freeze) into an error. The failed
// analysis is reported and discarded without publication, so the
// document's prior revision stays visible instead of the worker crashing.
func runPass(name string, l lang.Language, run func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("graph.invariant_violation", "pass", name, "lang", l, "panic", r)
			err = fmt.Errorf("%w: %v", ErrInvariantViolation, r)
		}
	}()
	return run()
}

// fieldOrNil returns the first of node's children matching one of the
// candidate field names, or nil if none resolve.
func fieldOrNil(node *tree_sitter.Node, candidates []string) *tree_sitter.Node {
	for _, f := range candidates {
		if child := node.ChildByFieldName(f); child != nil {
			return child
		}
	}
	return nil
}

// spanOf converts a tree-sitter node's byte range into a graph.Span.
func spanOf(node *tree_sitter.Node) graph.Span {
	return graph.Span{Start: uint32(node.StartByte()), End: uint32(node.EndByte())}
}

// pendingAlias records an identifier-source binding whose source symbol
// wasn't yet interned when passBindings visited it (a forward or hoisted
// reference). passOrigins retries these once every declaration in the
// document has been interned.
type pendingAlias struct {
	symbol     graph.SymbolID
	sourceName string
	scope      graph.ScopeID
}

// state carries bookkeeping shared across passes within a single Analyze
// call. It never survives past one document revision.
type state struct {
	pendingAliases []pendingAlias
}
