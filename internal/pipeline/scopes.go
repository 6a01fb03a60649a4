package pipeline

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/queryengine"
)

// passScopes is pass 1: it walks the tree for every function/class/module/
// block-like node and interns a graph.Scope for it, nesting each new scope
// under the narrowest already-interned scope that contains it. The query
// engine streams captures in tree order, so an outer scope is always
// interned before the inner scopes it contains.
func (p *Pipeline) passScopes(g *graph.Graph, spec *lang.LanguageSpec, root *tree_sitter.Node, source []byte) error {
	captures, err := p.queries.Run(spec.Language, queryengine.CategoryScopes, root, source)
	if err != nil {
		return err
	}
	for _, c := range captures {
		node := c.Node
		var kind graph.ScopeKind
		if node.Kind() == "call" && contains(spec.FunctionNodeTypes, "call") {
			// Homoiconic grammars (Elixir) use "call" for definition and
			// control forms alike; only the macro target's name says which.
			var ok bool
			kind, ok = classifyCallScope(node, spec, source)
			if !ok {
				continue // an ordinary function call, not a scope
			}
		} else {
			kind = classifyScope(node.Kind(), spec)
		}
		parent := g.ScopeAt(uint32(node.StartByte()))
		g.InternScope(parent, spanOf(node), kind)
	}
	return nil
}

// classifyCallScope maps a call node's target name to the scope kind its
// macro introduces. Calls whose target is not a known definition or
// control form create no scope.
func classifyCallScope(node *tree_sitter.Node, spec *lang.LanguageSpec, source []byte) (graph.ScopeKind, bool) {
	target := fieldOrNil(node, []string{spec.Callee()})
	if target == nil {
		return 0, false
	}
	switch nodeText(target, source) {
	case "def", "defp", "defmacro", "defmacrop", "defimpl", "fn":
		return graph.ScopeFunction, true
	case "defmodule", "defprotocol":
		return graph.ScopeClass, true
	case "if", "unless", "case", "cond":
		return graph.ScopeConditional, true
	case "for":
		return graph.ScopeLoop, true
	case "with":
		return graph.ScopeWith, true
	case "try", "receive":
		return graph.ScopeTry, true
	default:
		return 0, false
	}
}

// classifyScope maps a matched node's grammar kind to a graph.ScopeKind.
// Function/class/module membership is exact (the descriptor lists name
// these node kinds directly); everything else falls into ScopeNodeTypes and
// is classified by substring, since tree-sitter grammars name blocks, loops
// and conditionals descriptively and consistently across languages.
func classifyScope(kind string, spec *lang.LanguageSpec) graph.ScopeKind {
	switch {
	case contains(spec.FunctionNodeTypes, kind):
		return graph.ScopeFunction
	case contains(spec.ClassNodeTypes, kind):
		return graph.ScopeClass
	case contains(spec.ModuleNodeTypes, kind):
		return graph.ScopeModule
	}

	lower := strings.ToLower(kind)
	switch {
	case strings.Contains(lower, "try"):
		return graph.ScopeTry
	case strings.Contains(lower, "catch"), strings.Contains(lower, "except"), strings.Contains(lower, "rescue"):
		return graph.ScopeCatch
	case strings.Contains(lower, "with"), strings.Contains(lower, "using"):
		return graph.ScopeWith
	case strings.Contains(lower, "for"), strings.Contains(lower, "while"), strings.Contains(lower, "loop"), strings.Contains(lower, "repeat"), strings.Contains(lower, "until"):
		return graph.ScopeLoop
	case strings.Contains(lower, "if"), strings.Contains(lower, "unless"), strings.Contains(lower, "match"), strings.Contains(lower, "when"), strings.Contains(lower, "switch"), strings.Contains(lower, "case"), strings.Contains(lower, "conditional"), strings.Contains(lower, "ternary"):
		return graph.ScopeConditional
	default:
		return graph.ScopeBlock
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
