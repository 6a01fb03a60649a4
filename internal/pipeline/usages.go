package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/parser"
)

// passUsages is pass 5: it walks every identifier token in the tree and,
// for each one that names a live symbol at that position, records a
// graph.Usage. Three occurrence shapes are excluded: declaration sites
// (already recorded as symbols by passes 3 and 4), the env container's own
// tokens (`os`/`environ` inside `os.environ` are not usages of a local
// symbol), and name tokens inside an already-recorded direct reference.
// Usages do not create symbols.
func (p *Pipeline) passUsages(g *graph.Graph, spec *lang.LanguageSpec, root *tree_sitter.Node, source []byte) error {
	declared := make(map[graph.Span]bool, len(g.Symbols()))
	for _, s := range g.Symbols() {
		declared[s.DeclSpan] = true
	}
	refs := g.References()

	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if node.Kind() != spec.IdentifierNodeType {
			return true
		}
		sp := spanOf(node)
		if declared[sp] || insideReferenceName(refs, sp) {
			return true
		}
		name := nodeText(node, source)
		if name == "" || isEnvRootToken(node, spec, name, source) {
			return true
		}
		scope := g.ScopeAt(sp.Start)
		if sym, ok := g.LookupSymbol(name, scope, sp.Start); ok {
			g.AddUsage(graph.Usage{Symbol: sym, Span: sp})
		}
		return true
	})
	return nil
}

// isEnvRootToken reports whether an identifier occurrence is part of the
// language's env container expression — either the container token itself
// or a component of it (the `os` and `environ` of `os.environ`).
func isEnvRootToken(node *tree_sitter.Node, spec *lang.LanguageSpec, name string, source []byte) bool {
	if contains(spec.EnvContainerTokens, name) {
		return true
	}
	parent := node.Parent()
	return parent != nil && contains(spec.EnvContainerTokens, nodeText(parent, source))
}

// insideReferenceName reports whether span falls within the name token of
// any recorded direct reference.
func insideReferenceName(refs []graph.EnvReference, sp graph.Span) bool {
	for _, r := range refs {
		if sp.Start >= r.NameSpan.Start && sp.End <= r.NameSpan.End {
			return true
		}
	}
	return false
}
