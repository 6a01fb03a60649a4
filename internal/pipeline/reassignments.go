package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/queryengine"
)

// passReassignments is pass 6: passBindings already narrows a shadowed
// symbol's validity window the moment it interns a same-scope replacement,
// in tree order, so that passUsages (pass 5) sees correct windows. This
// pass closes what that can't: a reassignment without a declaration
// keyword whose name resolves to a symbol in an *enclosing* scope (`x = 1`
// inside a function reassigning a module-level `x`), and augmented
// assignments (`x += v`) that invalidate a binding without creating a
// symbol of their own. CloseValidity only narrows, so re-closing a window
// passBindings already ended is a no-op.
func (p *Pipeline) passReassignments(g *graph.Graph, spec *lang.LanguageSpec, root *tree_sitter.Node, source []byte) error {
	captures, err := p.queries.Run(spec.Language, queryengine.CategoryReassignments, root, source)
	if err != nil {
		return err
	}
	for _, c := range captures {
		node := c.Node
		if !assignmentRebinds(node, source) {
			continue
		}
		// An assignment wrapped in a declaration node (Lua's `local x = v`
		// around an assignment_statement) is a fresh binding, not a
		// reassignment of an enclosing symbol.
		if parent := node.Parent(); parent != nil &&
			contains(spec.AssignmentNodeTypes, parent.Kind()) && !contains(spec.Reassignments(), parent.Kind()) {
			continue
		}
		target := bindingTarget(node, spec)
		if target == nil || target.Kind() != spec.IdentifierNodeType {
			continue
		}
		name := nodeText(target, source)
		if name == "" {
			continue
		}
		at := uint32(target.StartByte())
		scope := g.ScopeAt(at)
		self := symbolDeclaredAt(g, scope, name, at)

		// A symbol interned for this very site shadows whatever it
		// replaced; search from the scope above it.
		search := scope
		if self >= 0 && g.Symbol(self).Scope == scope {
			if scope == graph.RootScopeID {
				continue
			}
			search = g.Scope(scope).Parent
		}
		if prior, ok := g.LookupSymbol(name, search, at); ok && prior != self {
			if g.Symbol(prior).DeclSpan.Start < at {
				g.CloseValidity(prior, at)
			}
		}
	}
	return nil
}

// symbolDeclaredAt returns the symbol passBindings interned for this exact
// declaration site, or -1, so passReassignments doesn't close the window
// of the symbol it is itself looking at.
func symbolDeclaredAt(g *graph.Graph, scope graph.ScopeID, name string, declStart uint32) graph.SymbolID {
	for _, sym := range g.Symbols() {
		if sym.Scope == scope && sym.Name == name && sym.DeclSpan.Start == declStart {
			return sym.ID
		}
	}
	return graph.SymbolID(-1)
}
