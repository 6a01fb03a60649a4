package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/queryengine"
)

// passBindings is pass 3: for every assignment-shaped node with a plain
// identifier target, it interns a Symbol and classifies an immediate
// Origin from the source expression's shape:
//
//   - the source is itself a recognized env access (call or member) -> EnvVar
//   - the source's text is a bare EnvContainerTokens reference -> EnvObject
//   - the source takes a property/subscript off an identifier naming an
//     already-interned symbol -> DestructuredProperty (and, when that
//     symbol is the env container, the access site is also recorded as a
//     direct EnvReference)
//   - the source is a plain identifier naming an already-interned symbol -> Alias
//   - the source is an identifier not yet interned (forward/hoisted use) ->
//     recorded as a pendingAlias for passOrigins to retry
//   - anything else -> Unresolved
//
// A target that is itself a destructure pattern is skipped here; passOrigins
// handles those. Interning a new symbol also narrows the validity window of
// whatever symbol previously held (scope, name) live in the same scope,
// which is what gives reassignment its effect on resolution.
func (p *Pipeline) passBindings(g *graph.Graph, spec *lang.LanguageSpec, root *tree_sitter.Node, source []byte, st *state) error {
	captures, err := p.queries.Run(spec.Language, queryengine.CategoryBindings, root, source)
	if err != nil {
		return err
	}
	for _, c := range captures {
		node := c.Node
		if !assignmentRebinds(node, source) {
			continue
		}
		target := bindingTarget(node, spec)
		if target == nil {
			continue
		}
		if contains(spec.DestructureNodeTypes, target.Kind()) {
			continue // left to passOrigins
		}
		name := nodeText(target, source)
		if name == "" || target.Kind() != spec.IdentifierNodeType {
			continue
		}

		scope := g.ScopeAt(uint32(target.StartByte()))
		src := bindingSource(node, target, spec)
		origin := classifyBindingOrigin(g, spec, src, scope, source)

		closeShadowed(g, name, scope, uint32(target.StartByte()))
		symbol := g.InternSymbol(name, scope, spanOf(target), origin)
		if origin.Kind == graph.OriginUnresolved {
			if srcName, ok := identifierSourceName(src, spec, source); ok && srcName != name {
				st.pendingAliases = append(st.pendingAliases, pendingAlias{symbol: symbol, sourceName: srcName, scope: scope})
			}
		}
	}
	return nil
}

// closeShadowed narrows the validity window of the symbol previously live
// for (scope, name), but only when it was declared in the same scope: a
// binding in an inner scope shadows an outer one without ending it.
func closeShadowed(g *graph.Graph, name string, scope graph.ScopeID, atByte uint32) {
	prior, ok := g.LookupSymbol(name, scope, atByte)
	if !ok || g.Symbol(prior).Scope != scope {
		return
	}
	g.CloseValidity(prior, atByte)
}

// classifyBindingOrigin inspects a binding's source expression and returns
// the Origin its target symbol should carry at bind time. src may be nil
// for bare declarations.
func classifyBindingOrigin(g *graph.Graph, spec *lang.LanguageSpec, src *tree_sitter.Node, scope graph.ScopeID, source []byte) graph.Origin {
	if src == nil {
		return graph.UnresolvedOrigin
	}
	src = unwrapWrappers(src)
	src = unwrapTransparent(src, spec, source)

	if ref, ok := envCallReference(src, spec, source); ok {
		return graph.EnvVar(ref.VarName)
	}
	if ref, ok := envMemberReference(src, spec, source); ok {
		return graph.EnvVar(ref.VarName)
	}
	if contains(spec.EnvContainerTokens, nodeText(src, source)) {
		return graph.EnvObject()
	}
	if origin, ok := symbolMemberOrigin(g, spec, src, scope, source); ok {
		return origin
	}
	if src.Kind() == spec.IdentifierNodeType {
		name := nodeText(src, source)
		if sym, ok := g.LookupSymbol(name, scope, uint32(src.StartByte())); ok {
			return graph.AliasOf(sym)
		}
		return graph.UnresolvedOrigin
	}
	return graph.UnresolvedOrigin
}

// symbolMemberOrigin classifies `cfg.KEY` / `env["KEY"]` sources where the
// base is a local symbol rather than the env container itself. The target
// gets a DestructuredProperty origin hopping through that symbol; when the
// symbol already resolves to the env container, the access site is also a
// direct reference in its own right, recorded for highlighting exactly as
// a pass-2 match would be.
func symbolMemberOrigin(g *graph.Graph, spec *lang.LanguageSpec, src *tree_sitter.Node, scope graph.ScopeID, source []byte) (graph.Origin, bool) {
	if !contains(spec.MemberAccessNodeTypes, src.Kind()) {
		return graph.Origin{}, false
	}
	obj, prop := memberParts(src)
	if obj == nil || prop == nil || obj.Kind() != spec.IdentifierNodeType {
		return graph.Origin{}, false
	}
	sym, ok := g.LookupSymbol(nodeText(obj, source), scope, uint32(obj.StartByte()))
	if !ok {
		return graph.Origin{}, false
	}
	key := trimBrackets(nodeText(prop, source))
	if key == "" {
		return graph.Origin{}, false
	}
	if g.ResolveOrigin(sym).Kind == graph.OriginEnvObject {
		g.AddReference(graph.EnvReference{
			VarName:    key,
			NameSpan:   spanOf(prop),
			AccessSpan: spanOf(src),
			Scope:      scope,
		})
	}
	return graph.DestructuredProperty(sym, key, ""), true
}

// identifierSourceName returns the source expression's text when it is a
// bare identifier, for pendingAlias bookkeeping.
func identifierSourceName(src *tree_sitter.Node, spec *lang.LanguageSpec, source []byte) (string, bool) {
	src = unwrapWrappers(src)
	if src == nil || src.Kind() != spec.IdentifierNodeType {
		return "", false
	}
	return nodeText(src, source), true
}
