package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/queryengine"
)

// passOrigins is pass 4: it resolves the two origin shapes passBindings
// couldn't settle inline. First, destructure patterns (`const { KEY } =
// process.env`, `key, = os.environ...`): each bound property becomes its own
// Symbol with a DestructuredProperty origin pointing at the source object's
// symbol, synthesizing an anonymous EnvObject symbol when the source is a
// bare env-container expression rather than a named variable. Second, it
// retries every pendingAlias passBindings deferred because its source
// identifier wasn't interned yet at bind time — true for forward references
// in hoisting-friendly languages.
func (p *Pipeline) passOrigins(g *graph.Graph, spec *lang.LanguageSpec, root *tree_sitter.Node, source []byte, st *state) error {
	captures, err := p.queries.Run(spec.Language, queryengine.CategoryDestructures, root, source)
	if err != nil {
		return err
	}
	for _, c := range captures {
		pattern := c.Node
		parent := pattern.Parent()
		if parent == nil {
			continue
		}
		scope := g.ScopeAt(uint32(pattern.StartByte()))
		srcSymbol, ok := resolveDestructureSource(g, spec, parent, pattern, scope, source)
		if !ok {
			continue
		}
		internDestructuredProperties(g, pattern, scope, srcSymbol, source)
	}

	for _, pa := range st.pendingAliases {
		if sym, ok := g.LookupSymbolAny(pa.sourceName, pa.scope); ok && sym != pa.symbol {
			g.SetOrigin(pa.symbol, graph.AliasOf(sym))
		}
	}
	return nil
}

func resolveDestructureSource(g *graph.Graph, spec *lang.LanguageSpec, assignment, pattern *tree_sitter.Node, scope graph.ScopeID, source []byte) (graph.SymbolID, bool) {
	src := bindingSource(assignment, pattern, spec)
	if src == nil {
		return 0, false
	}
	src = unwrapWrappers(src)
	if contains(spec.EnvContainerTokens, nodeText(src, source)) {
		return g.InternSymbol("<env>", scope, spanOf(src), graph.EnvObject()), true
	}
	if src.Kind() == spec.IdentifierNodeType {
		name := nodeText(src, source)
		if sym, ok := g.LookupSymbol(name, scope, uint32(src.StartByte())); ok {
			return sym, true
		}
	}
	return 0, false
}

var destructureKeyFields = []string{"key"}
var destructureValueFields = []string{"value", "left"}
var destructureDefaultFields = []string{"default", "right", "value_pattern"}

// internDestructuredProperties walks a pattern's named children, treating
// each as one destructured binding. Grammars vary on whether a property is
// `key: value` (object pattern pair), `{name}` shorthand, a `{name = dflt}`
// assignment pattern, or a bare identifier (array pattern element); all
// resolve to a bind name and a key name, falling back to bindName when no
// explicit key field exists.
func internDestructuredProperties(g *graph.Graph, pattern *tree_sitter.Node, scope graph.ScopeID, srcSymbol graph.SymbolID, source []byte) {
	for i := uint(0); i < pattern.NamedChildCount(); i++ {
		child := pattern.NamedChild(i)
		if child == nil {
			continue
		}
		keyNode := fieldOrNil(child, destructureKeyFields)
		valueNode := fieldOrNil(child, destructureValueFields)
		defaultNode := fieldOrNil(child, destructureDefaultFields)

		var bindNode *tree_sitter.Node
		var keyName string
		if valueNode != nil {
			bindNode = valueNode
			if keyNode != nil {
				keyName = nodeText(keyNode, source)
			} else {
				keyName = nodeText(valueNode, source)
			}
		} else {
			bindNode = child
			keyName = nodeText(child, source)
		}

		bindName := nodeText(bindNode, source)
		if bindName == "" {
			continue
		}
		defaultText := ""
		if defaultNode != nil {
			defaultText = nodeText(defaultNode, source)
		}
		closeShadowed(g, bindName, scope, uint32(bindNode.StartByte()))
		g.InternSymbol(bindName, scope, spanOf(bindNode), graph.DestructuredProperty(srcSymbol, keyName, defaultText))
	}
}
