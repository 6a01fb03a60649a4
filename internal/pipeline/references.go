package pipeline

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/queryengine"
)

// passReferences is pass 2: it finds every direct read of an environment
// variable — a call to a registered EnvAccessFunctions callee, or a member/
// subscript access rooted at an EnvAccessMemberPatterns container — and
// records it as a graph.EnvReference. This pass never touches symbols; a
// direct reference exists whether or not its result is ever assigned.
func (p *Pipeline) passReferences(g *graph.Graph, spec *lang.LanguageSpec, root *tree_sitter.Node, source []byte) error {
	captures, err := p.queries.Run(spec.Language, queryengine.CategoryReferences, root, source)
	if err != nil {
		return err
	}
	for _, c := range captures {
		node := c.Node
		if ref, ok := envCallReference(node, spec, source); ok {
			ref.Scope = g.ScopeAt(ref.AccessSpan.Start)
			g.AddReference(ref)
			continue
		}
		if ref, ok := envMemberReference(node, spec, source); ok {
			ref.Scope = g.ScopeAt(ref.AccessSpan.Start)
			g.AddReference(ref)
		}
	}
	return nil
}

// envCallReference recognizes os.Getenv("KEY")-shaped direct accesses: a
// call node whose callee matches one of EnvAccessFunctions and whose first
// argument carries the var name. The callee is matched by its field-named
// node where the grammar provides one; grammars that split the callee
// across several nodes (Java's method_invocation, Ruby and Kotlin calls,
// Bash commands) match by text prefix instead.
func envCallReference(node *tree_sitter.Node, spec *lang.LanguageSpec, source []byte) (graph.EnvReference, bool) {
	if len(spec.EnvAccessFunctions) == 0 {
		return graph.EnvReference{}, false
	}
	matched, calleeEnd := callMatches(node, spec, source)
	if !matched {
		return graph.EnvReference{}, false
	}
	arg := callNameArgument(node, spec, calleeEnd)
	if arg == nil {
		return graph.EnvReference{}, false
	}
	name := stripQuotes(nodeText(arg, source))
	if name == "" {
		return graph.EnvReference{}, false
	}
	return graph.EnvReference{
		VarName:    name,
		NameSpan:   spanOf(arg),
		AccessSpan: spanOf(node),
	}, true
}

// callMatches reports whether node is a call to one of the descriptor's
// env-access functions, and where the callee text ends. When the grammar
// field-names a callee, that node's text is authoritative: falling back to
// a text-prefix match there would re-match an outer wrapper call (Rust's
// `std::env::var("X").unwrap()` starts with `std::env::var(` too) and
// record a bogus second reference. The prefix fallback runs only for
// grammars with no callee field at all.
func callMatches(node *tree_sitter.Node, spec *lang.LanguageSpec, source []byte) (bool, uint32) {
	if callee := fieldOrNil(node, []string{spec.Callee()}); callee != nil {
		if contains(spec.EnvAccessFunctions, nodeText(callee, source)) {
			return true, uint32(callee.EndByte())
		}
		return false, 0
	}
	if callee := node.Child(0); callee != nil && contains(spec.EnvAccessFunctions, nodeText(callee, source)) {
		return true, uint32(callee.EndByte())
	}

	text := nodeText(node, source)
	for _, fn := range spec.EnvAccessFunctions {
		if len(text) <= len(fn) || !strings.HasPrefix(text, fn) {
			continue
		}
		switch text[len(fn)] {
		case '(', ' ', '\t':
			return true, uint32(node.StartByte()) + uint32(len(fn))
		}
	}
	return false, 0
}

// callNameArgument locates the node holding a matched call's first
// argument: the arguments field's first named child, the arguments field
// itself when it is a bare token (Bash's word), or — for grammars with no
// arguments field at all — the first string literal after the callee.
func callNameArgument(node *tree_sitter.Node, spec *lang.LanguageSpec, calleeEnd uint32) *tree_sitter.Node {
	args := fieldOrNil(node, []string{spec.Arguments()})
	if arg := firstNamedChild(args); arg != nil {
		return arg
	}
	if args != nil {
		return args
	}
	return firstStringAfter(node, calleeEnd)
}

// envMemberReference recognizes process.env.KEY / ENV["KEY"]-shaped direct
// accesses: a member or subscript node whose base expression's text matches
// one of EnvAccessMemberPatterns.
func envMemberReference(node *tree_sitter.Node, spec *lang.LanguageSpec, source []byte) (graph.EnvReference, bool) {
	if len(spec.EnvAccessMemberPatterns) == 0 {
		return graph.EnvReference{}, false
	}
	obj, prop := memberParts(node)
	if obj == nil || prop == nil {
		return graph.EnvReference{}, false
	}
	if !contains(spec.EnvAccessMemberPatterns, nodeText(obj, source)) {
		return graph.EnvReference{}, false
	}
	name := trimBrackets(nodeText(prop, source))
	if name == "" {
		return graph.EnvReference{}, false
	}
	return graph.EnvReference{
		VarName:    name,
		NameSpan:   spanOf(prop),
		AccessSpan: spanOf(node),
	}, true
}
