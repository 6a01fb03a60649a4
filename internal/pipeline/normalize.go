package pipeline

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/parser"
)

// nodeText is a local alias of parser.NodeText, kept short since every pass
// file calls it constantly.
func nodeText(node *tree_sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return parser.NodeText(node, source)
}

// stripQuotes trims one layer of matching string-literal delimiters (single,
// double, or backtick). Text without a matching pair, such as a Bash word or
// a member property name, is returned unchanged.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'' || first == '`') && first == last {
		return s[1 : len(s)-1]
	}
	return s
}

// firstNamedChild returns node's first named child, skipping anonymous
// tokens such as punctuation. Returns nil if node is nil or has none.
func firstNamedChild(node *tree_sitter.Node) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	if node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}

// lastNamedChild returns node's last named child. Used as a fallback when a
// grammar's field name for a member/property access doesn't match any of
// our candidate list.
func lastNamedChild(node *tree_sitter.Node) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	n := node.NamedChildCount()
	if n == 0 {
		return nil
	}
	return node.NamedChild(n - 1)
}

var objectFieldCandidates = []string{"object", "value", "receiver"}
var propertyFieldCandidates = []string{"property", "field", "attribute", "name", "index"}

// memberParts splits a member/subscript-access node into its base object
// expression and the trailing property/key node, trying the descriptor's
// usual field names before falling back to first/last named child.
func memberParts(node *tree_sitter.Node) (obj, prop *tree_sitter.Node) {
	obj = fieldOrNil(node, objectFieldCandidates)
	if obj == nil {
		obj = node.Child(0)
	}
	prop = fieldOrNil(node, propertyFieldCandidates)
	if prop == nil {
		prop = lastNamedChild(node)
	}
	return obj, prop
}

// trimBrackets strips the surrounding ['"x"'] or ["x"] subscript punctuation
// a computed member access's property node sometimes includes whole, when
// the query matched the subscript expression itself rather than its key.
func trimBrackets(s string) string {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return stripQuotes(strings.TrimSpace(s))
}

// wrapperNodeTypes are grammar nodes that add no meaning of their own
// around the single expression the passes actually care about: Go's
// expression_list around a := target, C's pointer declarator around the
// declared name, C#'s equals_value_clause around an initialiser, Bash's
// command substitution and variable expansions, Kotlin's inner
// variable_declaration, Lua's variable/expression lists.
var wrapperNodeTypes = map[string]bool{
	"expression_list":          true,
	"parenthesized_expression": true,
	"command_substitution":     true,
	"simple_expansion":         true,
	"expansion":                true,
	"equals_value_clause":      true,
	"variable_declaration":     true,
	"pointer_declarator":       true,
	"reference_declarator":     true,
	"variable_list":            true,
	"variable":                 true,
}

// unwrapWrappers descends through wrapper nodes to the expression they
// carry. A multi-element list (Go's `v, ok := ...`) descends to its first
// element: the positional convention every registry language with
// multi-assignment uses puts the value of interest first.
func unwrapWrappers(node *tree_sitter.Node) *tree_sitter.Node {
	for node != nil && wrapperNodeTypes[node.Kind()] {
		next := firstNamedChild(node)
		if next == nil {
			return node
		}
		node = next
	}
	return node
}

// assignEqPos finds the byte offset of an assignment node's "=" (or ":=")
// token, the anchor the field-less fallbacks below split target and source
// around. Anonymous tokens report their literal as Kind.
func assignEqPos(node *tree_sitter.Node) int64 {
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c == nil || c.IsNamed() {
			continue
		}
		switch c.Kind() {
		case "=", ":=":
			return int64(c.StartByte())
		}
	}
	return -1
}

// bindingTarget pulls the declared/assigned name node out of an
// assignment-shaped capture: the descriptor's target field when the grammar
// names one, otherwise the first named child left of the "=" token that is
// (or unwraps to) an identifier. A destructure-pattern target is returned
// as-is so the caller can leave it to the destructure pass.
func bindingTarget(node *tree_sitter.Node, spec *lang.LanguageSpec) *tree_sitter.Node {
	if t := fieldOrNil(node, spec.TargetFields()); t != nil {
		if contains(spec.DestructureNodeTypes, t.Kind()) {
			return t
		}
		return unwrapWrappers(t)
	}
	eq := assignEqPos(node)
	for i := uint(0); i < node.NamedChildCount(); i++ {
		c := node.NamedChild(i)
		if c == nil {
			continue
		}
		if eq >= 0 && int64(c.StartByte()) >= eq {
			break
		}
		if contains(spec.DestructureNodeTypes, c.Kind()) {
			return c
		}
		if u := unwrapWrappers(c); u != nil && u.Kind() == spec.IdentifierNodeType {
			return u
		}
	}
	return nil
}

// bindingSource pulls the initialiser/right-hand expression out of an
// assignment-shaped capture, falling back to the last named child for
// grammars without a value field. Returns nil when the node has no source
// distinct from the target (a bare declaration).
func bindingSource(node, target *tree_sitter.Node, spec *lang.LanguageSpec) *tree_sitter.Node {
	src := fieldOrNil(node, spec.SourceFields())
	if src == nil {
		src = lastNamedChild(node)
		if src != nil {
			if eq := assignEqPos(node); eq >= 0 && int64(src.StartByte()) < eq {
				return nil
			}
		}
	}
	if src == nil {
		return nil
	}
	if target != nil && src.StartByte() <= target.StartByte() && src.EndByte() >= target.EndByte() {
		return nil
	}
	return src
}

// isBindingOperator reports whether an assignment node's operator token
// (re)binds its target. Filters out the comparison and pipeline operators
// that share the binary_operator node kind in Elixir, while letting
// augmented assignments (`+=`) through: they invalidate a binding even
// though their result is never env-derived.
func isBindingOperator(op string) bool {
	switch op {
	case "=", ":=":
		return true
	case "==", "!=", "<=", ">=", "===", "!==", "=~", "<>":
		return false
	}
	return strings.HasSuffix(op, "=")
}

// assignmentRebinds checks a capture's operator token (field-named where
// the grammar provides one, the first anonymous child of a binary_operator
// otherwise) against isBindingOperator. Captures with no operator token at
// all — declarator shapes like `const x = v` — always rebind.
func assignmentRebinds(node *tree_sitter.Node, source []byte) bool {
	op := node.ChildByFieldName("operator")
	if op == nil && node.Kind() == "binary_operator" {
		for i := uint(0); i < node.ChildCount(); i++ {
			c := node.Child(i)
			if c != nil && !c.IsNamed() {
				op = c
				break
			}
		}
	}
	if op == nil {
		return true
	}
	return isBindingOperator(nodeText(op, source))
}

// firstStringAfter finds the first string-literal node starting at or past
// the given byte offset — the argument-extraction fallback for grammars
// whose call nodes carry no arguments field (Kotlin, Elixir, Zig).
func firstStringAfter(node *tree_sitter.Node, after uint32) *tree_sitter.Node {
	var found *tree_sitter.Node
	parser.Walk(node, func(n *tree_sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsNamed() && uint32(n.StartByte()) >= after && strings.Contains(n.Kind(), "string") {
			found = n
			return false
		}
		return true
	})
	return found
}

// transparentMethodNames are combinator calls that don't change an
// expression's underlying meaning for origin classification: unwrapping a
// Result/Option or cheaply duplicating a value (`.unwrap()`, `.clone()`)
// still refers to whatever the receiver referred to.
var transparentMethodNames = map[string]bool{
	"unwrap": true, "expect": true, "unwrap_or": true,
	"unwrap_or_default": true, "unwrap_or_else": true, "ok": true,
	"clone": true, "to_owned": true, "to_string": true,
}

// unwrapTransparent peels a chain of transparent combinator calls off node
// (`std::env::var("DB").unwrap()` -> `std::env::var("DB")`) so bindings and
// references classification sees the expression that actually determines
// meaning, not its wrapper.
func unwrapTransparent(node *tree_sitter.Node, spec *lang.LanguageSpec, source []byte) *tree_sitter.Node {
	for node != nil && contains(spec.CallNodeTypes, node.Kind()) {
		callee := fieldOrNil(node, []string{spec.Callee()})
		if callee == nil {
			callee = node.Child(0)
		}
		if callee == nil || !contains(spec.MemberAccessNodeTypes, callee.Kind()) {
			break
		}
		obj, prop := memberParts(callee)
		if obj == nil || prop == nil || !transparentMethodNames[nodeText(prop, source)] {
			break
		}
		node = obj
	}
	return node
}
