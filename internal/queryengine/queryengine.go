// Package queryengine pools parsers' query cursors and executes the six
// named pattern-query categories against a parsed syntax tree, streaming
// capture groups to the Analysis Pipeline. It performs no interpretation of
// what it matches — that is the pipeline's job.
package queryengine

import (
	"fmt"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/parser"
)

// Category names one of the six query categories from the grammar registry.
type Category int

const (
	CategoryScopes Category = iota
	CategoryReferences
	CategoryBindings
	CategoryAssignments
	CategoryDestructures
	CategoryReassignments
)

func (c Category) String() string {
	switch c {
	case CategoryScopes:
		return "scopes"
	case CategoryReferences:
		return "references"
	case CategoryBindings:
		return "bindings"
	case CategoryAssignments:
		return "assignments"
	case CategoryDestructures:
		return "destructures"
	case CategoryReassignments:
		return "reassignments"
	default:
		return "unknown"
	}
}

// captureName is the label the compiled query attaches to its matches.
// Pass logic keys off Category, not this string; it only makes compiled
// query text self-describing when dumped for debugging.
func (c Category) captureName() string {
	switch c {
	case CategoryScopes:
		return "scope_node"
	case CategoryReferences:
		return "env_access"
	case CategoryBindings:
		return "env_binding"
	case CategoryAssignments:
		return "assignment_node"
	case CategoryDestructures:
		return "destructure_node"
	case CategoryReassignments:
		return "reassignment_node"
	default:
		return "capture"
	}
}

// nodeTypes selects the descriptor's node-kind vocabulary this category
// matches against. bindings/assignments/reassignments all watch the same
// AssignmentNodeTypes shape — they differ in which facet of the matched
// node the pipeline pass inspects, not in what the query matches.
func (c Category) nodeTypes(spec *lang.LanguageSpec) []string {
	switch c {
	case CategoryScopes:
		return concat(spec.FunctionNodeTypes, spec.ClassNodeTypes, spec.ModuleNodeTypes, spec.ScopeNodeTypes)
	case CategoryReferences:
		return concat(spec.CallNodeTypes, spec.MemberAccessNodeTypes)
	case CategoryBindings, CategoryAssignments:
		return spec.AssignmentNodeTypes
	case CategoryReassignments:
		return spec.Reassignments()
	case CategoryDestructures:
		return spec.DestructureNodeTypes
	default:
		return nil
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Capture is one match streamed out of a query run: a node plus the
// category it was matched under. The pipeline re-derives byte spans and
// semantics from Node itself.
type Capture struct {
	Category Category
	Node     *tree_sitter.Node
}

type queryKey struct {
	language lang.Language
	category Category
}

// Engine compiles each (language, category) query once and pools query
// cursors per language. The zero value is not usable; construct with New.
type Engine struct {
	mu          sync.Mutex
	queries     map[queryKey]*tree_sitter.Query
	absent      map[queryKey]bool // category has no node types for this language
	cursorPools map[lang.Language]*sync.Pool
}

// New creates an Engine with empty query and cursor caches.
func New() *Engine {
	return &Engine{
		queries:     make(map[queryKey]*tree_sitter.Query),
		absent:      make(map[queryKey]bool),
		cursorPools: make(map[lang.Language]*sync.Pool),
	}
}

// Run executes one query category over root and returns its captures in
// tree order. Returns (nil, nil) when the language descriptor has no node
// types registered for this category (e.g. a language with no
// DestructureNodeTypes) — that is not an error, just an empty stream.
func (e *Engine) Run(l lang.Language, category Category, root *tree_sitter.Node, source []byte) ([]Capture, error) {
	if root == nil {
		return nil, nil
	}
	spec := lang.ForLanguage(l)
	if spec == nil {
		return nil, fmt.Errorf("queryengine: unregistered language %q", l)
	}

	q, err := e.compiledQuery(l, category, spec)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, nil
	}

	cursor := e.acquireCursor(l)
	defer e.releaseCursor(l, cursor)

	var out []Capture
	matches := cursor.Captures(q, root, source)
	for {
		match, idx := matches.Next()
		if match == nil {
			break
		}
		if int(idx) >= len(match.Captures) {
			continue
		}
		node := match.Captures[idx].Node
		out = append(out, Capture{Category: category, Node: &node})
	}
	return out, nil
}

func (e *Engine) compiledQuery(l lang.Language, category Category, spec *lang.LanguageSpec) (*tree_sitter.Query, error) {
	key := queryKey{language: l, category: category}

	e.mu.Lock()
	if q, ok := e.queries[key]; ok {
		e.mu.Unlock()
		return q, nil
	}
	if e.absent[key] {
		e.mu.Unlock()
		return nil, nil
	}
	e.mu.Unlock()

	types := dedup(category.nodeTypes(spec))
	if len(types) == 0 {
		e.mu.Lock()
		e.absent[key] = true
		e.mu.Unlock()
		return nil, nil
	}

	tsLang, err := parser.GetLanguage(l)
	if err != nil {
		return nil, fmt.Errorf("queryengine: %w", err)
	}

	src := buildQuerySource(types, category.captureName())
	q, qErr := tree_sitter.NewQuery(tsLang, src)
	if qErr != nil {
		return nil, fmt.Errorf("queryengine: compile %s/%s: %w", l, category, qErr)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if existing, ok := e.queries[key]; ok {
		q.Close()
		return existing, nil
	}
	e.queries[key] = q
	return q, nil
}

// buildQuerySource renders an alternation-of-node-kinds pattern, e.g.
// `[(call_expression) (member_expression)] @env_access`.
func buildQuerySource(nodeTypes []string, capture string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range nodeTypes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		b.WriteString(t)
		b.WriteByte(')')
	}
	b.WriteString("] @")
	b.WriteString(capture)
	return b.String()
}

func dedup(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// acquireCursor gets a pooled QueryCursor for l, constructing a fresh one
// (and, implicitly, a fresh pool) on first use or on pool exhaustion via
// sync.Pool's New hook.
func (e *Engine) acquireCursor(l lang.Language) *tree_sitter.QueryCursor {
	e.mu.Lock()
	pool, ok := e.cursorPools[l]
	if !ok {
		pool = &sync.Pool{New: func() any { return tree_sitter.NewQueryCursor() }}
		e.cursorPools[l] = pool
	}
	e.mu.Unlock()
	return pool.Get().(*tree_sitter.QueryCursor)
}

func (e *Engine) releaseCursor(l lang.Language, cursor *tree_sitter.QueryCursor) {
	e.mu.Lock()
	pool := e.cursorPools[l]
	e.mu.Unlock()
	if pool != nil {
		pool.Put(cursor)
	}
}

// Close releases every compiled query. Call once at process shutdown;
// queries are otherwise cached for the engine's lifetime.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, q := range e.queries {
		q.Close()
	}
	e.queries = make(map[queryKey]*tree_sitter.Query)
}
