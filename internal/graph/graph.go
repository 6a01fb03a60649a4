// Package graph is the Binding Graph: an arena-backed scope tree and symbol
// table with stable integer handles, built once per document revision,
// frozen after construction, and read by position-based lookup.
package graph

import "fmt"

// ScopeID identifies a Scope within a single Graph.
type ScopeID int32

// SymbolID identifies a Symbol within a single Graph.
type SymbolID int32

// RootScopeID is the scope covering the whole document.
const RootScopeID ScopeID = 0

// noParent marks the root scope, which has no parent.
const noParent ScopeID = -1

// ScopeKind classifies the lexical construct that created a Scope.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeClass
	ScopeBlock
	ScopeLoop
	ScopeConditional
	ScopeTry
	ScopeCatch
	ScopeWith
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	case ScopeConditional:
		return "conditional"
	case ScopeTry:
		return "try"
	case ScopeCatch:
		return "catch"
	case ScopeWith:
		return "with"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) into the document source.
type Span struct {
	Start uint32
	End   uint32
}

// Contains reports whether byte offset b falls within the span.
func (s Span) Contains(b uint32) bool {
	return b >= s.Start && b < s.End
}

// Len returns the span's width in bytes.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Scope is a lexical region of the document.
type Scope struct {
	ID     ScopeID
	Parent ScopeID
	Span   Span
	Kind   ScopeKind
}

// OriginKind tags the variant held by an Origin.
type OriginKind uint8

const (
	OriginEnvVar OriginKind = iota
	OriginEnvObject
	OriginDestructuredProperty
	OriginAlias
	OriginUnresolved
)

func (k OriginKind) String() string {
	switch k {
	case OriginEnvVar:
		return "EnvVar"
	case OriginEnvObject:
		return "EnvObject"
	case OriginDestructuredProperty:
		return "DestructuredProperty"
	case OriginAlias:
		return "Alias"
	default:
		return "Unresolved"
	}
}

// Origin is the tagged variant describing what a Symbol ultimately means.
// Exactly one field set is meaningful, selected by Kind.
type Origin struct {
	Kind    OriginKind
	Name    string   // EnvVar: the env var name. DestructuredProperty: the key.
	Source  SymbolID // Alias, DestructuredProperty: the symbol this hops from.
	Default string   // DestructuredProperty: literal default text, diagnostic-only.
}

// EnvVar builds an Origin that resolves directly to an env var.
func EnvVar(name string) Origin { return Origin{Kind: OriginEnvVar, Name: name} }

// EnvObject builds an Origin that aliases the language's env container.
func EnvObject() Origin { return Origin{Kind: OriginEnvObject} }

// AliasOf builds an Origin that is a chain link to another symbol.
func AliasOf(source SymbolID) Origin { return Origin{Kind: OriginAlias, Source: source} }

// DestructuredProperty builds an Origin for a key pulled off another symbol.
// defaultText preserves a destructuring default's literal text for
// diagnostics only; it never affects resolution.
func DestructuredProperty(source SymbolID, key, defaultText string) Origin {
	return Origin{Kind: OriginDestructuredProperty, Source: source, Name: key, Default: defaultText}
}

// UnresolvedOrigin is the Origin of a symbol whose meaning isn't one of the
// recognised shapes.
var UnresolvedOrigin = Origin{Kind: OriginUnresolved}

// Symbol is a named local binding introduced at a declaration site.
type Symbol struct {
	ID       SymbolID
	Name     string
	Scope    ScopeID
	DeclSpan Span
	Origin   Origin

	// validFrom/validTo bound the byte range in which this symbol is the
	// live meaning of (Scope, Name). validTo starts at the declaring
	// scope's end and is narrowed by CloseValidity on reassignment.
	validFrom uint32
	validTo   uint32
}

// ValidSpan returns the symbol's validity window.
func (s Symbol) ValidSpan() Span { return Span{Start: s.validFrom, End: s.validTo} }

// IsLiveAt reports whether this symbol is the live binding for its
// (Scope, Name) pair at byte offset b.
func (s Symbol) IsLiveAt(b uint32) bool {
	return b >= s.validFrom && b < s.validTo
}

// EnvReference is a direct env-var access site.
type EnvReference struct {
	VarName    string
	NameSpan   Span // span of the name token itself
	AccessSpan Span // span of the whole access expression
	Scope      ScopeID
}

// Usage is an identifier occurrence resolved to a known symbol.
type Usage struct {
	Symbol SymbolID
	Span   Span
}

type scopeNameKey struct {
	scope ScopeID
	name  string
}

// Graph is the append-only arena of scopes and symbols for one document
// revision. Build with New, populate via Intern*/Close*, then Freeze.
// After Freeze, every mutating method panics — that is an internal
// invariant violation, not a user-facing error.
type Graph struct {
	scopes      []Scope
	symbols     []Symbol
	byScopeName map[scopeNameKey][]SymbolID
	refs        []EnvReference
	usages      []Usage
	maxDepth    int
	frozen      bool
}

// New creates a Graph with a root scope spanning the whole document.
// maxDepth bounds alias/destructure chain walks in ResolveOrigin; callers
// typically pass the workspace-configured value (default 32).
func New(documentLen uint32, maxDepth int) *Graph {
	if maxDepth <= 0 {
		maxDepth = 32
	}
	g := &Graph{
		byScopeName: make(map[scopeNameKey][]SymbolID),
		maxDepth:    maxDepth,
	}
	g.scopes = append(g.scopes, Scope{
		ID:     RootScopeID,
		Parent: noParent,
		Span:   Span{0, documentLen},
		Kind:   ScopeModule,
	})
	return g
}

func (g *Graph) mustBeOpen() {
	if g.frozen {
		panic("graph: mutation after Freeze (internal invariant violation)")
	}
}

// InternScope adds a new scope as a child of parent. The caller must ensure
// parent's span strictly contains span (scope-tree well-formedness).
func (g *Graph) InternScope(parent ScopeID, span Span, kind ScopeKind) ScopeID {
	g.mustBeOpen()
	id := ScopeID(len(g.scopes))
	g.scopes = append(g.scopes, Scope{ID: id, Parent: parent, Span: span, Kind: kind})
	return id
}

// InternSymbol adds a new symbol, live from its declaration to the
// declaring scope's end (narrowed later by CloseValidity).
func (g *Graph) InternSymbol(name string, scope ScopeID, declSpan Span, origin Origin) SymbolID {
	g.mustBeOpen()
	id := SymbolID(len(g.symbols))
	g.symbols = append(g.symbols, Symbol{
		ID:        id,
		Name:      name,
		Scope:     scope,
		DeclSpan:  declSpan,
		Origin:    origin,
		validFrom: declSpan.Start,
		validTo:   g.scopes[scope].Span.End,
	})
	key := scopeNameKey{scope, name}
	g.byScopeName[key] = append(g.byScopeName[key], id)
	return id
}

// SetOrigin replaces a symbol's Origin after interning. Used when a symbol's
// source is found only by a later pass (e.g. an alias whose source
// identifier is declared later in the document and interned after it).
func (g *Graph) SetOrigin(symbol SymbolID, origin Origin) {
	g.mustBeOpen()
	g.symbols[symbol].Origin = origin
}

// CloseValidity narrows a prior symbol's validity window to end at atByte,
// called when a reassignment or a later binding shadows it in the same scope.
func (g *Graph) CloseValidity(symbol SymbolID, atByte uint32) {
	g.mustBeOpen()
	s := &g.symbols[symbol]
	if atByte < s.validTo {
		s.validTo = atByte
	}
}

// AddReference records a direct env-var access, collapsing duplicates at the
// same access span.
func (g *Graph) AddReference(ref EnvReference) {
	g.mustBeOpen()
	for _, existing := range g.refs {
		if existing.AccessSpan == ref.AccessSpan {
			return
		}
	}
	g.refs = append(g.refs, ref)
}

// AddUsage records an identifier occurrence resolved to a symbol.
func (g *Graph) AddUsage(u Usage) {
	g.mustBeOpen()
	g.usages = append(g.usages, u)
}

// Freeze stops further mutation. Idempotent.
func (g *Graph) Freeze() { g.frozen = true }

// Frozen reports whether the graph has been published.
func (g *Graph) Frozen() bool { return g.frozen }

// Scope returns the scope for id.
func (g *Graph) Scope(id ScopeID) Scope { return g.scopes[id] }

// Symbol returns the symbol for id.
func (g *Graph) Symbol(id SymbolID) Symbol { return g.symbols[id] }

// Scopes returns every scope in the graph, root first.
func (g *Graph) Scopes() []Scope { return g.scopes }

// Symbols returns every symbol in the graph, in intern order.
func (g *Graph) Symbols() []Symbol { return g.symbols }

// References returns every direct env-var access recorded in the graph.
func (g *Graph) References() []EnvReference { return g.refs }

// Usages returns every recorded identifier usage.
func (g *Graph) Usages() []Usage { return g.usages }

// ScopeAt returns the deepest scope whose span contains byte offset b.
func (g *Graph) ScopeAt(b uint32) ScopeID {
	best := RootScopeID
	bestLen := g.scopes[RootScopeID].Span.Len()
	for _, sc := range g.scopes[1:] {
		if !sc.Span.Contains(b) {
			continue
		}
		if l := sc.Span.Len(); l < bestLen {
			bestLen = l
			best = sc.ID
		}
	}
	return best
}

// LookupSymbol walks the scope chain from `scope` outward, returning the
// symbol live at byte b for the first (scope, name) pair with one.
func (g *Graph) LookupSymbol(name string, scope ScopeID, b uint32) (SymbolID, bool) {
	for {
		key := scopeNameKey{scope, name}
		for _, sid := range g.byScopeName[key] {
			if g.symbols[sid].IsLiveAt(b) {
				return sid, true
			}
		}
		if scope == RootScopeID {
			return 0, false
		}
		scope = g.scopes[scope].Parent
	}
}

// LookupSymbolAny returns the most recently interned symbol named `name`
// visible from `scope`, ignoring validity windows entirely. Used only to
// resolve forward/hoisted references (a symbol used before its textual
// declaration, legal in several of the registry's languages) where the
// normal byte-position-bounded LookupSymbol finds nothing.
func (g *Graph) LookupSymbolAny(name string, scope ScopeID) (SymbolID, bool) {
	for {
		key := scopeNameKey{scope, name}
		if ids := g.byScopeName[key]; len(ids) > 0 {
			return ids[len(ids)-1], true
		}
		if scope == RootScopeID {
			return 0, false
		}
		scope = g.scopes[scope].Parent
	}
}

// ResolveOrigin follows Alias/DestructuredProperty hops to a terminal
// origin — always one of EnvVar, EnvObject, or Unresolved. A chain deeper
// than the graph's configured maxDepth resolves to Unresolved rather than
// looping; chains are dags by construction (sources always precede targets
// in byte order) so no cycle detection is needed.
func (g *Graph) ResolveOrigin(symbol SymbolID) Origin {
	return g.resolveOrigin(symbol, 0)
}

func (g *Graph) resolveOrigin(symbol SymbolID, depth int) Origin {
	if depth > g.maxDepth {
		return UnresolvedOrigin
	}
	sym := g.symbols[symbol]
	switch sym.Origin.Kind {
	case OriginEnvVar, OriginEnvObject, OriginUnresolved:
		return sym.Origin
	case OriginAlias:
		return g.resolveOrigin(sym.Origin.Source, depth+1)
	case OriginDestructuredProperty:
		srcOrigin := g.resolveOrigin(sym.Origin.Source, depth+1)
		if srcOrigin.Kind == OriginEnvObject && sym.Origin.Name != "" {
			return EnvVar(sym.Origin.Name)
		}
		return UnresolvedOrigin
	default:
		return UnresolvedOrigin
	}
}

// Validate checks the well-formedness invariants from the data model: every
// non-root scope's span lies strictly inside its parent's, every symbol's
// declaration lies within its declaring scope, and validity windows for a
// given (scope, name) are disjoint. Intended for tests and debug builds,
// not the hot analysis path.
func (g *Graph) Validate() error {
	for _, sc := range g.scopes {
		if sc.ID == RootScopeID {
			continue
		}
		parent := g.scopes[sc.Parent]
		if sc.Span.Start < parent.Span.Start || sc.Span.End > parent.Span.End || sc.Span == parent.Span {
			return fmt.Errorf("graph: scope %d span %v escapes parent %d span %v", sc.ID, sc.Span, sc.Parent, parent.Span)
		}
	}
	for _, sym := range g.symbols {
		sc := g.scopes[sym.Scope]
		if !sc.Span.Contains(sym.DeclSpan.Start) && sym.DeclSpan.Start != sc.Span.End {
			return fmt.Errorf("graph: symbol %d declared at %d outside scope %d span %v", sym.ID, sym.DeclSpan.Start, sym.Scope, sc.Span)
		}
	}
	for key, ids := range g.byScopeName {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := g.symbols[ids[i]], g.symbols[ids[j]]
				if a.validFrom < b.validTo && b.validFrom < a.validTo {
					return fmt.Errorf("graph: overlapping validity windows for scope %v/%q: %v and %v", key.scope, key.name, a.ValidSpan(), b.ValidSpan())
				}
			}
		}
	}
	return nil
}
