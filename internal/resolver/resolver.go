// Package resolver answers cursor-position queries against a Binding
// Graph, classifying a byte offset into one of: a direct env-var access, a
// symbol's declaration, a resolved usage of a symbol, or no match at all.
package resolver

import "github.com/DeusData/envscope/internal/graph"

// HitKind tags the variant held by an EnvHit.
type HitKind uint8

const (
	HitNone HitKind = iota
	HitDirectReference
	HitSymbolDeclaration
	HitUsage
)

func (k HitKind) String() string {
	switch k {
	case HitDirectReference:
		return "DirectReference"
	case HitSymbolDeclaration:
		return "SymbolDeclaration"
	case HitUsage:
		return "Usage"
	default:
		return "None"
	}
}

// EnvHit is the classification result for one byte position.
type EnvHit struct {
	Kind    HitKind
	VarName string // DirectReference only
	Symbol  graph.SymbolID
	Origin  graph.Origin // SymbolDeclaration, Usage: the symbol's terminal origin
	Span    graph.Span
}

// None is the zero-value EnvHit, returned when nothing matches.
var None = EnvHit{Kind: HitNone}

// Classify resolves a byte position against g. Resolution priority is
// direct reference, then declaration, then usage; within a category the
// narrowest containing span wins, ties broken by earliest start.
func Classify(g *graph.Graph, bytePosition uint32) EnvHit {
	if hit, ok := classifyReferences(g, bytePosition); ok {
		return hit
	}
	if hit, ok := classifyDeclarations(g, bytePosition); ok {
		return hit
	}
	if hit, ok := classifyUsages(g, bytePosition); ok {
		return hit
	}
	return None
}

func classifyReferences(g *graph.Graph, b uint32) (EnvHit, bool) {
	var best *graph.EnvReference
	for i, ref := range g.References() {
		if !ref.NameSpan.Contains(b) {
			continue
		}
		if best == nil || narrower(ref.NameSpan, best.NameSpan) {
			r := g.References()[i]
			best = &r
		}
	}
	if best == nil {
		return EnvHit{}, false
	}
	return EnvHit{Kind: HitDirectReference, VarName: best.VarName, Span: best.NameSpan}, true
}

func classifyDeclarations(g *graph.Graph, b uint32) (EnvHit, bool) {
	var best *graph.Symbol
	for i, sym := range g.Symbols() {
		if !sym.DeclSpan.Contains(b) {
			continue
		}
		if best == nil || narrower(sym.DeclSpan, best.DeclSpan) {
			s := g.Symbols()[i]
			best = &s
		}
	}
	if best == nil {
		return EnvHit{}, false
	}
	return EnvHit{
		Kind:   HitSymbolDeclaration,
		Symbol: best.ID,
		Origin: g.ResolveOrigin(best.ID),
		Span:   best.DeclSpan,
	}, true
}

func classifyUsages(g *graph.Graph, b uint32) (EnvHit, bool) {
	var best *graph.Usage
	for i, u := range g.Usages() {
		if !u.Span.Contains(b) {
			continue
		}
		if best == nil || narrower(u.Span, best.Span) {
			uu := g.Usages()[i]
			best = &uu
		}
	}
	if best == nil {
		return EnvHit{}, false
	}
	return EnvHit{
		Kind:   HitUsage,
		Symbol: best.Symbol,
		Origin: g.ResolveOrigin(best.Symbol),
		Span:   best.Span,
	}, true
}

// narrower reports whether candidate is a stricter match than current:
// smaller span wins, ties broken by earliest start.
func narrower(candidate, current graph.Span) bool {
	if candidate.Len() != current.Len() {
		return candidate.Len() < current.Len()
	}
	return candidate.Start < current.Start
}
