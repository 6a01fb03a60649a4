package graph

import "testing"

func TestInternSymbolAndLookupSymbol(t *testing.T) {
	g := New(100, 32)
	sym := g.InternSymbol("db", RootScopeID, Span{10, 12}, EnvVar("DATABASE_URL"))

	got, ok := g.LookupSymbol("db", RootScopeID, 50)
	if !ok || got != sym {
		t.Fatalf("LookupSymbol(db, root, 50) = (%v, %v), want (%v, true)", got, ok, sym)
	}

	if _, ok := g.LookupSymbol("db", RootScopeID, 5); ok {
		t.Fatal("LookupSymbol before declaration should fail")
	}
}

func TestCloseValidityNarrowsWindowNotWidens(t *testing.T) {
	g := New(100, 32)
	sym := g.InternSymbol("x", RootScopeID, Span{0, 2}, EnvVar("A"))
	g.CloseValidity(sym, 50)
	g.CloseValidity(sym, 80) // must not widen back out

	if got := g.Symbol(sym).ValidSpan(); got.End != 50 {
		t.Fatalf("ValidSpan().End = %d, want 50 (widening must be rejected)", got.End)
	}
}

func TestReassignmentInvalidatesLaterLookup(t *testing.T) {
	g := New(100, 32)
	first := g.InternSymbol("x", RootScopeID, Span{0, 2}, EnvVar("A"))
	g.CloseValidity(first, 20)
	second := g.InternSymbol("x", RootScopeID, Span{20, 22}, EnvVar("B"))

	if got, ok := g.LookupSymbol("x", RootScopeID, 10); !ok || got != first {
		t.Fatalf("LookupSymbol(x, root, 10) = (%v, %v), want (%v, true)", got, ok, first)
	}
	if got, ok := g.LookupSymbol("x", RootScopeID, 30); !ok || got != second {
		t.Fatalf("LookupSymbol(x, root, 30) = (%v, %v), want (%v, true)", got, ok, second)
	}
}

func TestResolveOriginFollowsAliasChain(t *testing.T) {
	g := New(100, 32)
	env := g.InternSymbol("env", RootScopeID, Span{0, 3}, EnvObject())
	cfg := g.InternSymbol("cfg", RootScopeID, Span{4, 7}, AliasOf(env))
	db := g.InternSymbol("db", RootScopeID, Span{8, 10}, DestructuredProperty(cfg, "DATABASE_URL", ""))

	origin := g.ResolveOrigin(db)
	if origin.Kind != OriginEnvVar || origin.Name != "DATABASE_URL" {
		t.Fatalf("ResolveOrigin(db) = %+v, want EnvVar(DATABASE_URL)", origin)
	}
}

func TestResolveOriginDepthBoundYieldsUnresolved(t *testing.T) {
	g := New(100, 2)
	root := g.InternSymbol("a0", RootScopeID, Span{0, 1}, EnvObject())
	prev := root
	for i := 1; i <= 5; i++ {
		prev = g.InternSymbol("a", RootScopeID, Span{uint32(i), uint32(i + 1)}, AliasOf(prev))
	}

	origin := g.ResolveOrigin(prev)
	if origin.Kind != OriginUnresolved {
		t.Fatalf("ResolveOrigin past depth bound = %+v, want Unresolved", origin)
	}
}

func TestResolveOriginDestructureWithoutEnvObjectRootIsUnresolved(t *testing.T) {
	g := New(100, 32)
	unresolved := g.InternSymbol("mystery", RootScopeID, Span{0, 1}, UnresolvedOrigin)
	db := g.InternSymbol("db", RootScopeID, Span{2, 3}, DestructuredProperty(unresolved, "KEY", ""))

	origin := g.ResolveOrigin(db)
	if origin.Kind != OriginUnresolved {
		t.Fatalf("ResolveOrigin(db) = %+v, want Unresolved", origin)
	}
}

func TestScopeAtReturnsDeepestContainingScope(t *testing.T) {
	g := New(100, 32)
	fn := g.InternScope(RootScopeID, Span{10, 50}, ScopeFunction)
	block := g.InternScope(fn, Span{20, 40}, ScopeBlock)

	if got := g.ScopeAt(30); got != block {
		t.Fatalf("ScopeAt(30) = %v, want %v (innermost block)", got, block)
	}
	if got := g.ScopeAt(15); got != fn {
		t.Fatalf("ScopeAt(15) = %v, want %v (function, outside block)", got, fn)
	}
	if got := g.ScopeAt(5); got != RootScopeID {
		t.Fatalf("ScopeAt(5) = %v, want root", got)
	}
}

func TestAddReferenceCollapsesDuplicateSpans(t *testing.T) {
	g := New(100, 32)
	ref := EnvReference{VarName: "A", NameSpan: Span{5, 6}, AccessSpan: Span{0, 6}}
	g.AddReference(ref)
	g.AddReference(ref)

	if got := len(g.References()); got != 1 {
		t.Fatalf("References() has %d entries, want 1 (duplicates collapsed)", got)
	}
}

func TestFreezePanicsOnMutation(t *testing.T) {
	g := New(100, 32)
	g.Freeze()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected InternSymbol after Freeze to panic")
		}
	}()
	g.InternSymbol("x", RootScopeID, Span{0, 1}, UnresolvedOrigin)
}

func TestValidateRejectsOutOfBoundsScope(t *testing.T) {
	g := New(10, 32)
	g.InternScope(RootScopeID, Span{0, 20}, ScopeBlock) // wider than document
	if err := g.Validate(); err == nil {
		t.Fatal("expected Validate to reject a child scope spanning past its parent")
	}
}
