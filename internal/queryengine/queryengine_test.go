package queryengine

import (
	"testing"

	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/parser"
)

func TestRunFindsReferenceCaptures(t *testing.T) {
	src := []byte(`const a = process.env.A;`)
	tree, err := parser.Parse(lang.JavaScript, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	e := New()
	captures, err := e.Run(lang.JavaScript, CategoryReferences, tree.RootNode(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(captures) == 0 {
		t.Fatal("expected at least one reference capture for process.env.A")
	}
	for _, c := range captures {
		if c.Category != CategoryReferences {
			t.Errorf("capture.Category = %v, want CategoryReferences", c.Category)
		}
	}
}

func TestRunReturnsEmptyForAbsentCategory(t *testing.T) {
	src := []byte(`package main
func main() {}
`)
	tree, err := parser.Parse(lang.Go, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	e := New()
	captures, err := e.Run(lang.Go, CategoryDestructures, tree.RootNode(), src)
	if err != nil {
		t.Fatalf("Run on a category Go declares no node types for: %v", err)
	}
	if captures != nil {
		t.Fatalf("Run on an absent category = %v, want nil", captures)
	}
}

func TestRunUnregisteredLanguageErrors(t *testing.T) {
	src := []byte(`const a = 1;`)
	tree, err := parser.Parse(lang.JavaScript, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	e := New()
	if _, err := e.Run(lang.Language("cobol"), CategoryReferences, tree.RootNode(), src); err == nil {
		t.Fatal("expected an error for an unregistered language")
	}
}

func TestRunNilRootReturnsNoCapturesNoError(t *testing.T) {
	e := New()
	captures, err := e.Run(lang.JavaScript, CategoryReferences, nil, nil)
	if err != nil || captures != nil {
		t.Fatalf("Run(nil root) = (%v, %v), want (nil, nil)", captures, err)
	}
}

func TestCategoryStringNames(t *testing.T) {
	cases := map[Category]string{
		CategoryScopes: "scopes", CategoryReferences: "references",
		CategoryBindings: "bindings", CategoryAssignments: "assignments",
		CategoryDestructures: "destructures", CategoryReassignments: "reassignments",
	}
	for cat, want := range cases {
		if got := cat.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, want)
		}
	}
}

func TestCompiledQueryIsCachedAcrossRuns(t *testing.T) {
	src := []byte(`const a = process.env.A; const b = process.env.B;`)
	tree, err := parser.Parse(lang.JavaScript, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	e := New()
	if _, err := e.Run(lang.JavaScript, CategoryReferences, tree.RootNode(), src); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := e.Run(lang.JavaScript, CategoryReferences, tree.RootNode(), src); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	e.mu.Lock()
	n := len(e.queries)
	e.mu.Unlock()
	if n != 1 {
		t.Fatalf("queries cache has %d entries after two Runs of the same (language, category), want 1", n)
	}
}
