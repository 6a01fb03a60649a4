package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DeusData/envscope/internal/config"
	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/resolver"
)

func TestClassifyTypeScriptAliasChain(t *testing.T) {
	e := New(config.Default())
	src := `const env = process.env; const cfg = env; const x = cfg.DATABASE_URL; console.log(x);`
	if err := e.Analyze(context.Background(), "d.ts", []byte(src), lang.TypeScript); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	refPos := strings.Index(src, "DATABASE_URL")
	if hit := e.Classify("d.ts", refPos); hit.Kind != resolver.HitDirectReference || hit.VarName != "DATABASE_URL" {
		t.Fatalf("Classify at cfg.DATABASE_URL's property = %+v, want DirectReference(DATABASE_URL)", hit)
	}

	declPos := strings.Index(src, "x = cfg")
	hit := e.Classify("d.ts", declPos)
	if hit.Kind != resolver.HitSymbolDeclaration {
		t.Fatalf("Classify at x's declaration = %+v, want SymbolDeclaration", hit)
	}
	if hit.Origin.Kind != graph.OriginEnvVar || hit.Origin.Name != "DATABASE_URL" {
		t.Fatalf("declaration origin = %+v, want EnvVar(DATABASE_URL)", hit.Origin)
	}

	usePos := strings.LastIndex(src, "x")
	hit = e.Classify("d.ts", usePos)
	if hit.Kind != resolver.HitUsage {
		t.Fatalf("Classify at console.log(x) = %+v, want Usage", hit)
	}
	if hit.Origin.Kind != graph.OriginEnvVar || hit.Origin.Name != "DATABASE_URL" {
		t.Fatalf("usage origin = %+v, want EnvVar(DATABASE_URL)", hit.Origin)
	}
}

func TestAnalyzeRejectsUnregisteredLanguage(t *testing.T) {
	e := New(config.Default())
	err := e.Analyze(context.Background(), "x.cbl", []byte("x"), lang.Language("cobol"))
	if err == nil {
		t.Fatal("expected an error for an unregistered language")
	}
}

func TestAnalyzeIsIdempotentForIdenticalSource(t *testing.T) {
	e := New(config.Default())
	src := []byte(`const a = process.env.A;`)

	if err := e.Analyze(context.Background(), "d.js", src, lang.JavaScript); err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	before, err := e.DirectReferences("d.js")
	if err != nil {
		t.Fatalf("DirectReferences: %v", err)
	}

	if err := e.Analyze(context.Background(), "d.js", src, lang.JavaScript); err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	after, err := e.DirectReferences("d.js")
	if err != nil {
		t.Fatalf("DirectReferences after reanalyze: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("reference count changed across an identical reanalysis: %d -> %d", len(before), len(after))
	}
}

func TestOperationsOnUnknownDocumentFail(t *testing.T) {
	e := New(config.Default())
	if _, err := e.DirectReferences("missing"); err == nil {
		t.Fatal("expected ErrDocumentNotFound for DirectReferences on an unanalysed doc")
	}
	if _, err := e.Symbols("missing"); err == nil {
		t.Fatal("expected ErrDocumentNotFound for Symbols on an unanalysed doc")
	}
	if hit := e.Classify("missing", 0); hit.Kind != 0 {
		t.Fatalf("Classify on an unanalysed doc = %v, want None", hit.Kind)
	}
}

func TestCloseRemovesDocument(t *testing.T) {
	e := New(config.Default())
	if err := e.Analyze(context.Background(), "d.js", []byte("x"), lang.JavaScript); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if e.DocumentCount() != 1 {
		t.Fatalf("DocumentCount before Close = %d, want 1", e.DocumentCount())
	}
	e.Close("d.js")
	if e.DocumentCount() != 0 {
		t.Fatalf("DocumentCount after Close = %d, want 0", e.DocumentCount())
	}
	if _, err := e.DirectReferences("d.js"); err == nil {
		t.Fatal("expected ErrDocumentNotFound after Close")
	}
}

func TestScanRepositoryAnalyzesDiscoveredFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte(`const a = process.env.A;`), 0o644); err != nil {
		t.Fatalf("write a.js: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.py"), []byte(`import os\nb = os.environ["B"]`), 0o644); err != nil {
		t.Fatalf("write b.py: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.bin"), []byte{0x00, 0x01}, 0o644); err != nil {
		t.Fatalf("write ignore.bin: %v", err)
	}

	e := New(config.Default())
	results, err := e.ScanRepository(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanRepository: %v", err)
	}

	found := map[string]bool{}
	for _, r := range results {
		found[r.Path] = true
		if r.Err != nil {
			t.Errorf("scan result for %s: %v", r.Path, r.Err)
		}
	}
	if !found["a.js"] || !found["b.py"] {
		t.Fatalf("expected a.js and b.py to be scanned, got %v", results)
	}
	if e.DocumentCount() != len(results) {
		t.Fatalf("DocumentCount = %d, want %d (one per scanned file)", e.DocumentCount(), len(results))
	}
}
