// Package engine is the façade wiring the grammar registry, query engine,
// analysis pipeline, binding resolver, and document store behind the five
// operations an editor-protocol host needs: analyze, classify, list direct
// references, list symbols, and close.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/DeusData/envscope/internal/config"
	"github.com/DeusData/envscope/internal/discover"
	"github.com/DeusData/envscope/internal/docstore"
	"github.com/DeusData/envscope/internal/graph"
	"github.com/DeusData/envscope/internal/lang"
	"github.com/DeusData/envscope/internal/pipeline"
	"github.com/DeusData/envscope/internal/resolver"
)

// ErrUnregisteredLanguage is returned when Analyze is asked to parse a
// language tag the grammar registry has no LanguageSpec for.
var ErrUnregisteredLanguage = pipeline.ErrUnregisteredLanguage

// ErrDocumentNotFound is returned by operations addressing a document
// identifier the store has never analysed (or that has since been closed).
var ErrDocumentNotFound = errors.New("document not found")

// ValueResolver looks up an environment variable's actual runtime value and
// where it came from (a .env file, the process environment, a secret
// store). An editor-protocol host calls this to annotate a Classify result
// with the live value; the analysis core never calls it and this package
// ships no implementation.
type ValueResolver interface {
	Lookup(varName string) (value, source string, ok bool)
}

// MaskingPolicy decides how a resolved env var's value is rendered at
// presentation time (redacted, truncated, shown in full). Applied by the
// editor-protocol host, never by the core, and never persisted.
type MaskingPolicy interface {
	Display(value string, context DisplayContext) string
}

// DisplayContext is the situational information a MaskingPolicy's Display
// decision may depend on (e.g. whether the value is shown inline in an
// editor versus copied to a clipboard).
type DisplayContext struct {
	VarName string
	DocID   string
}

// Engine is the process-wide entry point for analysing and querying
// documents. A single Engine is safe for concurrent use; each document is
// analysed by at most one worker at a time, but distinct documents may
// analyse concurrently.
type Engine struct {
	pipeline *pipeline.Pipeline
	docs     *docstore.Store
	cfg      *config.Workspace
}

// New creates an Engine configured from a workspace's settings.
func New(cfg *config.Workspace) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		pipeline: pipeline.New(cfg.EffectiveMaxOriginDepth()),
		docs:     docstore.New(),
		cfg:      cfg,
	}
}

// Analyze parses source as language tag l and publishes the resulting graph
// as docID's current revision. If source is byte-identical to the document's
// existing revision and l is the same language tag, the rebuild is skipped
// and the existing graph republished unchanged.
func (e *Engine) Analyze(ctx context.Context, docID string, source []byte, l lang.Language) error {
	if lang.ForLanguage(l) == nil {
		return fmt.Errorf("engine: %w: %s", ErrUnregisteredLanguage, l)
	}
	if doc, ok := e.docs.Get(docID); ok && doc.Language == l {
		if _, unchanged := e.docs.Lookup(docID, source); unchanged {
			return nil
		}
	}

	g, err := e.pipeline.Analyze(ctx, source, l)
	if err != nil {
		return err
	}
	e.docs.Put(docID, l, g, source)
	return nil
}

// Classify resolves a byte position in a previously analysed document.
// Returns resolver.None for an unknown document rather than an error: a
// cursor query racing a Close is not exceptional.
func (e *Engine) Classify(docID string, bytePosition int) resolver.EnvHit {
	doc, ok := e.docs.Get(docID)
	if !ok {
		return resolver.None
	}
	return resolver.Classify(doc.Graph, uint32(bytePosition))
}

// DirectReferences returns every direct env-var access recorded for docID.
func (e *Engine) DirectReferences(docID string) ([]graph.EnvReference, error) {
	doc, ok := e.docs.Get(docID)
	if !ok {
		return nil, fmt.Errorf("engine: %w: %s", ErrDocumentNotFound, docID)
	}
	return doc.Graph.References(), nil
}

// SymbolView is a Symbol paired with its resolved terminal origin, the
// shape callers outside the graph package need without exposing SymbolID
// chain internals.
type SymbolView struct {
	graph.Symbol
	Resolved graph.Origin
}

// Symbols returns every symbol recorded for docID with its terminal origin.
func (e *Engine) Symbols(docID string) ([]SymbolView, error) {
	doc, ok := e.docs.Get(docID)
	if !ok {
		return nil, fmt.Errorf("engine: %w: %s", ErrDocumentNotFound, docID)
	}
	syms := doc.Graph.Symbols()
	out := make([]SymbolView, len(syms))
	for i, s := range syms {
		out[i] = SymbolView{Symbol: s, Resolved: doc.Graph.ResolveOrigin(s.ID)}
	}
	return out, nil
}

// Close discards a document's analysed state.
func (e *Engine) Close(docID string) {
	e.docs.Close(docID)
}

// DocumentCount returns the number of currently open documents.
func (e *Engine) DocumentCount() int {
	return e.docs.Len()
}

// ScanResult summarizes one file's outcome from ScanRepository.
type ScanResult struct {
	Path string
	Err  error
}

// ScanRepository discovers source files under root and analyzes each one,
// fanning out across a worker pool bounded to the host's CPU count. Each
// file's document ID is its path relative to root.
func (e *Engine) ScanRepository(ctx context.Context, root string) ([]ScanResult, error) {
	files, err := discover.Discover(ctx, root, &discover.Options{IgnoreFile: e.cfg.EffectiveIgnoreFile()})
	if err != nil {
		return nil, fmt.Errorf("engine: scan: %w", err)
	}

	results := make([]ScanResult, len(files))
	workers := runtime.NumCPU()
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			source, readErr := discover.ReadFile(f.Path)
			if readErr != nil {
				results[i] = ScanResult{Path: f.RelPath, Err: readErr}
				return nil
			}
			analyzeErr := e.Analyze(ctx, f.RelPath, source, f.Language)
			results[i] = ScanResult{Path: f.RelPath, Err: analyzeErr}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}
