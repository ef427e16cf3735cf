package pleat

import (
	"context"
	"fmt"

	"github.com/jward/pleat/internal/producer"
	"github.com/jward/pleat/internal/scopes"
)

// Engine orchestrates the pleat pipeline: compile source into a scope graph,
// index it, walk a relation axis from the cursor's scope, project header-aware
// fold bodies, and normalize the result. An Engine is immutable after New and
// safe for concurrent use.
type Engine struct {
	producer *producer.Producer
	registry *producer.Registry

	rulesFiles []string

	// maxItems is applied to queries that leave Query.MaxItems at zero.
	// Zero means unlimited.
	maxItems int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry compiles with a caller-built language registry instead of the
// bundled defaults.
func WithRegistry(reg *Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithRulesFile layers a TOML rule overlay onto the registry. May be given
// more than once; overlays apply in order, later files replacing earlier
// tables for the same language.
func WithRulesFile(path string) Option {
	return func(e *Engine) {
		e.rulesFiles = append(e.rulesFiles, path)
	}
}

// WithMaxItems caps result ranges for queries that do not set their own
// Query.MaxItems.
func WithMaxItems(n int) Option {
	return func(e *Engine) {
		e.maxItems = n
	}
}

// New creates an Engine. Without options it serves the bundled languages
// with their built-in rule tables.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = producer.Default()
	}
	for _, path := range e.rulesFiles {
		if err := producer.LoadRulesFile(e.registry, path); err != nil {
			return nil, fmt.Errorf("pleat: load rules: %w", err)
		}
	}
	e.producer = producer.New(e.registry)
	return e, nil
}

// Registry returns the engine's language registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Languages returns the names the engine can compile, sorted.
func (e *Engine) Languages() []string {
	return e.registry.Languages()
}

// Graph compiles source text and returns the scope graph with its derived
// index. Compilation never fails: unknown languages and parse errors degrade
// to a single-root module graph.
func (e *Engine) Graph(ctx context.Context, source, language string) (ScopeGraph, *Index) {
	g := e.producer.Compile(ctx, source, language)
	return g, scopes.BuildIndex(g)
}

// FoldRanges evaluates a query against source text and returns normalized
// fold ranges. An unresolved cursor, an unknown axis, or an empty relation
// all yield an empty result. Queries that leave MaxItems at zero inherit the
// engine's WithMaxItems cap.
func (e *Engine) FoldRanges(ctx context.Context, source, language string, q Query) []Range {
	g := e.producer.Compile(ctx, source, language)
	ix := scopes.BuildIndex(g)
	if q.MaxItems == 0 {
		q.MaxItems = e.maxItems
	}
	return scopes.Evaluate(ix, q, scopes.TotalLines(source))
}

// Fold returns the fold range of the deepest scope containing cursor:
// FoldRanges with the self axis.
func (e *Engine) Fold(ctx context.Context, source, language string, cursor int) []Range {
	return e.FoldRanges(ctx, source, language, Query{Cursor: cursor, Axis: AxisSelf})
}

// FoldChildren returns the fold ranges of the direct children of the scope
// containing cursor.
func (e *Engine) FoldChildren(ctx context.Context, source, language string, cursor int) []Range {
	return e.FoldRanges(ctx, source, language, Query{Cursor: cursor, Axis: AxisChildren})
}
