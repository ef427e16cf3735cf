// Package pleat computes structural fold ranges for source code. It turns
// text in any of 10 bundled languages (Go, TypeScript, JavaScript, Python,
// Rust, C, C++, Java, PHP, and Ruby) into a laminar family of scopes — every
// pair nested or disjoint — and answers cursor-relative queries over it with
// editor-ready line ranges.
//
// # Pipeline
//
// A query runs in five stages:
//
//  1. Compile: parse the source with tree-sitter and apply the language's
//     rule table, producing a ScopeGraph in canonical order under a single
//     module root. Compilation never fails; unparseable input degrades to
//     the root alone.
//
//  2. Index: derive parent/child adjacency, binary-searchable start and end
//     arrays, and per-kind buckets from the graph.
//
//  3. Locate: resolve the cursor line to the deepest containing scope, then
//     optionally ascend Query.Level parents.
//
//  4. Relate: walk the query's axis (self, parent, children, ancestors,
//     descendants, siblings, next, prev, next_of_kind, prev_of_kind,
//     all_of_kind) from that scope, filter by kind, and cap the count.
//
//  5. Project and normalize: each scope folds to its body — the lines after
//     its header — and the bodies are sorted, merged, and clamped.
//
// # Usage
//
// Create an Engine and query it:
//
//	e, err := pleat.New()
//	if err != nil { ... }
//
//	ctx := context.Background()
//	ranges := e.Fold(ctx, source, "python", 12)
//
//	ranges = e.FoldRanges(ctx, source, "go", pleat.Query{
//		Cursor: 40,
//		Axis:   pleat.AxisDescendants,
//		Kinds:  []string{"function", "method"},
//	})
//
// All results are normalized: sorted, non-overlapping, merged when adjacent,
// and within the source's line count. Identical input always yields
// identical output.
//
// # Rule overlays
//
// Which tree-sitter node types become scopes, which wrap others (decorators,
// export statements), and how docstrings are detected is data, not code:
// per-language rule tables that TOML overlays can extend or replace. Use
// [WithRulesFile] or [LoadRules] to register a custom language over a
// bundled grammar.
package pleat
