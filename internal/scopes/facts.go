// Package scopes implements the structural core of pleat: an immutable
// scope fact model, a derived navigation index, a relational axis engine,
// and the normalization pass that turns scope selections into safe,
// non-overlapping fold ranges.
//
// Scopes in a graph form a laminar family: any two scopes are either
// disjoint or strictly nested, never partially overlapping. Producers
// guarantee the invariant; this package assumes it.
package scopes

import (
	"fmt"
	"sort"
)

// NoParent is the ParentID of a root scope.
const NoParent = -1

// Scope is an atomic structural fact: a 1-based inclusive line interval
// with an opaque kind label and an optional parent. The core never
// interprets Kind; it is an identity-only tag supplied by the producer.
type Scope struct {
	ID       int
	ParentID int // NoParent for roots
	Kind     string
	Start    int // 1-based, inclusive
	End      int // 1-based, inclusive; End >= Start

	// HeaderLines is the number of leading lines that stay visible when
	// the scope is folded. Producer-supplied data, not an engine constant.
	HeaderLines int
}

// Contains reports whether line falls within [Start, End].
func (s Scope) Contains(line int) bool {
	return s.Start <= line && line <= s.End
}

// IsRoot reports whether the scope has no parent.
func (s Scope) IsRoot() bool {
	return s.ParentID == NoParent
}

// Body returns the foldable remainder of the scope after its header.
// ok is false when the projected range is empty or inverted — such scopes
// have nothing to fold and must not appear in output.
func (s Scope) Body() (Range, bool) {
	r := Range{Start: s.Start + s.HeaderLines, End: s.End}
	if r.Start >= r.End {
		return Range{}, false
	}
	return r, true
}

// ScopeGraph is an immutable ordered collection of scopes for one compiled
// source unit. Scopes are held in canonical order — (start asc, end desc,
// id asc) — so parents always precede their descendants and sibling order
// is deterministic. A graph is never mutated after construction and is
// safe to share across goroutines.
type ScopeGraph struct {
	scopes []Scope
}

// NewScopeGraph copies the given scopes and sorts them canonically.
// An inverted span (Start > End) or a negative header is a producer bug:
// every downstream component assumes valid spans, so construction panics
// rather than tolerating the violation.
func NewScopeGraph(ss []Scope) ScopeGraph {
	scopes := make([]Scope, len(ss))
	copy(scopes, ss)
	for _, s := range scopes {
		if s.Start > s.End {
			panic(fmt.Sprintf("scopes: inverted span [%d,%d] on scope %d", s.Start, s.End, s.ID))
		}
		if s.HeaderLines < 0 {
			panic(fmt.Sprintf("scopes: negative header %d on scope %d", s.HeaderLines, s.ID))
		}
	}
	sortCanonical(scopes)
	return ScopeGraph{scopes: scopes}
}

// sortCanonical orders scopes by (start asc, end desc, id asc).
func sortCanonical(ss []Scope) {
	sort.Slice(ss, func(i, j int) bool {
		a, b := ss[i], ss[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return a.ID < b.ID
	})
}

// Len returns the number of scopes in the graph.
func (g ScopeGraph) Len() int {
	return len(g.scopes)
}

// At returns the scope at canonical position i.
func (g ScopeGraph) At(i int) Scope {
	return g.scopes[i]
}

// Scopes returns a copy of the scopes in canonical order.
func (g ScopeGraph) Scopes() []Scope {
	out := make([]Scope, len(g.scopes))
	copy(out, g.scopes)
	return out
}

// Equal reports structural equality: same scopes in the same order.
func (g ScopeGraph) Equal(other ScopeGraph) bool {
	if len(g.scopes) != len(other.scopes) {
		return false
	}
	for i, s := range g.scopes {
		if s != other.scopes[i] {
			return false
		}
	}
	return true
}

// MaxLine returns the largest line covered by any scope, or 0 for an
// empty graph.
func (g ScopeGraph) MaxLine() int {
	max := 0
	for _, s := range g.scopes {
		if s.End > max {
			max = s.End
		}
	}
	return max
}
