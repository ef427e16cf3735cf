package scopes

import "sort"

// Index is a disposable acceleration structure derived from a ScopeGraph.
// It owns no scope data of its own, can be rebuilt from the graph at any
// time, and is read-only after construction — a graph/index pair may be
// queried concurrently from any number of goroutines.
type Index struct {
	scopes   []Scope          // canonical order
	byID     map[int]Scope    // id -> scope
	children map[int][]int    // parent id -> child ids, canonical order
	starts   []int            // parallel to scopes, for binary search
	ends     []int            // parallel to scopes
	byKind   map[string][]int // kind -> ids, canonical order
	pos      map[int]int      // id -> canonical position
}

// BuildIndex derives an Index from a graph. The graph is assumed laminar
// and canonically ordered; BuildIndex never mutates it.
func BuildIndex(g ScopeGraph) *Index {
	n := g.Len()
	ix := &Index{
		scopes:   make([]Scope, n),
		byID:     make(map[int]Scope, n),
		children: make(map[int][]int),
		starts:   make([]int, n),
		ends:     make([]int, n),
		byKind:   make(map[string][]int),
		pos:      make(map[int]int, n),
	}
	for i := 0; i < n; i++ {
		s := g.At(i)
		ix.scopes[i] = s
		ix.byID[s.ID] = s
		ix.starts[i] = s.Start
		ix.ends[i] = s.End
		ix.byKind[s.Kind] = append(ix.byKind[s.Kind], s.ID)
		ix.pos[s.ID] = i
		if s.ParentID != NoParent {
			ix.children[s.ParentID] = append(ix.children[s.ParentID], s.ID)
		}
	}
	return ix
}

// Len returns the number of indexed scopes.
func (ix *Index) Len() int {
	return len(ix.scopes)
}

// At returns the scope at canonical position i.
func (ix *Index) At(i int) Scope {
	return ix.scopes[i]
}

// ByID looks up a scope by id.
func (ix *Index) ByID(id int) (Scope, bool) {
	s, ok := ix.byID[id]
	return s, ok
}

// Pos returns the canonical position of a scope id.
func (ix *Index) Pos(id int) (int, bool) {
	p, ok := ix.pos[id]
	return p, ok
}

// Parent returns the immediate parent of s, if any.
func (ix *Index) Parent(s Scope) (Scope, bool) {
	if s.ParentID == NoParent {
		return Scope{}, false
	}
	p, ok := ix.byID[s.ParentID]
	return p, ok
}

// Children returns the immediate children of s in canonical sibling order.
func (ix *Index) Children(s Scope) []Scope {
	ids := ix.children[s.ID]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Scope, len(ids))
	for i, id := range ids {
		out[i] = ix.byID[id]
	}
	return out
}

// OfKind returns every scope with the given kind, in canonical order.
func (ix *Index) OfKind(kind string) []Scope {
	ids := ix.byKind[kind]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Scope, len(ids))
	for i, id := range ids {
		out[i] = ix.byID[id]
	}
	return out
}

// ScopeAt returns the deepest scope containing line. A line outside every
// scope — blank top-of-file lines, lines past the end, a non-positive
// line, an empty graph — is a normal outcome, not an error: ok is false.
//
// Resolution is a binary search over the canonical start order for the
// rightmost scope opening at or before line, a short walk left past scopes
// that already closed, then a descent: laminarity guarantees at most one
// child contains the line at each level.
func (ix *Index) ScopeAt(line int) (Scope, bool) {
	if len(ix.scopes) == 0 || line < 1 {
		return Scope{}, false
	}
	i := sort.SearchInts(ix.starts, line+1) - 1
	for i >= 0 && ix.ends[i] < line {
		i--
	}
	if i < 0 {
		return Scope{}, false
	}
	cand := ix.scopes[i]
	for {
		child, ok := ix.containingChild(cand, line)
		if !ok {
			return cand, true
		}
		cand = child
	}
}

// containingChild finds the unique child of s containing line, if any.
func (ix *Index) containingChild(s Scope, line int) (Scope, bool) {
	for _, cid := range ix.children[s.ID] {
		c := ix.byID[cid]
		if c.Contains(line) {
			return c, true
		}
		if c.Start > line {
			break // canonical order: later siblings start even further right
		}
	}
	return Scope{}, false
}
