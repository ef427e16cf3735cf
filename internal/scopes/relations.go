package scopes

import "sort"

// Axis names a structural relation resolved against a target scope.
type Axis string

// Supported axes. Unknown axis names resolve to an empty result, never an
// error: interactive consumers must not crash on a bad axis string.
const (
	AxisSelf        Axis = "self"
	AxisParent      Axis = "parent"
	AxisChildren    Axis = "children"
	AxisAncestors   Axis = "ancestors"
	AxisDescendants Axis = "descendants"
	AxisSiblings    Axis = "siblings"
	AxisNext        Axis = "next"
	AxisPrev        Axis = "prev"
	AxisNextOfKind  Axis = "next_of_kind"
	AxisPrevOfKind  Axis = "prev_of_kind"
	AxisAllOfKind   Axis = "all_of_kind"
)

// axisFunc resolves one relation. Implementations are pure functions of
// the index, the target, and the query: no mutation, no I/O.
type axisFunc func(ix *Index, target Scope, q Query) []Scope

// axisRegistry is the fixed relation table. Axes never special-case scope
// kinds; the shared kind filter is applied centrally in Relate, and the
// stepping axes reuse the same predicate to skip non-matching scopes.
var axisRegistry = map[Axis]axisFunc{
	AxisSelf:        axisSelf,
	AxisParent:      axisParent,
	AxisChildren:    axisChildren,
	AxisAncestors:   axisAncestors,
	AxisDescendants: axisDescendants,
	AxisSiblings:    axisSiblings,
	AxisNext:        axisNext,
	AxisPrev:        axisPrev,
	AxisNextOfKind:  axisNextOfKind,
	AxisPrevOfKind:  axisPrevOfKind,
	AxisAllOfKind:   axisAllOfKind,
}

// Axes returns the supported axis names in sorted order.
func Axes() []Axis {
	out := make([]Axis, 0, len(axisRegistry))
	for a := range axisRegistry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidAxis reports whether name is a registered axis.
func ValidAxis(name Axis) bool {
	_, ok := axisRegistry[name]
	return ok
}

// Relate resolves axis against target, applies the query's kind filter
// uniformly, and truncates to MaxItems preserving order. Unknown axes
// yield nil.
func Relate(ix *Index, axis Axis, target Scope, q Query) []Scope {
	fn, ok := axisRegistry[axis]
	if !ok {
		return nil
	}
	out := filterKinds(fn(ix, target, q), q.Kinds)
	if q.MaxItems > 0 && len(out) > q.MaxItems {
		out = out[:q.MaxItems]
	}
	return out
}

func axisSelf(_ *Index, target Scope, _ Query) []Scope {
	return []Scope{target}
}

func axisParent(ix *Index, target Scope, _ Query) []Scope {
	p, ok := ix.Parent(target)
	if !ok {
		return nil
	}
	return []Scope{p}
}

func axisChildren(ix *Index, target Scope, _ Query) []Scope {
	return ix.Children(target)
}

// axisAncestors walks the parent chain, nearest first. Root scopes are
// excluded unless the query opts in via IncludeRoot.
func axisAncestors(ix *Index, target Scope, q Query) []Scope {
	var out []Scope
	cur := target
	for {
		p, ok := ix.Parent(cur)
		if !ok {
			return out
		}
		if !p.IsRoot() || q.IncludeRoot {
			out = append(out, p)
		}
		cur = p
	}
}

// axisDescendants visits the subtree below target in pre-order (parent
// before children), using an explicit work stack. The target itself is
// excluded unless the query opts in via IncludeSelf.
func axisDescendants(ix *Index, target Scope, q Query) []Scope {
	var out []Scope
	if q.IncludeSelf {
		out = append(out, target)
	}
	var stack []int
	push := func(id int) {
		kids := ix.children[id]
		for i := len(kids) - 1; i >= 0; i-- { // reversed: LIFO keeps canonical order
			stack = append(stack, kids[i])
		}
	}
	push(target.ID)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, ix.byID[id])
		push(id)
	}
	return out
}

func axisSiblings(ix *Index, target Scope, _ Query) []Scope {
	p, ok := ix.Parent(target)
	if !ok {
		return nil
	}
	var out []Scope
	for _, c := range ix.Children(p) {
		if c.ID != target.ID {
			out = append(out, c)
		}
	}
	return out
}

// axisNext steps forward in whole-graph canonical order, ignoring
// containment, and returns the first scope passing the kind filter.
func axisNext(ix *Index, target Scope, q Query) []Scope {
	p, ok := ix.pos[target.ID]
	if !ok {
		return nil
	}
	for i := p + 1; i < len(ix.scopes); i++ {
		if matchesKinds(ix.scopes[i], q.Kinds) {
			return []Scope{ix.scopes[i]}
		}
	}
	return nil
}

// axisPrev is the document-order mirror of axisNext.
func axisPrev(ix *Index, target Scope, q Query) []Scope {
	p, ok := ix.pos[target.ID]
	if !ok {
		return nil
	}
	for i := p - 1; i >= 0; i-- {
		if matchesKinds(ix.scopes[i], q.Kinds) {
			return []Scope{ix.scopes[i]}
		}
	}
	return nil
}

// axisNextOfKind steps through the target's kind group instead of the
// whole graph.
func axisNextOfKind(ix *Index, target Scope, q Query) []Scope {
	ids, after := ix.kindNeighbors(target)
	for _, id := range ids[after:] {
		if s := ix.byID[id]; matchesKinds(s, q.Kinds) {
			return []Scope{s}
		}
	}
	return nil
}

func axisPrevOfKind(ix *Index, target Scope, q Query) []Scope {
	ids, after := ix.kindNeighbors(target)
	for i := after - 1; i >= 0; i-- {
		if id := ids[i]; id != target.ID {
			if s := ix.byID[id]; matchesKinds(s, q.Kinds) {
				return []Scope{s}
			}
		}
	}
	return nil
}

// kindNeighbors returns the canonical id sequence for the target's kind
// and the position just past the target within it.
func (ix *Index) kindNeighbors(target Scope) ([]int, int) {
	ids := ix.byKind[target.Kind]
	tp, ok := ix.pos[target.ID]
	if !ok {
		return nil, 0
	}
	after := sort.Search(len(ids), func(i int) bool { return ix.pos[ids[i]] > tp })
	return ids, after
}

// axisAllOfKind returns every scope of the requested kinds in canonical
// order. It is independent of the target and requires an explicit kind
// selection via Query.Kinds.
func axisAllOfKind(ix *Index, _ Scope, q Query) []Scope {
	if len(q.Kinds) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(q.Kinds))
	var ids []int
	for _, k := range q.Kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		ids = append(ids, ix.byKind[k]...)
	}
	sort.Slice(ids, func(i, j int) bool { return ix.pos[ids[i]] < ix.pos[ids[j]] })
	out := make([]Scope, len(ids))
	for i, id := range ids {
		out[i] = ix.byID[id]
	}
	return out
}

// matchesKinds implements the uniform allow-list: an empty list admits
// every scope.
func matchesKinds(s Scope, kinds []string) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if s.Kind == k {
			return true
		}
	}
	return false
}

func filterKinds(ss []Scope, kinds []string) []Scope {
	if len(kinds) == 0 {
		return ss
	}
	var out []Scope
	for _, s := range ss {
		if matchesKinds(s, kinds) {
			out = append(out, s)
		}
	}
	return out
}
