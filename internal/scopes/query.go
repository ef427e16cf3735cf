package scopes

// Query describes one structural request: where the cursor is, which
// relation to resolve, and how to trim the result. Queries are per-call
// value objects — constructed fresh, never shared or mutated.
type Query struct {
	// Cursor is the 1-based line the request is anchored on.
	Cursor int

	// Axis is the relation to resolve from the target scope.
	Axis Axis

	// Kinds is an allow-list applied to every axis; empty admits all.
	// For AxisAllOfKind it names the requested kinds.
	Kinds []string

	// Level ascends this many parent steps from the resolved scope before
	// the axis is applied. Walking past the root clamps, it does not fail.
	Level int

	// MaxItems truncates the filtered result, preserving order.
	// Zero means unlimited.
	MaxItems int

	// IncludeRoot keeps root scopes in the ancestors chain.
	IncludeRoot bool

	// IncludeSelf includes the target itself in the descendants result.
	IncludeSelf bool
}

// Evaluate resolves a query against an index: locate the deepest scope at
// the cursor, ascend Level parents, resolve the axis, project foldable
// bodies, and normalize. maxLine bounds the output; pass 0 when unknown.
//
// Evaluate never fails. A cursor outside every scope, an unknown axis, or
// a selection with nothing to fold all degrade to an empty result.
func Evaluate(ix *Index, q Query, maxLine int) []Range {
	target, ok := ix.ScopeAt(q.Cursor)
	if !ok {
		return nil
	}
	target = Ascend(ix, target, q.Level)
	related := Relate(ix, q.Axis, target, q)
	raw := make([]Range, 0, len(related))
	for _, s := range related {
		if body, ok := s.Body(); ok {
			raw = append(raw, body)
		}
	}
	return Normalize(raw, maxLine)
}

// Ascend walks n parent steps from s, stopping early at a root.
func Ascend(ix *Index, s Scope, n int) Scope {
	for ; n > 0; n-- {
		p, ok := ix.Parent(s)
		if !ok {
			break
		}
		s = p
	}
	return s
}
