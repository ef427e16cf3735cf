package scopes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateSelf(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)

	// Cursor inside func f [6,8], header 1: fold the body.
	got := Evaluate(ix, Query{Cursor: 7, Axis: AxisSelf}, 20)
	assert.Equal(t, []Range{{Start: 7, End: 8}}, got)

	// Cursor on the header line targets the same scope.
	got = Evaluate(ix, Query{Cursor: 6, Axis: AxisSelf}, 20)
	assert.Equal(t, []Range{{Start: 7, End: 8}}, got)
}

func TestEvaluateAscendsLevels(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)

	// From inside f, one level up is the class.
	got := Evaluate(ix, Query{Cursor: 7, Axis: AxisSelf, Level: 1}, 20)
	assert.Equal(t, []Range{{Start: 3, End: 12}}, got)

	// Walking past the root clamps instead of failing.
	got = Evaluate(ix, Query{Cursor: 7, Axis: AxisSelf, Level: 99}, 20)
	assert.Equal(t, []Range{{Start: 2, End: 20}}, got)
}

func TestEvaluateChildrenDropsEmptyBodies(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)

	// Children of the class: doc [3,5] header 2 folds to (5,5) and is
	// dropped; f folds to (7,8); g [9,12] header 2 folds to (11,12).
	got := Evaluate(ix, Query{Cursor: 2, Axis: AxisChildren}, 20)
	assert.Equal(t, []Range{{Start: 7, End: 8}, {Start: 11, End: 12}}, got)
}

func TestEvaluateMergesAdjacentProjections(t *testing.T) {
	t.Parallel()
	// The second block keeps no header, so its body starts right after the
	// first block's body ends and the two spans merge into one.
	ix := BuildIndex(NewScopeGraph([]Scope{
		{ID: 0, ParentID: NoParent, Kind: "module", Start: 1, End: 10, HeaderLines: 1},
		{ID: 1, ParentID: 0, Kind: "if", Start: 1, End: 4, HeaderLines: 1},
		{ID: 2, ParentID: 0, Kind: "else", Start: 5, End: 8, HeaderLines: 0},
	}))

	got := Evaluate(ix, Query{Cursor: 1, Axis: AxisChildren, Level: 1}, 10)
	assert.Equal(t, []Range{{Start: 2, End: 8}}, got)
}

func TestEvaluateUnresolvedCursor(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)

	for _, cursor := range []int{0, -5, 21, 10_000} {
		assert.Empty(t, Evaluate(ix, Query{Cursor: cursor, Axis: AxisSelf}, 20), "cursor %d", cursor)
	}
}

func TestEvaluateUnknownAxis(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)

	assert.Empty(t, Evaluate(ix, Query{Cursor: 7, Axis: "diagonal"}, 20))
}

func TestEvaluateEmptyGraph(t *testing.T) {
	t.Parallel()
	ix := BuildIndex(NewScopeGraph(nil))

	assert.Empty(t, Evaluate(ix, Query{Cursor: 1, Axis: AxisSelf}, 1))
}

func TestEvaluateClampsToMaxLine(t *testing.T) {
	t.Parallel()
	// Producer emitted a scope reaching past the known line bound; the
	// output still honors it.
	ix := BuildIndex(NewScopeGraph([]Scope{
		{ID: 0, ParentID: NoParent, Kind: "module", Start: 1, End: 12, HeaderLines: 1},
	}))

	got := Evaluate(ix, Query{Cursor: 1, Axis: AxisSelf}, 9)
	assert.Equal(t, []Range{{Start: 2, End: 9}}, got)
}

func TestEvaluateRespectsMaxItems(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)

	got := Evaluate(ix, Query{Cursor: 2, Axis: AxisChildren, MaxItems: 1}, 20)
	// doc is the first child but folds to nothing; capping happens on the
	// scope sequence, so only the doc survives the cap and output is empty.
	assert.Empty(t, got)

	got = Evaluate(ix, Query{Cursor: 2, Axis: AxisChildren, MaxItems: 2}, 20)
	assert.Equal(t, []Range{{Start: 7, End: 8}}, got)
}

func TestEvaluateDeterminism(t *testing.T) {
	t.Parallel()
	g := testGraph()
	q := Query{Cursor: 4, Axis: AxisAncestors, IncludeRoot: true}

	first := Evaluate(BuildIndex(g), q, 20)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(BuildIndex(g), q, 20))
	}
}

func TestAscend(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)
	f := mustScope(t, ix, 3)

	assert.Equal(t, 3, Ascend(ix, f, 0).ID)
	assert.Equal(t, 1, Ascend(ix, f, 1).ID)
	assert.Equal(t, 0, Ascend(ix, f, 2).ID)
	assert.Equal(t, 0, Ascend(ix, f, 50).ID)
}

func TestEvaluateSafetySweep(t *testing.T) {
	t.Parallel()
	ix := testIndex(t)
	maxLine := 20

	for _, axis := range Axes() {
		for cursor := 1; cursor <= maxLine+5; cursor++ {
			got := Evaluate(ix, Query{Cursor: cursor, Axis: axis, Kinds: []string{"function", "class"}}, maxLine)
			for _, r := range got {
				require.GreaterOrEqual(t, r.Start, 1, "axis %s cursor %d", axis, cursor)
				require.Less(t, r.Start, r.End, "axis %s cursor %d", axis, cursor)
				require.LessOrEqual(t, r.End, maxLine, "axis %s cursor %d", axis, cursor)
			}
		}
	}
}
