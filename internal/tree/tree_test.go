package tree_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduadmin/internal/tree"
)

type node struct {
	id, parent string
	order      int
	kids       []node
}

func (n node) NodeID() string    { return n.id }
func (n node) ParentRef() string { return n.parent }
func (n node) SortOrder() int    { return n.order }

func ids(ns []node) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.id)
	}
	return out
}

// math
// ├── algebra
// │   └── linear
// └── geometry
// physics
func sample() []node {
	return []node{
		{id: "math", order: 1},
		{id: "algebra", parent: "math", order: 1},
		{id: "physics", order: 2},
		{id: "geometry", parent: "math", order: 2},
		{id: "linear", parent: "algebra", order: 1},
	}
}

func TestNextOrderEmptySiblingsIsOne(t *testing.T) {
	assert.Equal(t, 1, tree.NextOrder([]node{}, ""))
	assert.Equal(t, 1, tree.NextOrder(sample(), "geometry"))
	assert.Equal(t, 1, tree.NextOrder(sample(), "no-such-parent"))
}

func TestNextOrderIsMaxPlusOne(t *testing.T) {
	flat := sample()
	assert.Equal(t, 3, tree.NextOrder(flat, ""))
	assert.Equal(t, 3, tree.NextOrder(flat, "math"))
	assert.Equal(t, 2, tree.NextOrder(flat, "algebra"))

	flat = append(flat, node{id: "optics", parent: "physics", order: 7}, node{id: "waves", parent: "physics"})
	assert.Equal(t, 8, tree.NextOrder(flat, "physics"))
}

func TestNextOrderMissingOrderCountsAsZero(t *testing.T) {
	flat := []node{{id: "a"}, {id: "b"}}
	assert.Equal(t, 1, tree.NextOrder(flat, ""))
}

func TestRowsArePreOrderWithDepth(t *testing.T) {
	rows := tree.Build(sample()).Rows()

	var got []string
	for _, r := range rows {
		got = append(got, strconv.Itoa(r.Level)+":"+r.Item.id)
	}
	assert.Equal(t, []string{"0:math", "1:algebra", "2:linear", "1:geometry", "0:physics"}, got)

	leaves := map[string]bool{}
	for _, r := range rows {
		leaves[r.Item.id] = r.Leaf
	}
	assert.False(t, leaves["math"])
	assert.False(t, leaves["algebra"])
	assert.True(t, leaves["linear"])
	assert.True(t, leaves["physics"])
}

func TestRowsVisitEveryNodeOnceAtAncestorDepth(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := 1 + r.Intn(40)
		flat := make([]node, n)
		for i := range flat {
			flat[i] = node{id: "n" + strconv.Itoa(i), order: r.Intn(5)}
			// parents always point backwards, so the input is acyclic
			if i > 0 && r.Intn(4) != 0 {
				flat[i].parent = "n" + strconv.Itoa(r.Intn(i))
			}
		}
		r.Shuffle(len(flat), func(i, j int) { flat[i], flat[j] = flat[j], flat[i] })

		f := tree.Build(flat)
		rows := f.Rows()
		require.Len(t, rows, n)

		seen := map[string]int{}
		for _, row := range rows {
			seen[row.Item.id]++
			assert.Equal(t, len(f.Ancestors(row.Item.id)), row.Level, "node %s", row.Item.id)
		}
		for _, it := range flat {
			assert.Equal(t, 1, seen[it.id], "node %s", it.id)
		}
	}
}

func TestRowsKeepServerOrder(t *testing.T) {
	flat := []node{
		{id: "b", order: 9},
		{id: "a", order: 1},
		{id: "b2", parent: "b", order: 5},
		{id: "b1", parent: "b", order: 1},
	}
	var got []string
	for _, r := range tree.Build(flat).Rows() {
		got = append(got, r.Item.id)
	}
	assert.Equal(t, []string{"b", "b2", "b1", "a"}, got)
}

func TestOrphansAndSelfParentsBecomeRoots(t *testing.T) {
	flat := []node{
		{id: "x", parent: "gone"},
		{id: "y", parent: "y"},
	}
	f := tree.Build(flat)
	assert.Equal(t, []string{"x", "y"}, ids(f.Roots()))
}

func TestCyclicInputStillEmitsEachNodeOnce(t *testing.T) {
	flat := []node{
		{id: "root"},
		{id: "a", parent: "b"},
		{id: "b", parent: "a"},
	}
	rows := tree.Build(flat).Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "root", rows[0].Item.id)
	assert.Equal(t, "a", rows[1].Item.id)
	assert.Equal(t, "b", rows[2].Item.id)
	assert.Equal(t, 1, rows[2].Level)
}

func TestParentCandidatesNeverIncludeSelf(t *testing.T) {
	f := tree.Build(sample())
	for _, it := range sample() {
		for _, c := range f.ParentCandidates(it.id) {
			assert.NotEqual(t, it.id, c.id)
		}
	}
}

func TestParentCandidatesExcludeDescendants(t *testing.T) {
	f := tree.Build(sample())
	assert.Equal(t, []string{"physics"}, ids(f.ParentCandidates("math")))
	assert.Equal(t, []string{"math", "physics", "geometry"}, ids(f.ParentCandidates("algebra")))
	assert.Len(t, f.ParentCandidates(""), 5)
}

func TestCanReparent(t *testing.T) {
	f := tree.Build(sample())

	assert.NoError(t, f.CanReparent("algebra", ""))
	assert.NoError(t, f.CanReparent("algebra", "physics"))
	assert.NoError(t, f.CanReparent("new-node", "linear"))
	assert.ErrorIs(t, f.CanReparent("algebra", "algebra"), tree.ErrSelfParent)
	assert.ErrorIs(t, f.CanReparent("algebra", "nowhere"), tree.ErrUnknownParent)
	assert.ErrorIs(t, f.CanReparent("math", "linear"), tree.ErrCycle)
	assert.ErrorIs(t, f.CanReparent("algebra", "linear"), tree.ErrCycle)
}

func TestAncestorsNearestFirst(t *testing.T) {
	f := tree.Build(sample())
	assert.Equal(t, []string{"algebra", "math"}, f.Ancestors("linear"))
	assert.Empty(t, f.Ancestors("math"))
	assert.Nil(t, f.Ancestors("missing"))
}

func TestFlattenNested(t *testing.T) {
	nested := []node{
		{id: "math", kids: []node{
			{id: "algebra", kids: []node{{id: "linear"}}},
			{id: "geometry"},
		}},
		{id: "physics"},
	}
	flat := tree.Flatten(nested,
		func(n node) []node { return n.kids },
		func(n node, parent string) node { n.parent = parent; n.kids = nil; return n },
	)
	assert.Equal(t, []string{"math", "algebra", "linear", "geometry", "physics"}, ids(flat))

	f := tree.Build(flat)
	assert.Equal(t, []string{"algebra", "math"}, f.Ancestors("linear"))
	assert.Equal(t, []string{"algebra", "geometry"}, ids(f.Children("math")))
}
