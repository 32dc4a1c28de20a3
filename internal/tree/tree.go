// Package tree turns flat parent-referencing lists (categories, menus) into
// display forests and answers the ordering and reparenting questions the
// edit forms need.
//
// Nodes reference their parent by id only. A Forest keeps the flat slice
// and index-based child lists, so no node ever points at another.
package tree

import (
	"errors"
	"math"
)

var (
	ErrSelfParent    = errors.New("a node cannot be its own parent")
	ErrUnknownParent = errors.New("parent does not exist")
	ErrCycle         = errors.New("parent is a descendant of the node")
)

// Item is a node in a flat list. ParentRef returns "" for roots.
type Item interface {
	NodeID() string
	ParentRef() string
	SortOrder() int
}

// Row is one line of the flattened display.
type Row[T Item] struct {
	Item  T
	Level int
	Leaf  bool
}

type Forest[T Item] struct {
	items    []T
	index    map[string]int
	parent   []int
	children [][]int
	roots    []int
}

// Build groups flat by parent reference. Sibling order is the order of
// flat; nothing is re-sorted. Nodes whose parent is missing from flat, or
// who name themselves as parent, become roots.
func Build[T Item](flat []T) *Forest[T] {
	f := &Forest[T]{
		items:    flat,
		index:    make(map[string]int, len(flat)),
		parent:   make([]int, len(flat)),
		children: make([][]int, len(flat)),
	}
	for i, it := range flat {
		if _, dup := f.index[it.NodeID()]; !dup {
			f.index[it.NodeID()] = i
		}
	}
	for i, it := range flat {
		p := -1
		if ref := it.ParentRef(); ref != "" {
			if j, ok := f.index[ref]; ok && j != i {
				p = j
			}
		}
		f.parent[i] = p
		if p < 0 {
			f.roots = append(f.roots, i)
		} else {
			f.children[p] = append(f.children[p], i)
		}
	}
	return f
}

func (f *Forest[T]) Len() int { return len(f.items) }

func (f *Forest[T]) Find(id string) (T, bool) {
	i, ok := f.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return f.items[i], true
}

// Roots returns the top-level nodes in server order.
func (f *Forest[T]) Roots() []T {
	out := make([]T, 0, len(f.roots))
	for _, i := range f.roots {
		out = append(out, f.items[i])
	}
	return out
}

func (f *Forest[T]) Children(id string) []T {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	out := make([]T, 0, len(f.children[i]))
	for _, c := range f.children[i] {
		out = append(out, f.items[c])
	}
	return out
}

// Rows flattens the forest depth-first, pre-order. Level is the number of
// ancestors. Every node is emitted exactly once, including nodes stuck on
// a parent cycle, which start from the first of them in flat order.
func (f *Forest[T]) Rows() []Row[T] {
	rows := make([]Row[T], 0, len(f.items))
	seen := make([]bool, len(f.items))
	var walk func(i, level int)
	walk = func(i, level int) {
		if seen[i] {
			return
		}
		seen[i] = true
		rows = append(rows, Row[T]{Item: f.items[i], Level: level, Leaf: len(f.children[i]) == 0})
		for _, c := range f.children[i] {
			walk(c, level+1)
		}
	}
	for _, r := range f.roots {
		walk(r, 0)
	}
	for i := range f.items {
		walk(i, 0)
	}
	return rows
}

// Ancestors lists the ids above id, nearest first.
func (f *Forest[T]) Ancestors(id string) []string {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	var out []string
	for p := f.parent[i]; p >= 0 && len(out) < len(f.items); p = f.parent[p] {
		out = append(out, f.items[p].NodeID())
	}
	return out
}

// ParentCandidates is every node that editingID may be moved under: all
// nodes except editingID itself and its descendants. An empty editingID
// (a new node) gets every node.
func (f *Forest[T]) ParentCandidates(editingID string) []T {
	excluded := make([]bool, len(f.items))
	if i, ok := f.index[editingID]; ok {
		stack := []int{i}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if excluded[n] {
				continue
			}
			excluded[n] = true
			stack = append(stack, f.children[n]...)
		}
	}
	out := make([]T, 0, len(f.items))
	for i, it := range f.items {
		if excluded[i] || it.NodeID() == editingID {
			continue
		}
		out = append(out, it)
	}
	return out
}

// CanReparent validates moving id under parentID ("" = root). id may be
// unknown, which is the case for a node that is being created.
func (f *Forest[T]) CanReparent(id, parentID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == id {
		return ErrSelfParent
	}
	p, ok := f.index[parentID]
	if !ok {
		return ErrUnknownParent
	}
	for steps := 0; p >= 0 && steps <= len(f.items); steps++ {
		if f.items[p].NodeID() == id {
			return ErrCycle
		}
		p = f.parent[p]
	}
	return nil
}

// NextOrder is the order value for a new last child of parentID ("" =
// root): 1 when there are no siblings, else one more than the largest
// sibling order. A missing order reads as 0.
func NextOrder[T Item](flat []T, parentID string) int {
	highest, found := math.MinInt, false
	for _, it := range flat {
		if it.ParentRef() != parentID {
			continue
		}
		found = true
		if o := it.SortOrder(); o > highest {
			highest = o
		}
	}
	if !found {
		return 1
	}
	return highest + 1
}

// Flatten walks a nested tree (as returned by the /tree endpoints) in
// pre-order and returns its nodes with parent references filled in by
// withParent.
func Flatten[T Item](nested []T, children func(T) []T, withParent func(T, string) T) []T {
	var out []T
	var walk func(nodes []T, parentID string)
	walk = func(nodes []T, parentID string) {
		for _, n := range nodes {
			out = append(out, withParent(n, parentID))
			walk(children(n), n.NodeID())
		}
	}
	walk(nested, "")
	return out
}
