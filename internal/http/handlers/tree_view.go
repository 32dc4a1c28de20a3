package handlers

import (
	"eduadmin/internal/tree"
)

// indentStep is the per-level padding of a tree row, in pixels.
const indentStep = 20

// treeRow is one table line of the categories or menus page.
type treeRow struct {
	ID     string
	Label  string
	Detail string
	Order  int
	Level  int
	Indent int
	Leaf   bool
	Active bool
}

func treeRows[T tree.Item](rows []tree.Row[T], view func(T) treeRow) []treeRow {
	out := make([]treeRow, 0, len(rows))
	for _, r := range rows {
		v := view(r.Item)
		v.ID = r.Item.NodeID()
		v.Order = r.Item.SortOrder()
		v.Level = r.Level
		v.Indent = r.Level*indentStep + 10
		v.Leaf = r.Leaf
		out = append(out, v)
	}
	return out
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

func parentOptions[T tree.Item](cands []T, label func(T) string, selected string) []option {
	out := make([]option, 0, len(cands))
	for _, x := range cands {
		out = append(out, option{Value: x.NodeID(), Label: label(x), Selected: x.NodeID() == selected})
	}
	return out
}

// notices maps the ?notice= value of a post-redirect-get to its banner.
var notices = map[string]string{
	"created":    "Saved.",
	"updated":    "Changes saved.",
	"deleted":    "Deleted.",
	"normalized": "Order renumbered.",
	"approved":   "Document approved.",
	"rejected":   "Document rejected.",
}
