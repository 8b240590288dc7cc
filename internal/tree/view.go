package tree

import "github.com/justyntemme/maskr/internal/debug"

// IndentStep is the horizontal indent per depth level in dp.
const IndentStep = 20

// Row is one visible line of the tree.
type Row struct {
	Node        *Node
	Depth       int
	Indent      int // IndentStep * Depth
	HasChildren bool
	Expanded    bool
	Selected    bool
}

// View tracks which folders are expanded. Selection is owned by the caller
// and only passed in for highlighting.
type View struct {
	expanded map[string]bool
}

// NewView creates a view with the given folders expanded.
func NewView(expanded ...string) *View {
	v := &View{expanded: make(map[string]bool, len(expanded))}
	for _, p := range expanded {
		v.expanded[p] = true
	}
	return v
}

// IsExpanded reports whether path is in the expansion set.
func (v *View) IsExpanded(path string) bool { return v.expanded[path] }

// Expanded returns the number of expanded folders.
func (v *View) Expanded() int { return len(v.expanded) }

// Click handles activation of a row. Folders become the new selection and
// toggle their expansion when they have children. Files are ignored.
func (v *View) Click(n *Node) (string, bool) {
	if n == nil || n.Kind != Folder {
		return "", false
	}
	if n.HasChildren() {
		v.expanded[n.Path] = !v.expanded[n.Path]
		debug.Log(debug.TREE, "toggle %s expanded=%v", n.Path, v.expanded[n.Path])
	}
	return n.Path, true
}

// Rows flattens the visible part of the forest. Children of a collapsed
// folder are omitted.
func (v *View) Rows(nodes []*Node, selected string) []Row {
	var rows []Row
	v.appendRows(&rows, nodes, 0, selected)
	return rows
}

func (v *View) appendRows(rows *[]Row, nodes []*Node, depth int, selected string) {
	for _, n := range nodes {
		hasChildren := n.HasChildren()
		expanded := hasChildren && v.expanded[n.Path]
		*rows = append(*rows, Row{
			Node:        n,
			Depth:       depth,
			Indent:      IndentStep * depth,
			HasChildren: hasChildren,
			Expanded:    expanded,
			Selected:    n.Path == selected,
		})
		if expanded {
			v.appendRows(rows, n.Children, depth+1, selected)
		}
	}
}
