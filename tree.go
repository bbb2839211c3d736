package thunderframe

import "slices"

// columnTree is a mutable arena copy of a table's column tree used while a
// transform runs. Nodes are addressed by index; node 0 is the table root.
// Groups are expanded lazily, so subtrees a transform never touches are
// reused as-is when the tree is rebuilt.
type columnTree struct {
	nodes []treeNode
	rows  int
}

type treeNode struct {
	name     string
	col      Column // leaf column, or the original group before expansion
	parent   int
	group    bool
	expanded bool
	children []int
	pruned   bool // lost a child during this transform
}

func newColumnTree(t *Table) *columnTree {
	tr := &columnTree{rows: t.rows}
	tr.nodes = append(tr.nodes, treeNode{parent: -1, group: true, expanded: true})
	for _, c := range t.columns {
		tr.nodes[0].children = append(tr.nodes[0].children, tr.addNode(0, c))
	}
	return tr
}

func (tr *columnTree) addNode(parent int, c Column) int {
	_, isGroup := c.(*GroupColumn)
	tr.nodes = append(tr.nodes, treeNode{name: c.Name(), col: c, parent: parent, group: isGroup})
	return len(tr.nodes) - 1
}

func (tr *columnTree) expand(id int) {
	n := &tr.nodes[id]
	if !n.group || n.expanded {
		return
	}
	n.expanded = true
	g := n.col.(*GroupColumn)
	children := make([]int, 0, g.table.NumColumns())
	for _, c := range g.table.columns {
		children = append(children, tr.addNode(id, c))
	}
	tr.nodes[id].children = children
}

func (tr *columnTree) child(parent int, name string) int {
	tr.expand(parent)
	for _, id := range tr.nodes[parent].children {
		if tr.nodes[id].name == name {
			return id
		}
	}
	return -1
}

func (tr *columnTree) childNames(parent int) []string {
	tr.expand(parent)
	names := make([]string, len(tr.nodes[parent].children))
	for i, id := range tr.nodes[parent].children {
		names[i] = tr.nodes[id].name
	}
	return names
}

// find returns the node at path.
func (tr *columnTree) find(path Path) (int, error) {
	if len(path) == 0 {
		return 0, nil
	}
	cur := 0
	for i, name := range path {
		if !tr.nodes[cur].group {
			if tr.nodes[cur].col.Kind() == KindFrame {
				return -1, ErrInsideFrame(path)
			}
			return -1, ErrColumnNotFound(path, nil)
		}
		next := tr.child(cur, name)
		if next < 0 {
			return -1, ErrColumnNotFound(path[:i+1], tr.childNames(cur))
		}
		cur = next
	}
	return cur, nil
}

func (tr *columnTree) path(id int) Path {
	var p Path
	for ; id > 0; id = tr.nodes[id].parent {
		p = append(p, tr.nodes[id].name)
	}
	slices.Reverse(p)
	return p
}

// ensureGroup returns the group node at path, creating missing groups.
func (tr *columnTree) ensureGroup(path Path) (int, error) {
	cur := 0
	for i, name := range path {
		next := tr.child(cur, name)
		if next < 0 {
			tr.nodes = append(tr.nodes, treeNode{name: name, parent: cur, group: true, expanded: true})
			next = len(tr.nodes) - 1
			tr.nodes[cur].children = append(tr.nodes[cur].children, next)
		} else if !tr.nodes[next].group {
			if tr.nodes[next].col.Kind() == KindFrame {
				return -1, ErrInsideFrame(path)
			}
			return -1, ErrNotAGroup(path[:i+1])
		}
		cur = next
	}
	return cur, nil
}

// detach unlinks a node from its parent and returns its former position.
func (tr *columnTree) detach(id int) int {
	parent := tr.nodes[id].parent
	children := tr.nodes[parent].children
	pos := slices.Index(children, id)
	if pos < 0 {
		return -1
	}
	tr.nodes[parent].children = slices.Delete(children, pos, pos+1)
	tr.nodes[parent].pruned = true
	return pos
}

// attach links node id under parent at pos (negative appends), failing on a
// sibling name collision.
func (tr *columnTree) attach(parent, id, pos int) error {
	tr.expand(parent)
	name := tr.nodes[id].name
	if tr.child(parent, name) >= 0 {
		return ErrDuplicateColumn(tr.path(parent).Append(name))
	}
	children := tr.nodes[parent].children
	if pos < 0 || pos > len(children) {
		pos = len(children)
	}
	tr.nodes[parent].children = slices.Insert(children, pos, id)
	tr.nodes[id].parent = parent
	return nil
}

// rename changes a node's name in place.
func (tr *columnTree) rename(id int, name string) {
	n := &tr.nodes[id]
	n.name = name
}

// newLeaf adds an unattached node for c.
func (tr *columnTree) newLeaf(c Column) int {
	return tr.addNode(-1, c)
}

// replace swaps the column held by a node, keeping its name and position.
func (tr *columnTree) replace(id int, c Column) {
	_, isGroup := c.(*GroupColumn)
	n := &tr.nodes[id]
	n.col = c
	n.group = isGroup
	n.expanded = false
	n.children = nil
}

// leaves returns the non-group descendants of id in depth-first order.
func (tr *columnTree) leaves(id int) []int {
	var out []int
	tr.expand(id)
	for _, c := range tr.nodes[id].children {
		if tr.nodes[c].group {
			out = append(out, tr.leaves(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (tr *columnTree) build() *Table {
	cols, _ := tr.buildChildren(0)
	return newTable(cols, tr.rows)
}

func (tr *columnTree) buildChildren(id int) ([]Column, bool) {
	lostChild := false
	cols := make([]Column, 0, len(tr.nodes[id].children))
	for _, c := range tr.nodes[id].children {
		col := tr.buildNode(c)
		if col == nil {
			lostChild = true
			continue
		}
		cols = append(cols, col)
	}
	return cols, lostChild
}

// buildNode returns nil for a group emptied by this transform.
func (tr *columnTree) buildNode(id int) Column {
	n := tr.nodes[id]
	if !n.group || !n.expanded {
		if n.col.Name() != n.name {
			return n.col.Rename(n.name)
		}
		return n.col
	}
	cols, lostChild := tr.buildChildren(id)
	if len(cols) == 0 && (n.pruned || lostChild) {
		return nil
	}
	return &GroupColumn{name: n.name, table: newTable(cols, tr.rows)}
}
