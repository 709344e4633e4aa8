package deps

// Node is one project or dependency in an extracted graph.
//
// Root nodes returned by a backend describe projects. Name and Version of a
// root may be overwritten before export; nothing mutates a node afterwards.
// Children may be shared between parents, and the model does not forbid
// cycles.
type Node struct {
	Name     string
	Version  string
	Type     Type
	Children []*Node
}

// NewNode creates a node without children.
func NewNode(t Type, name, version string) *Node {
	return &Node{Name: name, Version: version, Type: t}
}

// AddChild appends c to n's children and returns n.
func (n *Node) AddChild(c ...*Node) *Node {
	n.Children = append(n.Children, c...)
	return n
}

// Walk visits root and every node reachable from it in depth-first
// pre-order, following children in slice order. Each node is visited once,
// so shared nodes and cycles are safe. Returning false from fn skips the
// node's children.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	if root == nil {
		return
	}
	seen := make(map[*Node]bool)
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
}

// Count returns the number of distinct nodes and edges reachable from root.
func Count(root *Node) (nodes, edges int) {
	Walk(root, func(n *Node, _ int) bool {
		nodes++
		edges += len(n.Children)
		return true
	})
	return nodes, edges
}
