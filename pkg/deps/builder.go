package deps

// Builder assembles a dependency graph from the flat package lists found in
// lock files. Packages are addressed by a caller-chosen key (a normalized
// name, an install path, "name version", ...), edges are added by key, and
// Project attaches the result to a project root.
type Builder struct {
	typ      Type
	nodes    map[string]*Node
	order    []string
	edges    map[[2]string]bool
	incoming map[string]bool
}

// NewBuilder returns an empty builder for packages of type t.
func NewBuilder(t Type) *Builder {
	return &Builder{
		typ:      t,
		nodes:    make(map[string]*Node),
		edges:    make(map[[2]string]bool),
		incoming: make(map[string]bool),
	}
}

// Add registers a package under key. The first registration wins; later
// calls return the existing node unchanged.
func (b *Builder) Add(key, name, version string) *Node {
	if n, ok := b.nodes[key]; ok {
		return n
	}
	n := NewNode(b.typ, name, version)
	b.nodes[key] = n
	b.order = append(b.order, key)
	return n
}

// Node returns the package registered under key.
func (b *Builder) Node(key string) (*Node, bool) {
	n, ok := b.nodes[key]
	return n, ok
}

// Len returns the number of registered packages.
func (b *Builder) Len() int { return len(b.order) }

// Link adds an edge between two registered packages. Unknown keys and
// repeated edges are ignored; the return value reports whether an edge was
// added.
func (b *Builder) Link(from, to string) bool {
	parent, ok := b.nodes[from]
	if !ok {
		return false
	}
	child, ok := b.nodes[to]
	if !ok {
		return false
	}
	edge := [2]string{from, to}
	if b.edges[edge] {
		return false
	}
	b.edges[edge] = true
	b.incoming[to] = true
	parent.AddChild(child)
	return true
}

// Tops returns the packages nobody depends on, in registration order.
func (b *Builder) Tops() []*Node {
	var tops []*Node
	for _, key := range b.order {
		if !b.incoming[key] {
			tops = append(tops, b.nodes[key])
		}
	}
	return tops
}

// Project creates a project root whose children are the packages under
// direct. Keys that were never registered are skipped. With no direct keys
// the root adopts Tops instead.
func (b *Builder) Project(name, version string, direct ...string) *Node {
	root := NewNode(b.typ, name, version)
	if len(direct) == 0 {
		return root.AddChild(b.Tops()...)
	}
	seen := make(map[string]bool, len(direct))
	for _, key := range direct {
		if n, ok := b.nodes[key]; ok && !seen[key] {
			seen[key] = true
			root.AddChild(n)
		}
	}
	return root
}
