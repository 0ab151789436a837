package lockfile

// ChainNode is one dependent in a traced dependency chain.
//
// A node stores only a link to its parent: the package it depends on on the
// way back to the traced target. Nodes with a nil Parent are direct
// dependents of the target and form the roots of the forest.
type ChainNode struct {
	Name    string
	Version string
	Type    DependencyType
	Parent  *ChainNode
}

// String returns the node as "name@version".
func (n *ChainNode) String() string {
	return n.Name + "@" + n.Version
}

// Depth returns the number of links between n and its root (0 for roots).
func (n *ChainNode) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Path returns n followed by each ancestor up to and including its root.
func (n *ChainNode) Path() []*ChainNode {
	path := []*ChainNode{n}
	for p := n.Parent; p != nil; p = p.Parent {
		path = append(path, p)
	}
	return path
}

// Root returns the direct dependent at the top of n's chain.
func (n *ChainNode) Root() *ChainNode {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Trace is the result of [Analyzer.TraceDependencyChain].
type Trace struct {
	// Target is the traced package name.
	Target string
	// Roots are the direct dependents of Target in discovery order.
	Roots []*ChainNode
	// Nodes holds every node in discovery order (roots included).
	Nodes []*ChainNode
}

// Leaves returns the nodes that are no other node's parent, in discovery
// order. Each leaf ends exactly one maximal chain.
func (t *Trace) Leaves() []*ChainNode {
	parents := make(map[*ChainNode]bool, len(t.Nodes))
	for _, n := range t.Nodes {
		if n.Parent != nil {
			parents[n.Parent] = true
		}
	}
	var leaves []*ChainNode
	for _, n := range t.Nodes {
		if !parents[n] {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// Chains returns one leaf-to-root path per leaf.
func (t *Trace) Chains() [][]*ChainNode {
	leaves := t.Leaves()
	chains := make([][]*ChainNode, 0, len(leaves))
	for _, l := range leaves {
		chains = append(chains, l.Path())
	}
	return chains
}

// Children returns the nodes whose parent is n, in discovery order.
func (t *Trace) Children(n *ChainNode) []*ChainNode {
	var out []*ChainNode
	for _, c := range t.Nodes {
		if c.Parent == n {
			out = append(out, c)
		}
	}
	return out
}
