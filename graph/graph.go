package graph

import (
	"fmt"
	"iter"

	"github.com/csm-adapt/karon"
	"github.com/csm-adapt/karon/uid"
)

// Graph is a directed acyclic graph of Nodes. Nodes, successors and
// predecessors are kept in insertion order, which makes every traversal
// deterministic.
//
// The zero value is not usable; create graphs with New.
type Graph struct {
	nodes []*Node
	index map[uid.UID]int
	succ  map[uid.UID][]*Node
	pred  map[uid.UID][]*Node
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[uid.UID]int),
		succ:  make(map[uid.UID][]*Node),
		pred:  make(map[uid.UID][]*Node),
	}
}

// AddNode inserts a node. Adding a node which is already part of g is a
// no-op. A different node with the identity of a node of g is rejected with
// karon.ErrDuplicateIdentity.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: cannot add nil node", karon.ErrStructural)
	}
	if i, ok := g.index[n.id]; ok {
		if g.nodes[i] == n {
			return nil
		}
		return fmt.Errorf("node %v: %w", n, karon.ErrDuplicateIdentity)
	}
	g.index[n.id] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge links from as a parent of to, inserting nodes not yet part of g.
// Duplicate edges are ignored. An edge which would close a cycle (including
// a self-loop) is rejected with karon.ErrCycle, leaving g unchanged.
func (g *Graph) AddEdge(from, to *Node) error {
	if from == nil || to == nil {
		return fmt.Errorf("%w: cannot link nil node", karon.ErrStructural)
	}
	if from.id == to.id || g.reaches(to, from) {
		return fmt.Errorf("edge %v -> %v: %w", from, to, karon.ErrCycle)
	}
	for _, n := range []*Node{from, to} {
		if i, ok := g.index[n.id]; ok && g.nodes[i] != n {
			return fmt.Errorf("node %v: %w", n, karon.ErrDuplicateIdentity)
		}
	}
	for _, s := range g.succ[from.id] {
		if s.id == to.id {
			return nil
		}
	}
	g.AddNode(from)
	g.AddNode(to)
	g.succ[from.id] = append(g.succ[from.id], to)
	g.pred[to.id] = append(g.pred[to.id], from)
	g.edges++
	return nil
}

// reaches is true if there is a path from a to b.
func (g *Graph) reaches(a, b *Node) bool {
	if _, ok := g.index[a.id]; !ok {
		return false
	}
	for n := range Preorder(g, a) {
		if n.id == b.id {
			return true
		}
	}
	return false
}

// Node returns the node with identity id.
func (g *Graph) Node(id uid.UID) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Has is true if n is part of g.
func (g *Graph) Has(n *Node) bool {
	if n == nil {
		return false
	}
	_, ok := g.index[n.id]
	return ok
}

// Nodes returns the nodes of g in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Len returns the number of nodes of g.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges of g.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Edges iterates over all edges, grouped by parent in node order.
func (g *Graph) Edges() iter.Seq2[*Node, *Node] {
	return func(yield func(*Node, *Node) bool) {
		for _, from := range g.nodes {
			for _, to := range g.succ[from.id] {
				if !yield(from, to) {
					return
				}
			}
		}
	}
}

// Successors returns the children of n, in edge insertion order.
func (g *Graph) Successors(n *Node) []*Node {
	return g.succ[n.id]
}

// Predecessors returns the parents of n, in edge insertion order.
func (g *Graph) Predecessors(n *Node) []*Node {
	return g.pred[n.id]
}

// InDegree returns the number of parents of n.
func (g *Graph) InDegree(n *Node) int {
	return len(g.pred[n.id])
}

// OutDegree returns the number of children of n.
func (g *Graph) OutDegree(n *Node) int {
	return len(g.succ[n.id])
}

// Roots returns the nodes without parents, in node order.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.nodes {
		if g.InDegree(n) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// Gemels returns the parents of nodes with more than one parent, i.e. the
// nodes where separate lineages join. Nodes are listed once, in node order
// of the joining nodes and then in edge order.
func (g *Graph) Gemels() []*Node {
	var gemels []*Node
	seen := make(map[uid.UID]bool)
	for _, n := range g.nodes {
		if g.InDegree(n) < 2 {
			continue
		}
		for _, p := range g.pred[n.id] {
			if !seen[p.id] {
				seen[p.id] = true
				gemels = append(gemels, p)
			}
		}
	}
	return gemels
}

// Copy creates a graph of the same shape with new node instances. The copies
// keep identities and names, and get their own attribute sets holding the
// same attributes.
func (g *Graph) Copy() *Graph {
	c := New()
	for _, n := range g.nodes {
		c.AddNode(NodeWithUID(n.id, n.Name, n.Attrs.Clone()))
	}
	for from, to := range g.Edges() {
		f, _ := c.Node(from.id)
		t, _ := c.Node(to.id)
		c.succ[f.id] = append(c.succ[f.id], t)
		c.pred[t.id] = append(c.pred[t.id], f)
		c.edges++
	}
	assertThat(c.edges == g.edges, "copy has %d edges, original %d", c.edges, g.edges)
	return c
}

// --- Traversal --------------------------------------------------------------

// Preorder iterates depth-first over the nodes reachable from src, visiting
// a node before its children and children in edge order. Every node is
// visited once, even if it is reachable on more than one path.
func Preorder(g *Graph, src *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		visited := make(map[uid.UID]bool)
		g.dfs(src, visited, yield, nil)
	}
}

// Postorder iterates depth-first over the nodes reachable from src, visiting
// a node after all of its children. Every node is visited once.
func Postorder(g *Graph, src *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		visited := make(map[uid.UID]bool)
		g.dfs(src, visited, nil, yield)
	}
}

func (g *Graph) dfs(n *Node, visited map[uid.UID]bool, pre, post func(*Node) bool) bool {
	if n == nil || visited[n.id] {
		return true
	}
	visited[n.id] = true
	if pre != nil && !pre(n) {
		return false
	}
	for _, ch := range g.succ[n.id] {
		if !g.dfs(ch, visited, pre, post) {
			return false
		}
	}
	if post != nil {
		return post(n)
	}
	return true
}
