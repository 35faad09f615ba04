package graph

import (
	"github.com/csm-adapt/karon/sample"
	"github.com/csm-adapt/karon/tree"
)

// FromTree converts lineage trees into a graph. Every sample becomes a node
// holding one attribute per field, named by name (which may be nil), and every
// parent/child link becomes an edge.
func FromTree(roots []*sample.Node, name func(*sample.Node) string) (*Graph, error) {
	g := New()
	nodes := make(map[*sample.Node]*Node)
	for _, root := range roots {
		for sn := range tree.Preorder(root) {
			if _, ok := nodes[sn]; ok {
				continue
			}
			n := NewNode("")
			if name != nil {
				n.Name = name(sn)
			}
			n.Attrs = sample.ToAttributes(sn.Payload)
			nodes[sn] = n
			if err := g.AddNode(n); err != nil {
				return nil, err
			}
			if p := sn.Parent(); p != nil {
				if err := g.AddEdge(nodes[p], n); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}
