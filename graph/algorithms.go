package graph

// Aggregate merges the attributes of descendants into their ancestors. For
// every source, nodes are visited in post-order and each node merges the
// attribute sets of its direct children into its own. Without sources, the
// roots of g are used. Aggregate modifies g in place and is idempotent.
func Aggregate(g *Graph, sources ...*Node) *Graph {
	if len(sources) == 0 {
		sources = g.Roots()
	}
	for _, src := range sources {
		for parent := range Postorder(g, src) {
			for _, child := range g.succ[parent.id] {
				parent.Attrs.Merge(child.Attrs)
			}
		}
	}
	tracer().Debugf("aggregated from %d source(s)", len(sources))
	return g
}

// Propagate merges the attributes of ancestors into their descendants. For
// every start node, nodes are visited in pre-order and each node merges its
// attribute set into those of its direct children.
//
// Without sources, the roots of g are used. In any case the gemels of g are
// appended as additional start nodes: where lineages join, a node reached
// late on one path may already have passed its attributes on to its
// children, and restarting at the joining parents completes the transfer.
// Propagate modifies g in place and is idempotent.
func Propagate(g *Graph, sources ...*Node) *Graph {
	if len(sources) == 0 {
		sources = g.Roots()
	}
	starts := append(append([]*Node(nil), sources...), g.Gemels()...)
	for _, src := range starts {
		for parent := range Preorder(g, src) {
			for _, child := range g.succ[parent.id] {
				child.Attrs.Merge(parent.Attrs)
			}
		}
	}
	tracer().Debugf("propagated from %d start node(s)", len(starts))
	return g
}

// Disseminate spreads attributes both up and down the graph. Running
// Aggregate and Propagate one after the other would let attributes travel up
// one branch and down another, mixing unrelated lineages. Instead both run
// on separate copies of g, and every node of g receives the union of its
// aggregated and propagated sets. Ancestors thus receive attributes of
// descendants only, and descendants those of ancestors only.
//
// sources are handed to both Aggregate and Propagate. If sources are given
// but none of them is part of g, g is left unchanged. Disseminate modifies g
// in place.
func Disseminate(g *Graph, sources ...*Node) *Graph {
	agg, prop := g.Copy(), g.Copy()
	aggSources, propSources := resolve(agg, sources), resolve(prop, sources)
	if len(sources) > 0 && len(aggSources) == 0 {
		tracer().Infof("disseminate: none of %d source(s) is part of the graph", len(sources))
		return g
	}
	Aggregate(agg, aggSources...)
	Propagate(prop, propSources...)
	for _, n := range g.nodes {
		a, _ := agg.Node(n.id)
		p, _ := prop.Node(n.id)
		n.Attrs.Merge(a.Attrs)
		n.Attrs.Merge(p.Attrs)
	}
	return g
}

// resolve maps nodes to the nodes of c with the same identity. Nodes not
// part of c are dropped.
func resolve(c *Graph, nodes []*Node) []*Node {
	var resolved []*Node
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if r, ok := c.Node(n.id); ok {
			resolved = append(resolved, r)
		} else {
			tracer().Infof("ignoring source %v, which is not part of the graph", n)
		}
	}
	return resolved
}
