package tree

import (
	"fmt"

	"github.com/csm-adapt/karon"
)

// Builder links flat records into trees. Every record is a node; a record
// names its parent by an identifier which is compared to the identifiers of
// the other records.
//
// NodeID and ParentID extract identifiers from a node. A false second return
// value means "no identifier": a node without an ID cannot be a parent, a
// node without a parent ID is a root. Equal compares identifiers and defaults
// to string equality. Warn receives recoverable problems (currently
// *karon.MissingParentWarning) and defaults to logging them.
type Builder[T any] struct {
	NodeID   func(*Node[T]) (string, bool)
	ParentID func(*Node[T]) (string, bool)
	Equal    func(a, b string) bool
	Warn     func(error)
}

// Build connects nodes to their parents and returns the roots of the
// resulting forest, in input order.
//
// A record whose parent is referenced but missing becomes a root after a
// warning. If more than one record matches a parent reference, Build fails
// with an error wrapping karon.ErrAmbiguousKey; a record naming itself or one
// of its descendants fails with karon.ErrCycle. In case of an error the nodes
// may be partially linked.
func (b Builder[T]) Build(nodes []*Node[T]) ([]*Node[T], error) {
	if b.ParentID == nil {
		return nil, fmt.Errorf("tree builder needs a parent identifier")
	}
	warn := b.Warn
	if warn == nil {
		warn = func(err error) {
			tracer().Infof("%v", err)
		}
	}
	find := b.finder(nodes)
	var roots []*Node[T]
	for _, node := range nodes {
		if node == nil {
			continue
		}
		pid, ok := b.ParentID(node)
		if !ok {
			roots = append(roots, node)
			continue
		}
		parents := find(pid)
		switch len(parents) {
		case 0:
			id, _ := b.id(node)
			warn(&karon.MissingParentWarning{Node: id, Parent: pid})
			roots = append(roots, node)
		case 1:
			if err := parents[0].AddChild(node); err != nil {
				return roots, fmt.Errorf("cannot link %v to parent %q: %w", node, pid, err)
			}
		default:
			return roots, fmt.Errorf("parent %q matches %d records: %w", pid, len(parents),
				karon.ErrAmbiguousKey)
		}
	}
	tracer().Debugf("built %d tree(s) from %d records", len(roots), len(nodes))
	return roots, nil
}

func (b Builder[T]) id(node *Node[T]) (string, bool) {
	if b.NodeID == nil {
		return "", false
	}
	return b.NodeID(node)
}

// finder returns a lookup from parent identifiers to candidate nodes. With
// plain string equality an index is used, otherwise every node is compared.
func (b Builder[T]) finder(nodes []*Node[T]) func(string) []*Node[T] {
	if b.Equal == nil {
		index := make(map[string][]*Node[T], len(nodes))
		for _, node := range nodes {
			if node == nil {
				continue
			}
			if id, ok := b.id(node); ok {
				index[id] = append(index[id], node)
			}
		}
		return func(pid string) []*Node[T] {
			return index[pid]
		}
	}
	return func(pid string) []*Node[T] {
		var match []*Node[T]
		for _, node := range nodes {
			if node == nil {
				continue
			}
			if id, ok := b.id(node); ok && b.Equal(id, pid) {
				match = append(match, node)
			}
		}
		return match
	}
}
