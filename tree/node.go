package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/

import (
	"fmt"

	"github.com/csm-adapt/karon"
)

/*
We manage a tree of mutable nodes. Each nodes carries a payload of type parameter T.
Nodes maintain a slice of children and a back-reference to their parent. A parent
owns its children, while the back-reference does not own the parent.

Trees are not safe for concurrent mutation. Clients sharing trees between goroutines
have to synchronize access themselves.
*/

// Node is the base type our tree is built of.
type Node[T any] struct {
	parent   *Node[T]         // parent node of this node
	children childrenSlice[T] // ordered children nodes
	Payload  T                // nodes may carry a payload of arbitrary type
}

// NewNode creates a new tree node with a given payload.
func NewNode[T any](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", node.ChildCount(), node.Payload)
}

// AddChild appends a child node. The newly inserted node is connected to this
// node as its parent. If ch currently has a different parent, it is detached
// from it first.
//
// Adding a child which is already present is a no-op. Adding node itself or
// one of its ancestors would create a cycle and fails with karon.ErrCycle.
// A nil child is ignored.
func (node *Node[T]) AddChild(ch *Node[T]) error {
	return node.InsertChildAt(node.ChildCount(), ch)
}

// InsertChildAt inserts a child node at position i, shifting children at
// later positions. Positions beyond the current children append. Otherwise
// it behaves like AddChild.
func (node *Node[T]) InsertChildAt(i int, ch *Node[T]) error {
	if ch == nil {
		return nil
	}
	if node.isInLineOfDescent(ch) {
		tracer().Debugf("rejecting child %v of %v: cycle", ch, node)
		return karon.ErrCycle
	}
	if ch.parent == node {
		return nil // already there, which is what the client wanted
	}
	if ch.parent != nil {
		ch.parent.children.remove(ch)
	}
	node.children.insertChildAt(i, ch)
	ch.parent = node
	return nil
}

// isInLineOfDescent is true if n is node itself or an ancestor of node.
// Runs in O(depth).
func (node *Node[T]) isInLineOfDescent(n *Node[T]) bool {
	for anc := node; anc != nil; anc = anc.parent {
		if anc == n {
			return true
		}
	}
	return false
}

// SetParent makes node a child of p. See AddChild.
func (node *Node[T]) SetParent(p *Node[T]) error {
	if p == nil {
		node.Isolate()
		return nil
	}
	return p.AddChild(node)
}

// RemoveChild removes ch from the children of node. It returns false if ch is
// not a child of node.
func (node *Node[T]) RemoveChild(ch *Node[T]) bool {
	if ch == nil || ch.parent != node {
		return false
	}
	node.children.remove(ch)
	ch.parent = nil
	return true
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node[T]) Parent() *Node[T] {
	return node.parent
}

// Isolate removes a node from its parent.
// Isolate returns the isolated node.
func (node *Node[T]) Isolate() *Node[T] {
	if node != nil && node.parent != nil {
		node.parent.RemoveChild(node)
	}
	return node
}

// Root returns the root of the tree node is part of.
func (node *Node[T]) Root() *Node[T] {
	r := node
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors of node.
func (node *Node[T]) Depth() int {
	d := 0
	for anc := node.parent; anc != nil; anc = anc.parent {
		d++
	}
	return d
}

// IsLeaf is true for nodes without children.
func (node *Node[T]) IsLeaf() bool {
	return node.ChildCount() == 0
}

// ChildCount returns the number of children-nodes for a node.
func (node *Node[T]) ChildCount() int {
	return node.children.length()
}

// Child returns the n-th child of a node.
func (node *Node[T]) Child(n int) (*Node[T], bool) {
	if n < 0 || node.children.length() <= n {
		return nil, false
	}
	ch := node.children.child(n)
	return ch, ch != nil
}

// Children returns a slice with all children of a node.
// The slice is a copy; modifying it does not change the tree.
func (node *Node[T]) Children() []*Node[T] {
	return node.children.asSlice()
}

// IndexOfChild returns the index of a child within the list of children
// of its parent, or -1 if ch is not a child of node.
func (node *Node[T]) IndexOfChild(ch *Node[T]) int {
	for i, child := range node.children.slice {
		if ch == child {
			return i
		}
	}
	return -1
}

// --- Slices of children ------------------------------------------------------

type childrenSlice[T any] struct {
	slice []*Node[T]
}

func (chs *childrenSlice[T]) length() int {
	return len(chs.slice)
}

func (chs *childrenSlice[T]) insertChildAt(i int, child *Node[T]) {
	if i < 0 {
		i = 0
	}
	if i >= len(chs.slice) {
		chs.slice = append(chs.slice, child)
		return
	}
	chs.slice = append(chs.slice, nil)   // make room for one child
	copy(chs.slice[i+1:], chs.slice[i:]) // shift i+1..n
	chs.slice[i] = child
}

func (chs *childrenSlice[T]) remove(node *Node[T]) {
	for i, ch := range chs.slice {
		if ch == node {
			copy(chs.slice[i:], chs.slice[i+1:])
			chs.slice[len(chs.slice)-1] = nil
			chs.slice = chs.slice[:len(chs.slice)-1]
			return
		}
	}
}

func (chs *childrenSlice[T]) child(n int) *Node[T] {
	if n < 0 || n >= len(chs.slice) {
		return nil
	}
	return chs.slice[n]
}

func (chs *childrenSlice[T]) asSlice() []*Node[T] {
	children := make([]*Node[T], len(chs.slice))
	copy(children, chs.slice)
	return children
}
