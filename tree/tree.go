package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Traversal denotes an order in which nodes of a tree are visited.
type Traversal int8

// Traversal orders. Children is non-recursive and visits the direct children
// of a node only.
const (
	NLR      Traversal = iota // pre-order
	LNR                       // in-order
	LRN                       // post-order
	Breadth                   // level by level
	Children                  // direct children only
)

func (t Traversal) String() string {
	switch t {
	case NLR:
		return "preorder"
	case LNR:
		return "inorder"
	case LRN:
		return "postorder"
	case Breadth:
		return "breadth"
	case Children:
		return "children"
	}
	return fmt.Sprintf("Traversal(%d)", int8(t))
}

// ParseTraversal maps a name like "preorder", "NLR" or "bfs" to a Traversal.
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preorder", "pre", "nlr":
		return NLR, nil
	case "inorder", "in", "lnr":
		return LNR, nil
	case "postorder", "post", "lrn":
		return LRN, nil
	case "breadth", "bfs", "levelorder":
		return Breadth, nil
	case "children":
		return Children, nil
	}
	return NLR, fmt.Errorf("unknown traversal order %q", s)
}

// Walk returns an iterator over the nodes of the tree rooted at root in
// order t. For t = Children, root itself is not part of the sequence.
func Walk[T any](root *Node[T], t Traversal) iter.Seq[*Node[T]] {
	switch t {
	case LNR:
		return Inorder(root)
	case LRN:
		return Postorder(root)
	case Breadth:
		return BreadthFirst(root)
	case Children:
		return func(yield func(*Node[T]) bool) {
			if root == nil {
				return
			}
			for _, ch := range root.Children() {
				if !yield(ch) {
					return
				}
			}
		}
	}
	return Preorder(root)
}

// Descendants returns an iterator over the nodes below root in order t,
// excluding root.
func Descendants[T any](root *Node[T], t Traversal) iter.Seq[*Node[T]] {
	return Select(Walk(root, t), func(n *Node[T]) bool {
		return n != root
	})
}

// --- Depth first ------------------------------------------------------------

// Preorder visits a node, then the subtrees of its children from left to right.
func Preorder[T any](root *Node[T]) iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		preorder(root, yield)
	}
}

func preorder[T any](node *Node[T], yield func(*Node[T]) bool) bool {
	if node == nil {
		return true
	}
	if !yield(node) {
		return false
	}
	for _, ch := range node.children.slice {
		if !preorder(ch, yield) {
			return false
		}
	}
	return true
}

// Postorder visits the subtrees of a node's children from left to right, then
// the node itself.
func Postorder[T any](root *Node[T]) iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		postorder(root, yield)
	}
}

func postorder[T any](node *Node[T], yield func(*Node[T]) bool) bool {
	if node == nil {
		return true
	}
	for _, ch := range node.children.slice {
		if !postorder(ch, yield) {
			return false
		}
	}
	return yield(node)
}

// Inorder visits the left children's subtrees, then the node, then the right
// children's subtrees. For a node with n children the first ⌈n/2⌉ children
// count as left children; leaves are visited on their own.
func Inorder[T any](root *Node[T]) iter.Seq[*Node[T]] {
	return inorderSeq(root, func(n int) int {
		return (n + 1) / 2
	})
}

// InorderSplit is an in-order traversal with an explicit split: for k ≥ 0 the
// first k+1 children of each node are left children, for k < 0 all but the
// last |k| children are. The split is clamped to the number of children, so
// k = 0 puts exactly the first child on the left.
func InorderSplit[T any](root *Node[T], k int) iter.Seq[*Node[T]] {
	return inorderSeq(root, func(n int) int {
		if k < 0 {
			return max(0, n+k)
		}
		return min(k+1, n)
	})
}

func inorderSeq[T any](root *Node[T], split func(int) int) iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		inorder(root, split, yield)
	}
}

func inorder[T any](node *Node[T], split func(int) int, yield func(*Node[T]) bool) bool {
	if node == nil {
		return true
	}
	chs := node.children.slice
	left := split(len(chs))
	assertThat(left >= 0 && left <= len(chs), "inorder split %d out of range", left)
	for _, ch := range chs[:left] {
		if !inorder(ch, split, yield) {
			return false
		}
	}
	if !yield(node) {
		return false
	}
	for _, ch := range chs[left:] {
		if !inorder(ch, split, yield) {
			return false
		}
	}
	return true
}

// --- Breadth first ----------------------------------------------------------

// BreadthFirst visits the trees rooted at roots level by level, each level
// from left to right.
func BreadthFirst[T any](roots ...*Node[T]) iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		level := make([]*Node[T], 0, len(roots))
		for _, r := range roots {
			if r != nil {
				level = append(level, r)
			}
		}
		for len(level) > 0 {
			var next []*Node[T]
			for _, node := range level {
				if !yield(node) {
					return
				}
				next = append(next, node.children.slice...)
			}
			level = next
		}
	}
}

// --- Predicates -------------------------------------------------------------

// Predicate is a function type to match against nodes of a tree.
type Predicate[T any] func(node *Node[T]) bool

// Whatever is a predicate to match anything (see type Predicate).
func Whatever[T any]() Predicate[T] {
	return func(*Node[T]) bool {
		return true
	}
}

// NodeIsLeaf is a predicate to match leafs of a tree.
func NodeIsLeaf[T any]() Predicate[T] {
	return func(node *Node[T]) bool {
		return node.ChildCount() == 0
	}
}

// Select lazily filters a sequence of nodes.
func Select[T any](seq iter.Seq[*Node[T]], predicate Predicate[T]) iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for node := range seq {
			if predicate(node) && !yield(node) {
				return
			}
		}
	}
}

// AncestorWith finds the nearest ancestor matching the given predicate.
// The search does not include the start node.
func (node *Node[T]) AncestorWith(predicate Predicate[T]) *Node[T] {
	if node == nil {
		return nil
	}
	for anc := node.parent; anc != nil; anc = anc.parent {
		if predicate(anc) {
			return anc
		}
	}
	return nil
}

// Ancestors iterates over the ancestors of node, starting with its parent.
func (node *Node[T]) Ancestors() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		if node == nil {
			return
		}
		for anc := node.parent; anc != nil; anc = anc.parent {
			if !yield(anc) {
				return
			}
		}
	}
}

// --- Actions ----------------------------------------------------------------

// Action is a function type to operate on tree nodes.
type Action[T any] func(node *Node[T], parent *Node[T], position int) error

// TopDown traverses a tree starting at (and including) the root node.
// The traversal guarantees that parents are always processed before
// their children.
//
// If the action function returns an error for a node, descending the branch
// below this node is aborted. TopDown returns the errors joined.
func TopDown[T any](root *Node[T], action Action[T]) error {
	if root == nil {
		return nil
	}
	var errs []error
	topDown(root, action, &errs)
	return errors.Join(errs...)
}

func topDown[T any](node *Node[T], action Action[T], errs *[]error) {
	position := 0
	if node.parent != nil {
		position = node.parent.IndexOfChild(node)
	}
	if err := action(node, node.parent, position); err != nil {
		tracer().Debugf("action failed for %v, skipping subtree: %v", node, err)
		*errs = append(*errs, err)
		return
	}
	for _, ch := range node.Children() {
		topDown(ch, action, errs)
	}
}

// BottomUp traverses a tree in post-order. The traversal guarantees that
// parents are not processed before all of their children.
//
// If the action function returns an error for a node, the parent is
// processed regardless.
func BottomUp[T any](root *Node[T], action Action[T]) error {
	var errs []error
	for node := range Postorder(root) {
		position := 0
		if node.parent != nil {
			position = node.parent.IndexOfChild(node)
		}
		if err := action(node, node.parent, position); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EmptyLike creates a tree with the same shape as the one rooted at root.
// Payloads of the new tree are computed by payload, which will be called
// for each node of the source tree.
func EmptyLike[S, T any](root *Node[S], payload func(*Node[S]) T) *Node[T] {
	if root == nil {
		return nil
	}
	clone := NewNode(payload(root))
	for _, ch := range root.children.slice {
		c := EmptyLike(ch, payload)
		c.parent = clone
		clone.children.slice = append(clone.children.slice, c)
	}
	return clone
}
