/*
Package operational runs gated reads and writes over the subtree of a node.

Every node of an operational tree carries two flags: a node is readable if
clients may extract data from it, and writeable if clients may mutate it.
A node lends itself to a read (write) from an ancestor only if it is readable
(writeable) and so is every node on the path between it and the ancestor.
The flag of the invoking node itself does not matter. An unreadable node thus
masks its whole subtree from reads issued above it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package operational

import (
	"github.com/csm-adapt/karon/tree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karon.operational'.
func tracer() tracing.Trace {
	return tracing.Select("karon.operational")
}

// Gated is implemented by node payloads carrying access flags.
type Gated interface {
	Readable() bool
	Writeable() bool
}

// Gate holds access flags and is meant to be embedded into payload types.
// The zero value is readable and writeable.
type Gate struct {
	unreadable  bool
	unwriteable bool
}

// ReadWrite returns a gate which is readable and writeable.
func ReadWrite() Gate { return Gate{} }

// ReadOnly returns a gate which is readable but not writeable.
func ReadOnly() Gate { return Gate{unwriteable: true} }

// WriteOnly returns a gate which is writeable but not readable.
func WriteOnly() Gate { return Gate{unreadable: true} }

// Immutable returns a gate which is neither readable nor writeable.
func Immutable() Gate { return Gate{unreadable: true, unwriteable: true} }

// Readable is part of interface Gated.
func (g Gate) Readable() bool { return !g.unreadable }

// Writeable is part of interface Gated.
func (g Gate) Writeable() bool { return !g.unwriteable }

// SetReadable changes the read flag.
func (g *Gate) SetReadable(b bool) { g.unreadable = !b }

// SetWriteable changes the write flag.
func (g *Gate) SetWriteable(b bool) { g.unwriteable = !b }

// Default traversal orders: reads collect bottom-up, writes flow top-down.
const (
	DefaultGetOrder = tree.LRN
	DefaultPutOrder = tree.NLR
)

// Eligible is true if every node on the path from n up to, but excluding,
// root satisfies flag. n is expected to be in the subtree of root. If it is
// not, every ancestor of n is checked.
func Eligible[T any](root, n *tree.Node[T], flag func(T) bool) bool {
	for x := n; x != nil && x != root; x = x.Parent() {
		if !flag(x.Payload) {
			return false
		}
	}
	return true
}

func readable[T Gated](payload T) bool  { return payload.Readable() }
func writeable[T Gated](payload T) bool { return payload.Writeable() }

// Gets extracts data from the eligible descendants of node, in the given
// traversal order. node itself is never part of the result. If callback is
// non-nil, it is called with node and the extracted results before they are
// returned.
func Gets[T Gated, R any](node *tree.Node[T], extract func(*tree.Node[T]) R, order tree.Traversal,
	callback func(*tree.Node[T], []R)) []R {
	//
	var results []R
	if node == nil {
		return results
	}
	for n := range tree.Descendants(node, order) {
		if Eligible(node, n, readable[T]) {
			results = append(results, extract(n))
		}
	}
	tracer().Debugf("get from %v (%s): %d results", node, order, len(results))
	if callback != nil {
		callback(node, results)
	}
	return results
}

// Puts calls mutate on every eligible descendant of node, in the given
// traversal order. Ineligible nodes are skipped silently. It returns the
// number of nodes visited.
func Puts[T Gated](node *tree.Node[T], mutate func(*tree.Node[T]), order tree.Traversal) int {
	if node == nil {
		return 0
	}
	count := 0
	for n := range tree.Descendants(node, order) {
		if Eligible(node, n, writeable[T]) {
			mutate(n)
			count++
		}
	}
	tracer().Debugf("put into %v (%s): %d nodes", node, order, count)
	return count
}
