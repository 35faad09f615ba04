/*
Package tree implements an all-purpose ownership tree.

Nodes carry a payload of arbitrary type and own an ordered list of children.
Every node has at most one parent, and links which would make a node its own
ancestor are rejected.

Traversal

Trees are traversed lazily: every traversal is an iterator (iter.Seq) which
generates nodes on demand and may be restarted by calling the traversal
function again.

   Preorder(root)        NLR: node, then the children's subtrees
   Inorder(root)         LNR: left children, node, right children
   Postorder(root)       LRN: the children's subtrees, then node
   BreadthFirst(root)    level by level, left to right

Building trees

Records which reference their parent by an identifier are linked into trees
by a Builder. Records referencing a parent which is not present are treated
as roots, and a karon.MissingParentWarning is reported.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karon.tree'.
func tracer() tracing.Trace {
	return tracing.Select("karon.tree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("karon.tree: "+msg, msgargs...)
		panic(msg)
	}
}
