/*
Package graph disseminates attributes through a directed acyclic graph.

Nodes of the graph carry a set of attributes. Edges point from a parent
(an origin, e.g. the material a sample was cut from) to a child. Attributes
flow in two directions:

   Aggregate     children's attributes are merged into their ancestors
   Propagate     parents' attributes are merged into their descendants
   Disseminate   both, without mixing attributes of unrelated branches

Attributes are merged by identity: the same attribute reaching a node twice
is stored once, and an attribute is never copied into a new identity.

Graphs are not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package graph

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karon.graph'.
func tracer() tracing.Trace {
	return tracing.Select("karon.graph")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("karon.graph: "+msg, msgargs...)
		panic(msg)
	}
}
