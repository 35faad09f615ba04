/*
Package sample holds the records of a sample lineage and the agents which move
data through lineage trees.

A Sample is a flat record of named fields which carries read/write gates.
Samples are linked into trees by a Builder, comparing each sample's parent
reference to the identifiers of the other samples. Agents then aggregate
values from descendants into an ancestor (Aggregate) or copy values from
parents down to their children (PropagateKey).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package sample

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karon.sample'.
func tracer() tracing.Trace {
	return tracing.Select("karon.sample")
}
