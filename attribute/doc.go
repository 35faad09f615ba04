/*
Package attribute implements identified, named, valued facts (Attributes) and
identity-deduplicated collections of them (Sets).

An Attribute is a single fact, for example one measurement of a sample.
It carries an identity, a set of synonymous names, and a value. Two
Attributes are the same Attribute if and only if their identities are equal;
names and values do not take part in equality. This lets the same measurement,
reached along two paths of a lineage graph, merge exactly once, while two
different measurements that happen to share a name stay distinct.

Lookup by name is ambiguous on purpose: a Set may hold several Attributes
with a common name, and Get returns all of them.

Matching is explicit. A Key decides whether it matches an Attribute:

   attribute.Name("Hv (HV)")     matches by name
   attribute.ID(id)              matches by identity
   attribute.Any("…")            matches by name or by identity string
   attr                          an *Attribute matches by identity

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package attribute

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karon.attribute'.
func tracer() tracing.Trace {
	return tracing.Select("karon.attribute")
}
