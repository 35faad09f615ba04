/*
Package reduce implements reductions over loosely typed values, as collected
from record fields or attribute values.

Values which cannot be converted to a number are dropped from a reduction
instead of failing it. A reduction over nothing yields NaN.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package reduce

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karon.reduce'.
func tracer() tracing.Trace {
	return tracing.Select("karon.reduce")
}
