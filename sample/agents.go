package sample

import (
	"maps"
	"slices"

	"github.com/csm-adapt/karon/reduce"
	"github.com/csm-adapt/karon/tree"
	"github.com/csm-adapt/karon/tree/operational"
)

// Reducer is called with the node an aggregation was started from and the
// values collected from its descendants.
type Reducer func(at *Node, values []any)

// Aggregate collects field key from the readable descendants of root, in
// post-order. Descendants without the field contribute nil. If reducer is
// non-nil it is applied to the collected values.
func Aggregate(root *Node, key string, reducer Reducer) []any {
	return operational.Gets(root, Get(key), operational.DefaultGetOrder, reducer)
}

// PropagateKey copies field parentKey of every parent into field childKey of
// its writeable children, top-down. Existing child values are kept unless
// overwrite is set, and parents lacking the field propagate nothing. It
// returns the number of nodes written to.
func PropagateKey(root *Node, parentKey, childKey string, overwrite bool) int {
	if childKey == "" {
		childKey = parentKey
	}
	from, put := Get(parentKey), Put(childKey, overwrite)
	count := 0
	operational.Puts(root, func(n *Node) {
		if n.Payload == nil {
			return
		}
		if _, ok := n.Payload.Fields[childKey]; ok && !overwrite {
			return
		}
		if v := from(n.Parent()); v != nil {
			put(n, v)
			count++
		}
	}, operational.DefaultPutOrder)
	tracer().Debugf("propagated %q to %d nodes", parentKey, count)
	return count
}

// Reduction summarizes numeric values and stores the result in field Key.
type Reduction struct {
	Key    string
	Reduce func([]any) float64
}

// Reducer returns a Reducer storing the reduction of the numeric values
// collected. Non-numeric values are ignored. If there are no numeric values,
// nothing is stored. Existing values are not overwritten.
func (r Reduction) Reducer() Reducer {
	put := Put(r.Key, false)
	return func(at *Node, values []any) {
		if len(reduce.Floats(values)) == 0 {
			tracer().Debugf("%s: no numeric values at %v", r.Key, at)
			return
		}
		put(at, r.Reduce(values))
	}
}

// Mean is a reduction storing the arithmetic mean as "mean <key>".
func Mean(key string) Reduction {
	return Reduction{Key: "mean " + key, Reduce: reduce.Mean}
}

// Median is a reduction storing the median as "median <key>".
func Median(key string) Reduction {
	return Reduction{Key: "median " + key, Reduce: reduce.Median}
}

// Std is a reduction storing the population standard deviation as "std <key>".
func Std(key string) Reduction {
	return Reduction{Key: "std " + key, Reduce: reduce.Std}
}

// MeanReducer is shorthand for Mean(key).Reducer().
func MeanReducer(key string) Reducer {
	return Mean(key).Reducer()
}

// Keys lists the fields of the samples in the tree rooted at root, sorted,
// leaving out exclude.
func Keys(root *Node, exclude ...string) []string {
	keys := make(map[string]struct{})
	for n := range tree.Postorder(root) {
		if n.Payload == nil {
			continue
		}
		for k := range n.Payload.Fields {
			keys[k] = struct{}{}
		}
	}
	for _, x := range exclude {
		delete(keys, x)
	}
	return slices.Sorted(maps.Keys(keys))
}

// Process runs the standard lineage agents on the tree rooted at root: every
// key is propagated down the tree, then each reduction is aggregated at root
// and its result propagated as well.
func Process(root *Node, keys []string, reductions ...func(string) Reduction) {
	for _, key := range keys {
		PropagateKey(root, key, key, false)
		for _, mk := range reductions {
			r := mk(key)
			Aggregate(root, key, r.Reducer())
			PropagateKey(root, r.Key, r.Key, false)
		}
	}
}
