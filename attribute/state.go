package attribute

import (
	"github.com/csm-adapt/karon/reduce"
)

// StateFunc derives a new Attribute from the Attributes of a set and adds
// it to the set. It returns the set it operated on.
type StateFunc func(s *Set) *Set

// State creates a StateFunc. For every key the set is searched by name; if
// each key has at least one match, fn is called with the matches (in key
// order) and its result is added as a new Attribute named dest. If a key has
// no match, the set is returned unchanged.
//
//     dot := attribute.State("dot(foo, bar)", func(args ...[]*attribute.Attribute) any {
//         …
//     }, "foo", "bar")
//     dot(set)
//
func State(dest string, fn func(args ...[]*Attribute) any, keys ...string) StateFunc {
	return func(s *Set) *Set {
		args := make([][]*Attribute, len(keys))
		var missing []string
		for i, k := range keys {
			args[i] = s.Get(Name(k))
			if len(args[i]) == 0 {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			tracer().Infof("state function %q: missing arguments %v", dest, missing)
			return s
		}
		s.insert(New(fn(args...), dest))
		return s
	}
}

// Values extracts the values of a list of Attributes.
func Values(attrs []*Attribute) []any {
	values := make([]any, len(attrs))
	for i, a := range attrs {
		values[i] = a.Value()
	}
	return values
}

func unary(prefix string, f func([]any) float64, key string) StateFunc {
	return State(prefix+" "+key, func(args ...[]*Attribute) any {
		return f(Values(args[0]))
	}, key)
}

// Mean adds the mean of all values named key as "mean <key>". Values which
// are not numeric are ignored.
func Mean(key string) StateFunc {
	return unary("mean", reduce.Mean, key)
}

// Median adds the median of all values named key as "median <key>".
func Median(key string) StateFunc {
	return unary("median", reduce.Median, key)
}

// Std adds the standard deviation of all values named key as "std <key>".
func Std(key string) StateFunc {
	return unary("std", reduce.Std, key)
}
