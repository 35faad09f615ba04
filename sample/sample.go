package sample

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/csm-adapt/karon"
	"github.com/csm-adapt/karon/attribute"
	"github.com/csm-adapt/karon/reduce"
	"github.com/csm-adapt/karon/tree"
	"github.com/csm-adapt/karon/tree/operational"
)

// Sample is a record of named fields with access gates.
type Sample struct {
	operational.Gate
	Fields map[string]any
}

// Node is a node of a lineage tree.
type Node = tree.Node[*Sample]

type options struct {
	requires []string
	expects  []string
	defaults map[string]any
	gate     operational.Gate
}

// Option configures the creation of a Sample.
type Option func(*options)

// Requires lists fields a sample must have. New fails for records lacking
// one of them.
func Requires(keys ...string) Option {
	return func(o *options) {
		o.requires = append(o.requires, keys...)
	}
}

// Expects lists fields a sample should have. Missing fields are logged.
func Expects(keys ...string) Option {
	return func(o *options) {
		o.expects = append(o.expects, keys...)
	}
}

// Defaults provides values for fields absent from a record. Defaulted fields
// count as present for Requires and Expects.
func Defaults(defaults map[string]any) Option {
	return func(o *options) {
		if o.defaults == nil {
			o.defaults = make(map[string]any, len(defaults))
		}
		maps.Copy(o.defaults, defaults)
	}
}

// Access sets the read and write flags of a sample. Samples are readable and
// writeable by default.
func Access(readable, writeable bool) Option {
	return func(o *options) {
		o.gate.SetReadable(readable)
		o.gate.SetWriteable(writeable)
	}
}

// New creates a sample from a record. The record map is copied.
func New(fields map[string]any, opts ...Option) (*Sample, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sample{Gate: o.gate, Fields: make(map[string]any, len(fields)+len(o.defaults))}
	maps.Copy(s.Fields, o.defaults)
	maps.Copy(s.Fields, fields)
	for _, k := range o.requires {
		if _, ok := s.Fields[k]; !ok {
			return nil, fmt.Errorf("sample requires field %q: %w", k, karon.ErrRequirement)
		}
	}
	for _, k := range o.expects {
		if _, ok := s.Fields[k]; !ok {
			tracer().Infof("sample expects field %q", k)
		}
	}
	return s, nil
}

func (s *Sample) String() string {
	if s == nil {
		return "<nil sample>"
	}
	keys := slices.Sorted(maps.Keys(s.Fields))
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, s.Fields[k])
	}
	b.WriteByte('}')
	return b.String()
}

// ToAttributes converts the fields of a sample to a set of attributes, one
// per field.
func ToAttributes(s *Sample) *attribute.Set {
	if s == nil {
		return attribute.NewSet()
	}
	return attribute.SetFromMap(s.Fields)
}

// --- Accessors --------------------------------------------------------------

// Get returns a function which extracts field key from a node, or nil if the
// node has no such field.
func Get(key string) func(*Node) any {
	return func(n *Node) any {
		if n == nil || n.Payload == nil {
			return nil
		}
		return n.Payload.Fields[key]
	}
}

// Put returns a function which stores a value as field key of a node. An
// existing field is replaced only if overwrite is set.
func Put(key string, overwrite bool) func(*Node, any) {
	return func(n *Node, value any) {
		if n == nil || n.Payload == nil {
			return
		}
		if n.Payload.Fields == nil {
			n.Payload.Fields = make(map[string]any)
		}
		if _, ok := n.Payload.Fields[key]; ok && !overwrite {
			return
		}
		n.Payload.Fields[key] = value
	}
}

// --- Building lineages ------------------------------------------------------

// Field returns an identifier extractor for field key, suitable for a
// tree.Builder. Null values (see reduce.IsNull) yield no identifier.
func Field(key string) func(*Node) (string, bool) {
	return func(n *Node) (string, bool) {
		v := Get(key)(n)
		if reduce.IsNull(v) {
			return "", false
		}
		return fmt.Sprint(v), true
	}
}

// Lower and Trim are transforms for StrCmp.
var (
	Lower = strings.ToLower
	Trim  = strings.TrimSpace
)

// StrCmp returns a comparator which compares identifiers after applying
// transforms to both sides. Blank identifiers never match.
func StrCmp(transforms ...func(string) string) func(a, b string) bool {
	return func(a, b string) bool {
		if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
			return false
		}
		for _, t := range transforms {
			a, b = t(a), t(b)
		}
		return a == b
	}
}

// Builder returns a tree builder linking samples by the fields idKey and
// parentKey. cmp may be nil for plain string equality.
func Builder(idKey, parentKey string, cmp func(a, b string) bool) tree.Builder[*Sample] {
	return tree.Builder[*Sample]{
		NodeID:   Field(idKey),
		ParentID: Field(parentKey),
		Equal:    cmp,
	}
}

// Nodes wraps samples into tree nodes.
func Nodes(samples []*Sample) []*Node {
	nodes := make([]*Node, len(samples))
	for i, s := range samples {
		nodes[i] = tree.NewNode(s)
	}
	return nodes
}
