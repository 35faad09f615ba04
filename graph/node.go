package graph

import (
	"fmt"

	"github.com/csm-adapt/karon/attribute"
	"github.com/csm-adapt/karon/uid"
)

// Node is a vertex of a graph. It has an identity, an optional name and a
// set of attributes. Nodes are compared by identity.
type Node struct {
	id    uid.UID
	Name  string
	Attrs *attribute.Set
}

// NewNode creates a node with a fresh identity.
func NewNode(name string, attrs ...*attribute.Attribute) *Node {
	return &Node{
		id:    uid.New(),
		Name:  name,
		Attrs: attribute.NewSet(attrs...),
	}
}

// NodeWithUID creates a node with a given identity, e.g. when restoring a
// graph. A nil set of attributes is replaced by an empty one.
func NodeWithUID(id uid.UID, name string, attrs *attribute.Set) *Node {
	if id.IsNil() {
		id = uid.New()
	}
	if attrs == nil {
		attrs = attribute.NewSet()
	}
	return &Node{id: id, Name: name, Attrs: attrs}
}

// UID returns the identity of n.
func (n *Node) UID() uid.UID {
	return n.id
}

// Contains is true if key matches the identity of n or any of its
// attributes.
func (n *Node) Contains(key attribute.Key) bool {
	if n == nil || key == nil {
		return false
	}
	if key.Matches(attribute.WithUID(n.id, nil)) { // identity probe, without names
		return true
	}
	return n.Attrs.Contains(key)
}

func (n *Node) String() string {
	if n == nil {
		return "<nil node>"
	}
	id := n.id.String()
	if len(id) > 8 {
		id = id[:8]
	}
	if n.Name == "" {
		return fmt.Sprintf("(%s #attr=%d)", id, n.Attrs.Len())
	}
	return fmt.Sprintf("(%s %q #attr=%d)", id, n.Name, n.Attrs.Len())
}

var _ uid.Hashable = (*Node)(nil)
