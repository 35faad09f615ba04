package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/csm-adapt/karon/attribute"
	"github.com/csm-adapt/karon/uid"
	"gopkg.in/yaml.v3"
)

// Document is the portable form of a graph:
//
//	{
//	  "nodes": [{"uid": string, "name": string|null, "attributes": [...]}],
//	  "edges": [{"from": uid, "to": uid}]
//	}
type Document struct {
	Nodes []PortableNode `json:"nodes" yaml:"nodes"`
	Edges []Edge         `json:"edges" yaml:"edges"`
}

// PortableNode is the portable form of a Node. Unnamed nodes have a nil name.
type PortableNode struct {
	UID        string               `json:"uid" yaml:"uid"`
	Name       *string              `json:"name" yaml:"name"`
	Attributes []attribute.Portable `json:"attributes" yaml:"attributes"`
}

// Edge links two nodes by identity.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// ToPortable converts n to its structural form.
func (n *Node) ToPortable() PortableNode {
	p := PortableNode{UID: n.id.String(), Attributes: n.Attrs.ToPortable()}
	if n.Name != "" {
		name := n.Name
		p.Name = &name
	}
	return p
}

// MarshalJSON is part of interface json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToPortable())
}

// ToDocument converts g to its portable form.
func (g *Graph) ToDocument() Document {
	doc := Document{Nodes: make([]PortableNode, 0, len(g.nodes))}
	for _, n := range g.nodes {
		doc.Nodes = append(doc.Nodes, n.ToPortable())
	}
	for from, to := range g.Edges() {
		doc.Edges = append(doc.Edges, Edge{From: from.id.String(), To: to.id.String()})
	}
	return doc
}

// NodeFromPortable reconstructs a node. The result has the identity of the
// node p was created from, but is a distinct instance. A missing uid gives a
// fresh identity.
func NodeFromPortable(p PortableNode) *Node {
	return nodeFromPortable(p, make(map[string]*attribute.Attribute))
}

// nodeFromPortable restores attributes through shared, so attributes with
// the same identity in different nodes become a single instance.
func nodeFromPortable(p PortableNode, shared map[string]*attribute.Attribute) *Node {
	attrs := attribute.NewSet()
	for _, pa := range p.Attributes {
		a, ok := shared[pa.UID]
		if !ok || pa.UID == "" {
			a = attribute.FromPortable(pa)
			shared[a.UID().String()] = a
		}
		if _, err := attrs.Add(a); err != nil {
			tracer().Infof("node %s: dropping duplicate attribute %s", p.UID, a.UID())
		}
	}
	name := ""
	if p.Name != nil {
		name = *p.Name
	}
	return NodeWithUID(uid.UID(p.UID), name, attrs)
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var p PortableNode
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*n = *NodeFromPortable(p)
	return nil
}

// FromDocument reconstructs a graph. Attributes occurring in more than one
// node are restored as a single shared Attribute, as they were when the
// document was written. Nodes without uid get a fresh identity.
func FromDocument(doc Document) (*Graph, error) {
	g := New()
	shared := make(map[string]*attribute.Attribute)
	for _, pn := range doc.Nodes {
		if err := g.AddNode(nodeFromPortable(pn, shared)); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		from, ok := g.Node(uid.UID(e.From))
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %q", e.From)
		}
		to, ok := g.Node(uid.UID(e.To))
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %q", e.To)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("restored graph with %d nodes and %d edges", g.Len(), g.EdgeCount())
	return g, nil
}

// MarshalJSON is part of interface json.Marshaler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.ToDocument())
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	r, err := FromDocument(doc)
	if err != nil {
		return err
	}
	*g = *r
	return nil
}

// --- Codec ------------------------------------------------------------------

// Format selects the encoding of a graph document.
type Format int

// Supported formats.
const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat maps "json", "yaml" or "yml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("unknown document format %q", s)
}

// FormatOf guesses the format of a file from its extension, defaulting to
// JSON.
func FormatOf(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return JSON
	}
	return f
}

// Encode writes g as a document in format f.
func Encode(w io.Writer, g *Graph, f Format) error {
	doc := g.ToDocument()
	if f == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a document in format f and restores the graph.
func Decode(r io.Reader, f Format) (*Graph, error) {
	var doc Document
	var err error
	if f == YAML {
		err = yaml.NewDecoder(r).Decode(&doc)
	} else {
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s graph document: %w", f, err)
	}
	return FromDocument(doc)
}
