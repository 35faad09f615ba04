package attribute

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/csm-adapt/karon/uid"
	"gopkg.in/yaml.v3"
)

// Portable is the plain structural form of an Attribute, used for
// serialization to JSON or YAML:
//
//     {"uid": string, "names": [string...], "value": any}
//
// When decoding, names may also be given as a single string, and a missing
// uid creates a fresh identity. Numbers keep their kind: integers decode as
// int, everything else as float64, and integral floats are written with a
// fractional part to stay floats.
type Portable struct {
	UID   string   `json:"uid" yaml:"uid"`
	Names NameList `json:"names" yaml:"names"`
	Value any      `json:"value" yaml:"value"`
}

// MarshalJSON is part of interface json.Marshaler.
func (p Portable) MarshalJSON() ([]byte, error) {
	type plain Portable
	q := plain(p)
	q.Value = toJSONValue(p.Value)
	return json.Marshal(q)
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (p *Portable) UnmarshalJSON(data []byte) error {
	type plain Portable
	var q plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&q); err != nil {
		return err
	}
	q.Value = fromJSONValue(q.Value)
	*p = Portable(q)
	return nil
}

// MarshalYAML is part of interface yaml.Marshaler.
func (p Portable) MarshalYAML() (any, error) {
	type plain Portable
	q := plain(p)
	q.Value = toYAMLValue(p.Value)
	return q, nil
}

func integral(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) < 1e21
}

func toJSONValue(v any) any {
	switch x := v.(type) {
	case float64:
		if integral(x) {
			return json.Number(strconv.FormatFloat(x, 'f', 1, 64))
		}
	case float32:
		return toJSONValue(float64(x))
	case []any:
		r := make([]any, len(x))
		for i, e := range x {
			r[i] = toJSONValue(e)
		}
		return r
	}
	return v
}

func toYAMLValue(v any) any {
	switch x := v.(type) {
	case float64:
		if integral(x) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(x, 'f', 1, 64)}
		}
	case float32:
		return toYAMLValue(float64(x))
	case []any:
		r := make([]any, len(x))
		for i, e := range x {
			r[i] = toYAMLValue(e)
		}
		return r
	}
	return v
}

// fromJSONValue replaces json.Numbers by int, int64 or float64, in this
// order of preference.
func fromJSONValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, strconv.IntSize); err == nil {
			return int(i)
		}
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i, e := range x {
			x[i] = fromJSONValue(e)
		}
	case map[string]any:
		for k, e := range x {
			x[k] = fromJSONValue(e)
		}
	}
	return v
}

// NameList is a list of names which decodes from either a list or a single
// string.
type NameList []string

// UnmarshalJSON is part of interface json.Unmarshaler.
func (nl *NameList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*nl = NameList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("attribute names must be a string or a list of strings: %w", err)
	}
	*nl = list
	return nil
}

// UnmarshalYAML is part of interface yaml.Unmarshaler.
func (nl *NameList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*nl = NameList{value.Value}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return fmt.Errorf("attribute names must be a string or a list of strings: %w", err)
	}
	*nl = list
	return nil
}

// ToPortable converts a to its structural form.
func (a *Attribute) ToPortable() Portable {
	names := a.Names()
	return Portable{
		UID:   a.id.String(),
		Names: names,
		Value: a.value,
	}
}

// FromPortable reconstructs an Attribute. The result compares equal to the
// Attribute the portable form was created from, but is a distinct instance.
func FromPortable(p Portable) *Attribute {
	id := uid.UID(p.UID)
	if id.IsNil() {
		id = uid.New()
	}
	return WithUID(id, fromJSONValue(p.Value), p.Names...)
}

// MarshalJSON is part of interface json.Marshaler.
func (a *Attribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToPortable())
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	var p Portable
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = *FromPortable(p)
	return nil
}

// ToPortable converts s to a list of Attribute portables.
func (s *Set) ToPortable() []Portable {
	r := make([]Portable, 0, s.Len())
	for _, a := range s.All() {
		r = append(r, a.ToPortable())
	}
	return r
}

// SetFromPortable reconstructs a set. Portables sharing an identity are
// collapsed into the first one.
func SetFromPortable(ps []Portable) *Set {
	s := &Set{}
	for _, p := range ps {
		a := FromPortable(p)
		if _, err := s.Add(a); err != nil {
			tracer().Infof("attribute set: dropping duplicate %s", a.UID())
		}
	}
	return s
}

// MarshalJSON is part of interface json.Marshaler.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToPortable())
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (s *Set) UnmarshalJSON(data []byte) error {
	var ps []Portable
	if err := json.Unmarshal(data, &ps); err != nil {
		return err
	}
	*s = *SetFromPortable(ps)
	return nil
}
