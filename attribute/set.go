package attribute

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/csm-adapt/karon"
	"github.com/csm-adapt/karon/uid"
)

// Set is a mutable collection of Attributes, deduplicated by identity.
// Iteration follows insertion order.
//
// The zero value is an empty set ready to use.
type Set struct {
	items []*Attribute
	index map[uid.UID]int // identity → position in items
}

// NewSet creates a set from Attributes. Attributes occurring more than once
// (by identity) are included once.
func NewSet(attrs ...*Attribute) *Set {
	s := &Set{}
	for _, a := range attrs {
		if a != nil && !s.Contains(a) {
			s.insert(a)
		}
	}
	return s
}

// SetFromNames creates a set with one new, unset Attribute per name.
func SetFromNames(names ...string) *Set {
	s := &Set{}
	for _, n := range names {
		s.AddName(n)
	}
	return s
}

// SetFromMap creates a set with one new Attribute per map entry, named by
// the key. Entries are inserted in key order.
func SetFromMap(m map[string]any) *Set {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := &Set{}
	for _, k := range keys {
		s.insert(New(m[k], k))
	}
	return s
}

func (s *Set) insert(a *Attribute) {
	if s.index == nil {
		s.index = make(map[uid.UID]int)
	}
	s.index[a.id] = len(s.items)
	s.items = append(s.items, a)
}

// Len returns the number of Attributes in s.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Add inserts an Attribute. If an Attribute with the same identity is
// already present, Add fails with karon.ErrDuplicateIdentity and leaves s
// unchanged. Add returns the inserted Attribute.
func (s *Set) Add(a *Attribute) (*Attribute, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: cannot add nil attribute", karon.ErrStructural)
	}
	if _, exists := s.index[a.id]; exists {
		return nil, fmt.Errorf("%w: attribute %s", karon.ErrDuplicateIdentity, a.id)
	}
	s.insert(a)
	return a, nil
}

// AddName wraps a bare name into a new Attribute with an unset value and
// inserts it. As the new Attribute has a fresh identity, this never fails.
func (s *Set) AddName(name string) *Attribute {
	a := Named(name)
	s.insert(a)
	return a
}

// Remove removes all Attributes matching key and returns how many were
// removed.
func (s *Set) Remove(key Key) int {
	if s.Len() == 0 || key == nil {
		return 0
	}
	kept := s.items[:0]
	removed := 0
	for _, a := range s.items {
		if key.Matches(a) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	if removed > 0 {
		s.reindex()
	}
	return removed
}

func (s *Set) reindex() {
	s.index = make(map[uid.UID]int, len(s.items))
	for i, a := range s.items {
		s.index[a.id] = i
	}
}

// Get returns all Attributes matching key, in insertion order. The result
// may be empty, and for name keys it may hold more than one Attribute.
func (s *Set) Get(key Key) []*Attribute {
	if s.Len() == 0 || key == nil {
		return nil
	}
	if id, ok := key.(ID); ok { // fast path
		if i, found := s.index[uid.UID(id)]; found {
			return []*Attribute{s.items[i]}
		}
		return nil
	}
	var r []*Attribute
	for _, a := range s.items {
		if key.Matches(a) {
			r = append(r, a)
		}
	}
	return r
}

// Lookup returns the Attribute with identity id, if present.
func (s *Set) Lookup(id uid.UID) (*Attribute, bool) {
	if s.Len() == 0 {
		return nil, false
	}
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

// Contains is true if at least one Attribute in s matches key.
func (s *Set) Contains(key Key) bool {
	if s.Len() == 0 || key == nil {
		return false
	}
	if a, ok := key.(*Attribute); ok {
		if a == nil {
			return false
		}
		_, found := s.index[a.id]
		return found
	}
	for _, a := range s.items {
		if key.Matches(a) {
			return true
		}
	}
	return false
}

// Set assigns a value to the Attribute named name. If no Attribute
// matches, a new one is created and inserted. If more than one Attribute
// matches, Set fails with karon.ErrAmbiguousKey unless applyToAll is true,
// in which case every match receives the value.
func (s *Set) Set(name string, value any, applyToAll bool) error {
	matches := s.Get(Name(name))
	switch {
	case len(matches) == 0:
		s.insert(New(value, name))
	case len(matches) == 1 || applyToAll:
		for _, a := range matches {
			a.SetValue(value)
		}
	default:
		return fmt.Errorf("%w: %d attributes named %q", karon.ErrAmbiguousKey, len(matches), name)
	}
	return nil
}

// Union returns a new set holding every Attribute of s and of other, each
// identity once. Attributes are shared, not copied.
func (s *Set) Union(other *Set) *Set {
	u := s.Clone()
	u.Merge(other)
	return u
}

// Merge adds every Attribute of other which is not yet present in s, and
// returns how many were added. This is the in-place version of Union.
func (s *Set) Merge(other *Set) int {
	if other == nil || other == s {
		return 0
	}
	added := 0
	for _, a := range other.items {
		if _, exists := s.index[a.id]; !exists {
			s.insert(a)
			added++
		}
	}
	return added
}

// Clone returns a new container holding the same Attributes.
func (s *Set) Clone() *Set {
	c := &Set{}
	if s.Len() == 0 {
		return c
	}
	c.items = make([]*Attribute, len(s.items))
	copy(c.items, s.items)
	c.reindex()
	return c
}

// Equal is true if s and other hold the same identities.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, a := range other.All() {
		if _, ok := s.index[a.id]; !ok {
			return false
		}
	}
	return true
}

// All iterates over the Attributes of s in insertion order.
// s must not be modified during iteration.
func (s *Set) All() iter.Seq2[int, *Attribute] {
	return func(yield func(int, *Attribute) bool) {
		if s == nil {
			return
		}
		for i, a := range s.items {
			if !yield(i, a) {
				return
			}
		}
	}
}

// Attributes returns a copy of the list of Attributes of s.
func (s *Set) Attributes() []*Attribute {
	if s.Len() == 0 {
		return nil
	}
	r := make([]*Attribute, len(s.items))
	copy(r, s.items)
	return r
}

// Values returns the values of all Attributes matching key.
func (s *Set) Values(key Key) []any {
	matches := s.Get(key)
	values := make([]any, len(matches))
	for i, a := range matches {
		values[i] = a.Value()
	}
	return values
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, a := range s.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString("}")
	return b.String()
}
