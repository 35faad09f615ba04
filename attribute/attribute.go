package attribute

import (
	"fmt"
	"sort"
	"strings"

	"github.com/csm-adapt/karon/uid"
)

// Attribute is a named, valued and uniquely identified fact.
type Attribute struct {
	id    uid.UID
	names map[string]struct{}
	value any
}

// New creates an Attribute with a fresh identity. names may be empty.
func New(value any, names ...string) *Attribute {
	return WithUID(uid.New(), value, names...)
}

// Named creates an Attribute with a fresh identity, a single name and an
// unset value.
func Named(name string) *Attribute {
	return New(nil, name)
}

// WithUID creates an Attribute with a given identity. Clients use it to
// reconstruct Attributes from persisted state.
func WithUID(id uid.UID, value any, names ...string) *Attribute {
	a := &Attribute{
		id:    id,
		names: make(map[string]struct{}, len(names)),
		value: value,
	}
	a.AddName(names...)
	return a
}

// Copy creates a new Attribute with equal names and value, but a fresh
// identity. The copy is therefore a different Attribute.
func (a *Attribute) Copy() *Attribute {
	return New(a.value, a.Names()...)
}

// UID returns the identity of a.
func (a *Attribute) UID() uid.UID {
	return a.id
}

// Value returns the value of a, which is nil if unset.
func (a *Attribute) Value() any {
	return a.value
}

// SetValue replaces the value of a. The identity of a is unaffected.
func (a *Attribute) SetValue(v any) {
	a.value = v
}

// AddName adds synonyms to the names of a.
func (a *Attribute) AddName(names ...string) {
	for _, n := range names {
		a.names[n] = struct{}{}
	}
}

// RemoveName removes a synonym. Removing an absent name is a no-op.
func (a *Attribute) RemoveName(name string) {
	delete(a.names, name)
}

// Names returns the names of a in lexicographic order.
func (a *Attribute) Names() []string {
	names := make([]string, 0, len(a.names))
	for n := range a.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NameCount returns the number of synonyms for a.
func (a *Attribute) NameCount() int {
	return len(a.names)
}

// MatchesIdentity is true if a has identity id.
func (a *Attribute) MatchesIdentity(id uid.UID) bool {
	return a != nil && a.id == id
}

// MatchesName is true if name is one of the names of a.
func (a *Attribute) MatchesName(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.names[name]
	return ok
}

// MatchesInstance is true if other is the same Attribute as a, i.e. has the
// same identity. other need not be the same instance.
func (a *Attribute) MatchesInstance(other *Attribute) bool {
	return a != nil && other != nil && a.id == other.id
}

// Matches makes *Attribute a Key: it matches by identity.
func (a *Attribute) Matches(other *Attribute) bool {
	return a.MatchesInstance(other)
}

// Has is the membership test for a: it is true for a itself (or any
// Attribute with the same identity), for the identity of a, and for any of
// its names, depending on the Key.
func (a *Attribute) Has(key Key) bool {
	if key == nil {
		return false
	}
	return key.Matches(a)
}

// Equal compares two Attributes by identity.
func Equal(a, b *Attribute) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.id == b.id
}

func (a *Attribute) String() string {
	return fmt.Sprintf("(%s [%s] = %v)", shortID(a.id), strings.Join(a.Names(), "|"), a.value)
}

func shortID(id uid.UID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// --- Keys ------------------------------------------------------------------

// Key selects Attributes. See package documentation for the available kinds
// of keys.
type Key interface {
	Matches(a *Attribute) bool
}

// Name is a Key matching Attributes by one of their names.
type Name string

// Matches is part of interface Key.
func (n Name) Matches(a *Attribute) bool {
	return a.MatchesName(string(n))
}

// ID is a Key matching an Attribute by identity.
type ID uid.UID

// Matches is part of interface Key.
func (id ID) Matches(a *Attribute) bool {
	return a.MatchesIdentity(uid.UID(id))
}

// Any returns a Key which matches either a name or the string form of an
// identity.
func Any(s string) Key {
	return anyKey(s)
}

type anyKey string

func (k anyKey) Matches(a *Attribute) bool {
	return a.MatchesName(string(k)) || a.MatchesIdentity(uid.UID(k))
}

var _ Key = Name("")
var _ Key = ID("")
var _ Key = (*Attribute)(nil)
var _ uid.Hashable = (*Attribute)(nil)
