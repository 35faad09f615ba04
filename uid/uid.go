/*
Package uid provides opaque identity tokens.

Identities are created once and never derived from content. Objects which
embed an identity compare equal if and only if their identities are equal,
regardless of any other state. Freshly created identities are never equal
to each other.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package uid

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// UID is an opaque identity token. The zero value is not a valid identity.
type UID string

// Nil is the invalid zero identity.
const Nil UID = ""

// ErrEmpty is returned when reconstructing an identity from an empty string.
var ErrEmpty = errors.New("identity must not be empty")

// New creates a fresh identity.
func New() UID {
	return UID(uuid.NewString())
}

// FromString reconstructs an identity from persisted state. Any non-empty
// string is accepted; identities restored from external sources need not be
// UUIDs.
func FromString(s string) (UID, error) {
	if s == "" {
		return Nil, ErrEmpty
	}
	return UID(s), nil
}

// MustParse is like FromString but panics on an empty string.
func MustParse(s string) UID {
	id, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id UID) String() string {
	return string(id)
}

// IsNil returns true for the zero identity.
func (id UID) IsNil() bool {
	return id == Nil
}

// Compare establishes a total order on identities. It returns -1, 0 or +1.
func Compare(a, b UID) int {
	return strings.Compare(string(a), string(b))
}

// Hashable is implemented by everything carrying an identity.
type Hashable interface {
	UID() UID
}

// Equal compares two Hashables by identity only.
func Equal(a, b Hashable) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UID() == b.UID()
}
