package karon

import (
	"errors"
	"fmt"
)

// ErrStructural is the class of errors which would break the shape of a
// tree or graph, or the uniqueness of identities. Operations failing with a
// structural error leave the structure unchanged.
var ErrStructural = errors.New("structural error")

// ErrCycle is returned if a link would make a node its own ancestor.
var ErrCycle = fmt.Errorf("%w: node cannot be in its own line of descent", ErrStructural)

// ErrDuplicateIdentity is returned when inserting an item whose identity is
// already present in a container.
var ErrDuplicateIdentity = fmt.Errorf("%w: duplicate identity", ErrStructural)

// ErrAmbiguousKey is returned if a key matches more than one item where a
// single match was required.
var ErrAmbiguousKey = errors.New("key matches more than one item")

// ErrTypeConversion signals a value which cannot be converted to the numeric
// form a reduction needs. Reductions recover from it locally by dropping the
// value.
var ErrTypeConversion = errors.New("cannot convert value")

// ErrRequirement is returned if a record lacks a required field.
var ErrRequirement = errors.New("requirement not met")

// MissingParentWarning reports a record referencing a parent which is not
// part of the input. It is recoverable: the record is treated as a root.
type MissingParentWarning struct {
	Node   string // identifier of the orphaned node
	Parent string // identifier of the missing parent
}

func (w *MissingParentWarning) Error() string {
	return fmt.Sprintf("parent %q of %q was not found; treating it as a root", w.Parent, w.Node)
}

// IsWarning returns true if err is recoverable, i.e. consists of warnings
// only. Joined errors are inspected at any depth of wrapping.
func IsWarning(err error) bool {
	for err != nil {
		switch e := err.(type) {
		case *MissingParentWarning:
			return true
		case interface{ Unwrap() []error }:
			errs := e.Unwrap()
			if len(errs) == 0 {
				return false
			}
			for _, member := range errs {
				if !IsWarning(member) {
					return false
				}
			}
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
