package karon

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClasses(t *testing.T) {
	for _, err := range []error{ErrCycle, ErrDuplicateIdentity} {
		if !errors.Is(err, ErrStructural) {
			t.Errorf("expected %v to be a structural error", err)
		}
	}
	if errors.Is(ErrAmbiguousKey, ErrStructural) {
		t.Errorf("ambiguous keys are not structural errors")
	}
	wrapped := fmt.Errorf("linking: %w", ErrCycle)
	if !errors.Is(wrapped, ErrStructural) {
		t.Errorf("expected wrapped cycle error to be structural")
	}
}

func TestIsWarning(t *testing.T) {
	w := &MissingParentWarning{Node: "b", Parent: "a"}
	if !IsWarning(w) {
		t.Errorf("expected missing parent to be a warning")
	}
	if !IsWarning(errors.Join(w, &MissingParentWarning{Node: "c", Parent: "a"})) {
		t.Errorf("expected joined warnings to be a warning")
	}
	if IsWarning(errors.Join(w, ErrCycle)) {
		t.Errorf("expected a joined error to not be a warning")
	}
	if IsWarning(fmt.Errorf("building: %w", errors.Join(w, ErrCycle))) {
		t.Errorf("expected a wrapped joined error to not be a warning")
	}
	if !IsWarning(fmt.Errorf("building: %w", errors.Join(w, w))) {
		t.Errorf("expected wrapped joined warnings to be a warning")
	}
	if !IsWarning(fmt.Errorf("building: %w", w)) {
		t.Errorf("expected a wrapped warning to be a warning")
	}
	if IsWarning(fmt.Errorf("%w and %w", w, ErrRequirement)) {
		t.Errorf("expected an error wrapping a warning and an error to not be a warning")
	}
	if IsWarning(nil) || IsWarning(ErrRequirement) {
		t.Errorf("expected nil and errors to not be warnings")
	}
}
