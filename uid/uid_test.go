package uid

import (
	"sort"
	"testing"
)

type token UID

func (t token) UID() UID { return UID(t) }

func TestNewIsUnique(t *testing.T) {
	seen := make(map[UID]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if id.IsNil() {
			t.Fatal("expected fresh identity to be non-nil")
		}
		if seen[id] {
			t.Fatalf("identity %s created twice", id)
		}
		seen[id] = true
	}
}

func TestFromString(t *testing.T) {
	id, err := FromString("foo-bar")
	if err != nil {
		t.Fatal(err)
	}
	if id.String() != "foo-bar" {
		t.Errorf("expected reconstructed identity to be foo-bar, is %s", id)
	}
	if _, err = FromString(""); err != ErrEmpty {
		t.Errorf("expected empty identity to be rejected, got %v", err)
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	ids := []UID{New(), New(), New(), New()}
	sort.Slice(ids, func(i, j int) bool { return Compare(ids[i], ids[j]) < 0 })
	for i := 1; i < len(ids); i++ {
		if Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("expected %s < %s", ids[i-1], ids[i])
		}
		if Compare(ids[i], ids[i-1]) <= 0 {
			t.Errorf("expected %s > %s", ids[i], ids[i-1])
		}
	}
	if Compare(ids[0], ids[0]) != 0 {
		t.Error("expected identity to compare equal to itself")
	}
}

func TestEqualByIdentity(t *testing.T) {
	a, b := token("x"), token("x")
	if !Equal(a, b) {
		t.Error("expected hashables with same identity to be equal")
	}
	if Equal(a, token("y")) {
		t.Error("expected hashables with different identities to differ")
	}
}
