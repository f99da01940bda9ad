package types

import "testing"

func TestOrdered_InsertionOrder(t *testing.T) {
	var o Ordered[Key, int]
	for i, k := range []Key{"c", "a", "b"} {
		if !o.Insert(k, i) {
			t.Fatalf("Insert(%s) = false on a new key", k)
		}
	}
	if o.Insert("a", 9) {
		t.Error("Insert of an existing key reported success")
	}
	o.Set("c", 7)

	if got := o.Keys(); len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Errorf("Keys() = %v, want [c a b]", got)
	}
	if v, _ := o.Get("a"); v != 1 {
		t.Errorf(`Get("a") = %d, want 1`, v)
	}
	if v, _ := o.Get("c"); v != 7 {
		t.Errorf(`Get("c") = %d, want 7`, v)
	}
}

func TestOrdered_CopiesAreIndependent(t *testing.T) {
	var orig Ordered[Key, int]
	orig.Insert("a", 1)
	orig.Insert("b", 2)

	cp := orig
	cp.Set("a", 100)
	cp.Insert("x", 3)

	if v, _ := orig.Get("a"); v != 1 {
		t.Errorf("original a = %d after writing the copy, want 1", v)
	}
	if orig.Has("x") || orig.Len() != 2 {
		t.Errorf("original gained keys from the copy: %v", orig.Keys())
	}
	if v, _ := cp.Get("a"); v != 100 || !cp.Has("x") || cp.Len() != 3 {
		t.Errorf("copy = %v, want a=100 plus x", cp.Keys())
	}

	// The original keeps growing; an untouched copy stays consistent.
	snap := orig
	orig.Insert("c", 4)
	if snap.Has("c") || snap.Len() != 2 {
		t.Errorf("earlier copy sees later insert: Has(c) = %v, Len = %d", snap.Has("c"), snap.Len())
	}
	if _, ok := snap.Get("c"); ok {
		t.Error("earlier copy returns a value for a key it does not hold")
	}
	if !orig.Has("c") || orig.Len() != 3 {
		t.Errorf("original after insert: %v", orig.Keys())
	}
}

func TestOrdered_AllStopsEarly(t *testing.T) {
	var o Ordered[Key, int]
	o.Insert("a", 1)
	o.Insert("b", 2)

	var seen []Key
	for k := range o.All() {
		seen = append(seen, k)
		break
	}
	if len(seen) != 1 || seen[0] != "a" {
		t.Errorf("All() yielded %v before break, want [a]", seen)
	}
}
