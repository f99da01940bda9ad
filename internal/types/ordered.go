package types

import "iter"

// Ordered is a keyed collection that remembers insertion order.
// The zero value is empty and ready to use. Read methods take a value
// receiver so records can be inspected without taking their address.
//
// Copies are independent. A copy shares storage with the original until it
// is first written to, at which point it detaches, so writing to a record
// fetched from a collection never reaches the stored record.
type Ordered[K comparable, V any] struct {
	addr   *Ordered[K, V] // of the last writer, to detect copies by value
	keys   []K
	values map[K]V
}

// own makes o the sole owner of its storage before a write.
func (o *Ordered[K, V]) own() {
	if o.addr == o {
		return
	}
	if o.addr != nil {
		keys := append([]K(nil), o.keys...)
		values := make(map[K]V, len(keys))
		for _, k := range keys {
			values[k] = o.values[k]
		}
		o.keys, o.values = keys, values
	}
	o.addr = o
}

// Insert stores v under k unless k is already present.
// Reports whether the value was stored.
func (o *Ordered[K, V]) Insert(k K, v V) bool {
	if o.Has(k) {
		return false
	}
	o.Set(k, v)
	return true
}

// Set stores v under k, keeping the original position of an existing key.
func (o *Ordered[K, V]) Set(k K, v V) {
	o.own()
	if o.values == nil {
		o.values = make(map[K]V)
	}
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

// Get returns the value stored under k.
func (o Ordered[K, V]) Get(k K) (V, bool) {
	if !o.Has(k) {
		var zero V
		return zero, false
	}
	return o.values[k], true
}

// Has reports whether k is present.
func (o Ordered[K, V]) Has(k K) bool {
	if _, ok := o.values[k]; !ok {
		return false
	}
	// A copy may share a map the original has grown since; only keys within
	// this copy's length belong to it.
	if o.addr == nil || len(o.keys) == len(o.values) {
		return true
	}
	for _, kk := range o.keys {
		if kk == k {
			return true
		}
	}
	return false
}

// Len returns the number of keys.
func (o Ordered[K, V]) Len() int {
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o Ordered[K, V]) Keys() []K {
	return append([]K(nil), o.keys...)
}

// All iterates key/value pairs in insertion order.
func (o Ordered[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}
