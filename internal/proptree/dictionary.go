// SPDX-License-Identifier: MPL-2.0

package proptree

import (
	"iter"
	"slices"
)

type (
	// Dictionary is an insertion-ordered string-keyed map of nodes.
	Dictionary struct {
		keys   []string
		values map[string]Tree
	}

	// KeyValue is one dictionary entry in plain form.
	KeyValue struct {
		Key   string
		Value any
	}
)

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{values: make(map[string]Tree)}
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key string) (Tree, bool) {
	if d == nil {
		return Tree{}, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key. An existing key keeps its position.
func (d *Dictionary) Set(key string, value Tree) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes key. It reports whether the key was present.
func (d *Dictionary) Delete(key string) bool {
	if _, ok := d.values[key]; !ok {
		return false
	}
	delete(d.values, key)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == key })
	return true
}

// All iterates over the entries in insertion order.
func (d *Dictionary) All() iter.Seq2[string, Tree] {
	return func(yield func(string, Tree) bool) {
		if d == nil {
			return
		}
		for _, key := range d.keys {
			if !yield(key, d.values[key]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of d.
func (d *Dictionary) Clone() *Dictionary {
	out := NewDictionary()
	for key, value := range d.All() {
		out.Set(key, value.Clone())
	}
	return out
}

// Equal reports whether d and other hold equal values under the same keys in
// the same order.
func (d *Dictionary) Equal(other *Dictionary) bool {
	if d.Len() != other.Len() {
		return false
	}
	if d.Len() == 0 {
		return true
	}
	for i, key := range d.keys {
		if other.keys[i] != key || !d.values[key].Equal(other.values[key]) {
			return false
		}
	}
	return true
}
