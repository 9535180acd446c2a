// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap provides a generic map that remembers insertion order,
// used where iteration order must be deterministic (lights in a scene,
// objects counted per role).
package ordmap

import "slices"

// KeyValue is one entry of a [Map].
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered map. The zero value is ready to use.
type Map[K comparable, V any] struct {

	// Order holds the entries in insertion order.
	Order []KeyValue[K, V]

	index map[K]int
}

// New returns a new empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// Add sets the value for key. An existing key keeps its position.
func (om *Map[K, V]) Add(key K, val V) {
	if om.index == nil {
		om.index = make(map[K]int)
	}
	if i, ok := om.index[key]; ok {
		om.Order[i].Value = val
		return
	}
	om.index[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
}

// ValueByKey returns the value for key, or the zero value.
func (om *Map[K, V]) ValueByKey(key K) V {
	v, _ := om.ValueByKeyTry(key)
	return v
}

// ValueByKeyTry returns the value for key and whether it was present.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if i, ok := om.index[key]; ok {
		return om.Order[i].Value, true
	}
	var zv V
	return zv, false
}

// DeleteKey removes key, returning false if it was not present.
func (om *Map[K, V]) DeleteKey(key K) bool {
	i, ok := om.index[key]
	if !ok {
		return false
	}
	om.Order = slices.Delete(om.Order, i, i+1)
	delete(om.index, key)
	for j := i; j < len(om.Order); j++ {
		om.index[om.Order[j].Key] = j
	}
	return true
}

// Len returns the number of entries.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Reset removes all entries.
func (om *Map[K, V]) Reset() {
	om.Order = nil
	om.index = nil
}

// Keys returns the keys in order.
func (om *Map[K, V]) Keys() []K {
	ks := make([]K, len(om.Order))
	for i, kv := range om.Order {
		ks[i] = kv.Key
	}
	return ks
}

// Values returns the values in order.
func (om *Map[K, V]) Values() []V {
	vs := make([]V, len(om.Order))
	for i, kv := range om.Order {
		vs[i] = kv.Value
	}
	return vs
}
