// Package orderedmap provides a map that remembers insertion order.
//
// Localization documents depend on it: the order of a command's options is
// part of the contract between code and translation files.
package orderedmap

import (
	"container/list"
)

// OrderedMap stores key-value pairs in insertion order with O(1) lookup and
// insertion.
type OrderedMap[K comparable, V any] struct {
	store map[K]*list.Element
	keys  *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Iterator walks an OrderedMap from Front in insertion order.
type Iterator[K comparable, V any] struct {
	el *list.Element
}

// New creates an empty OrderedMap
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		store: map[K]*list.Element{},
		keys:  list.New(),
	}
}

// Set stores a key-value pair. An existing key keeps its position.
func (o *OrderedMap[K, V]) Set(key K, val V) {
	o.init()
	if e, exists := o.store[key]; exists {
		e.Value = entry[K, V]{key: key, value: val}
		return
	}

	o.store[key] = o.keys.PushBack(entry[K, V]{key: key, value: val})
}

func (o *OrderedMap[K, V]) init() {
	if o.store == nil {
		o.store = map[K]*list.Element{}
		o.keys = list.New()
	}
}

// SetIfAbsent stores the pair only if key is not present and reports whether
// it did.
func (o *OrderedMap[K, V]) SetIfAbsent(key K, val V) bool {
	if _, exists := o.store[key]; exists {
		return false
	}
	o.Set(key, val)

	return true
}

// Get returns the value associated with the key.
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	if o == nil {
		return *new(V), false
	}

	e, exists := o.store[key]
	if !exists {
		return *new(V), false
	}

	return e.Value.(entry[K, V]).value, true
}

// Has reports whether key is present
func (o *OrderedMap[K, V]) Has(key K) bool {
	if o == nil {
		return false
	}
	_, exists := o.store[key]

	return exists
}

// Len returns the number of stored pairs
func (o *OrderedMap[K, V]) Len() int {
	if o == nil || o.keys == nil {
		return 0
	}

	return o.keys.Len()
}

// Keys returns the keys in insertion order
func (o *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, o.Len())
	for it := o.Front(); it != nil; it = it.Next() {
		keys = append(keys, it.Key())
	}

	return keys
}

// Front returns an iterator at the oldest pair or nil if the map is empty
func (o *OrderedMap[K, V]) Front() *Iterator[K, V] {
	if o.Len() == 0 {
		return nil
	}

	return &Iterator[K, V]{el: o.keys.Front()}
}

// Next advances the iterator and returns nil at the end.
func (it *Iterator[K, V]) Next() *Iterator[K, V] {
	if it == nil || it.el == nil {
		return nil
	}

	it.el = it.el.Next()
	if it.el == nil {
		return nil
	}

	return it
}

func (it *Iterator[K, V]) Key() K {
	return it.el.Value.(entry[K, V]).key
}

func (it *Iterator[K, V]) Value() V {
	return it.el.Value.(entry[K, V]).value
}
