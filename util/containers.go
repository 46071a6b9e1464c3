package util

import (
	"cmp"
	"encoding/json"
	"slices"
)

//*******************************************
// array
//*******************************************

type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Length() int {
	return len(self)
}

//*******************************************
// list
//*******************************************

type List[T any] []T

func NewList[T any](cap int) List[T] {
	return make([]T, 0, cap)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self List[T]) Get(index int) T {
	return self[index]
}
func (self List[T]) Set(index int, value T) {
	self[index] = value
}
func (self List[T]) Length() int {
	return len(self)
}

//*******************************************
// dict
//*******************************************

type Dict[K comparable, V any] map[K]V

func NewDict[K comparable, V any](cap int) Dict[K, V] {
	return make(map[K]V, cap)
}

func (self Dict[K, V]) ContainsKey(key K) bool {
	_, ok := self[key]
	return ok
}
func (self Dict[K, V]) Get(key K) V {
	return self[key]
}
func (self Dict[K, V]) Set(key K, value V) {
	self[key] = value
}
func (self Dict[K, V]) Length() int {
	return len(self)
}

// Returns the keys of an ordered dict in ascending order.
func SortedKeys[K cmp.Ordered, V any](dict Dict[K, V]) List[K] {
	keys := NewList[K](len(dict))
	for k := range dict {
		keys.Add(k)
	}
	slices.Sort(keys)
	return keys
}

//*******************************************
// set
//*******************************************

type Set[T comparable] map[T]struct{}

func NewSet[T comparable](cap int) Set[T] {
	return make(map[T]struct{}, cap)
}

func (self Set[T]) Add(value T) {
	self[value] = struct{}{}
}
func (self Set[T]) Contains(value T) bool {
	_, ok := self[value]
	return ok
}
func (self Set[T]) Length() int {
	return len(self)
}
func (self Set[T]) Values() List[T] {
	values := NewList[T](len(self))
	for v := range self {
		values.Add(v)
	}
	return values
}

// Returns the values of an ordered set in ascending order.
func SortedValues[T cmp.Ordered](set Set[T]) List[T] {
	values := set.Values()
	slices.Sort(values)
	return values
}

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value T
	ok    bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.ok
}

func (self Optional[T]) MarshalJSON() ([]byte, error) {
	if !self.ok {
		return []byte("null"), nil
	}
	return json.Marshal(self.Value)
}
func (self *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*self = None[T]()
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*self = Some(value)
	return nil
}

//*******************************************
// triple
//*******************************************

type Triple[A any, B any, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A any, B any, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}
