package store

import "fmt"

// UniqueIndex maps a composite key (e.g. (seller, orderid) or (from,
// request_id)) to the single object id holding it. Callers wire it to a
// Table via Table.OnMutate with a key-extraction closure, since Go does not
// allow a method to introduce its own type parameter beyond the receiver's.
type UniqueIndex[K comparable, T any] struct {
	byKey map[K]ObjectID
}

// NewUniqueIndex creates an empty unique index.
func NewUniqueIndex[K comparable, T any]() *UniqueIndex[K, T] {
	return &UniqueIndex[K, T]{byKey: make(map[K]ObjectID)}
}

func (ix *UniqueIndex[K, T]) insert(key K, id ObjectID) {
	ix.byKey[key] = id
}

func (ix *UniqueIndex[K, T]) remove(key K) {
	delete(ix.byKey, key)
}

// Lookup resolves a key to its object id.
func (ix *UniqueIndex[K, T]) Lookup(key K) (ObjectID, bool) {
	id, ok := ix.byKey[key]
	return id, ok
}

// Bind returns the (insert, remove) hook pair to pass to Table.OnMutate,
// extracting the key from each row via key.
func Bind[K comparable, T any](ix *UniqueIndex[K, T], key func(T) K) (func(ObjectID, T), func(ObjectID, T)) {
	return func(id ObjectID, v T) { ix.insert(key(v), id) },
		func(id ObjectID, v T) { ix.remove(key(v)) }
}

// CheckUnique returns an error if key is already present, the standard
// precondition check before a Create that must not collide.
func CheckUnique[K comparable, T any](ix *UniqueIndex[K, T], key K, what string) error {
	if _, exists := ix.Lookup(key); exists {
		return fmt.Errorf("store: %s already exists", what)
	}
	return nil
}
