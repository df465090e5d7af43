package store

import "github.com/google/btree"

// ObjectID is the primary integer key of every object table.
type ObjectID uint64

type indexItem[T any] struct {
	id  ObjectID
	val T
}

// Index is an ordered secondary index over a table's rows, backed by a
// google/btree B-tree so range scans (witness schedule, limit-order book,
// cashout queue, expiration queues) stay O(log n) instead of requiring a
// full table sort on every housekeeping pass.
type Index[T any] struct {
	tree *btree.BTreeG[indexItem[T]]
}

// NewIndex builds an index ordered by less, which must be a strict weak
// order consistent across the object's full lifetime in this index (i.e. a
// composite of the indexed field(s) then the id as a final tie-break, the
// way the spec's price/time indexes break ties by ascending id).
func NewIndex[T any](less func(a, b T, aID, bID ObjectID) bool) *Index[T] {
	return &Index[T]{
		tree: btree.NewG(32, func(a, b indexItem[T]) bool {
			return less(a.val, b.val, a.id, b.id)
		}),
	}
}

func (ix *Index[T]) insert(id ObjectID, v T) {
	ix.tree.ReplaceOrInsert(indexItem[T]{id: id, val: v})
}

func (ix *Index[T]) remove(id ObjectID, v T) {
	ix.tree.Delete(indexItem[T]{id: id, val: v})
}

// Len returns the number of rows currently indexed.
func (ix *Index[T]) Len() int {
	return ix.tree.Len()
}

// Ascend walks the index from the smallest key, stopping early if visit
// returns false.
func (ix *Index[T]) Ascend(visit func(id ObjectID, v T) bool) {
	ix.tree.Ascend(func(it indexItem[T]) bool {
		return visit(it.id, it.val)
	})
}

// Min returns the smallest-keyed row, if any.
func (ix *Index[T]) Min() (ObjectID, T, bool) {
	item, ok := ix.tree.Min()
	if !ok {
		var zero T
		return 0, zero, false
	}
	return item.id, item.val, true
}
