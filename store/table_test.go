package store

import "testing"

type widget struct {
	Owner string
	Price int64
}

func TestTableCreateModifyRemove(t *testing.T) {
	undo := NewUndoLog()
	tbl := NewTable[widget]("widgets", undo)
	byPrice := NewIndex[widget](func(a, b widget, aID, bID ObjectID) bool {
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return aID < bID
	})
	tbl.RegisterIndex(byPrice)

	id, _ := tbl.Create(func(ObjectID) widget { return widget{Owner: "alice", Price: 10} })
	if byPrice.Len() != 1 {
		t.Fatalf("expected index len 1, got %d", byPrice.Len())
	}

	if _, err := tbl.Modify(id, func(old widget) widget { old.Price = 5; return old }); err != nil {
		t.Fatalf("modify: %v", err)
	}
	minID, minVal, ok := byPrice.Min()
	if !ok || minID != id || minVal.Price != 5 {
		t.Fatalf("expected reindexed min price 5, got %+v ok=%v", minVal, ok)
	}

	if err := tbl.Remove(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if byPrice.Len() != 0 {
		t.Fatalf("expected empty index after remove, got %d", byPrice.Len())
	}
}

func TestUndoRollback(t *testing.T) {
	undo := NewUndoLog()
	tbl := NewTable[widget]("widgets", undo)

	session := undo.Begin()
	id, _ := tbl.Create(func(ObjectID) widget { return widget{Owner: "bob", Price: 1} })
	if _, err := tbl.Modify(id, func(old widget) widget { old.Price = 99; return old }); err != nil {
		t.Fatalf("modify: %v", err)
	}
	session.Rollback()

	if tbl.Len() != 0 {
		t.Fatalf("expected table empty after rollback, got %d rows", tbl.Len())
	}
}

func TestNestedSavepointCommitKeepsOuterRollbackable(t *testing.T) {
	undo := NewUndoLog()
	tbl := NewTable[widget]("widgets", undo)

	outer := undo.Begin()
	id, _ := tbl.Create(func(ObjectID) widget { return widget{Owner: "carol", Price: 1} })

	inner := undo.Begin()
	if _, err := tbl.Modify(id, func(old widget) widget { old.Price = 2; return old }); err != nil {
		t.Fatalf("modify: %v", err)
	}
	inner.Commit()

	outer.Rollback()
	if tbl.Len() != 0 {
		t.Fatalf("expected outer rollback to undo inner-committed mutation too, got %d rows", tbl.Len())
	}
}
