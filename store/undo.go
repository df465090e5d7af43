// Package store implements the in-memory, ordered multi-index object tables
// and the transactional undo layer described in spec §5: nested save-points,
// atomic create/modify/remove, and index re-keying synchronous with every
// mutation.
package store

// UndoLog is a stack of inverse-mutation closures. Every Table sharing one
// UndoLog can be rolled back together to any earlier save-point, which is
// how a single evaluator failure unwinds every table it touched.
type UndoLog struct {
	entries []func()
}

// NewUndoLog creates an empty undo log.
func NewUndoLog() *UndoLog {
	return &UndoLog{}
}

func (u *UndoLog) push(undo func()) {
	u.entries = append(u.entries, undo)
}

// Mark returns a save-point token at the log's current length.
func (u *UndoLog) Mark() int {
	return len(u.entries)
}

// RollbackTo undoes every mutation recorded since mark, in reverse order,
// and discards the log entries. It is idempotent on a log already at mark.
func (u *UndoLog) RollbackTo(mark int) {
	for i := len(u.entries) - 1; i >= mark; i-- {
		u.entries[i]()
	}
	u.entries = u.entries[:mark]
}

// Clear discards the entire log, the equivalent of a top-level transaction
// commit: every mutation since the outermost save-point is now permanent
// and can no longer be rolled back.
func (u *UndoLog) Clear() {
	u.entries = u.entries[:0]
}

// Session is a single nested save-point. Evaluators open one session per
// operation (and housekeeping tasks open one per task); on any precondition
// failure the evaluator calls Rollback and returns the error untouched.
type Session struct {
	log  *UndoLog
	mark int
	done bool
}

// Begin opens a new save-point.
func (u *UndoLog) Begin() *Session {
	return &Session{log: u, mark: u.Mark()}
}

// Rollback undoes every mutation made since the session began. Safe to call
// at most once; a second call is a no-op.
func (s *Session) Rollback() {
	if s.done {
		return
	}
	s.log.RollbackTo(s.mark)
	s.done = true
}

// Commit marks the session as settled. It does not touch the log: the
// mutations remain undoable by any enclosing session until that session
// itself commits or the top-level transaction driver calls UndoLog.Clear.
func (s *Session) Commit() {
	s.done = true
}
