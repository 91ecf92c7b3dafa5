// Package state holds the pure state transitions behind the TUI: optimistic
// bookmark reconciliation, comment thread edits, notices and cursor math.
// Everything here is synchronous and side-effect free, so the protocols are
// testable without a terminal or a network.
package state

// Bookmark is the per-article bookmark cell during a viewing session. While
// an operation is in flight Pending latches further toggles out; the flag is
// owned by the reconciliation flow until the server answers.
type Bookmark struct {
	Bookmarked bool
	Pending    bool
}

// Begin applies the optimistic flip and raises the pending latch. It reports
// false when an operation is already in flight, in which case the state is
// returned unchanged and the caller must not issue a request.
func (b Bookmark) Begin() (Bookmark, bool) {
	if b.Pending {
		return b, false
	}
	return Bookmark{Bookmarked: !b.Bookmarked, Pending: true}, true
}

// Confirm settles the optimistic state with the server's answer and releases
// the latch. On success the server echoes the state the flip already shows,
// so confirming is not a second flip.
func (b Bookmark) Confirm(bookmarked bool) Bookmark {
	return Bookmark{Bookmarked: bookmarked, Pending: false}
}

// Rollback reverts the optimistic flip after a failed request and releases
// the latch.
func (b Bookmark) Rollback() Bookmark {
	if !b.Pending {
		return b
	}
	return Bookmark{Bookmarked: !b.Bookmarked, Pending: false}
}
