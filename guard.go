package grip

// Selection guards are shared per surface: with overlapping drags on
// multiple elements, exactly one guard must be in effect while any drag is
// active and none once all are inactive. A ref-count per surface gives
// idempotent acquire semantics with guaranteed release. Like the rest of
// the engine, this assumes single-threaded event dispatch.
var guardCounts = map[Surface]int{}

// acquireSelectionGuard blocks selection on s, nesting across gestures.
func acquireSelectionGuard(s Surface) {
	if s == nil {
		return
	}
	guardCounts[s]++
	if guardCounts[s] == 1 {
		s.BlockSelection(true)
	}
}

// releaseSelectionGuard undoes one acquire, unblocking selection when the
// last holder releases. Extra releases are ignored.
func releaseSelectionGuard(s Surface) {
	if s == nil {
		return
	}
	n := guardCounts[s]
	switch {
	case n == 0:
	case n == 1:
		delete(guardCounts, s)
		s.BlockSelection(false)
	default:
		guardCounts[s] = n - 1
	}
}
