package grip

import "testing"

func TestSelectionGuardSharedAcrossCores(t *testing.T) {
	surf := &fakeSurface{}
	elA := &fakeElement{name: "a", surf: surf, w: 10, h: 10}
	elB := &fakeElement{name: "b", surf: surf, w: 10, h: 10}

	ca := New(Options{SelectionGuard: true})
	ca.Attach(elA)
	cb := New(Options{SelectionGuard: true})
	cb.Attach(elB)

	// One mouse gesture and one touch gesture overlap on the same surface.
	surf.dispatch(mousePress(elA, 1, 1))
	surf.dispatch(touchPress(elB, 3, 2, 2))
	if !ca.Dragging() || !cb.Dragging() {
		t.Fatal("expected both gestures live")
	}
	if got := len(surf.blockLog); got != 1 {
		t.Fatalf("expected one BlockSelection call for two overlapping drags, got %d", got)
	}

	// Ending the first gesture must not unblock while the second is live.
	surf.dispatch(mouseRelease(5, 5))
	if !surf.blocked {
		t.Error("selection must stay blocked while another drag holds the guard")
	}

	surf.dispatch(touchRelease(3, Touch{ID: 3, X: 5, Y: 5}))
	if surf.blocked {
		t.Error("selection must unblock once the last drag ends")
	}
	if want := []bool{true, false}; len(surf.blockLog) != 2 ||
		surf.blockLog[0] != want[0] || surf.blockLog[1] != want[1] {
		t.Errorf("blockLog = %v, want %v", surf.blockLog, want)
	}
}

func TestSelectionGuardExtraReleaseIgnored(t *testing.T) {
	surf := &fakeSurface{}

	releaseSelectionGuard(surf)
	if len(surf.blockLog) != 0 {
		t.Error("releasing an unheld guard must not touch the surface")
	}

	acquireSelectionGuard(surf)
	releaseSelectionGuard(surf)
	releaseSelectionGuard(surf)
	if surf.blocked {
		t.Error("expected unblocked")
	}
	if len(surf.blockLog) != 2 {
		t.Errorf("expected exactly one block and one unblock, got %v", surf.blockLog)
	}
}

func TestSelectionGuardNilSurface(t *testing.T) {
	// Must not panic.
	acquireSelectionGuard(nil)
	releaseSelectionGuard(nil)
}
